// Package formex extracts structured content from Formex 4 XML documents,
// the exchange format used by the Publications Office of the European
// Union: bibliographic metadata, title, preamble and enacting terms.
package formex

import (
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/AlessioNar/op-cellar/pkg/xmltree"
)

// NamespaceFMX is the Formex 05.56 schema namespace. Most Formex
// renditions in circulation carry unnamespaced elements, so every lookup
// falls back to the unqualified name.
const NamespaceFMX = "http://formex.publications.europa.eu/schema/formex-05.56-20160701.xd"

// Namespaces is the prefix-to-URI mapping used for every lookup.
var Namespaces = map[string]string{"fmx": NamespaceFMX}

// Document is a parsed Formex document ready for extraction.
type Document struct {
	root *xmlquery.Node
	find *xmltree.Finder
}

// Load parses the Formex XML file at path.
// Unreadable or malformed input yields a *xmltree.ParseError.
func Load(path string) (*Document, error) {
	root, err := xmltree.Load(path)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

// Parse parses a Formex document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

func newDocument(root *xmlquery.Node) *Document {
	return &Document{
		root: root,
		find: xmltree.NewFinder(Namespaces, xmltree.NamespaceThenUnqualified),
	}
}

// Root returns the underlying document node.
func (doc *Document) Root() *xmlquery.Node {
	return doc.root
}

// findText returns the leading text of the first node matching expr below
// scope, or "" when nothing matches.
func (doc *Document) findText(scope *xmlquery.Node, expr string) string {
	return xmltree.Text(doc.find.First(scope, expr))
}

// Metadata extracts the bibliographic record from the BIB.INSTANCE block.
// It returns nil when the document has no BIB.INSTANCE.
func (doc *Document) Metadata() *Metadata {
	bibInstance := doc.find.First(doc.root, ".//fmx:BIB.INSTANCE")
	if bibInstance == nil {
		return nil
	}

	metadata := &Metadata{
		DocumentLanguage: doc.findText(bibInstance, "fmx:LG.DOC"),
		SequenceNumber:   doc.findText(bibInstance, "fmx:NO.SEQ"),
		TotalPages:       doc.findText(bibInstance, "fmx:PAGE.TOTAL"),
	}

	if documentRef := doc.find.First(bibInstance, "fmx:DOCUMENT.REF"); documentRef != nil {
		metadata.File = documentRef.SelectAttr("FILE")
		metadata.Collection = doc.findText(documentRef, "fmx:COLL")
		metadata.OJNumber = doc.findText(documentRef, "fmx:NO.OJ")
		metadata.Year = doc.findText(documentRef, "fmx:YEAR")
		metadata.OJLanguage = doc.findText(documentRef, "fmx:LG.OJ")
		metadata.PageFirst = doc.findText(documentRef, "fmx:PAGE.FIRST")
		metadata.PageSeq = doc.findText(documentRef, "fmx:PAGE.SEQ")
		metadata.VolumeRef = doc.findText(documentRef, "fmx:VOLUME.REF")
	}

	if noDoc := doc.find.First(bibInstance, "fmx:NO.DOC"); noDoc != nil {
		metadata.DocFormat = noDoc.SelectAttr("FORMAT")
		metadata.DocType = noDoc.SelectAttr("TYPE")
		metadata.DocNumber = doc.findText(noDoc, "fmx:NO.CURRENT")
	}

	return metadata
}

// Title returns the document title: the trimmed text of every P element
// under TITLE, joined by single spaces. Returns "" when there is no TITLE.
func (doc *Document) Title() string {
	titleElement := doc.find.First(doc.root, ".//fmx:TITLE")
	if titleElement == nil {
		return ""
	}

	var parts []string
	for _, paragraph := range doc.find.All(titleElement, ".//fmx:P") {
		if text := strings.TrimSpace(xmltree.InnerText(paragraph)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Preamble extracts the PREAMBLE section: the initial statement, VISA
// quotations, the considerations intro, CONSID entries and the final
// statement. NOTE elements are stripped from a clone of the section
// before quotation and consideration text is read, preserving the tail
// text that follows each note. Returns nil when there is no PREAMBLE.
//
// A CONSID without a TXT child is a schema violation reported as an error
// wrapping xmltree.ErrAttributeNotFound.
func (doc *Document) Preamble() (*Preamble, error) {
	preambleSection := doc.find.First(doc.root, ".//fmx:PREAMBLE")
	if preambleSection == nil {
		return nil, nil
	}

	preamble := &Preamble{
		InitialStatement: doc.findText(preambleSection, "fmx:PREAMBLE.INIT"),
		FinalStatement:   doc.findText(preambleSection, "fmx:PREAMBLE.FINAL"),
	}

	stripped, _ := xmltree.Strip(doc.find, preambleSection, ".//fmx:NOTE")

	for _, visa := range doc.find.All(stripped, ".//fmx:VISA") {
		preamble.Quotations = append(preamble.Quotations,
			xmltree.CollapseWhitespace(xmltree.InnerText(visa)))
	}

	preamble.ConsiderationsIntro = doc.findText(stripped, ".//fmx:GR.CONSID/fmx:GR.CONSID.INIT")

	for _, consid := range doc.find.All(stripped, ".//fmx:CONSID") {
		txt, err := xmltree.RequireChild(doc.find, consid, ".//fmx:TXT")
		if err != nil {
			return nil, err
		}
		preamble.Considerations = append(preamble.Considerations, Consideration{
			Number: xmltree.Text(doc.find.First(consid, ".//fmx:NO.P")),
			Text:   strings.TrimSpace(xmltree.InnerText(txt)),
		})
	}

	return preamble, nil
}

// EnactingTerms locates the ENACTING.TERMS element, namespace-first with
// an unqualified fallback. Returns nil when the document has none.
func (doc *Document) EnactingTerms() *xmlquery.Node {
	return doc.find.First(doc.root, ".//fmx:ENACTING.TERMS")
}

// Articles returns every ARTICLE within the enacting terms: identifier,
// TI.ART number and the trimmed ALINEA texts joined by single spaces.
// Returns nil when the document has no enacting terms.
func (doc *Document) Articles() []Article {
	enactingTerms := doc.EnactingTerms()
	if enactingTerms == nil {
		return nil
	}

	var articles []Article
	for _, article := range doc.find.All(enactingTerms, ".//fmx:ARTICLE") {
		var alineas []string
		for _, alinea := range doc.find.All(article, ".//fmx:ALINEA") {
			alineas = append(alineas, strings.TrimSpace(xmltree.InnerText(alinea)))
		}
		articles = append(articles, Article{
			EID:  article.SelectAttr("IDENTIFIER"),
			Num:  strings.TrimSpace(doc.findText(article, ".//fmx:TI.ART")),
			Text: strings.Join(alineas, " "),
		})
	}
	return articles
}
