// Package akn extracts structured content from Akoma Ntoso XML documents:
// FRBR identification metadata, references, proprietary metadata, preface,
// preamble (formula, citations, recitals), chapters and articles.
//
// A Document is an immutable view over the parsed tree. Extraction methods
// are independent and can be called in any order; operations that strip
// inline annotations work on a clone of the relevant subtree, so no call
// changes what a later call observes.
package akn

import (
	"io"

	"github.com/antchfx/xmlquery"

	"github.com/AlessioNar/op-cellar/pkg/xmltree"
)

const (
	// NamespaceAKN is the Akoma Ntoso 3.0 schema namespace.
	NamespaceAKN = "http://docs.oasis-open.org/legaldocml/ns/akn/3.0"

	// NamespaceFMX is the Formex exchange namespace used inside the
	// proprietary metadata block.
	NamespaceFMX = "http://formex.publications.europa.eu/schema/formex-05.56-20160701.xd"
)

// Namespaces is the prefix-to-URI mapping used for every lookup.
var Namespaces = map[string]string{
	"akn": NamespaceAKN,
	"fmx": NamespaceFMX,
}

// Document is a parsed Akoma Ntoso document ready for extraction.
type Document struct {
	root *xmlquery.Node
	find *xmltree.Finder
}

// Load parses the Akoma Ntoso XML file at path.
// Unreadable or malformed input yields a *xmltree.ParseError.
func Load(path string) (*Document, error) {
	root, err := xmltree.Load(path)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

// Parse parses an Akoma Ntoso document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

func newDocument(root *xmlquery.Node) *Document {
	// The schema namespace is mandatory, but legacy documents exist with
	// unnamespaced elements; the lenient policy covers both.
	return &Document{
		root: root,
		find: xmltree.NewFinder(Namespaces, xmltree.NamespaceThenUnqualified),
	}
}

// Root returns the underlying document node.
func (doc *Document) Root() *xmlquery.Node {
	return doc.root
}

// Act locates the act element, namespace-first with an unqualified
// fallback. Returns nil when the document has no act.
func (doc *Document) Act() *xmlquery.Node {
	return doc.find.First(doc.root, ".//akn:act")
}

// Body locates the body element, namespace-first with an unqualified
// fallback. Returns nil when the document has no body.
func (doc *Document) Body() *xmlquery.Node {
	return doc.find.First(doc.root, ".//akn:body")
}
