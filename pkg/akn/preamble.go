package akn

import (
	"fmt"
	"strings"

	"github.com/AlessioNar/op-cellar/pkg/xmltree"
)

// Preface returns the text of each paragraph in the preface, with nested
// inline markup flattened. It returns nil when the document has no preface.
func (doc *Document) Preface() []string {
	preface := doc.find.First(doc.root, ".//akn:preface")
	if preface == nil {
		return nil
	}

	var paragraphs []string
	for _, p := range doc.find.All(preface, "akn:p") {
		paragraphs = append(paragraphs, strings.TrimSpace(xmltree.InnerText(p)))
	}
	return paragraphs
}

// Preamble aggregates the formula, citations and recitals extractions.
// It returns nil when the document has no preamble element at all.
func (doc *Document) Preamble() (*Preamble, error) {
	if doc.find.First(doc.root, ".//akn:preamble") == nil {
		return nil, nil
	}

	preamble := &Preamble{
		Citations: doc.Citations(),
	}
	if formula, ok := doc.Formula(); ok {
		preamble.Formula = &formula
	}

	recitals, err := doc.Recitals()
	if err != nil {
		return nil, err
	}
	preamble.Recitals = recitals

	return preamble, nil
}

// Formula returns the preamble formula as a single space-joined string.
// Only the leading text of each paragraph is used, so inline markup inside
// a formula paragraph is dropped; this is deliberately narrower than the
// citation and recital extractions. The second return is false when the
// formula element is absent.
func (doc *Document) Formula() (string, bool) {
	formula := doc.find.First(doc.root, ".//akn:preamble/akn:formula")
	if formula == nil {
		return "", false
	}

	var parts []string
	for _, p := range doc.find.All(formula, "akn:p") {
		if text := strings.TrimSpace(xmltree.Text(p)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), true
}

// Citations returns one entry per citation element, with authorial notes
// stripped first and all remaining descendant text concatenated. It
// returns nil (not an empty slice) when the citations section is absent.
func (doc *Document) Citations() []Citation {
	citationsSection := doc.find.First(doc.root, ".//akn:preamble/akn:citations")
	if citationsSection == nil {
		return nil
	}

	stripped, _ := xmltree.Strip(doc.find, citationsSection, ".//akn:authorialNote")

	var citations []Citation
	for _, citation := range doc.find.All(stripped, "akn:citation") {
		citations = append(citations, Citation{
			Text: strings.TrimSpace(xmltree.InnerText(citation)),
		})
	}
	return citations
}

// Recitals returns the recitals section as an ordered list: the intro
// entry first, then one entry per recital. The intro text is the leading
// text of its paragraphs, taken before any annotation stripping; recital
// text is the full descendant text of each paragraph after stripping, with
// whitespace runs collapsed. The asymmetry mirrors the reference corpus
// and is kept deliberately.
//
// Returns nil when the recitals section is absent, and an error wrapping
// xmltree.ErrAttributeNotFound when a present section lacks its intro.
func (doc *Document) Recitals() ([]Recital, error) {
	recitalsSection := doc.find.First(doc.root, ".//akn:preamble/akn:recitals")
	if recitalsSection == nil {
		return nil, nil
	}

	intro, err := xmltree.RequireChild(doc.find, recitalsSection, "akn:intro")
	if err != nil {
		return nil, fmt.Errorf("recitals: %w", err)
	}

	var introParts []string
	for _, p := range doc.find.All(intro, "akn:p") {
		if text := strings.TrimSpace(xmltree.Text(p)); text != "" {
			introParts = append(introParts, text)
		}
	}

	recitals := []Recital{{
		EID:  intro.SelectAttr("eId"),
		Text: strings.Join(introParts, " "),
	}}

	stripped, _ := xmltree.Strip(doc.find, recitalsSection, ".//akn:authorialNote")

	for _, recital := range doc.find.All(stripped, "akn:recital") {
		var parts []string
		for _, p := range doc.find.All(recital, "akn:p") {
			parts = append(parts, strings.TrimSpace(strings.Join(xmltree.TextFragments(p), " ")))
		}
		recitals = append(recitals, Recital{
			EID:  recital.SelectAttr("eId"),
			Text: xmltree.CollapseWhitespace(strings.Join(parts, " ")),
		})
	}

	return recitals, nil
}
