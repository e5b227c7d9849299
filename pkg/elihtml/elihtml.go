// Package elihtml extracts article and paragraph text from the XHTML
// renditions served by the Publications Office, keyed by the ELI
// subdivision identifiers carried on div elements.
package elihtml

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed ELI XHTML rendition ready for extraction.
type Document struct {
	doc *goquery.Document
}

// Load parses the XHTML file at path.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse parses an XHTML document from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XHTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Articles returns the normalized text of every article subdivision,
// keyed by its ELI identifier (div.eli-subdivision with an id starting
// with "art_").
func (document *Document) Articles() map[string]string {
	articles := make(map[string]string)
	document.doc.Find("div.eli-subdivision").Each(func(_ int, selection *goquery.Selection) {
		id := selection.AttrOr("id", "")
		if strings.HasPrefix(id, "art_") {
			articles[id] = normalizeText(selection.Text())
		}
	})
	return articles
}

// Paragraphs returns the normalized text of every paragraph subdivision
// within the enacting terms (div id "enc_1"), keyed by its identifier.
// Top-level paragraph divs carry ids shaped NNN.NNN; paragraphs nested in
// lists under article subdivisions are collected as well. It fails when
// the document has no enacting terms division.
func (document *Document) Paragraphs() (map[string]string, error) {
	enactingTerms := document.doc.Find("div.eli-subdivision#enc_1")
	if enactingTerms.Length() == 0 {
		return nil, fmt.Errorf("no enacting terms found with ID 'enc_1'")
	}

	paragraphs := make(map[string]string)
	enactingTerms.Find("div[id]").Each(func(_ int, selection *goquery.Selection) {
		id := selection.AttrOr("id", "")
		if isParagraphID(id) {
			paragraphs[id] = normalizeText(selection.Text())
		}
	})

	// Paragraphs inside numbered or bulleted lists under an article
	// subdivision carry arbitrary ids.
	document.doc.Find("div.eli-subdivision").Each(func(_ int, article *goquery.Selection) {
		if !strings.HasPrefix(article.AttrOr("id", ""), "art_") {
			return
		}
		article.Find("ul, ol").Find("div[id]").Each(func(_ int, selection *goquery.Selection) {
			if id := selection.AttrOr("id", ""); id != "" {
				paragraphs[id] = normalizeText(selection.Text())
			}
		})
	})

	return paragraphs, nil
}

// isParagraphID reports whether id has the NNN.NNN shape used for
// paragraph subdivisions in the enacting terms.
func isParagraphID(id string) bool {
	parts := strings.Split(id, ".")
	return len(parts) == 2 && len(parts[0]) == 3 && len(parts[1]) == 3
}

// normalizeText drops non-ASCII runes and collapses whitespace runs,
// matching the text cleanup applied to the other renditions.
func normalizeText(text string) string {
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, text)
	return strings.Join(strings.Fields(ascii), " ")
}
