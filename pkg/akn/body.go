package akn

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/AlessioNar/op-cellar/pkg/xmltree"
)

// Chapters returns every chapter in the document, wherever it appears.
// Num is the leading text of the chapter's num child and Heading the full
// trimmed text of its heading child; each is independently null when the
// child is absent.
func (doc *Document) Chapters() []Chapter {
	var chapters []Chapter
	for _, chapter := range doc.find.All(doc.root, ".//akn:chapter") {
		record := Chapter{EID: chapter.SelectAttr("eId")}

		if num := doc.find.First(chapter, "akn:num"); num != nil {
			text := xmltree.Text(num)
			record.Num = &text
		}
		if heading := doc.find.First(chapter, "akn:heading"); heading != nil {
			text := strings.TrimSpace(xmltree.InnerText(heading))
			record.Heading = &text
		}

		chapters = append(chapters, record)
	}
	return chapters
}

// Articles returns every article within the body, with authorial notes
// stripped from a clone of the body first. The article number is the
// leading text of the first num child. The title prefers a heading child;
// when no heading exists and a second num child does, that second num
// stands in; otherwise the title is null. Article text is computed by
// TextByEID.
//
// Returns nil when the document has no body.
func (doc *Document) Articles() []Article {
	body := doc.Body()
	if body == nil {
		return nil
	}

	stripped, _ := xmltree.Strip(doc.find, body, ".//akn:authorialNote")

	var articles []Article
	for _, article := range doc.find.All(stripped, ".//akn:article") {
		record := Article{EID: article.SelectAttr("eId")}

		nums := doc.find.All(article, "akn:num")
		if len(nums) > 0 {
			text := xmltree.Text(nums[0])
			record.Num = &text
		}

		if heading := doc.find.First(article, "akn:heading"); heading != nil {
			text := xmltree.Text(heading)
			record.Title = &text
		} else if len(nums) > 1 {
			text := xmltree.Text(nums[1])
			record.Title = &text
		}

		record.Text = doc.TextByEID(article)
		articles = append(articles, record)
	}
	return articles
}

// TextByEID attributes every paragraph beneath subtree to its nearest
// ancestor carrying a non-empty eId, the paragraph itself counting first.
// Output follows document order of the paragraphs; multiple paragraphs
// under the same ancestor appear as separate sequential entries. A
// paragraph with no identified ancestor cannot be attributed to any
// addressable unit and is omitted.
func (doc *Document) TextByEID(subtree *xmlquery.Node) []ParagraphText {
	var entries []ParagraphText
	for _, p := range doc.find.All(subtree, ".//akn:p") {
		eid := nearestEID(p)
		if eid == "" {
			continue
		}
		entries = append(entries, ParagraphText{
			EID:  eid,
			Text: strings.TrimSpace(xmltree.InnerText(p)),
		})
	}
	return entries
}

// nearestEID walks from n upward and returns the first non-empty eId.
func nearestEID(n *xmlquery.Node) string {
	for current := n; current != nil; current = current.Parent {
		if current.Type != xmlquery.ElementNode {
			break
		}
		if eid := current.SelectAttr("eId"); eid != "" {
			return eid
		}
	}
	return ""
}
