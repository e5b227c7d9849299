package elihtml

import (
	"strings"
	"testing"
)

const sampleXHTML = `<html><body>
<div class="eli-subdivision" id="enc_1">
  <div class="eli-subdivision" id="art_1">
    <p>Article 1</p>
    <div id="001.001"><p>This Directive lays down
      rules concerning fees.</p></div>
    <div id="001.002"><p>It applies to payment accounts.</p></div>
    <ol>
      <li><div id="art_1_pt_a"><p>point (a) text</p></div></li>
    </ol>
  </div>
  <div class="eli-subdivision" id="art_2">
    <p>Article 2 text only.</p>
  </div>
  <div id="not-a-paragraph"><p>skipped</p></div>
</div>
</body></html>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(sampleXHTML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestArticles(t *testing.T) {
	doc := parseSample(t)

	articles := doc.Articles()
	if len(articles) != 2 {
		t.Fatalf("articles: got %d, want 2", len(articles))
	}

	if _, ok := articles["art_1"]; !ok {
		t.Error("art_1 missing")
	}
	if got := articles["art_2"]; got != "Article 2 text only." {
		t.Errorf("art_2 text: got %q", got)
	}
	if !strings.Contains(articles["art_1"], "This Directive lays down rules concerning fees.") {
		t.Errorf("art_1 text not normalized: got %q", articles["art_1"])
	}
}

func TestParagraphs(t *testing.T) {
	doc := parseSample(t)

	paragraphs, err := doc.Paragraphs()
	if err != nil {
		t.Fatalf("Paragraphs failed: %v", err)
	}

	if got := paragraphs["001.001"]; got != "This Directive lays down rules concerning fees." {
		t.Errorf("001.001: got %q", got)
	}
	if _, ok := paragraphs["001.002"]; !ok {
		t.Error("001.002 missing")
	}
	if _, ok := paragraphs["not-a-paragraph"]; ok {
		t.Error("id without the NNN.NNN shape was collected")
	}
	if _, ok := paragraphs["art_1_pt_a"]; !ok {
		t.Error("list paragraph under article subdivision missing")
	}
}

func TestParagraphsNoEnactingTerms(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<html><body><div class="eli-subdivision" id="art_1"/></body></html>`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if _, err := doc.Paragraphs(); err == nil {
		t.Fatal("expected an error for a document without enacting terms")
	}
}

func TestIsParagraphID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"001.002", true},
		{"123.456", true},
		{"art_1", false},
		{"0001.002", false},
		{"001.02", false},
		{"001.002.003", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isParagraphID(tc.id); got != tc.want {
			t.Errorf("isParagraphID(%q): got %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	// The non-breaking space is dropped (non-ASCII), whitespace collapses.
	if got := normalizeText("a\u00a0b   c\n"); got != "ab c" {
		t.Errorf("normalizeText: got %q, want %q", got, "ab c")
	}
}
