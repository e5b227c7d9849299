package akn

// Identification holds the FRBR metadata of a document: the Work,
// Expression and Manifestation levels of its identity.
type Identification struct {
	Work          *FRBRWork          `json:"work"`
	Expression    *FRBRExpression    `json:"expression"`
	Manifestation *FRBRManifestation `json:"manifestation"`
}

// FRBRWork is the work-level FRBR record.
type FRBRWork struct {
	This    string `json:"FRBRthis"`
	URI     string `json:"FRBRuri"`
	Alias   string `json:"FRBRalias"`
	Date    string `json:"FRBRdate"`
	Author  string `json:"FRBRauthor"`
	Country string `json:"FRBRcountry"`
	Number  string `json:"FRBRnumber"`
}

// FRBRExpression is the expression-level FRBR record.
type FRBRExpression struct {
	This     string `json:"FRBRthis"`
	URI      string `json:"FRBRuri"`
	Date     string `json:"FRBRdate"`
	Author   string `json:"FRBRauthor"`
	Language string `json:"FRBRlanguage"`
}

// FRBRManifestation is the manifestation-level FRBR record.
type FRBRManifestation struct {
	This   string `json:"FRBRthis"`
	URI    string `json:"FRBRuri"`
	Date   string `json:"FRBRdate"`
	Author string `json:"FRBRauthor"`
}

// Reference is a TLCOrganization entry from the references block.
type Reference struct {
	EID    string `json:"eId"`
	Href   string `json:"href"`
	ShowAs string `json:"showAs"`
}

// Proprietary holds the Formex document reference carried in the
// proprietary metadata block.
type Proprietary struct {
	File             string `json:"file"`
	Collection       string `json:"coll"`
	Year             string `json:"year"`
	DocumentLanguage string `json:"lg_doc"`
	SequenceNumber   string `json:"no_seq"`
}

// Citation is one citation entry from the preamble, with authorial notes
// stripped.
type Citation struct {
	Text string `json:"citation_text"`
}

// Recital is one recital entry from the preamble. The first entry emitted
// by Recitals is the section intro.
type Recital struct {
	EID  string `json:"eId"`
	Text string `json:"recital_text"`
}

// Preamble aggregates the three preamble sub-extractions. Each field is
// null when the corresponding element is absent from the document.
type Preamble struct {
	Formula   *string    `json:"formula"`
	Citations []Citation `json:"citations"`
	Recitals  []Recital  `json:"recitals"`
}

// Chapter is one chapter record. Num and Heading are independently null
// when the corresponding child element is absent.
type Chapter struct {
	EID     string  `json:"eId"`
	Num     *string `json:"chapter_num"`
	Heading *string `json:"chapter_heading"`
}

// ParagraphText is a paragraph's text attributed to its nearest ancestor
// carrying an eId.
type ParagraphText struct {
	EID  string `json:"eId"`
	Text string `json:"text"`
}

// Article is one article record. Text holds the article's paragraphs in
// document order, each attributed to its nearest identified ancestor.
type Article struct {
	EID   string          `json:"eId"`
	Num   *string         `json:"article_num"`
	Title *string         `json:"article_title"`
	Text  []ParagraphText `json:"article_text"`
}
