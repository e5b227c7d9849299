package formex

// Metadata is the bibliographic record from the BIB.INSTANCE block.
// Attributes absent from the source read as "".
type Metadata struct {
	File             string `json:"file,omitempty"`
	Collection       string `json:"collection,omitempty"`
	OJNumber         string `json:"oj_number,omitempty"`
	Year             string `json:"year,omitempty"`
	OJLanguage       string `json:"language,omitempty"`
	PageFirst        string `json:"page_first,omitempty"`
	PageSeq          string `json:"page_seq,omitempty"`
	VolumeRef        string `json:"volume_ref,omitempty"`
	DocumentLanguage string `json:"document_language,omitempty"`
	SequenceNumber   string `json:"sequence_number,omitempty"`
	TotalPages       string `json:"total_pages,omitempty"`
	DocFormat        string `json:"doc_format,omitempty"`
	DocType          string `json:"doc_type,omitempty"`
	DocNumber        string `json:"doc_number,omitempty"`
}

// Consideration is one numbered CONSID entry from the preamble.
type Consideration struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Preamble holds the PREAMBLE section: initial statement, VISA
// quotations, considerations and final statement.
type Preamble struct {
	InitialStatement    string          `json:"initial_statement"`
	Quotations          []string        `json:"quotations"`
	ConsiderationsIntro string          `json:"consid_init"`
	Considerations      []Consideration `json:"considerations"`
	FinalStatement      string          `json:"preamble_final"`
}

// Article is one ARTICLE record from the enacting terms.
type Article struct {
	EID  string `json:"eId"`
	Num  string `json:"article_num"`
	Text string `json:"article_text"`
}
