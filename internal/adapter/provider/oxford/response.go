package oxford

// apiResponse is the body of GET /entries/{lang}/{word}?fields=definitions.
type apiResponse struct {
	ID      string      `json:"id"`
	Word    string      `json:"word"`
	Results []apiResult `json:"results"`
}

type apiResult struct {
	LexicalEntries []apiLexicalEntry `json:"lexicalEntries"`
}

type apiLexicalEntry struct {
	LexicalCategory apiCategory `json:"lexicalCategory"`
	Entries         []apiEntry  `json:"entries"`
}

type apiCategory struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type apiEntry struct {
	Senses []apiSense `json:"senses"`
}

type apiSense struct {
	Definitions []string   `json:"definitions"`
	Subsenses   []apiSense `json:"subsenses"`
}
