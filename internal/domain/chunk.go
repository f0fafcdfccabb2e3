package domain

// LegalChunk is a retrievable unit of statute text together with its citation
// metadata. Chunks are produced by the offline ingestion pipeline and are
// immutable at query time; this core only ever reads them.
type LegalChunk struct {
	ChunkID          string
	LawCode          string
	LawName          string
	IdentifierType   string // "Article" or "Section"
	IdentifierNumber string
	Title            string
	Text             string
	Proviso          string
	Explanation      string
	SourceURL        string
	Metadata         map[string]string
}

// Complete reports whether the chunk carries every field an indexed chunk must
// have. Incomplete chunks never enter an index; search adapters drop them
// before returning hits.
func (c LegalChunk) Complete() bool {
	return c.LawCode != "" && c.LawName != "" && c.IdentifierNumber != "" && c.Text != ""
}

// ScoringText is the text a pairwise relevance model scores against the query:
// the title, when present, followed by the body.
func (c LegalChunk) ScoringText() string {
	if c.Title == "" {
		return c.Text
	}
	return c.Title + " " + c.Text
}
