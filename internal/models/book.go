package models

// ChunkType marks whether a chunk came from a book summary or from a
// single key insight.
type ChunkType string

const (
	ChunkContent ChunkType = "content"
	ChunkInsight ChunkType = "insight"
)

// Document is one curated knowledge-base entry: a financial book's
// summary plus its extracted insights and topic tags. Title is the
// unique key; documents are immutable once loaded.
type Document struct {
	Title    string
	Author   string
	FullText string
	Topics   []string
	Insights []string
}

// Chunk is the unit of retrieval, derived from a Document. SourceTitle
// refers back to the owning document.
type Chunk struct {
	Text        string
	SourceTitle string
	Type        ChunkType
}

// RetrievalResult is a per-query hit with source attribution. Score is
// in [0,1]; the keyword fallback reports presence as 1.0.
type RetrievalResult struct {
	Content     string
	SourceTitle string
	Author      string
	Type        ChunkType
	Score       float64
}

// BookRecommendation is a document-level recommendation, ranked by the
// heuristic relevance score rather than chunk similarity.
type BookRecommendation struct {
	Title       string
	Author      string
	Topics      []string
	Relevance   float64
	KeyInsights []string
}

// Citation points a reader at the material woven into an answer.
type Citation struct {
	Title   string
	Author  string
	Excerpt string
}

// EnhancedAnswer is the output of the two-stage enhancement flow.
type EnhancedAnswer struct {
	Draft     string
	Final     string
	Citations []Citation
}
