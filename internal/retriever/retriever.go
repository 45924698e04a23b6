package retriever

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"finsight-rag/internal/index"
	"finsight-rag/internal/knowledge"
	"finsight-rag/internal/models"
)

const DefaultK = 5

// Embedder mirrors index.Embedder; the query must be embedded with the
// same backend the index was built with.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Retriever answers free-text queries with the top-k relevant chunks.
// With an index set it searches by embedding similarity; without one
// it degrades to case-insensitive keyword matching over the corpus.
// The index reference is swapped atomically so in-flight queries see
// either the old or the new index, never a partial build.
type Retriever struct {
	store    *knowledge.Store
	embedder Embedder
	idx      atomic.Pointer[index.Index]
}

func New(store *knowledge.Store, embedder Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// SetIndex replaces the active index wholesale. A nil index switches
// the retriever back to keyword mode.
func (r *Retriever) SetIndex(idx *index.Index) {
	r.idx.Store(idx)
}

// HasIndex reports whether the vector strategy is active.
func (r *Retriever) HasIndex() bool {
	return r.idx.Load() != nil
}

// Query returns at most k results. Retrieval failures are logged and
// reported as no results; callers always get a usable (possibly
// empty) slice.
func (r *Retriever) Query(ctx context.Context, text string, k int) []models.RetrievalResult {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if k <= 0 {
		k = DefaultK
	}

	if idx := r.idx.Load(); idx != nil {
		results, err := r.vectorSearch(ctx, idx, text, k)
		if err == nil {
			return results
		}
		log.Error().Err(err).Msg("Vector search failed, using keyword fallback")
	} else {
		log.Debug().Msg("Using simplified keyword search instead of vector search")
	}

	return r.keywordSearch(text, k)
}

func (r *Retriever) vectorSearch(ctx context.Context, idx *index.Index, text string, k int) ([]models.RetrievalResult, error) {
	queryEmbedding, err := r.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	hits, err := idx.Search(ctx, queryEmbedding, k)
	if err != nil {
		return nil, err
	}

	results := make([]models.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, models.RetrievalResult{
			Content:     hit.Chunk.Text,
			SourceTitle: hit.Chunk.SourceTitle,
			Author:      hit.Author,
			Type:        hit.Chunk.Type,
			Score:       hit.Score,
		})
	}
	return results, nil
}

// keywordSearch checks query terms longer than three characters as
// case-insensitive substrings of each book's summary and insights.
// Summary hits are previewed; insight hits are returned whole. Results
// keep corpus insertion order and presence counts as full relevance.
func (r *Retriever) keywordSearch(text string, k int) []models.RetrievalResult {
	terms := keywordTerms(text)
	if len(terms) == 0 {
		return nil
	}

	var results []models.RetrievalResult
	for _, doc := range r.store.Documents() {
		if matchesAny(doc.FullText, terms) {
			results = append(results, models.RetrievalResult{
				Content:     preview(doc.FullText),
				SourceTitle: doc.Title,
				Author:      doc.Author,
				Type:        models.ChunkContent,
				Score:       1.0,
			})
		}
		for _, insight := range doc.Insights {
			if matchesAny(insight, terms) {
				results = append(results, models.RetrievalResult{
					Content:     insight,
					SourceTitle: doc.Title,
					Author:      doc.Author,
					Type:        models.ChunkInsight,
					Score:       1.0,
				})
			}
		}
	}

	if len(results) > k {
		results = results[:k]
	}
	return results
}

func keywordTerms(text string) []string {
	var terms []string
	for _, term := range strings.Fields(text) {
		if len(term) > models.MinKeywordLength {
			terms = append(terms, strings.ToLower(term))
		}
	}
	return terms
}

func matchesAny(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func preview(text string) string {
	if len(text) <= models.FallbackPreviewLength {
		return text
	}
	return text[:models.FallbackPreviewLength] + "..."
}
