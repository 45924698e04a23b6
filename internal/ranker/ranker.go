package ranker

import (
	"context"
	"sort"
	"strings"

	"finsight-rag/internal/knowledge"
	"finsight-rag/internal/models"
)

const DefaultTopN = 3

// Retriever is the chunk-level search the ranker seeds candidate
// books from.
type Retriever interface {
	Query(ctx context.Context, text string, k int) []models.RetrievalResult
}

// Ranker scores whole books against a query and turns chunk hits into
// deduplicated book recommendations. The document-level score here is
// independent of the retriever's chunk similarity and the two are
// never mixed.
type Ranker struct {
	store     *knowledge.Store
	retriever Retriever
}

func New(store *knowledge.Store, retriever Retriever) *Ranker {
	return &Ranker{store: store, retriever: retriever}
}

// Score computes the heuristic relevance of a book to a query:
// 0.3 per topic appearing in the query plus 0.1 per query term longer
// than three characters appearing in the summary, capped at 1.0.
// TODO: swapping this for a proper text-similarity metric needs a
// review of callers that depend on the current ranking.
func (r *Ranker) Score(query string, doc models.Document) float64 {
	relevance := 0.0

	queryLower := strings.ToLower(query)
	for _, topic := range doc.Topics {
		if strings.Contains(queryLower, strings.ToLower(topic)) {
			relevance += 0.3
		}
	}

	contentLower := strings.ToLower(doc.FullText)
	for _, word := range strings.Fields(query) {
		if len(word) > models.MinKeywordLength && strings.Contains(contentLower, strings.ToLower(word)) {
			relevance += 0.1
		}
	}

	if relevance > 1.0 {
		relevance = 1.0
	}
	return relevance
}

// Recommend returns at most topN books, each appearing once no matter
// how many of its chunks matched, sorted by descending score with
// stable order for ties.
func (r *Ranker) Recommend(ctx context.Context, query string, topN int) []models.BookRecommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}

	hits := r.retriever.Query(ctx, query, retrieverK)

	seen := make(map[string]struct{})
	var recommendations []models.BookRecommendation
	for _, hit := range hits {
		if _, ok := seen[hit.SourceTitle]; ok {
			continue
		}
		seen[hit.SourceTitle] = struct{}{}

		doc, ok := r.store.ByTitle(hit.SourceTitle)
		if !ok {
			continue
		}
		recommendations = append(recommendations, models.BookRecommendation{
			Title:       doc.Title,
			Author:      doc.Author,
			Topics:      doc.Topics,
			Relevance:   r.Score(query, doc),
			KeyInsights: keyInsights(doc),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Relevance > recommendations[j].Relevance
	})

	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	return recommendations
}

// retrieverK matches the default retrieval depth used to seed
// candidates before document-level dedup.
const retrieverK = 5

func keyInsights(doc models.Document) []string {
	if len(doc.Insights) <= models.MaxKeyInsights {
		return doc.Insights
	}
	return doc.Insights[:models.MaxKeyInsights]
}
