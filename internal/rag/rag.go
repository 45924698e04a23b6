package rag

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"finsight-rag/internal/chunker"
	"finsight-rag/internal/config"
	"finsight-rag/internal/enhancer"
	"finsight-rag/internal/index"
	"finsight-rag/internal/knowledge"
	"finsight-rag/internal/models"
	"finsight-rag/internal/ranker"
	"finsight-rag/internal/retriever"
)

// Core wires the RAG components behind one facade for the web layer.
// Everything is injected at construction; there is no package-level
// service state.
type Core struct {
	store     *knowledge.Store
	chunker   *chunker.Chunker
	builder   *index.Builder
	retriever *retriever.Retriever
	ranker    *ranker.Ranker
	enhancer  *enhancer.Enhancer
	cfg       *config.Config
}

func NewCore(
	store *knowledge.Store,
	chk *chunker.Chunker,
	builder *index.Builder,
	ret *retriever.Retriever,
	rnk *ranker.Ranker,
	enh *enhancer.Enhancer,
	cfg *config.Config,
) *Core {
	return &Core{
		store:     store,
		chunker:   chk,
		builder:   builder,
		retriever: ret,
		ranker:    rnk,
		enhancer:  enh,
		cfg:       cfg,
	}
}

// RebuildIndex chunks the whole corpus and swaps a freshly built index
// into the retriever. A build failure keeps the previous index (or
// keyword mode) in place; the system never loses retrieval entirely.
func (c *Core) RebuildIndex(ctx context.Context) error {
	var chunks []models.Chunk
	for _, doc := range c.store.Documents() {
		chunks = append(chunks, c.chunker.Split(doc)...)
	}

	idx, err := c.builder.Build(ctx, chunks, func(title string) string {
		if doc, ok := c.store.ByTitle(title); ok {
			return doc.Author
		}
		return ""
	})
	if err != nil {
		var buildErr *index.BuildError
		if errors.As(err, &buildErr) {
			log.Error().Err(err).Msg("Index build failed, continuing in keyword mode")
			return nil
		}
		return err
	}
	if idx == nil {
		log.Warn().Msg("No embedding backend, retrieval runs in keyword mode")
		return nil
	}

	c.retriever.SetIndex(idx)
	return nil
}

// Retrieve returns the top-k chunks relevant to the query.
func (c *Core) Retrieve(ctx context.Context, query string, k int) []models.RetrievalResult {
	return c.retriever.Query(ctx, query, k)
}

// GetBookRecommendations ranks whole books against the query.
func (c *Core) GetBookRecommendations(ctx context.Context, query string, topN int) []models.BookRecommendation {
	return c.ranker.Recommend(ctx, query, topN)
}

// EnhanceLLMResponse refines an existing draft answer with book
// material.
func (c *Core) EnhanceLLMResponse(ctx context.Context, query, draft string) models.EnhancedAnswer {
	return c.enhancer.Enhance(ctx, query, draft)
}

// AnswerQuestion runs the full two-stage flow: draft, then enhance.
// A first-stage failure propagates; there is no answer to fall back to.
func (c *Core) AnswerQuestion(ctx context.Context, query string) (models.EnhancedAnswer, error) {
	draft, err := c.enhancer.Answer(ctx, query)
	if err != nil {
		return models.EnhancedAnswer{}, err
	}
	return c.enhancer.Enhance(ctx, query, draft), nil
}
