package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight-rag/internal/chunker"
	"finsight-rag/internal/config"
	"finsight-rag/internal/enhancer"
	"finsight-rag/internal/index"
	"finsight-rag/internal/knowledge"
	"finsight-rag/internal/ranker"
	"finsight-rag/internal/retriever"
)

// fallbackCore wires a full core without embedding or generative
// backends, the configuration-error startup mode.
func fallbackCore(t *testing.T) *Core {
	t.Helper()
	cfg := config.Default()

	store := knowledge.NewStore(nil)
	store.Load(context.Background())

	chk := chunker.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	builder := index.NewBuilder(nil, cfg.RAG.Collection)
	ret := retriever.New(store, nil)
	rnk := ranker.New(store, ret)
	enh := enhancer.New(ret, nil)

	return NewCore(store, chk, builder, ret, rnk, enh, cfg)
}

func TestRebuildIndex_NoEmbedderStaysInKeywordMode(t *testing.T) {
	core := fallbackCore(t)
	require.NoError(t, core.RebuildIndex(context.Background()))
	assert.False(t, core.retriever.HasIndex())
}

func TestRetrieve_FallbackMode(t *testing.T) {
	core := fallbackCore(t)
	require.NoError(t, core.RebuildIndex(context.Background()))

	results := core.Retrieve(context.Background(), "term insurance", 3)
	require.NotEmpty(t, results, "keyword fallback must still retrieve")
	assert.LessOrEqual(t, len(results), 3)
	for _, res := range results {
		_, ok := core.store.ByTitle(res.SourceTitle)
		assert.True(t, ok)
	}
}

func TestGetBookRecommendations(t *testing.T) {
	core := fallbackCore(t)

	recs := core.GetBookRecommendations(context.Background(), "personal finance", 3)
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 3)

	seen := make(map[string]bool)
	for _, rec := range recs {
		assert.False(t, seen[rec.Title])
		seen[rec.Title] = true
	}
}

func TestEnhanceLLMResponse_NoGenerator(t *testing.T) {
	core := fallbackCore(t)

	answer := core.EnhanceLLMResponse(context.Background(), "term insurance", "draft answer")
	assert.Equal(t, "draft answer", answer.Draft)
	assert.Equal(t, "draft answer", answer.Final)
	assert.NotEmpty(t, answer.Citations, "retrieval works even without a generator")
}

func TestEnhanceLLMResponse_NoMatches(t *testing.T) {
	core := fallbackCore(t)

	answer := core.EnhanceLLMResponse(context.Background(), "quantum chromodynamics", "draft")
	assert.Equal(t, "draft", answer.Final)
	assert.Empty(t, answer.Citations)
}

func TestAnswerQuestion_FirstStageFailurePropagates(t *testing.T) {
	core := fallbackCore(t)

	_, err := core.AnswerQuestion(context.Background(), "What is SIP?")
	require.Error(t, err, "no generator means no draft to fall back to")
}
