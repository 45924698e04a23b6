package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight-rag/internal/models"
)

func TestSplit_EmptyDocument(t *testing.T) {
	c := New(100, 20)
	chunks := c.Split(models.Document{Title: "Empty Book"})
	assert.Empty(t, chunks)
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c := New(1000, 200)
	doc := models.Document{Title: "Short", FullText: "A short summary."}
	chunks := c.Split(doc)

	require.Len(t, chunks, 1)
	assert.Equal(t, "A short summary.", chunks[0].Text)
	assert.Equal(t, models.ChunkContent, chunks[0].Type)
	assert.Equal(t, "Short", chunks[0].SourceTitle)
}

func TestSplit_InsightsAreVerbatim(t *testing.T) {
	c := New(50, 10)
	longInsight := strings.Repeat("term insurance matters ", 20)
	doc := models.Document{
		Title:    "Book",
		Insights: []string{"First insight", longInsight},
	}

	chunks := c.Split(doc)
	require.Len(t, chunks, 2)
	for _, chunk := range chunks {
		assert.Equal(t, models.ChunkInsight, chunk.Type)
	}
	// insights are atomic, never split even past the chunk size
	assert.Equal(t, longInsight, chunks[1].Text)
}

func TestSplit_CoversTextWithOverlap(t *testing.T) {
	const size, overlap = 100, 20
	c := New(size, overlap)

	// unique words so every chunk occurs exactly once in the source
	words := make([]string, 0, 120)
	for i := 0; i < 120; i++ {
		words = append(words, "w"+strings.Repeat("x", i%7)+string(rune('a'+i%26)))
	}
	content := strings.Join(words, " ")
	doc := models.Document{Title: "Long", FullText: content}

	chunks := c.Split(doc)
	require.Greater(t, len(chunks), 1)

	slack := size / 10
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Text), size+slack)
	}

	prevEnd := 0
	prevStart := -1
	for i, chunk := range chunks {
		start := strings.Index(content, chunk.Text)
		require.GreaterOrEqual(t, start, 0, "chunk %d not found in source", i)
		end := start + len(chunk.Text)
		assert.Greater(t, start, prevStart, "chunks must advance")
		// a chunk must begin at or inside the previous chunk's
		// coverage (accounting for trimmed whitespace), leaving no gap
		assert.LessOrEqual(t, start, prevEnd+1, "gap before chunk %d", i)
		prevStart, prevEnd = start, end
	}
	assert.GreaterOrEqual(t, prevEnd, len(content)-1)
}

func TestSplit_Deterministic(t *testing.T) {
	c := New(80, 15)
	doc := models.Document{
		Title:    "Det",
		FullText: strings.Repeat("mutual funds are a vehicle for long term wealth. ", 10),
	}
	first := c.Split(doc)
	second := c.Split(doc)
	assert.Equal(t, first, second)
}

func TestNew_InvalidParams(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
	}{
		{"zero size", 0, 0},
		{"negative overlap", 100, -5},
		{"overlap at size", 100, 100},
		{"overlap above size", 100, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.size, tt.overlap)
			require.Greater(t, c.chunkSize, 0)
			assert.GreaterOrEqual(t, c.chunkOverlap, 0)
			assert.Less(t, c.chunkOverlap, c.chunkSize)
		})
	}
}
