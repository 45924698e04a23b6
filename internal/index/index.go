package index

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"finsight-rag/internal/models"
)

// Embedder is the capability the index needs from the embedding
// backend. Satisfied by langchaingo's embeddings.EmbedderImpl.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// BuildError wraps an embedding failure during index construction.
// Callers treat it as a signal to stay in keyword fallback mode.
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("index build failed: %v", e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Hit is one search match with its source chunk and similarity.
type Hit struct {
	Chunk models.Chunk
	// Author travels in chunk metadata so results carry attribution
	// without a store lookup.
	Author string
	Score  float64
}

// Builder constructs embedding indexes over chunk lists. Rebuilds are
// always wholesale: each Build returns a self-contained index backed
// by its own collection, discardable at any time.
type Builder struct {
	embedder   Embedder
	collection string
	dbPath     string
	persistent bool
}

func NewBuilder(embedder Embedder, collection string) *Builder {
	return &Builder{embedder: embedder, collection: collection}
}

// NewPersistentBuilder stores collections on disk at dbPath instead of
// in memory.
func NewPersistentBuilder(embedder Embedder, collection, dbPath string) *Builder {
	return &Builder{embedder: embedder, collection: collection, dbPath: dbPath, persistent: true}
}

// Build embeds every chunk and loads them into a fresh collection.
// A nil embedder is not an error condition the caller should fail on;
// it returns a nil index and the retriever runs its keyword strategy.
func (b *Builder) Build(ctx context.Context, chunks []models.Chunk, authorOf func(title string) string) (*Index, error) {
	if b.embedder == nil {
		return nil, nil
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	vdb, err := b.newDB()
	if err != nil {
		return nil, &BuildError{Err: err}
	}
	if err := vdb.DeleteCollection(b.collection); err != nil {
		return nil, &BuildError{Err: err}
	}
	collection, err := vdb.GetOrCreateCollection(b.collection, nil, nil)
	if err != nil {
		return nil, &BuildError{Err: err}
	}

	docs := make([]chromem.Document, 0, len(chunks))
	ordinals := make(map[string]int, len(chunks))
	for _, chunk := range chunks {
		vec, err := b.embedder.EmbedQuery(ctx, chunk.Text)
		if err != nil {
			return nil, &BuildError{Err: err}
		}
		key := chunk.SourceTitle + "#" + string(chunk.Type)
		ordinals[key]++
		author := ""
		if authorOf != nil {
			author = authorOf(chunk.SourceTitle)
		}
		docs = append(docs, chromem.Document{
			ID:      fmt.Sprintf("%s#%d", key, ordinals[key]),
			Content: chunk.Text,
			Metadata: map[string]string{
				"title":  chunk.SourceTitle,
				"author": author,
				"type":   string(chunk.Type),
			},
			Embedding: vec,
		})
	}

	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, &BuildError{Err: err}
	}
	log.Info().Int("chunks", len(docs)).Msg("Embedding index built")

	return &Index{collection: collection, size: len(docs)}, nil
}

func (b *Builder) newDB() (*chromem.DB, error) {
	if !b.persistent {
		return chromem.NewDB(), nil
	}
	return chromem.NewPersistentDB(b.dbPath, false)
}

// Index owns one immutable collection of chunk embeddings.
type Index struct {
	collection *chromem.Collection
	size       int
}

// Size reports the number of indexed chunks.
func (idx *Index) Size() int { return idx.size }

// Search returns the k nearest chunks for the query embedding, ordered
// by descending similarity. Similarity is clamped to [0,1] so callers
// can treat it as a relevance score. k larger than the collection is
// clamped, never an error.
func (idx *Index) Search(ctx context.Context, queryEmbedding []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	if k > idx.size {
		k = idx.size
	}
	results, err := idx.collection.QueryEmbedding(ctx, queryEmbedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, res := range results {
		hits = append(hits, Hit{
			Chunk: models.Chunk{
				Text:        res.Content,
				SourceTitle: res.Metadata["title"],
				Type:        models.ChunkType(res.Metadata["type"]),
			},
			Author: res.Metadata["author"],
			Score:  clampScore(float64(res.Similarity)),
		})
	}
	return hits, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
