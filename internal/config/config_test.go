package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database:
  dsn: "postgres://localhost:5432/finsight"
  debug: true
chat_llm:
  model: "llama3-70b-8192"
  key: "secret"
  timeout_seconds: 30
rag:
  chunk_size: 500
  chunk_overlap: 100
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/finsight", cfg.Database.DSN)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, 500, cfg.RAG.ChunkSize)
	assert.Equal(t, 100, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 30*time.Second, cfg.ChatLLM.Timeout())
	// unset values take defaults
	assert.Equal(t, 5, cfg.RAG.TopK)
	assert.Equal(t, "book_chunks", cfg.RAG.Collection)
	assert.InDelta(t, 0.3, cfg.ChatLLM.Temperature, 1e-9)
	assert.Equal(t, 1000, cfg.ChatLLM.MaxTokens)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.RAG.InMemory)
	assert.Equal(t, 1000, cfg.RAG.ChunkSize)
	assert.Equal(t, 200, cfg.RAG.ChunkOverlap)
	assert.Less(t, cfg.RAG.ChunkOverlap, cfg.RAG.ChunkSize)
}

func TestApplyDefaults_OverlapAboveSize(t *testing.T) {
	cfg := &Config{RAG: RAGConfig{ChunkSize: 100, ChunkOverlap: 150}}
	cfg.applyDefaults()
	assert.Less(t, cfg.RAG.ChunkOverlap, cfg.RAG.ChunkSize)
}
