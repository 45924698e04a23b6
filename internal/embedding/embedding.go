package embedding

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"finsight-rag/internal/config"
)

// ErrNotConfigured means the embedding backend has no usable
// credentials or model. The system then runs in keyword fallback mode
// for the rest of the process lifetime.
var ErrNotConfigured = errors.New("embedding backend not configured")

// NewEmbedder resolves the embedding capability once at startup. A nil
// embedder with ErrNotConfigured is the expected outcome when the
// backend is absent; callers log it once and continue.
func NewEmbedder(llmConfig *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	if llmConfig.Model == "" {
		return nil, ErrNotConfigured
	}

	switch llmConfig.Provider {
	case "ollama":
		return newOllamaEmbedder(llmConfig)
	case "openai", "":
		if llmConfig.Key == "" {
			return nil, ErrNotConfigured
		}
		return newOpenAIEmbedder(llmConfig)
	default:
		return nil, ErrNotConfigured
	}
}

func newOpenAIEmbedder(llmConfig *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
		openai.WithEmbeddingModel(llmConfig.Model),
	}
	if llmConfig.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(llmConfig.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing embedding LLM")
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		log.Error().Err(err).Msg("Error creating embedder")
		return nil, err
	}
	return embedder, nil
}

func newOllamaEmbedder(llmConfig *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(llmConfig.BaseURL),
		ollama.WithModel(llmConfig.Model),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing embedding LLM")
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		log.Error().Err(err).Msg("Error creating embedder")
		return nil, err
	}
	return embedder, nil
}
