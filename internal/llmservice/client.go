package llmservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"finsight-rag/internal/config"
)

// GenerationError wraps any failure of the generative backend,
// including timeouts.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generator is the generative backend capability consumed by the
// enhancer and the question-answering flow.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client generates completions through an openai-compatible endpoint
// with the configured model, temperature, token limit and timeout.
type Client struct {
	llm *openai.LLM
	cfg *config.LLMConfig
}

// NewClient resolves the chat capability once at startup. A missing
// key or model returns a nil client; callers surface that as a
// configuration problem, not a crash.
func NewClient(llmConfig *config.LLMConfig) (*Client, error) {
	if llmConfig.Key == "" || llmConfig.Model == "" {
		return nil, nil
	}
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
		openai.WithModel(llmConfig.Model),
	}
	if llmConfig.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(llmConfig.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm, cfg: llmConfig}, nil
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: systemPrompt}},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: userPrompt}},
		},
	}

	res, err := c.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(c.cfg.Temperature),
		llms.WithMaxTokens(c.cfg.MaxTokens),
	)
	if err != nil {
		log.Error().Err(err).Str("model", c.cfg.Model).Msg("Error generating content")
		return "", &GenerationError{Err: err}
	}
	if len(res.Choices) == 0 {
		return "", &GenerationError{Err: fmt.Errorf("no choices in response")}
	}
	return res.Choices[0].Content, nil
}
