package enhancer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"finsight-rag/internal/llmservice"
	"finsight-rag/internal/models"
)

// retrievalK is the number of supporting chunks woven into an answer.
const retrievalK = 3

// Retriever supplies the supporting material for the second stage.
type Retriever interface {
	Query(ctx context.Context, text string, k int) []models.RetrievalResult
}

// Enhancer runs the two-stage generation: a draft answer to the bare
// question, then a refinement call that has both the question and the
// retrieved book material in front of it. The stages are strictly
// sequential because retrieval needs the question and refinement needs
// the retrieval output.
type Enhancer struct {
	retriever Retriever
	generator llmservice.Generator
}

func New(retriever Retriever, generator llmservice.Generator) *Enhancer {
	return &Enhancer{retriever: retriever, generator: generator}
}

// Answer produces the first-stage draft. With no working generator
// there is nothing usable to return, so the failure propagates.
func (e *Enhancer) Answer(ctx context.Context, query string) (string, error) {
	if e.generator == nil {
		return "", &llmservice.GenerationError{Err: fmt.Errorf("generative backend not configured")}
	}
	return e.generator.Complete(ctx, models.AdvisorSystemPrompt, query)
}

// Enhance refines a draft answer with retrieved book material. Every
// failure past this point degrades instead of erroring: no retrieval
// hits or a failed second call both return the draft unchanged.
func (e *Enhancer) Enhance(ctx context.Context, query, draft string) models.EnhancedAnswer {
	retrieved := e.retriever.Query(ctx, query, retrievalK)
	if len(retrieved) == 0 {
		return models.EnhancedAnswer{Draft: draft, Final: draft}
	}

	citations := make([]models.Citation, 0, len(retrieved))
	for _, item := range retrieved {
		citations = append(citations, models.Citation{
			Title:   item.SourceTitle,
			Author:  item.Author,
			Excerpt: item.Content,
		})
	}

	if e.generator == nil {
		log.Warn().Msg("Generative backend not configured, returning draft answer")
		return models.EnhancedAnswer{Draft: draft, Final: draft, Citations: citations}
	}

	prompt := augmentedPrompt(query, draft, retrieved)
	final, err := e.generator.Complete(ctx, models.AdvisorSystemPrompt, prompt)
	if err != nil {
		log.Error().Err(err).Msg("Error refining answer, returning draft")
		return models.EnhancedAnswer{Draft: draft, Final: draft, Citations: citations}
	}

	return models.EnhancedAnswer{Draft: draft, Final: final, Citations: citations}
}

func augmentedPrompt(query, draft string, retrieved []models.RetrievalResult) string {
	var material strings.Builder
	for _, item := range retrieved {
		material.WriteString(fmt.Sprintf("- %s (From: %s)\n", item.Content, item.SourceTitle))
	}
	return fmt.Sprintf(models.AugmentedPromptTemplate, query, draft, material.String())
}
