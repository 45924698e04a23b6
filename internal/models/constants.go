package models

const (
	// MaxKeyInsights caps the insights attached to one recommendation.
	MaxKeyInsights = 3

	// FallbackPreviewLength bounds summary previews in keyword mode.
	// Insight hits are returned untruncated.
	FallbackPreviewLength = 200

	// MinKeywordLength: query tokens at or below this length are
	// ignored by the keyword fallback and the relevance ranker.
	MinKeywordLength = 3
)

var (
	AdvisorSystemPrompt = `You are a financial advisor specializing in Indian personal finance, taxation, and investment. Provide accurate, detailed answers with India-specific context.`

	// AugmentedPromptTemplate carries the original question, the draft
	// answer and the retrieved book material into the second call.
	// Placeholders: question, draft answer, supporting material.
	AugmentedPromptTemplate = `Question: %s

Draft answer:
%s

Relevant insights from financial books that may help with this question:
%s
Rewrite the draft answer so that it weaves these insights in naturally where they apply. Do not quote them as a list and do not mention that you were given a draft. Answer only with the improved answer.`
)
