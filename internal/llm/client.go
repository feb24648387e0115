package llm

import (
	"context"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch encodes all texts in a single service call. Corpus
	// startup depends on this: one call per article is disallowed.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ClassifierClient scores a text against candidate labels. In multi-label
// mode the scores are independent and need not sum to 1.
type ClassifierClient interface {
	Classify(ctx context.Context, text string, labels []string, multiLabel bool) (map[string]float64, error)
}
