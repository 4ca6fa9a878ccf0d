package domain

import (
	"context"
	"fmt"
	"strings"
)

// Embedder turns a search query into a vector for the semantic fallback.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker is implemented by embedders that can probe their provider.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries a vector and the tokens billed for it.
// Vectors served from cache report zero tokens.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// NormalizeQuery trims a query and collapses inner whitespace, so that
// "cirque  " and "cirque" share one cached vector.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// InstructionEmbedder is the outermost embedder: it normalizes the query and
// prefixes the instruction some models expect on queries (e.g. "query: ").
type InstructionEmbedder struct {
	inner       Embedder
	instruction string
}

// NewInstructionEmbedder wraps inner. An empty instruction only normalizes.
func NewInstructionEmbedder(inner Embedder, instruction string) *InstructionEmbedder {
	return &InstructionEmbedder{inner: inner, instruction: instruction}
}

// Embed normalizes text, prefixes the instruction and delegates.
func (e *InstructionEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	q := NormalizeQuery(text)
	if q == "" {
		return EmbeddingResult{}, ErrEmptyQuery
	}
	result, err := e.inner.Embed(ctx, e.instruction+q)
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("instruction embed: %w", err)
	}
	return result, nil
}
