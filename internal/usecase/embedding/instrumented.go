// Package embedding decorates the query embedder used by the semantic
// fallback of offer search.
package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain"
)

// DefaultSlowThreshold is the embedding latency above which a call is logged
// as a warning. The fallback runs inside a user-facing search request.
const DefaultSlowThreshold = time.Second

// InstrumentedEmbedder records per-request usage and logs each call.
// Transport metrics (requests, duration, tokens) are recorded in transport/openai.
type InstrumentedEmbedder struct {
	inner    domain.Embedder
	provider string
	model    string
	slow     time.Duration
	logger   *zap.Logger
}

// NewInstrumentedEmbedder wraps an embedder with usage accounting.
func NewInstrumentedEmbedder(inner domain.Embedder, provider, model string, logger *zap.Logger) *InstrumentedEmbedder {
	return &InstrumentedEmbedder{
		inner:    inner,
		provider: provider,
		model:    model,
		slow:     DefaultSlowThreshold,
		logger:   logger,
	}
}

// WithSlowThreshold overrides DefaultSlowThreshold.
func (p *InstrumentedEmbedder) WithSlowThreshold(d time.Duration) *InstrumentedEmbedder {
	p.slow = d
	return p
}

// Embed delegates and records usage into the request's collector. A cache
// hit counts as a call with zero tokens.
func (p *InstrumentedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	start := time.Now()
	result, err := p.inner.Embed(ctx, text)
	duration := time.Since(start)

	if err != nil {
		p.logger.Error("Embedding request failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	domain.UsageFromContext(ctx).Record(result.TotalTokens)

	level := zap.DebugLevel
	if p.slow > 0 && duration > p.slow {
		level = zap.WarnLevel
	}
	p.logger.Log(level, "Embedding request completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Bool("cached", result.TotalTokens == 0),
		zap.Int("query_runes", len([]rune(text))),
		zap.Int("total_tokens", result.TotalTokens),
	)

	return result, nil
}
