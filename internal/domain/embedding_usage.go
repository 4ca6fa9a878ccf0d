package domain

import "context"

type embeddingUsageKey struct{}

// EmbeddingUsage collects what one offer search spent on embeddings. The
// handler installs it, the instrumented embedder fills it and the handler
// reports it in X-Embedding-Tokens. One request, one goroutine: no locking.
type EmbeddingUsage struct {
	TotalTokens int
	// Calls counts embeddings served, cache hits included.
	Calls int
}

// NewContextWithUsage returns a context carrying a fresh collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *EmbeddingUsage) {
	u := &EmbeddingUsage{}
	return context.WithValue(ctx, embeddingUsageKey{}, u), u
}

// UsageFromContext returns the request's collector, or nil.
func UsageFromContext(ctx context.Context) *EmbeddingUsage {
	u, _ := ctx.Value(embeddingUsageKey{}).(*EmbeddingUsage)
	return u
}

// Record counts one embedding and the tokens it cost. Safe on a nil collector.
func (u *EmbeddingUsage) Record(tokens int) {
	if u == nil {
		return
	}
	u.Calls++
	u.TotalTokens += tokens
}

// Used reports whether the semantic fallback embedded anything.
func (u *EmbeddingUsage) Used() bool {
	return u != nil && u.Calls > 0
}
