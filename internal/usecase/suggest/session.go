package suggest

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
	"github.com/kailas-cloud/eacsearch/internal/metrics"
)

// Session is one search box. Responses are tagged with a sequence number and
// only the latest issued one is applied.
type Session struct {
	agg    *Aggregator
	userID string

	seq    atomic.Uint64
	closed atomic.Bool

	mu        sync.Mutex
	history   suggestion.History
	historyOK bool
	panel     suggestion.Panel
}

// Suggest issues the next sequence number and computes suggestions for text.
// ok is false when a newer request or Close superseded this one; the set
// must then be discarded.
func (s *Session) Suggest(ctx context.Context, text string) (suggestion.Set, bool) {
	seq := s.seq.Add(1)
	if s.closed.Load() {
		metrics.SuggestStaleTotal.Inc()
		return suggestion.Set{}, false
	}
	return s.run(ctx, seq, text)
}

// SuggestSeq is Suggest with a caller-issued sequence number. A number not
// above the latest seen is stale on arrival, so a replayed request is dropped.
func (s *Session) SuggestSeq(ctx context.Context, seq uint64, text string) (suggestion.Set, bool) {
	if !s.advance(seq) {
		metrics.SuggestStaleTotal.Inc()
		return suggestion.Set{}, false
	}
	return s.run(ctx, seq, text)
}

func (s *Session) run(ctx context.Context, seq uint64, text string) (suggestion.Set, bool) {
	set := s.compute(ctx, strings.TrimSpace(text))

	if s.closed.Load() || s.seq.Load() != seq {
		metrics.SuggestStaleTotal.Inc()
		return suggestion.Set{}, false
	}
	return set, true
}

// Latest returns the latest sequence number issued or seen.
func (s *Session) Latest() uint64 { return s.seq.Load() }

func (s *Session) compute(ctx context.Context, text string) suggestion.Set {
	limit := s.agg.cfg.DisplayLimit
	entries := s.historyEntries()

	if text == "" {
		if len(entries) > limit {
			entries = entries[:limit]
		}
		return suggestion.Set{History: entries}
	}

	venues, keywords := s.agg.collect(ctx, text)
	return suggestion.Set{
		History:  matchHistory(entries, text, limit),
		Venues:   venues,
		Keywords: keywords,
	}
}

// Submit records an explicitly submitted query at the front of the history
// and closes the panel. The query is pushed onto the stored list rather than
// the session's copy, so search boxes open side by side keep each other's
// entries. Persistence is best effort: a failing store disables history for
// the rest of the session.
func (s *Session) Submit(ctx context.Context, text string) {
	s.mu.Lock()
	s.panel = s.panel.On(suggestion.EventSubmit)
	ok := s.historyOK
	s.mu.Unlock()
	if !ok {
		return
	}

	stored, err := s.agg.loadHistory(ctx, s.userID)
	if err != nil {
		s.disableHistory(err)
		return
	}
	next := suggestion.NewHistory(stored, s.agg.cfg.Capacity).Push(text)
	if err := s.agg.saveHistory(ctx, s.userID, next.Entries()); err != nil {
		s.disableHistory(err)
		return
	}

	s.mu.Lock()
	if s.historyOK {
		s.history = next
	}
	s.mu.Unlock()
}

// ClearHistory removes every entry. It is a no-op when history is unavailable.
func (s *Session) ClearHistory(ctx context.Context) {
	if !s.HistoryAvailable() {
		return
	}
	if err := s.agg.clearHistory(ctx, s.userID); err != nil {
		s.disableHistory(err)
		return
	}

	s.mu.Lock()
	s.history = s.history.Clear()
	s.mu.Unlock()
}

// HistoryAvailable reports whether the clear-history control can be offered.
func (s *Session) HistoryAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyOK
}

// On feeds a panel event and returns the resulting visibility. Closing the
// panel never touches the history.
func (s *Session) On(e suggestion.Event) suggestion.Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = s.panel.On(e)
	return s.panel
}

// Panel returns the current panel visibility.
func (s *Session) Panel() suggestion.Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// Close tears the session down. Requests still in flight come back stale.
func (s *Session) Close() {
	s.closed.Store(true)
	s.seq.Add(1)
}

// advance raises the latest sequence number to seq. Returns false if seq
// was already seen, a newer one was, or the session is closed.
func (s *Session) advance(seq uint64) bool {
	for {
		if s.closed.Load() {
			return false
		}
		cur := s.seq.Load()
		if seq <= cur {
			return false
		}
		if s.seq.CompareAndSwap(cur, seq) {
			return true
		}
	}
}

func (s *Session) historyEntries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.historyOK {
		return nil
	}
	return s.history.Entries()
}

func (s *Session) disableHistory(err error) {
	s.mu.Lock()
	s.historyOK = false
	s.history = s.history.Clear()
	s.mu.Unlock()

	metrics.SuggestSourceTotal.WithLabelValues(string(suggestion.SourceHistory), "error").Inc()
	s.agg.logger.Debug("history disabled for session", zap.String("user_id", s.userID), zap.Error(err))
}
