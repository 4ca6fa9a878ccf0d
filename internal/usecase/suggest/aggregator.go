// Package suggest merges recent searches, venue matches and keyword
// suggestions into the autocomplete list of the search box.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain/notice"
	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
	"github.com/kailas-cloud/eacsearch/internal/metrics"
)

// Config sizes the history and gates it behind the feature toggle.
type Config struct {
	HistoryEnabled bool
	Capacity       int
	DisplayLimit   int
}

// Aggregator wires the suggestion sources. It holds no per-user state:
// every search box gets its own Session.
type Aggregator struct {
	history    HistoryStore
	venues     VenueSource
	keywords   KeywordSource
	categories CategoryAnnotator
	notifier   Notifier
	cfg        Config
	logger     *zap.Logger
}

// New creates an aggregator. Notifications go to the request's notice
// collector unless WithNotifier overrides it.
func New(
	history HistoryStore, venues VenueSource, keywords KeywordSource,
	categories CategoryAnnotator, cfg Config, logger *zap.Logger,
) *Aggregator {
	if cfg.Capacity <= 0 {
		cfg.Capacity = suggestion.DefaultCapacity
	}
	if cfg.DisplayLimit <= 0 {
		cfg.DisplayLimit = suggestion.DefaultDisplayLimit
	}
	return &Aggregator{
		history:    history,
		venues:     venues,
		keywords:   keywords,
		categories: categories,
		notifier:   noticeNotifier{},
		cfg:        cfg,
		logger:     logger,
	}
}

// WithNotifier replaces the notification channel.
func (a *Aggregator) WithNotifier(n Notifier) *Aggregator {
	a.notifier = n
	return a
}

// NewSession opens a search box for userID and loads its history once.
// If the history cannot be read the session runs without it.
func (a *Aggregator) NewSession(ctx context.Context, userID string) *Session {
	s := &Session{agg: a, userID: userID, panel: suggestion.Closed}
	if !a.cfg.HistoryEnabled || userID == "" {
		return s
	}

	entries, err := a.loadHistory(ctx, userID)
	if err != nil {
		metrics.SuggestSourceTotal.WithLabelValues(string(suggestion.SourceHistory), "error").Inc()
		a.logger.Debug("history disabled for session", zap.String("user_id", userID), zap.Error(err))
		return s
	}
	metrics.SuggestSourceTotal.WithLabelValues(string(suggestion.SourceHistory), "ok").Inc()
	s.history = suggestion.NewHistory(entries, a.cfg.Capacity)
	s.historyOK = true
	return s
}

// loadHistory turns a panicking store into an error.
func (a *Aggregator) loadHistory(ctx context.Context, userID string) (entries []string, err error) {
	err = storeCall("load", func() error {
		var loadErr error
		entries, loadErr = a.history.Load(ctx, userID)
		return loadErr
	})
	return entries, err
}

func (a *Aggregator) saveHistory(ctx context.Context, userID string, entries []string) error {
	return storeCall("save", func() error { return a.history.Save(ctx, userID, entries) })
}

func (a *Aggregator) clearHistory(ctx context.Context, userID string) error {
	return storeCall("clear", func() error { return a.history.Clear(ctx, userID) })
}

// storeCall runs one history store operation. Storage can be disabled by the
// user agent, in which case the store panics instead of returning an error.
func storeCall(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("history store %s panic: %v", op, r)
		}
	}()
	return fn()
}

// collect queries the venue and keyword sources in parallel. A failing
// source contributes nothing and raises a notification.
func (a *Aggregator) collect(ctx context.Context, text string) ([]suggestion.VenueMatch, []suggestion.KeywordMatch) {
	var (
		wg       sync.WaitGroup
		venues   []suggestion.VenueMatch
		keywords []suggestion.KeywordMatch
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		venues, err = a.venues.MatchVenues(ctx, text)
		a.observe(ctx, suggestion.SourceVenue, err)
	}()
	go func() {
		defer wg.Done()
		var err error
		keywords, err = a.keywords.MatchKeywords(ctx, text)
		a.observe(ctx, suggestion.SourceKeyword, err)
	}()
	wg.Wait()

	return venues, a.annotate(ctx, keywords)
}

// annotate attaches category labels to keyword matches. On failure every
// match is returned without labels.
func (a *Aggregator) annotate(ctx context.Context, keywords []suggestion.KeywordMatch) []suggestion.KeywordMatch {
	if len(keywords) == 0 || a.categories == nil {
		return keywords
	}

	out := make([]suggestion.KeywordMatch, len(keywords))
	for i, k := range keywords {
		if len(k.SubcategoryIDs) == 0 {
			out[i] = k
			continue
		}
		labels, err := a.categories.CategoriesForSubcategories(ctx, k.SubcategoryIDs)
		if err != nil {
			a.logger.Warn("keyword annotation failed", zap.Error(err))
			a.notifier.Error(ctx, notice.MsgDataLoadFailed)
			for j := range keywords {
				keywords[j].CategoryLabels = nil
			}
			return keywords
		}
		k.CategoryLabels = labels
		out[i] = k
	}
	return out
}

func (a *Aggregator) observe(ctx context.Context, source suggestion.Source, err error) {
	if err == nil {
		metrics.SuggestSourceTotal.WithLabelValues(string(source), "ok").Inc()
		return
	}
	metrics.SuggestSourceTotal.WithLabelValues(string(source), "error").Inc()
	if ctx.Err() != nil {
		// torn down, nobody to notify
		return
	}
	a.logger.Warn("suggestion source failed", zap.String("source", string(source)), zap.Error(err))
	a.notifier.Error(ctx, notice.MsgDataLoadFailed)
}

// matchHistory returns entries containing text, case-insensitively, most
// recent first, capped at the display limit.
func matchHistory(entries []string, text string, limit int) []string {
	needle := strings.ToLower(text)
	var out []string
	for _, e := range entries {
		if !strings.Contains(strings.ToLower(e), needle) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

type noticeNotifier struct{}

func (noticeNotifier) Error(ctx context.Context, message string) {
	notice.FromContext(ctx).Error(message)
}
