// Package notice carries non-blocking user notifications raised while a
// request is served. The handler puts a collector into the context, the use
// cases append to it, and the handler copies it into the response.
package notice

import (
	"context"
	"sync"
)

// Level is the severity shown to the user.
type Level string

// Notification levels.
const (
	LevelError   Level = "error"
	LevelInfo    Level = "information"
	LevelSuccess Level = "success"
)

// Notice is one notification.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Messages shown to the user.
const (
	// MsgDataLoadFailed keeps the wording users already know.
	MsgDataLoadFailed = "Nous avons rencontré un problème lors du chargemement des données"
)

type collectorKey struct{}

// Collector accumulates notices. It is safe for concurrent use since
// suggestion sources run in parallel.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

// NewContext returns a context carrying a fresh collector.
func NewContext(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

// FromContext extracts the collector. Returns nil if not set.
func FromContext(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// Notify appends a notice. A nil collector drops it.
func (c *Collector) Notify(level Level, message string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.notices {
		if n.Level == level && n.Message == message {
			return
		}
	}
	c.notices = append(c.notices, Notice{Level: level, Message: message})
}

// Error is a shortcut for Notify(LevelError, message).
func (c *Collector) Error(message string) { c.Notify(LevelError, message) }

// Notices returns a copy of everything collected so far.
func (c *Collector) Notices() []Notice {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.notices) == 0 {
		return nil
	}
	return append([]Notice(nil), c.notices...)
}
