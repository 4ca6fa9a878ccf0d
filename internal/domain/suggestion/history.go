package suggestion

import "strings"

// History sizes.
const (
	DefaultCapacity     = 10
	DefaultDisplayLimit = 5
)

// History is the most-recent-first list of submitted queries.
type History struct {
	entries  []string
	capacity int
}

// NewHistory builds a history from persisted entries, dropping blanks and
// duplicates and truncating to capacity.
func NewHistory(entries []string, capacity int) History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	h := History{capacity: capacity}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		h.entries = append(h.entries, e)
		if len(h.entries) == capacity {
			break
		}
	}
	return h
}

// Push puts query at the front, removing any exact duplicate first.
// Blank queries leave the history unchanged.
func (h History) Push(query string) History {
	query = strings.TrimSpace(query)
	if query == "" {
		return h
	}
	capacity := h.capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	next := History{capacity: capacity, entries: make([]string, 0, len(h.entries)+1)}
	next.entries = append(next.entries, query)
	for _, e := range h.entries {
		if e == query {
			continue
		}
		if len(next.entries) == capacity {
			break
		}
		next.entries = append(next.entries, e)
	}
	return next
}

// Clear returns an empty history with the same capacity.
func (h History) Clear() History {
	return History{capacity: h.capacity}
}

// Recent returns at most limit entries, most recent first.
// A non-positive limit returns everything.
func (h History) Recent(limit int) []string {
	n := len(h.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	if n == 0 {
		return nil
	}
	out := make([]string, n)
	copy(out, h.entries[:n])
	return out
}

// Entries returns every entry, for persistence.
func (h History) Entries() []string {
	return h.Recent(0)
}

// Len returns the number of entries.
func (h History) Len() int { return len(h.entries) }
