package router

import (
	"net/url"
	"strings"
)

// History is the navigation stack. Entries are paths with an optional query.
type History interface {
	Push(target string)
	// Back drops the current entry and reports whether one remained.
	Back() bool
	// Path is the current path without query or fragment.
	Path() string
	// Query is the parsed query of the current entry.
	Query() url.Values
}

// MemoryHistory keeps entries in a slice. The zero value starts at "/".
type MemoryHistory struct {
	entries []string
}

var _ History = (*MemoryHistory)(nil)

func NewMemoryHistory(start string) *MemoryHistory {
	return &MemoryHistory{entries: []string{start}}
}

func (h *MemoryHistory) Push(target string) {
	h.entries = append(h.entries, target)
}

func (h *MemoryHistory) Back() bool {
	if len(h.entries) < 2 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

func (h *MemoryHistory) current() string {
	if len(h.entries) == 0 {
		return "/"
	}
	return h.entries[len(h.entries)-1]
}

func (h *MemoryHistory) Path() string {
	p, _ := splitTarget(h.current())
	return p
}

func (h *MemoryHistory) Query() url.Values {
	_, q := splitTarget(h.current())
	values, err := url.ParseQuery(q)
	if err != nil {
		return url.Values{}
	}
	return values
}

// Len is the number of entries.
func (h *MemoryHistory) Len() int {
	return len(h.entries)
}

func splitTarget(target string) (path, query string) {
	target, _, _ = strings.Cut(target, "#")
	path, query, _ = strings.Cut(target, "?")
	if path == "" {
		path = "/"
	}
	return path, query
}
