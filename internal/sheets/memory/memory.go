package memory

import (
	"context"
	"fmt"
	"sync"

	"lumincoin/internal/core"
	"lumincoin/internal/sheets"
)

var _ sheets.Exporter = (*Store)(nil)

// Store keeps exported rows in memory. It backs dry runs and tests.
type Store struct {
	mu   sync.Mutex
	rows [][]any
}

func New() *Store {
	return &Store{}
}

// Export appends the rows, writing the header first when empty.
func (s *Store) Export(_ context.Context, ops []core.Operation) (string, error) {
	if len(ops) == 0 {
		return "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rows) == 0 {
		s.rows = append(s.rows, sheets.Header)
	}
	start := len(s.rows) + 1
	s.rows = append(s.rows, sheets.Rows(ops)...)
	return fmt.Sprintf("mem!A%d:F%d", start, len(s.rows)), nil
}

// Rows returns a copy of all rows including the header.
func (s *Store) Rows() [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]any(nil), s.rows...)
}
