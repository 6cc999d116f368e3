package portfolio

import (
	"sync"

	"github.com/aristath/folio/internal/domain"
)

// Store is the in-memory, insertion-ordered position list.
// All methods are safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	positions []Position
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{positions: []Position{}}
}

// List returns a copy of the stored positions in insertion order
func (s *Store) List() []Position {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Position, len(s.positions))
	copy(out, s.positions)
	return out
}

// Len returns the number of stored positions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.positions)
}

// Find returns the first position matching ticker, ignoring case
func (s *Store) Find(ticker string) (Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, pos := range s.positions {
		if pos.matches(ticker) {
			return pos, true
		}
	}
	return Position{}, false
}

// Add appends a position
func (s *Store) Add(pos Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = append(s.positions, pos)
}

// Update rebuilds the first position matching ticker in place.
// build runs under the store lock only when a match exists; if it fails the
// store is left untouched and its error returned.
func (s *Store) Update(ticker string, build func(current Position) (Position, error)) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.positions {
		if !s.positions[i].matches(ticker) {
			continue
		}
		pos, err := build(s.positions[i])
		if err != nil {
			return Position{}, err
		}
		s.positions[i] = pos
		return pos, nil
	}
	return Position{}, &domain.NotFoundError{Ticker: ticker}
}

// Delete removes every position matching ticker and returns how many were removed
func (s *Store) Delete(ticker string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.positions[:0:0]
	for _, pos := range s.positions {
		if !pos.matches(ticker) {
			kept = append(kept, pos)
		}
	}
	removed := len(s.positions) - len(kept)
	s.positions = kept
	return removed
}

// Clear removes all positions and returns how many there were
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.positions)
	s.positions = []Position{}
	return removed
}

// ReplaceAll swaps the whole contents for positions in one step
func (s *Store) ReplaceAll(positions []Position) {
	out := make([]Position, len(positions))
	copy(out, positions)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = out
}
