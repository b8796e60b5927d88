package table

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
)

const (
	// ErrorMarker is the result text of a cell that could not be evaluated.
	ErrorMarker = "#ERR"
	// EmptyValue is the result text of a blank cell.
	EmptyValue = "0"
)

// ErrAlreadySolved is returned when a second result is recorded for a cell.
var ErrAlreadySolved = errors.New("cell already solved")

// Solved is the memo of final cell results. Each coordinate is written at
// most once; readers never observe a partially written entry. It is safe for
// concurrent use.
type Solved struct {
	mu      sync.RWMutex
	results map[cellref.Coordinate]string
	keys    []cellref.Coordinate
}

// NewSolved returns an empty result table.
func NewSolved() *Solved {
	return &Solved{results: make(map[cellref.Coordinate]string)}
}

// Record stores the final text for c. It fails with ErrAlreadySolved if c
// already has a result.
func (s *Solved) Record(c cellref.Coordinate, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.results[c]; ok {
		return fmt.Errorf("%w: %s holds %q, refusing %q", ErrAlreadySolved, c, prev, value)
	}
	s.results[c] = value
	s.keys = append(s.keys, c)
	return nil
}

// RecordError stores the error marker for c.
func (s *Solved) RecordError(c cellref.Coordinate) error {
	return s.Record(c, ErrorMarker)
}

// Lookup returns the result recorded for c.
func (s *Solved) Lookup(c cellref.Coordinate) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.results[c]
	return v, ok
}

// Len returns the number of recorded results.
func (s *Solved) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Keys returns the solved coordinates in row-major order.
func (s *Solved) Keys() []cellref.Coordinate {
	s.mu.RLock()
	keys := slices.Clone(s.keys)
	s.mu.RUnlock()

	slices.SortFunc(keys, cellref.Coordinate.Compare)
	return keys
}

// All iterates a snapshot of the results in row-major order.
func (s *Solved) All() iter.Seq2[cellref.Coordinate, string] {
	keys := s.Keys()
	return func(yield func(cellref.Coordinate, string) bool) {
		for _, c := range keys {
			v, _ := s.Lookup(c)
			if !yield(c, v) {
				return
			}
		}
	}
}
