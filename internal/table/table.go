// Package table holds the coordinate-indexed tables that flow through a run:
// the raw input Table, the Solved table of results, and the delimited-text
// loader and printer that move them in and out of the process.
package table

import (
	"iter"
	"slices"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
)

// Table maps coordinates to raw cell text. Iteration is always row-major.
// A Table is built once by the loader (or a test) and is read-only while a
// run is in progress.
type Table struct {
	cells map[cellref.Coordinate]string
	keys  []cellref.Coordinate
	dirty bool
}

// New returns an empty table.
func New() *Table {
	return &Table{cells: make(map[cellref.Coordinate]string)}
}

// Set stores text for c, replacing any earlier value.
func (t *Table) Set(c cellref.Coordinate, text string) {
	if _, ok := t.cells[c]; !ok {
		if n := len(t.keys); n > 0 && c.Less(t.keys[n-1]) {
			t.dirty = true
		}
		t.keys = append(t.keys, c)
	}
	t.cells[c] = text
}

// Get returns the raw text of c.
func (t *Table) Get(c cellref.Coordinate) (string, bool) {
	text, ok := t.cells[c]
	return text, ok
}

// Has reports whether c is a cell of the table.
func (t *Table) Has(c cellref.Coordinate) bool {
	_, ok := t.cells[c]
	return ok
}

// Len returns the number of cells.
func (t *Table) Len() int {
	return len(t.cells)
}

// Keys returns the coordinates of all cells in row-major order. The returned
// slice is a copy.
func (t *Table) Keys() []cellref.Coordinate {
	t.sort()
	return slices.Clone(t.keys)
}

// All iterates the cells in row-major order.
func (t *Table) All() iter.Seq2[cellref.Coordinate, string] {
	t.sort()
	return func(yield func(cellref.Coordinate, string) bool) {
		for _, c := range t.keys {
			if !yield(c, t.cells[c]) {
				return
			}
		}
	}
}

func (t *Table) sort() {
	if !t.dirty {
		return
	}
	slices.SortFunc(t.keys, cellref.Coordinate.Compare)
	t.dirty = false
}
