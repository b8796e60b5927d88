package dag

import (
	"sync"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
)

// Graph is the dependency graph of a table: one node per cell and an edge
// from each cell to every cell its expression references. All operations on
// the graph are concurrency-safe.
type Graph struct {
	// mutex protects nodes and problems.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by cell coordinate.
	nodes map[cellref.Coordinate]*node
	// problems holds per-cell errors found while building the graph.
	problems map[cellref.Coordinate]error
}

// node represents a single cell in the graph. It is un-exported to enforce
// interaction with the graph via coordinates, not by direct struct
// manipulation.
type node struct {
	// id is the coordinate of the cell.
	id cellref.Coordinate
	// refs holds the cells this cell references (its dependencies).
	refs map[cellref.Coordinate]*node
	// referrers holds the cells that reference this cell.
	referrers map[cellref.Coordinate]*node
}
