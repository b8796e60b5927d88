package dag

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
)

var (
	// ErrNodeNotFound is returned when an edge endpoint is not a node of the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDanglingReference is recorded for a cell that references a
	// coordinate absent from the table.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrCycleDetected is returned for a cell that lies on, or depends on, a
	// circular reference chain.
	ErrCycleDetected = errors.New("cycle detected")
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[cellref.Coordinate]*node),
		problems: make(map[cellref.Coordinate]error),
	}
}

// AddNode adds a node for the given cell. If the node already exists, the
// function does nothing.
func (g *Graph) AddNode(id cellref.Coordinate) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:        id,
		refs:      make(map[cellref.Coordinate]*node),
		referrers: make(map[cellref.Coordinate]*node),
	}
}

// AddEdge records that cell `from` references cell `to`. Both nodes must
// already exist. A self-edge is allowed; it is a cycle of length one.
func (g *Graph) AddEdge(from, to cellref.Coordinate) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("source %w: %s", ErrNodeNotFound, from)
	}

	toNode, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("destination %w: %s", ErrNodeNotFound, to)
	}

	fromNode.refs[to] = toNode
	toNode.referrers[from] = fromNode

	return nil
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id cellref.Coordinate) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// Dependencies returns the cells referenced by id, in row-major order and
// without duplicates.
func (g *Graph) Dependencies(id cellref.Coordinate) ([]cellref.Coordinate, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return sortedKeys(n.refs), nil
}

// Dependents returns the cells that reference id, in row-major order.
func (g *Graph) Dependents(id cellref.Coordinate) ([]cellref.Coordinate, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return sortedKeys(n.referrers), nil
}

// Problem returns the error recorded for id while building the graph, if any.
func (g *Graph) Problem(id cellref.Coordinate) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.problems[id]
}

// Problems returns a copy of all per-cell build errors.
func (g *Graph) Problems() map[cellref.Coordinate]error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return maps.Clone(g.problems)
}

func (g *Graph) setProblem(id cellref.Coordinate, err error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if _, ok := g.problems[id]; !ok {
		g.problems[id] = err
	}
}

func sortedKeys(m map[cellref.Coordinate]*node) []cellref.Coordinate {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, cellref.Coordinate.Compare)
	return keys
}
