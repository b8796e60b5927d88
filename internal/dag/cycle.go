package dag

import (
	"fmt"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
)

// Visitation states of the depth-first search.
const (
	white = iota // not visited yet
	gray         // on the current recursion stack
	black        // fully explored, verdict known
)

// CycleDetector answers, per cell, whether evaluating that cell would recurse
// forever: whether the cell lies on or reaches a cycle. Only the subgraph
// reachable from the target is inspected, so a cycle elsewhere never blocks
// an unrelated cell.
//
// Verdicts are kept between calls, which bounds the cost of checking every
// cell of a graph to O(V+E). A CycleDetector is not safe for concurrent use.
type CycleDetector struct {
	graph  *Graph
	state  map[cellref.Coordinate]int
	cyclic map[cellref.Coordinate]bool
}

// NewCycleDetector returns a detector for g. The graph must not change while
// the detector is in use.
func NewCycleDetector(g *Graph) *CycleDetector {
	return &CycleDetector{
		graph:  g,
		state:  make(map[cellref.Coordinate]int),
		cyclic: make(map[cellref.Coordinate]bool),
	}
}

// HasCycle reports whether target lies on or reaches a cycle in g.
func HasCycle(g *Graph, target cellref.Coordinate) bool {
	return NewCycleDetector(g).HasCycle(target)
}

// HasCycle reports whether target lies on or reaches a cycle. A target that
// is not a node of the graph has no cycle.
func (d *CycleDetector) HasCycle(target cellref.Coordinate) bool {
	d.graph.mutex.RLock()
	defer d.graph.mutex.RUnlock()

	n, ok := d.graph.nodes[target]
	if !ok {
		return false
	}
	return d.visit(n)
}

// Check returns an error wrapping ErrCycleDetected when target is cyclic.
func (d *CycleDetector) Check(target cellref.Coordinate) error {
	if d.HasCycle(target) {
		return fmt.Errorf("%w: %s", ErrCycleDetected, target)
	}
	return nil
}

// visit explores n and returns whether it reaches a cycle. Meeting a gray
// node means the path loops back onto the current stack, so every node on
// that stack, including n, reaches the cycle.
func (d *CycleDetector) visit(n *node) bool {
	switch d.state[n.id] {
	case black:
		return d.cyclic[n.id]
	case gray:
		return true
	}

	d.state[n.id] = gray
	found := false
	for _, dep := range n.refs {
		if d.visit(dep) {
			found = true
			break
		}
	}
	d.state[n.id] = black
	d.cyclic[n.id] = found
	return found
}
