package dag

import (
	"context"
	"fmt"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
	"github.com/specialistvlad/cellgridgo/internal/ctxlog"
	"github.com/specialistvlad/cellgridgo/internal/table"
)

// Build constructs the dependency graph of a table. Cells whose references
// cannot be extracted, or that reference a coordinate outside the table, are
// recorded as problems of that cell only; the build itself never fails.
func Build(ctx context.Context, tbl *table.Table) *Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "cell_count", tbl.Len())
	graph := New()

	// First pass: one node per cell.
	for c := range tbl.All() {
		graph.AddNode(c)
	}
	logger.Debug("Build: Node creation complete.", "node_count", graph.Len())

	// Second pass: link references.
	edges := 0
	for c, expression := range tbl.All() {
		refs, err := cellref.Extract(expression)
		if err != nil {
			graph.setProblem(c, err)
			logger.Debug("Build: Reference extraction failed.", "cell", c.String(), "error", err)
			continue
		}
		for _, ref := range refs {
			if !tbl.Has(ref.Coordinate) {
				graph.setProblem(c, fmt.Errorf("%w: %s references %s", ErrDanglingReference, c, ref.Text))
				logger.Debug("Build: Dangling reference.", "cell", c.String(), "reference", ref.Text)
				continue
			}
			if err := graph.AddEdge(c, ref.Coordinate); err != nil {
				// Both endpoints were checked above.
				graph.setProblem(c, err)
				continue
			}
			edges++
		}
	}
	logger.Debug("Build: Node linking complete.", "edge_count", edges, "problem_count", len(graph.problems))

	return graph
}
