package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
	"github.com/specialistvlad/cellgridgo/internal/ctxlog"
	"github.com/specialistvlad/cellgridgo/internal/dag"
	"github.com/specialistvlad/cellgridgo/internal/evaluator"
	"github.com/specialistvlad/cellgridgo/internal/table"
	"golang.org/x/sync/singleflight"
)

// Engine evaluates one table against its dependency graph.
type Engine struct {
	table   *table.Table
	graph   *dag.Graph
	eval    evaluator.Evaluator
	workers int

	// solved is the memo for the current run, owned by the engine and
	// shared by reference with every recursive call.
	solved *table.Solved
	flight singleflight.Group

	evaluations atomic.Int64
	failed      atomic.Int64
	cyclic      atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many cells are evaluated concurrently. Values below
// two select the sequential engine.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// Stats summarises a finished run.
type Stats struct {
	// Cells is the number of cells in the table.
	Cells int
	// Solved is the number of cells with a numeric result.
	Solved int
	// Failed is the number of cells that resolved to the error marker for a
	// reason other than a cycle.
	Failed int
	// Cyclic is the number of cells rejected by the cycle detector.
	Cyclic int
	// Evaluations is the number of calls made to the evaluator.
	Evaluations int
}

// New returns an engine for tbl. graph must have been built from tbl.
func New(tbl *table.Table, graph *dag.Graph, eval evaluator.Evaluator, opts ...Option) *Engine {
	e := &Engine{
		table:   tbl,
		graph:   graph,
		eval:    eval,
		workers: 1,
		solved:  table.NewSolved(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Solve evaluates every cell of the table and returns the results. Per-cell
// failures are recorded as "#ERR" and logged; the returned error is non-nil
// only when the run itself could not complete.
func (e *Engine) Solve(ctx context.Context) (*table.Solved, error) {
	logger := ctxlog.FromContext(ctx)
	e.reset()

	keys := e.table.Keys()
	logger.Debug("Solve: Starting evaluation.", "cell_count", len(keys), "workers", e.workers)

	var err error
	if e.workers > 1 {
		err = e.solveParallel(ctx, keys)
	} else {
		err = e.solveSequential(ctx, keys)
	}
	if err != nil {
		return nil, err
	}

	if got, want := e.solved.Len(), len(keys); got != want {
		return nil, fmt.Errorf("solve finished with %d results for %d cells", got, want)
	}
	logger.Debug("Solve: Evaluation complete.", "evaluations", e.evaluations.Load())
	return e.solved, nil
}

// Stats reports counters of the last Solve.
func (e *Engine) Stats() Stats {
	cells := e.table.Len()
	failed := int(e.failed.Load())
	cyclic := int(e.cyclic.Load())
	return Stats{
		Cells:       cells,
		Solved:      e.solved.Len() - failed - cyclic,
		Failed:      failed,
		Cyclic:      cyclic,
		Evaluations: int(e.evaluations.Load()),
	}
}

func (e *Engine) reset() {
	e.solved = table.NewSolved()
	e.evaluations.Store(0)
	e.failed.Store(0)
	e.cyclic.Store(0)
}

// solveSequential walks the cells in row-major order, checking each for
// cycles right before evaluating it.
func (e *Engine) solveSequential(ctx context.Context, keys []cellref.Coordinate) error {
	detector := dag.NewCycleDetector(e.graph)
	for _, c := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := detector.Check(c); err != nil {
			if err := e.rejectCyclic(ctx, c, err); err != nil {
				return err
			}
			continue
		}
		if _, err := e.evaluate(ctx, c, make(map[cellref.Coordinate]struct{})); err != nil && isFatal(err) {
			return err
		}
	}
	return nil
}

// rejectCyclic records the error marker for a cell on or behind a cycle.
func (e *Engine) rejectCyclic(ctx context.Context, c cellref.Coordinate, cause error) error {
	if err := e.solved.RecordError(c); err != nil {
		return err
	}
	e.cyclic.Add(1)
	e.warnFailed(ctx, c, "Cell skipped: circular reference.", cause)
	return nil
}

// warnFailed logs a failed cell along with how many cells reference it.
func (e *Engine) warnFailed(ctx context.Context, c cellref.Coordinate, msg string, cause error) {
	ctx = ctxlog.With(ctx, "cell", c.String())
	dependents, err := e.graph.Dependents(c)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("Failed cell is missing from the graph.", "error", err)
	}
	ctxlog.FromContext(ctx).Warn(msg, "error", cause, "dependents", len(dependents))
}
