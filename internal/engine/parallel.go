package engine

import (
	"context"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
	"github.com/specialistvlad/cellgridgo/internal/ctxlog"
	"github.com/specialistvlad/cellgridgo/internal/dag"
	"golang.org/x/sync/errgroup"
)

// solveParallel rejects cyclic cells up front, then evaluates the remaining
// cells on a bounded pool of goroutines. A cell that passed the cycle check
// can only reach other cells that passed it, so a goroutine never waits on a
// computation that waits on it.
func (e *Engine) solveParallel(ctx context.Context, keys []cellref.Coordinate) error {
	logger := ctxlog.FromContext(ctx)

	detector := dag.NewCycleDetector(e.graph)
	pending := make([]cellref.Coordinate, 0, len(keys))
	for _, c := range keys {
		if err := detector.Check(c); err != nil {
			if err := e.rejectCyclic(ctx, c, err); err != nil {
				return err
			}
			continue
		}
		pending = append(pending, c)
	}
	logger.Debug("Solve: Cycle detection complete.", "acyclic", len(pending), "cyclic", len(keys)-len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, c := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := e.evaluate(gctx, c, make(map[cellref.Coordinate]struct{})); err != nil && isFatal(err) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
