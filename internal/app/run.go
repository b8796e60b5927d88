package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/cellgridgo/internal/ctxlog"
	"github.com/specialistvlad/cellgridgo/internal/dag"
	"github.com/specialistvlad/cellgridgo/internal/engine"
	"github.com/specialistvlad/cellgridgo/internal/table"
)

// Run loads the input table, evaluates every cell and prints the results.
// Cells that fail to evaluate are printed as "#ERR" and do not fail the run.
func (a *App) Run(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	tbl, err := table.LoadFile(a.config.InputPath, a.tableOptions()...)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	logger.Debug("Table loaded.", "cell_count", tbl.Len())

	if tbl.Len() == 0 {
		logger.Warn("Input table is empty, nothing to evaluate.")
	}

	graph := dag.Build(ctx, tbl)
	logger.Debug("Dependency graph built.", "node_count", graph.Len(), "problem_count", len(graph.Problems()))

	eng := engine.New(tbl, graph, a.eval, engine.WithWorkers(a.config.Workers))
	solved, err := eng.Solve(ctx)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if err := a.write(solved); err != nil {
		return err
	}

	stats := eng.Stats()
	logger.Info("Evaluation finished.",
		"cells", stats.Cells,
		"solved", stats.Solved,
		"failed", stats.Failed,
		"cyclic", stats.Cyclic,
		"evaluations", stats.Evaluations,
	)
	logger.Debug("App.Run method finished.")
	return nil
}

// write prints the solved table to the output file, or to outW when none is
// configured.
func (a *App) write(solved *table.Solved) (err error) {
	var w io.Writer = a.outW
	if a.config.OutputPath != "" {
		f, createErr := os.Create(a.config.OutputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	if err := table.Print(w, solved, a.tableOptions()...); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
