package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
	"github.com/specialistvlad/cellgridgo/internal/table"
)

// evaluate returns the result text of c, computing it (and everything it
// references) on first use. visiting holds the cells on the current
// recursion chain.
//
// The cell must already have been cleared by the cycle detector.
func (e *Engine) evaluate(ctx context.Context, c cellref.Coordinate, visiting map[cellref.Coordinate]struct{}) (string, error) {
	if v, ok, err := e.memo(c); ok {
		return v, err
	}
	if _, ok := visiting[c]; ok {
		return "", fmt.Errorf("%w: re-entered %s", ErrUndetectedCycle, c)
	}
	if e.workers <= 1 {
		return e.resolve(ctx, c, visiting)
	}

	// Concurrent callers asking for the same cell wait for a single
	// computation instead of racing to record it.
	v, err, _ := e.flight.Do(c.String(), func() (any, error) {
		if v, ok, err := e.memo(c); ok {
			return v, err
		}
		return e.resolve(ctx, c, visiting)
	})
	s, _ := v.(string)
	return s, err
}

// memo looks c up in the solved table. A recorded error marker is returned
// as ErrDependencyFailed.
func (e *Engine) memo(c cellref.Coordinate) (string, bool, error) {
	v, ok := e.solved.Lookup(c)
	if !ok {
		return "", false, nil
	}
	if v == table.ErrorMarker {
		return "", true, fmt.Errorf("%w: %s", ErrDependencyFailed, c)
	}
	return v, true, nil
}

// resolve computes c from its expression and records the outcome.
func (e *Engine) resolve(ctx context.Context, c cellref.Coordinate, visiting map[cellref.Coordinate]struct{}) (string, error) {
	text, ok := e.table.Get(c)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCell, c)
	}

	if strings.TrimSpace(text) == "" {
		return e.succeed(c, table.EmptyValue)
	}

	if err := e.graph.Problem(c); err != nil {
		return e.fail(ctx, c, err)
	}
	refs, err := cellref.Extract(text)
	if err != nil {
		return e.fail(ctx, c, err)
	}

	values := make([]string, len(refs))
	visiting[c] = struct{}{}
	for i, ref := range refs {
		v, err := e.evaluate(ctx, ref.Coordinate, visiting)
		if err != nil {
			delete(visiting, c)
			if isFatal(err) {
				return "", err
			}
			return e.fail(ctx, c, fmt.Errorf("%w: %s", ErrDependencyFailed, ref.Text))
		}
		values[i] = operand(v)
	}
	delete(visiting, c)

	dereferenced := cellref.Substitute(text, refs, values)
	e.evaluations.Add(1)
	n, err := e.eval.Evaluate(dereferenced)
	if err != nil {
		return e.fail(ctx, c, &EvaluationError{Cell: c, Expression: dereferenced, Err: err})
	}
	return e.succeed(c, strconv.FormatFloat(n, 'f', -1, 64))
}

func (e *Engine) succeed(c cellref.Coordinate, v string) (string, error) {
	if err := e.solved.Record(c, v); err != nil {
		return "", err
	}
	return v, nil
}

// fail records the error marker for c before handing cause back, so any
// cell referencing c sees the failure.
func (e *Engine) fail(ctx context.Context, c cellref.Coordinate, cause error) (string, error) {
	if err := e.solved.RecordError(c); err != nil {
		return "", err
	}
	e.failed.Add(1)
	e.warnFailed(ctx, c, "Cell evaluation failed.", cause)
	return "", cause
}

// operand prepares a result for substitution. Negative numbers are wrapped
// in parentheses so "a1 - b1" never becomes "5 - -3".
func operand(v string) string {
	if strings.HasPrefix(v, "-") {
		return "(" + v + ")"
	}
	return v
}
