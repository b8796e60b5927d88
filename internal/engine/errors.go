package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
	"github.com/specialistvlad/cellgridgo/internal/table"
)

var (
	// ErrUnknownCell is returned when asked to resolve a coordinate that is
	// not part of the table.
	ErrUnknownCell = errors.New("unknown cell")

	// ErrEvaluationFailure is matched by every *EvaluationError.
	ErrEvaluationFailure = errors.New("evaluation failure")

	// ErrDependencyFailed is returned for a cell whose referenced cell
	// resolved to the error marker.
	ErrDependencyFailed = errors.New("dependency failed")

	// ErrUndetectedCycle means evaluation re-entered a cell that is still
	// being resolved. The cycle detector should have rejected the cell, so
	// this aborts the run.
	ErrUndetectedCycle = errors.New("undetected cycle during evaluation")
)

// EvaluationError reports a dereferenced expression the evaluator could not
// compute.
type EvaluationError struct {
	Cell       cellref.Coordinate
	Expression string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s: %s: %q: %v", ErrEvaluationFailure, e.Cell, e.Expression, e.Err)
}

// Unwrap exposes both ErrEvaluationFailure and the evaluator's error.
func (e *EvaluationError) Unwrap() []error {
	return []error{ErrEvaluationFailure, e.Err}
}

// isFatal reports whether err must stop the whole run rather than mark a
// single cell.
func isFatal(err error) bool {
	return errors.Is(err, ErrUndetectedCycle) ||
		errors.Is(err, table.ErrAlreadySolved) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
