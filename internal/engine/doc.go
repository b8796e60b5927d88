// Package engine evaluates a table of cell expressions into a table of
// results.
//
// For every cell, in row-major order, the engine asks the cycle detector
// whether the cell can be evaluated at all, then resolves it recursively:
// referenced cells first, their values substituted into the expression text,
// and the dereferenced expression handed to an evaluator.Evaluator. Every
// result, successful or "#ERR", is written once into a shared table.Solved
// that doubles as the memo, so a cell referenced from many places is computed
// once per run.
//
// With WithWorkers above one, cycle checks run for every cell first and the
// acyclic cells are then evaluated on a bounded pool of goroutines; the
// results are identical to the sequential walk.
//
// Failures stay local to the cell that produced them (and to the cells that
// depend on it). Only a broken invariant, such as recursion re-entering a
// cell the cycle detector cleared, or a cancelled context stops a run.
package engine
