// Package dag builds the dependency graph of a table and answers, cell by
// cell, whether evaluating a cell would run into a circular reference.
//
// Nodes are cell coordinates. An edge u -> v means the expression of u
// references v. The graph is built once per run by Build and is read-only
// afterwards; problems found while building (unparseable references,
// references to cells outside the table) are attached to the offending cell
// instead of failing the build.
//
// Cycle detection is per target: a CycleDetector walks only what is
// reachable from the cell it is asked about, using the classic three-colour
// depth-first search.
package dag
