// Package graph builds and evaluates directed acyclic graphs of scalar
// arithmetic over uint32 values.
//
// A graph is grown incrementally through Init, Constant, Add, Mul and Hint.
// Nodes are addressed by dense integer indices; a new node may only refer to
// indices that already exist, so cycles are impossible by construction.
// Every node carries a topological level that strictly exceeds the level of
// each of its dependencies, which is what makes the level-by-level parallel
// fill in FillNodes safe.
//
// Add and Mul use Go's native uint32 arithmetic: results wrap modulo 2^32.
package graph
