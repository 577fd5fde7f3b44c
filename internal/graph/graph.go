package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal condition classes. Callers branch with
// errors.Is; the wrapped message carries the offending indices.
var (
	// ErrUnknownNode is returned when a construction operation references an
	// index that no prior operation produced.
	ErrUnknownNode = errors.New("node does not exist")
	// ErrMissingInput is returned by FillNodes when an input node has no
	// entry in the supplied assignment.
	ErrMissingInput = errors.New("input node value not provided")
	// ErrHint wraps a failure reported by a hint callback.
	ErrHint = errors.New("hint function failed")
	// ErrAlreadyFilled is returned on a second FillNodes call; a graph's
	// value state is single-use.
	ErrAlreadyFilled = errors.New("graph has already been filled")
	// ErrFillFailed is returned by CheckConstraints after an aborted
	// FillNodes pass: an abort leaves an arbitrary mix of resolved and
	// unresolved cells, so the value state is unusable.
	ErrFillFailed = errors.New("graph fill aborted; value state is unusable")
	// ErrNotFilled is returned by CheckConstraints when a constrained node
	// was never resolved, i.e. no successful FillNodes pass preceded it.
	ErrNotFilled = errors.New("node value not resolved")
)

// HintFunc computes a hint node's value from its dependency's resolved
// value. A returned error aborts the evaluation pass.
type HintFunc func(uint32) (uint32, error)

const defaultWorkers = 10

// Graph is a computation DAG under construction and, later, under
// evaluation. Construction methods are not safe for concurrent use; the only
// internally concurrent operation is FillNodes.
type Graph struct {
	// nodes is the arena. A node's index is its position in this slice.
	nodes []*node
	// levels[l] is the set of node indices whose topological level is l.
	// Level 0 holds all inputs and constants.
	levels []map[int]struct{}
	// constraints is the append-only sequence of asserted-equal pairs.
	// Duplicates and self-pairs are permitted.
	constraints [][2]int
	// hints maps a hint node's index to its callback. Read-only during
	// evaluation.
	hints map[int]HintFunc

	workers int
	filled  bool
	failed  bool
}

// Option configures a Graph at construction.
type Option func(*Graph)

// WithWorkers bounds the per-level evaluation fan-out. Values below 1 are
// ignored.
func WithWorkers(n int) Option {
	return func(g *Graph) {
		if n >= 1 {
			g.workers = n
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		levels:  []map[int]struct{}{{}},
		hints:   make(map[int]HintFunc),
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Size returns the number of nodes in the graph.
func (g *Graph) Size() int {
	return len(g.nodes)
}

// exists reports whether idx was produced by a prior construction call.
func (g *Graph) exists(idx int) bool {
	return idx >= 0 && idx < len(g.nodes)
}

// insert stores n in the arena and indexes it under level, returning the new
// dense index.
func (g *Graph) insert(n *node, level int) int {
	idx := len(g.nodes)
	n.index = idx
	n.level = level
	g.nodes = append(g.nodes, n)

	// Levels grow one at a time: a new node's level is at most one past the
	// current deepest level.
	if level >= len(g.levels) {
		g.levels = append(g.levels, make(map[int]struct{}))
	}
	g.levels[level][idx] = struct{}{}
	return idx
}

// Init creates an input node at level 0 and returns its index. Its value is
// supplied later through FillNodes.
func (g *Graph) Init() int {
	return g.insert(&node{kind: kindInput}, 0)
}

// Constant creates a constant node at level 0 and returns its index. The
// value cell is populated immediately.
func (g *Graph) Constant(v uint32) int {
	n := &node{kind: kindConstant, constVal: v}
	n.cell.store(v)
	return g.insert(n, 0)
}

// Add creates a node computing a + b (wrapping) and returns its index.
func (g *Graph) Add(a, b int) (int, error) {
	return g.derive(a, b, OpAdd)
}

// Mul creates a node computing a * b (wrapping) and returns its index.
func (g *Graph) Mul(a, b int) (int, error) {
	return g.derive(a, b, OpMul)
}

func (g *Graph) derive(a, b int, op Op) (int, error) {
	if !g.exists(a) || !g.exists(b) {
		return 0, fmt.Errorf("%s(%d, %d): %w", op, a, b, ErrUnknownNode)
	}

	// The new node sits one level past its deepest dependency, so both
	// operands resolve in strictly earlier levels.
	level := max(g.nodes[a].level, g.nodes[b].level) + 1
	idx := g.insert(&node{kind: kindDerived, op: op, left: a, right: b}, level)
	return idx, nil
}

// Hint creates a node whose value is computed by fn from the resolved value
// of dependent. The evaluator treats fn as opaque; use AssertEqual on a
// reconstruction of the value to validate it.
func (g *Graph) Hint(dependent int, fn HintFunc) (int, error) {
	if !g.exists(dependent) {
		return 0, fmt.Errorf("hint(%d): dependent %w", dependent, ErrUnknownNode)
	}

	level := g.nodes[dependent].level + 1
	idx := g.insert(&node{kind: kindHint, dependent: dependent}, level)
	g.hints[idx] = fn
	return idx, nil
}

// AssertEqual records the constraint that a and b resolve to equal values.
// The constraint is checked by CheckConstraints after evaluation.
func (g *Graph) AssertEqual(a, b int) error {
	if !g.exists(a) || !g.exists(b) {
		return fmt.Errorf("assert_equal(%d, %d): %w", a, b, ErrUnknownNode)
	}
	g.constraints = append(g.constraints, [2]int{a, b})
	return nil
}

// Value returns the resolved value of the node at idx, if evaluation has
// reached it. Unknown indices read as unresolved.
func (g *Graph) Value(idx int) (uint32, bool) {
	if !g.exists(idx) {
		return 0, false
	}
	return g.nodes[idx].cell.load()
}
