package graph

import "sync/atomic"

// Op identifies the arithmetic operation of a derived node.
type Op int

const (
	// OpAdd is unsigned addition, wrapping modulo 2^32.
	OpAdd Op = iota
	// OpMul is unsigned multiplication, wrapping modulo 2^32.
	OpMul
)

// String returns the lowercase operation name, matching the circuit-file spelling.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	}
	return "unknown"
}

// kind discriminates the four node variants.
type kind int

const (
	kindConstant kind = iota
	kindInput
	kindDerived
	kindHint
)

// cell is the value holder shared across the evaluation fan-out. The flag is
// stored after the payload, so a reader that observes populated==true is
// guaranteed to read the final value. There is no unset operation, and
// duplicate writes are harmless: any two writers for the same node store the
// identical value, because node resolution is deterministic.
type cell struct {
	value     atomic.Uint32
	populated atomic.Bool
}

// load returns the stored value and whether the cell has been populated.
func (c *cell) load() (uint32, bool) {
	if !c.populated.Load() {
		return 0, false
	}
	return c.value.Load(), true
}

func (c *cell) store(v uint32) {
	c.value.Store(v)
	c.populated.Store(true)
}

// node is one vertex of the graph. Everything except the cell is immutable
// after construction.
type node struct {
	index int
	kind  kind
	level int

	// kindConstant
	constVal uint32

	// kindDerived
	op          Op
	left, right int

	// kindHint
	dependent int

	cell cell
}
