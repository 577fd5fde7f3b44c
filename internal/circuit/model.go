// Package circuit defines the format-agnostic model of a described circuit
// and the lowering of that model into a computation graph. The HCL loader
// produces a Model; Build turns it into a graph plus the input assignment
// gathered from the file.
package circuit

import "github.com/vk/circuitgo/internal/graph"

// Model is the complete, format-agnostic description of one circuit.
type Model struct {
	Inputs  []*Input
	Consts  []*Const
	Gates   []*Gate
	Hints   []*Hint
	Asserts []*Assert
}

// Input declares an externally supplied value. Value is nil when the file
// left the input unbound.
type Input struct {
	Name  string
	Value *uint32
}

// Const declares a value fixed at construction.
type Const struct {
	Name  string
	Value uint32
}

// Gate declares a derived node combining two named nodes.
type Gate struct {
	Name  string
	Op    graph.Op
	Left  string
	Right string
}

// Hint declares a node computed by the named registered function from the
// node named by Of. By is the function's optional parameter.
type Hint struct {
	Name string
	Of   string
	Fn   string
	By   *uint32
}

// Assert declares an equality constraint between two named nodes.
type Assert struct {
	A string
	B string
}
