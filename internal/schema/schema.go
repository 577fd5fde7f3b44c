// Package schema defines the HCL block structures of a circuit file. It
// contains only struct-tag declarations; parsing lives in the hcl package
// and the format-agnostic model in the circuit package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Input represents an `input` block: an externally supplied value. The
// value attribute is optional; an input left without a value makes
// evaluation fail, which is the intended way to catch a forgotten binding.
type Input struct {
	Name  string     `hcl:"name,label"`
	Value *cty.Value `hcl:"value,optional"`
}

// Const represents a `const` block: a value fixed at construction.
type Const struct {
	Name  string    `hcl:"name,label"`
	Value cty.Value `hcl:"value"`
}

// Gate represents a `gate` block: a derived node combining two existing
// nodes with "add" or "mul".
type Gate struct {
	Name  string `hcl:"name,label"`
	Op    string `hcl:"op"`
	Left  string `hcl:"left"`
	Right string `hcl:"right"`
}

// Hint represents a `hint` block: a node computed by a registered function
// from one dependency. `by` is the function's optional uint32 parameter.
type Hint struct {
	Name string     `hcl:"name,label"`
	Of   string     `hcl:"of"`
	Fn   string     `hcl:"fn"`
	By   *cty.Value `hcl:"by,optional"`
}

// AssertEqual represents an `assert_equal` block: a declared equality
// between two nodes, checked after evaluation.
type AssertEqual struct {
	A string `hcl:"a"`
	B string `hcl:"b"`
}

// CircuitConfig is the top-level structure of a circuit file.
type CircuitConfig struct {
	Inputs  []*Input       `hcl:"input,block"`
	Consts  []*Const       `hcl:"const,block"`
	Gates   []*Gate        `hcl:"gate,block"`
	Hints   []*Hint        `hcl:"hint,block"`
	Asserts []*AssertEqual `hcl:"assert_equal,block"`
	Body    hcl.Body       `hcl:",remain"`
}
