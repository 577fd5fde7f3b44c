package hcl

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/graph"
	"github.com/vk/circuitgo/internal/schema"
)

// translate appends the blocks of one decoded file to the model.
func translate(cfg *schema.CircuitConfig, model *circuit.Model) error {
	for _, in := range cfg.Inputs {
		var bound *uint32
		if in.Value != nil {
			v, err := uint32FromCty(*in.Value)
			if err != nil {
				return fmt.Errorf("input %q: %w", in.Name, err)
			}
			bound = &v
		}
		model.Inputs = append(model.Inputs, &circuit.Input{Name: in.Name, Value: bound})
	}

	for _, c := range cfg.Consts {
		v, err := uint32FromCty(c.Value)
		if err != nil {
			return fmt.Errorf("const %q: %w", c.Name, err)
		}
		model.Consts = append(model.Consts, &circuit.Const{Name: c.Name, Value: v})
	}

	for _, g := range cfg.Gates {
		op, err := opFromString(g.Op)
		if err != nil {
			return fmt.Errorf("gate %q: %w", g.Name, err)
		}
		model.Gates = append(model.Gates, &circuit.Gate{
			Name:  g.Name,
			Op:    op,
			Left:  g.Left,
			Right: g.Right,
		})
	}

	for _, h := range cfg.Hints {
		var by *uint32
		if h.By != nil {
			v, err := uint32FromCty(*h.By)
			if err != nil {
				return fmt.Errorf("hint %q: %w", h.Name, err)
			}
			by = &v
		}
		model.Hints = append(model.Hints, &circuit.Hint{
			Name: h.Name,
			Of:   h.Of,
			Fn:   h.Fn,
			By:   by,
		})
	}

	for _, a := range cfg.Asserts {
		model.Asserts = append(model.Asserts, &circuit.Assert{A: a.A, B: a.B})
	}
	return nil
}

// opFromString maps the circuit-file spelling of an operation to graph.Op.
func opFromString(s string) (graph.Op, error) {
	switch s {
	case "add":
		return graph.OpAdd, nil
	case "mul":
		return graph.OpMul, nil
	}
	return 0, fmt.Errorf("unsupported op %q (want \"add\" or \"mul\")", s)
}

// uint32FromCty converts an HCL attribute value into a uint32, rejecting
// non-numbers, fractions, and out-of-range values.
func uint32FromCty(val cty.Value) (uint32, error) {
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("value is not a number: %w", err)
	}
	if num.IsNull() {
		return 0, fmt.Errorf("value is null")
	}

	bf := num.AsBigFloat()
	if !bf.IsInt() {
		return 0, fmt.Errorf("value %s is not an integer", bf.Text('f', -1))
	}
	i, _ := bf.Int64()
	if i < 0 || i > math.MaxUint32 {
		return 0, fmt.Errorf("value %d is outside the uint32 range", i)
	}
	return uint32(i), nil
}
