package circuit

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/circuitgo/internal/ctxlog"
	"github.com/vk/circuitgo/internal/graph"
	"github.com/vk/circuitgo/internal/registry"
)

// Built is the result of lowering a Model: the constructed graph, the
// name-to-index table, and the input assignment collected from the model's
// bound input values.
type Built struct {
	Graph  *graph.Graph
	Index  map[string]int
	Inputs map[int]uint32
}

// Build lowers a circuit model into a computation graph. Declarations may
// reference blocks that appear later in the file: lowering happens in
// dependency order, and declarations that can never be ordered (undeclared
// references, reference cycles) are rejected with a diagnostic naming them.
func Build(ctx context.Context, model *Model, reg *registry.Registry, opts ...graph.Option) (*Built, error) {
	logger := ctxlog.FromContext(ctx)

	declared, err := collectNames(model)
	if err != nil {
		return nil, err
	}

	b := &Built{
		Graph:  graph.New(opts...),
		Index:  make(map[string]int),
		Inputs: make(map[int]uint32),
	}

	// First pass: inputs and constants, all at level 0.
	for _, in := range model.Inputs {
		idx := b.Graph.Init()
		b.Index[in.Name] = idx
		if in.Value != nil {
			b.Inputs[idx] = *in.Value
		}
	}
	for _, c := range model.Consts {
		b.Index[c.Name] = b.Graph.Constant(c.Value)
	}
	logger.Debug("Circuit leaves created.",
		"inputs", len(model.Inputs), "consts", len(model.Consts))

	// Second pass: gates and hints, in dependency order. Each round lowers
	// every declaration whose references already resolve; a round with no
	// progress means the remainder forms a reference cycle.
	if err := b.lowerDerived(ctx, model, reg, declared); err != nil {
		return nil, err
	}

	// Final pass: constraints.
	for _, a := range model.Asserts {
		idxA, ok := b.Index[a.A]
		if !ok {
			return nil, fmt.Errorf("assert_equal: reference to undeclared node %q", a.A)
		}
		idxB, ok := b.Index[a.B]
		if !ok {
			return nil, fmt.Errorf("assert_equal: reference to undeclared node %q", a.B)
		}
		if err := b.Graph.AssertEqual(idxA, idxB); err != nil {
			return nil, err
		}
	}

	logger.Debug("Circuit lowering complete.",
		"nodes", b.Graph.Size(), "constraints", len(model.Asserts))
	return b, nil
}

// pending is one not-yet-lowered gate or hint declaration.
type pending struct {
	name string
	refs []string
	emit func() error
}

func (b *Built) lowerDerived(ctx context.Context, model *Model, reg *registry.Registry, declared map[string]struct{}) error {
	logger := ctxlog.FromContext(ctx)

	var queue []*pending
	for _, g := range model.Gates {
		g := g
		queue = append(queue, &pending{
			name: g.Name,
			refs: []string{g.Left, g.Right},
			emit: func() error {
				var idx int
				var err error
				switch g.Op {
				case graph.OpAdd:
					idx, err = b.Graph.Add(b.Index[g.Left], b.Index[g.Right])
				case graph.OpMul:
					idx, err = b.Graph.Mul(b.Index[g.Left], b.Index[g.Right])
				default:
					err = fmt.Errorf("gate %q: unsupported op %v", g.Name, g.Op)
				}
				if err != nil {
					return err
				}
				b.Index[g.Name] = idx
				return nil
			},
		})
	}
	for _, h := range model.Hints {
		h := h
		queue = append(queue, &pending{
			name: h.Name,
			refs: []string{h.Of},
			emit: func() error {
				fn, err := reg.Resolve(h.Fn, h.By)
				if err != nil {
					return fmt.Errorf("hint %q: %w", h.Name, err)
				}
				idx, err := b.Graph.Hint(b.Index[h.Of], fn)
				if err != nil {
					return err
				}
				b.Index[h.Name] = idx
				return nil
			},
		})
	}

	for _, p := range queue {
		for _, ref := range p.refs {
			if _, ok := declared[ref]; !ok {
				return fmt.Errorf("%q: reference to undeclared node %q", p.name, ref)
			}
		}
	}

	for len(queue) > 0 {
		var deferred []*pending
		for _, p := range queue {
			if !b.ready(p) {
				deferred = append(deferred, p)
				continue
			}
			if err := p.emit(); err != nil {
				return err
			}
		}
		if len(deferred) == len(queue) {
			names := make([]string, len(deferred))
			for i, p := range deferred {
				names[i] = p.name
			}
			return fmt.Errorf("reference cycle involving %s", strings.Join(names, ", "))
		}
		logger.Debug("Lowering round complete.",
			"lowered", len(queue)-len(deferred), "remaining", len(deferred))
		queue = deferred
	}
	return nil
}

// ready reports whether every reference of p already has a graph index.
func (b *Built) ready(p *pending) bool {
	for _, ref := range p.refs {
		if _, ok := b.Index[ref]; !ok {
			return false
		}
	}
	return true
}

// collectNames gathers every declared block name, rejecting duplicates.
func collectNames(model *Model) (map[string]struct{}, error) {
	names := make(map[string]struct{})
	take := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%s block with an empty name", kind)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("duplicate node name %q", name)
		}
		names[name] = struct{}{}
		return nil
	}

	for _, in := range model.Inputs {
		if err := take("input", in.Name); err != nil {
			return nil, err
		}
	}
	for _, c := range model.Consts {
		if err := take("const", c.Name); err != nil {
			return nil, err
		}
	}
	for _, g := range model.Gates {
		if err := take("gate", g.Name); err != nil {
			return nil, err
		}
	}
	for _, h := range model.Hints {
		if err := take("hint", h.Name); err != nil {
			return nil, err
		}
	}
	return names, nil
}
