package graph

import (
	"context"
	"fmt"

	"github.com/vk/circuitgo/internal/ctxlog"
)

// CheckConstraints verifies every asserted-equal pair against the resolved
// values. It must be called after a successful FillNodes: an aborted pass
// reports ErrFillFailed, and a constrained node with no resolved value is an
// error, not a violation.
//
// Violations are not errors. Every violated pair is logged with both indices
// and both values, and the returned bool is false if any pair mismatched.
func (g *Graph) CheckConstraints(ctx context.Context) (bool, error) {
	if g.failed {
		return false, ErrFillFailed
	}
	logger := ctxlog.FromContext(ctx)

	ok := true
	for _, c := range g.constraints {
		a, b := c[0], c[1]
		valA, popA := g.nodes[a].cell.load()
		if !popA {
			return false, fmt.Errorf("constraint (%d, %d): node %d: %w", a, b, a, ErrNotFilled)
		}
		valB, popB := g.nodes[b].cell.load()
		if !popB {
			return false, fmt.Errorf("constraint (%d, %d): node %d: %w", a, b, b, ErrNotFilled)
		}

		if valA != valB {
			logger.Error("Constraint violation.",
				"node_a", a, "value_a", valA,
				"node_b", b, "value_b", valB)
			ok = false
		}
	}
	return ok, nil
}
