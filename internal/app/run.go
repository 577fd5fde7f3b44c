package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/ctxlog"
	"github.com/vk/circuitgo/internal/graph"
)

// ErrConstraintsViolated is returned by Run when evaluation succeeded but
// one or more equality constraints did not hold. The per-pair diagnostics
// have already been logged by then.
var ErrConstraintsViolated = errors.New("constraints violated")

// Run builds the graph, evaluates it, and checks its constraints.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.")

	var built *circuit.Built
	var err error
	if a.model != nil {
		built, err = circuit.Build(ctx, a.model, a.registry, graph.WithWorkers(a.workers))
		if err != nil {
			return fmt.Errorf("failed to build circuit graph: %w", err)
		}
	} else {
		a.logger.Info("No circuit path given, running the built-in example circuit.")
		built, err = exampleCircuit(a.workers)
		if err != nil {
			return fmt.Errorf("failed to build example circuit: %w", err)
		}
	}
	a.logger.Debug("Graph constructed.", "nodes", built.Graph.Size())

	if err := built.Graph.FillNodes(ctx, built.Inputs); err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	a.logger.Debug("Evaluation complete.")

	ok, err := built.Graph.CheckConstraints(ctx)
	if err != nil {
		return fmt.Errorf("constraint check failed: %w", err)
	}
	if !ok {
		color.New(color.FgRed).Fprintln(a.outW, "Constraints Violated")
		return ErrConstraintsViolated
	}

	color.New(color.FgGreen).Fprintln(a.outW, "Constraints Satisfied")
	return nil
}

// exampleCircuit builds the canonical demonstration graph, f(x) = x^2 + x + 5
// evaluated at x = 2, with no constraints registered.
func exampleCircuit(workers int) (*circuit.Built, error) {
	g := graph.New(graph.WithWorkers(workers))
	x := g.Init()
	xSquared, err := g.Mul(x, x)
	if err != nil {
		return nil, err
	}
	five := g.Constant(5)
	sum, err := g.Add(xSquared, five)
	if err != nil {
		return nil, err
	}
	y, err := g.Add(sum, x)
	if err != nil {
		return nil, err
	}

	return &circuit.Built{
		Graph: g,
		Index: map[string]int{
			"x": x, "x_squared": xSquared, "five": five, "sum": sum, "y": y,
		},
		Inputs: map[int]uint32{x: 2},
	}, nil
}
