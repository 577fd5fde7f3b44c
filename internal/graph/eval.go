package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/circuitgo/internal/ctxlog"
)

// FillNodes resolves every node in the graph from the supplied input
// assignment. Inputs are seeded first, then levels are resolved in strictly
// increasing order with a bounded worker fan-out inside each level and a
// full barrier between consecutive levels. Nodes within one level never
// depend on each other, so their resolution order is free.
//
// A graph's value state is single-use: a second call returns
// ErrAlreadyFilled whether the first pass succeeded or aborted. An aborted
// pass leaves an arbitrary mix of resolved and unresolved cells, so
// reseeding it would produce values from two different assignments;
// CheckConstraints reports ErrFillFailed on such a graph.
func (g *Graph) FillNodes(ctx context.Context, inputs map[int]uint32) error {
	if g.filled {
		return ErrAlreadyFilled
	}
	g.filled = true
	logger := ctxlog.FromContext(ctx)

	// Seed phase. Every assignment entry naming an existing node is written,
	// whatever the node's kind; targeting non-input nodes is the caller's
	// prerogative.
	for idx, v := range inputs {
		if g.exists(idx) {
			g.nodes[idx].cell.store(v)
		}
	}
	logger.Debug("Seed phase complete.", "assignments", len(inputs))

	for level, members := range g.levels {
		if err := g.fillLevel(ctx, members, inputs); err != nil {
			g.failed = true
			return fmt.Errorf("filling level %d: %w", level, err)
		}
		logger.Debug("Level resolution complete.", "level", level, "nodes", len(members))
	}
	return nil
}

// fillLevel resolves all nodes of one level concurrently and returns once
// every one of them has been resolved or a resolution has failed.
func (g *Graph) fillLevel(ctx context.Context, members map[int]struct{}, inputs map[int]uint32) error {
	if len(members) == 0 {
		return ctx.Err()
	}

	idxCh := make(chan int, len(members))
	for idx := range members {
		idxCh <- idx
	}
	close(idxCh)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for w := 0; w < min(g.workers, len(members)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxCh {
				if runCtx.Err() != nil {
					return
				}
				if _, err := g.fillNode(idx, inputs); err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// fillNode resolves one node, memoized through its value cell. Dependencies
// are resolved recursively; they live in strictly earlier, already-completed
// levels, so recursion here never races with the sibling fan-out of the
// current level.
func (g *Graph) fillNode(idx int, inputs map[int]uint32) (uint32, error) {
	n := g.nodes[idx]
	if v, ok := n.cell.load(); ok {
		return v, nil
	}

	var res uint32
	switch n.kind {
	case kindConstant:
		// Constants are populated at construction, so the memoization hit
		// above normally covers this.
		res = n.constVal

	case kindInput:
		v, ok := inputs[idx]
		if !ok {
			return 0, fmt.Errorf("node %d: %w", idx, ErrMissingInput)
		}
		res = v

	case kindDerived:
		left, err := g.fillNode(n.left, inputs)
		if err != nil {
			return 0, err
		}
		right, err := g.fillNode(n.right, inputs)
		if err != nil {
			return 0, err
		}
		switch n.op {
		case OpAdd:
			res = left + right
		case OpMul:
			res = left * right
		}

	case kindHint:
		dep, err := g.fillNode(n.dependent, inputs)
		if err != nil {
			return 0, err
		}
		v, err := g.hints[idx](dep)
		if err != nil {
			return 0, fmt.Errorf("node %d: %w: %w", idx, ErrHint, err)
		}
		res = v
	}

	n.cell.store(res)
	return res, nil
}
