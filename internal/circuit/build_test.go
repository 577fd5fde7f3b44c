package circuit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/circuitgo/internal/graph"
	"github.com/vk/circuitgo/internal/registry"
)

func uint32ptr(v uint32) *uint32 { return &v }

func TestBuild_PolynomialModel(t *testing.T) {
	t.Parallel()

	// f(x) = x^2 + x + 5
	model := &Model{
		Inputs: []*Input{{Name: "x", Value: uint32ptr(2)}},
		Consts: []*Const{{Name: "five", Value: 5}},
		Gates: []*Gate{
			{Name: "x_squared", Op: graph.OpMul, Left: "x", Right: "x"},
			{Name: "sum", Op: graph.OpAdd, Left: "x_squared", Right: "five"},
			{Name: "y", Op: graph.OpAdd, Left: "sum", Right: "x"},
		},
	}

	built, err := Build(context.Background(), model, registry.New())
	require.NoError(t, err)
	assert.Equal(t, 5, built.Graph.Size())
	assert.Equal(t, map[int]uint32{built.Index["x"]: 2}, built.Inputs)

	require.NoError(t, built.Graph.FillNodes(context.Background(), built.Inputs))
	v, ok := built.Graph.Value(built.Index["y"])
	require.True(t, ok)
	assert.Equal(t, uint32(11), v)
}

func TestBuild_ForwardReferences(t *testing.T) {
	t.Parallel()

	// Declaration order in the file does not constrain reference order.
	model := &Model{
		Gates: []*Gate{
			{Name: "y", Op: graph.OpAdd, Left: "x_squared", Right: "x"},
			{Name: "x_squared", Op: graph.OpMul, Left: "x", Right: "x"},
		},
		Inputs: []*Input{{Name: "x", Value: uint32ptr(3)}},
	}

	built, err := Build(context.Background(), model, registry.New())
	require.NoError(t, err)

	require.NoError(t, built.Graph.FillNodes(context.Background(), built.Inputs))
	v, ok := built.Graph.Value(built.Index["y"])
	require.True(t, ok)
	assert.Equal(t, uint32(12), v)
}

func TestBuild_HintWithConstraint(t *testing.T) {
	t.Parallel()

	// f(a) = (a + 1) / 8, verified by reconstruction.
	model := &Model{
		Inputs: []*Input{{Name: "a", Value: uint32ptr(7)}},
		Consts: []*Const{
			{Name: "one", Value: 1},
			{Name: "eight", Value: 8},
		},
		Gates: []*Gate{
			{Name: "b", Op: graph.OpAdd, Left: "a", Right: "one"},
			{Name: "c_times_8", Op: graph.OpMul, Left: "c", Right: "eight"},
		},
		Hints: []*Hint{
			{Name: "c", Of: "b", Fn: "div", By: uint32ptr(8)},
		},
		Asserts: []*Assert{{A: "b", B: "c_times_8"}},
	}

	built, err := Build(context.Background(), model, registry.New())
	require.NoError(t, err)

	require.NoError(t, built.Graph.FillNodes(context.Background(), built.Inputs))
	v, ok := built.Graph.Value(built.Index["c"])
	require.True(t, ok)
	assert.Equal(t, uint32(1), v)

	ok, err = built.Graph.CheckConstraints(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuild_UnboundInputHasNoAssignment(t *testing.T) {
	t.Parallel()

	model := &Model{
		Inputs: []*Input{{Name: "x", Value: nil}},
		Gates:  []*Gate{{Name: "y", Op: graph.OpAdd, Left: "x", Right: "x"}},
	}

	built, err := Build(context.Background(), model, registry.New())
	require.NoError(t, err)
	assert.Empty(t, built.Inputs)

	err = built.Graph.FillNodes(context.Background(), built.Inputs)
	require.ErrorIs(t, err, graph.ErrMissingInput)
}

func TestBuild_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		model   *Model
		wantErr string
	}{
		{
			name: "duplicate name",
			model: &Model{
				Inputs: []*Input{{Name: "x"}},
				Consts: []*Const{{Name: "x", Value: 1}},
			},
			wantErr: `duplicate node name "x"`,
		},
		{
			name: "undeclared gate reference",
			model: &Model{
				Gates: []*Gate{{Name: "y", Op: graph.OpAdd, Left: "ghost", Right: "ghost"}},
			},
			wantErr: `reference to undeclared node "ghost"`,
		},
		{
			name: "undeclared assert reference",
			model: &Model{
				Consts:  []*Const{{Name: "one", Value: 1}},
				Asserts: []*Assert{{A: "one", B: "ghost"}},
			},
			wantErr: `reference to undeclared node "ghost"`,
		},
		{
			name: "reference cycle",
			model: &Model{
				Gates: []*Gate{
					{Name: "p", Op: graph.OpAdd, Left: "q", Right: "q"},
					{Name: "q", Op: graph.OpAdd, Left: "p", Right: "p"},
				},
			},
			wantErr: "reference cycle involving",
		},
		{
			name: "unknown hint function",
			model: &Model{
				Consts: []*Const{{Name: "one", Value: 1}},
				Hints:  []*Hint{{Name: "h", Of: "one", Fn: "nope"}},
			},
			wantErr: `unknown hint function "nope"`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Build(context.Background(), tc.model, registry.New())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
