package registry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/circuitgo/internal/graph"
)

func uint32ptr(v uint32) *uint32 { return &v }

func TestResolve_UnknownName(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.Resolve("nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown hint function "nope"`)
}

func TestRegister_CustomFunction(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("triple", func(param uint32, hasParam bool) (graph.HintFunc, error) {
		return func(v uint32) (uint32, error) { return v * 3, nil }, nil
	})
	require.True(t, r.Has("triple"))

	fn, err := r.Resolve("triple", nil)
	require.NoError(t, err)
	v, err := fn(5)
	require.NoError(t, err)
	assert.Equal(t, uint32(15), v)
}

func TestDiv(t *testing.T) {
	t.Parallel()

	r := New()

	t.Run("divides by the parameter", func(t *testing.T) {
		t.Parallel()
		fn, err := r.Resolve("div", uint32ptr(8))
		require.NoError(t, err)

		v, err := fn(8)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), v)

		v, err = fn(25)
		require.NoError(t, err)
		assert.Equal(t, uint32(3), v)
	})

	t.Run("defaults to halving", func(t *testing.T) {
		t.Parallel()
		fn, err := r.Resolve("div", nil)
		require.NoError(t, err)

		v, err := fn(10)
		require.NoError(t, err)
		assert.Equal(t, uint32(5), v)
	})

	t.Run("rejects a zero dependent value", func(t *testing.T) {
		t.Parallel()
		fn, err := r.Resolve("div", uint32ptr(8))
		require.NoError(t, err)

		_, err = fn(0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "division by zero")
	})

	t.Run("rejects a zero divisor at resolve time", func(t *testing.T) {
		t.Parallel()
		_, err := r.Resolve("div", uint32ptr(0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "divisor must be non-zero")
	})
}

func TestIsqrt(t *testing.T) {
	t.Parallel()

	r := New()
	fn, err := r.Resolve("isqrt", nil)
	require.NoError(t, err)

	cases := []struct {
		in, want uint32
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{9, 3},
		{10, 3},
		{144, 12},
		{math.MaxUint32, 65535},
	}
	for _, tc := range cases {
		v, err := fn(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, v, "isqrt(%d)", tc.in)
	}
}

func TestIsqrt_RejectsParameter(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.Resolve("isqrt", uint32ptr(3))
	require.Error(t, err)
}

func TestIsqrt_IsValidatableByReconstruction(t *testing.T) {
	t.Parallel()

	// The canonical use: hint the root, then constrain root*root against the
	// radicand for perfect squares.
	r := New()
	fn, err := r.Resolve("isqrt", nil)
	require.NoError(t, err)

	v, err := fn(9)
	require.NoError(t, err)
	require.Equal(t, uint32(9), v*v)
}
