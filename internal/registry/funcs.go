package registry

import (
	"errors"
	"math"

	"github.com/vk/circuitgo/internal/graph"
)

// registerBuiltins installs the hint functions every registry starts with.
func registerBuiltins(r *Registry) {
	r.Register("div", divFactory)
	r.Register("isqrt", isqrtFactory)
}

// divFactory builds integer division by the `by` parameter (default 2).
// The resulting function refuses a zero dependent value: a zero numerator
// makes the usual reconstruction constraint (quotient * divisor == dividend)
// vacuous, so the original circuit treated it as a division failure.
func divFactory(param uint32, hasParam bool) (graph.HintFunc, error) {
	divisor := uint32(2)
	if hasParam {
		divisor = param
	}
	if divisor == 0 {
		return nil, errors.New("divisor must be non-zero")
	}

	return func(v uint32) (uint32, error) {
		if v == 0 {
			return 0, errors.New("division by zero")
		}
		return v / divisor, nil
	}, nil
}

// isqrtFactory builds the floor integer square root. It takes no parameter.
func isqrtFactory(param uint32, hasParam bool) (graph.HintFunc, error) {
	if hasParam {
		return nil, errors.New("isqrt takes no parameter")
	}

	return func(v uint32) (uint32, error) {
		// math.Sqrt is exact for every uint32 input, but clamp anyway so a
		// float rounding quirk can never yield an off-by-one result.
		r := uint64(math.Sqrt(float64(v)))
		for r*r > uint64(v) {
			r--
		}
		for (r+1)*(r+1) <= uint64(v) {
			r++
		}
		return uint32(r), nil
	}, nil
}
