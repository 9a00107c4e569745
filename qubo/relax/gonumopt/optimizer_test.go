package gonumopt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/inference-sim/qubo/qubo"
	"github.com/inference-sim/qubo/qubo/relax"
)

// shifted returns Σ (x_i - c_i)² with its gradient.
func shifted(c ...float64) relax.CostFunction {
	return relax.CostFunction{
		Func: func(x []float64) float64 {
			s := 0.0
			for i := range x {
				d := x[i] - c[i]
				s += d * d
			}
			return s
		},
		Grad: func(grad, x []float64) {
			for i := range x {
				grad[i] = 2 * (x[i] - c[i])
			}
		},
	}
}

func TestNew_Methods(t *testing.T) {
	o, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMethod, o.Method)

	_, err = New("simulated-annealing")
	assert.ErrorIs(t, err, qubo.ErrConfiguration)

	assert.True(t, IsValidMethod("lbfgs"))
	assert.False(t, IsValidMethod("newton"))
}

func TestMinimize_Unconstrained(t *testing.T) {
	o, err := New(MethodBFGS)
	require.NoError(t, err)

	res, err := o.Minimize(shifted(1, -2), []float64{0, 0})

	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, -2}, res.Params, 1e-6)
	assert.InDelta(t, 0, res.Value, 1e-10)
}

func TestMinimize_FiniteDifferenceGradient(t *testing.T) {
	o, err := New(MethodLBFGS)
	require.NoError(t, err)
	cost := shifted(3, 4)
	cost.Grad = nil

	res, err := o.Minimize(cost, []float64{0, 0})

	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 4}, res.Params, 1e-5)
}

func TestMinimizeConstrained_EveryMethodStaysInBox(t *testing.T) {
	// GIVEN an interior minimum (0.3, ·) and one beyond the upper bound
	for _, method := range []Method{MethodBFGS, MethodLBFGS, MethodNelderMead, MethodGradientDescent} {
		t.Run(string(method), func(t *testing.T) {
			o, err := New(method)
			require.NoError(t, err)

			res, err := o.MinimizeConstrained(shifted(0.3, 2), []float64{0.6, 0.4}, relax.BoxConstraint(2, 0, 1))

			// THEN the result is the projection of the unconstrained minimum
			require.NoError(t, err)
			assert.InDeltaSlice(t, []float64{0.3, 1}, res.Params, 1e-3)
			assert.InDelta(t, 1.0, res.Value, 1e-3)
			for _, v := range res.Params {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		})
	}
}

func TestMinimizeConstrained_LowerBoundOptimum(t *testing.T) {
	o, err := New(MethodBFGS)
	require.NoError(t, err)

	res, err := o.MinimizeConstrained(shifted(-5), []float64{0.9}, relax.BoxConstraint(1, 0, 1))

	require.NoError(t, err)
	assert.InDelta(t, 0, res.Params[0], 1e-6)
	assert.InDelta(t, 25, res.Value, 1e-5)
}

func TestMinimizeConstrained_DegenerateBoxIsFixed(t *testing.T) {
	o, err := New(MethodBFGS)
	require.NoError(t, err)
	c := relax.LinearConstraint{
		A:     mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		Lower: []float64{0.5, 0},
		Upper: []float64{0.5, 1},
	}

	res, err := o.MinimizeConstrained(shifted(0, 0.25), []float64{0.5, 0.5}, c)

	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Params[0])
	assert.InDelta(t, 0.25, res.Params[1], 1e-6)
}

func TestMinimizeConstrained_RejectsBadInput(t *testing.T) {
	o, err := New(MethodBFGS)
	require.NoError(t, err)

	_, err = o.MinimizeConstrained(relax.CostFunction{}, []float64{0}, relax.BoxConstraint(1, 0, 1))
	assert.ErrorIs(t, err, qubo.ErrConfiguration)

	_, err = o.MinimizeConstrained(shifted(0, 0), []float64{0, 0}, relax.BoxConstraint(3, 0, 1))
	assert.ErrorIs(t, err, qubo.ErrValidation)

	general := relax.LinearConstraint{
		A:     mat.NewDense(1, 2, []float64{1, 1}),
		Lower: []float64{0},
		Upper: []float64{1},
	}
	_, err = o.MinimizeConstrained(shifted(0, 0), []float64{0, 0}, general)
	assert.ErrorIs(t, err, qubo.ErrConfiguration)
}

func TestSolveWithOptimizer_ConcaveObjectiveReachesCorner(t *testing.T) {
	// GIVEN xᵀPx with P = diag(-1, -2, -3): every coordinate decreases the
	// objective, so the unit-box minimum is (1, 1, 1) with value -6
	p := mat.NewDense(3, 3, []float64{-1, 0, 0, 0, -2, 0, 0, 0, -3})
	o, err := New(MethodBFGS)
	require.NoError(t, err)
	opts := relax.DefaultOptions()
	opts.Optimizer = o
	opts.Trials = 3
	opts.RNG = rand.New(rand.NewSource(5))

	res, err := relax.SolveWithOptimizer(p, opts)

	require.NoError(t, err)
	assert.Equal(t, relax.PathOptimizer, res.Path)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, res.Solution, 1e-6)
	assert.InDelta(t, -6, res.Value, 1e-5)
	assert.Len(t, res.TrialValues, 3)
}

func TestSolveRelaxation_IndefiniteModel(t *testing.T) {
	// GIVEN 2x₀ - x₁: indefinite, unit-box minimum at (0, 1) with value -1
	m, err := qubo.NewModel(map[int]float64{0: 2, 1: -1}, nil, 0, qubo.Binary)
	require.NoError(t, err)
	o, err := New(MethodLBFGS)
	require.NoError(t, err)
	opts := relax.DefaultOptions()
	opts.Optimizer = o
	opts.Trials = 2
	opts.RNG = rand.New(rand.NewSource(9))

	res, err := relax.SolveRelaxation(m, opts)

	require.NoError(t, err)
	assert.Equal(t, relax.PathOptimizer, res.Path)
	assert.Equal(t, []int{0, 1}, res.Variables)
	assert.InDeltaSlice(t, []float64{0, 1}, res.Solution, 1e-6)
	assert.InDelta(t, -1, res.Value, 1e-5)
}
