package qubo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel_PairKeysAreUnordered(t *testing.T) {
	// GIVEN the same pair stored under both orders
	m, err := NewModel(nil, map[Pair]float64{{0, 1}: 1.5, {1, 0}: 0.5}, 0, Binary)
	require.NoError(t, err)

	// THEN they collapse into a single term
	assert.Equal(t, 1, m.NumInteractions())
	assert.Equal(t, 2.0, m.Quadratic(0, 1))
	assert.Equal(t, 2.0, m.Quadratic(1, 0))
}

func TestNewModel_QuadraticVariablesJoinVariableSet(t *testing.T) {
	m, err := NewModel(map[int]float64{0: 1}, map[Pair]float64{{3, 7}: -1}, 0, Spin)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 3, 7}, m.Variables())
	assert.True(t, m.HasVariable(7))
	assert.Equal(t, 0.0, m.Linear(3))
}

func TestNewModel_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		linear    map[int]float64
		quadratic map[Pair]float64
		offset    float64
		vartype   Vartype
	}{
		{"unknown vartype", nil, nil, 0, Vartype("DISCRETE")},
		{"self interaction", nil, map[Pair]float64{{2, 2}: 1}, 0, Binary},
		{"negative label", map[int]float64{-1: 1}, nil, 0, Binary},
		{"negative pair label", nil, map[Pair]float64{{-1, 2}: 1}, 0, Binary},
		{"NaN linear", map[int]float64{0: math.NaN()}, nil, 0, Binary},
		{"Inf quadratic", nil, map[Pair]float64{{0, 1}: math.Inf(1)}, 0, Spin},
		{"NaN offset", nil, nil, math.NaN(), Spin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(tt.linear, tt.quadratic, tt.offset, tt.vartype)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNewModel_CopiesInputs(t *testing.T) {
	linear := map[int]float64{0: 1}
	m, err := NewModel(linear, nil, 0, Binary)
	require.NoError(t, err)

	linear[0] = 99
	assert.Equal(t, 1.0, m.Linear(0))

	copied := m.LinearBiases()
	copied[0] = -5
	assert.Equal(t, 1.0, m.Linear(0))
}

func TestModel_Energy(t *testing.T) {
	// E(x) = 0.5 + x0 - 2x1 + 3 x0x1
	m, err := NewModel(map[int]float64{0: 1, 1: -2}, map[Pair]float64{{0, 1}: 3}, 0.5, Binary)
	require.NoError(t, err)

	tests := []struct {
		x    map[int]int
		want float64
	}{
		{map[int]int{0: 0, 1: 0}, 0.5},
		{map[int]int{0: 1, 1: 0}, 1.5},
		{map[int]int{0: 0, 1: 1}, -1.5},
		{map[int]int{0: 1, 1: 1}, 2.5},
	}
	for _, tt := range tests {
		got, err := m.Energy(tt.x)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "x=%v", tt.x)
	}
}

func TestModel_Energy_RejectsBadAssignments(t *testing.T) {
	m, err := NewModel(map[int]float64{0: 1, 1: 1}, nil, 0, Spin)
	require.NoError(t, err)

	_, err = m.Energy(map[int]int{0: 1})
	assert.ErrorIs(t, err, ErrValidation, "missing variable")

	_, err = m.Energy(map[int]int{0: 1, 1: 0})
	assert.ErrorIs(t, err, ErrValidation, "0 is not a spin")
}

func TestModel_Equal(t *testing.T) {
	a, err := NewModel(map[int]float64{0: 1}, map[Pair]float64{{0, 1}: 0}, 1, Binary)
	require.NoError(t, err)
	b, err := NewModel(map[int]float64{0: 1, 1: 0}, nil, 1, Binary)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "stored zero equals absent term")
	assert.True(t, b.Equal(a))

	c, err := NewModel(map[int]float64{0: 1, 1: 0}, nil, 1, Spin)
	require.NoError(t, err)
	assert.False(t, a.Equal(c), "vartype differs")

	d, err := NewModel(map[int]float64{0: 1 + 1e-12, 1: 0}, nil, 1, Binary)
	require.NoError(t, err)
	assert.False(t, b.Equal(d))
	assert.True(t, b.ApproxEqual(d, 1e-9))
}

func TestModel_InteractionsSorted(t *testing.T) {
	m, err := NewModel(nil, map[Pair]float64{{4, 1}: 1, {0, 3}: 1, {0, 1}: 1}, 0, Binary)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 1}, {0, 3}, {1, 4}}, m.Interactions())
}
