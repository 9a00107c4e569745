package relax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/inference-sim/qubo/qubo"
)

func psdMatrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{5, 1, 2, 0, 6, 2, 0, 0, 7})
}

func nonPSDMatrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{-10, 1, 2, 0, -12, 2, 0, 0, -14})
}

func TestIsPositiveSemidefinite(t *testing.T) {
	tests := []struct {
		name   string
		matrix mat.Matrix
		want   bool
	}{
		{"symmetrized PSD", qubo.Symmetrize(psdMatrix()), true},
		{"symmetrized non-PSD", qubo.Symmetrize(nonPSDMatrix()), false},
		{"triangular PSD via general eigensolver", psdMatrix(), true},
		{"triangular non-PSD via general eigensolver", nonPSDMatrix(), false},
		{"indefinite", mat.NewSymDense(2, []float64{1, 2, 2, 1}), false},
		{"identity", mat.NewSymDense(2, []float64{1, 0, 0, 1}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsPositiveSemidefinite(tt.matrix, DefaultPSDEpsilon)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsPositiveSemidefinite_EpsilonIsAFloor(t *testing.T) {
	// GIVEN a singular PSD matrix (eigenvalues 0 and 2)
	m := mat.NewSymDense(2, []float64{1, 1, 1, 1})

	// THEN a zero eigenvalue passes only when epsilon allows it
	got, err := IsPositiveSemidefinite(m, -1e-12)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = IsPositiveSemidefinite(m, 1e-6)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsPositiveSemidefinite_NonSquare(t *testing.T) {
	_, err := IsPositiveSemidefinite(mat.NewDense(2, 3, nil), DefaultPSDEpsilon)
	assert.ErrorIs(t, err, qubo.ErrValidation)
}

func TestIsPositiveSemidefinite_EmptyOrNil(t *testing.T) {
	_, err := IsPositiveSemidefinite(&mat.Dense{}, DefaultPSDEpsilon)
	assert.ErrorIs(t, err, qubo.ErrValidation)

	_, err = IsPositiveSemidefinite(nil, DefaultPSDEpsilon)
	assert.ErrorIs(t, err, qubo.ErrValidation)
}
