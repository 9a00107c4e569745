package qubo

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CoefficientMatrix returns the upper-triangular matrix P of a binary model
// over its sorted variables, together with that variable order. The diagonal
// holds the linear biases and P[i][j] = J_ij for i < j, so x^T P x equals the
// linear-plus-quadratic energy for binary x. The offset is not represented.
func CoefficientMatrix(m *Model) (*mat.Dense, []int, error) {
	if m == nil {
		return nil, nil, fmt.Errorf("CoefficientMatrix: nil model: %w", ErrValidation)
	}
	if m.vartype != Binary {
		return nil, nil, fmt.Errorf("CoefficientMatrix: expected %s model, got %s: %w", Binary, m.vartype, ErrValidation)
	}
	vars := m.Variables()
	n := len(vars)
	if n == 0 {
		return nil, nil, fmt.Errorf("CoefficientMatrix: model has no variables: %w", ErrValidation)
	}
	index := make(map[int]int, n)
	for i, v := range vars {
		index[v] = i
	}

	p := mat.NewDense(n, n, nil)
	for i, v := range vars {
		p.Set(i, i, m.linear[v])
	}
	for pair, bias := range m.quadratic {
		i, j := index[pair.U], index[pair.V]
		if i > j {
			i, j = j, i
		}
		p.Set(i, j, p.At(i, j)+bias)
	}
	return p, vars, nil
}

// Symmetrize returns (P + P^T)/2. It panics with mat.ErrShape if p is not
// square, matching gonum's own shape contract.
func Symmetrize(p mat.Matrix) *mat.SymDense {
	r, c := p.Dims()
	if r != c {
		panic(mat.ErrShape)
	}
	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, (p.At(i, j)+p.At(j, i))/2)
		}
	}
	return s
}
