package qubo

import "fmt"

// QUBOToIsing converts a binary model to the equivalent spin model using the
// substitution x_i = (1 - z_i)/2, so x_i = 0 maps to z_i = +1 and x_i = 1 to
// z_i = -1. Energies agree on every assignment. The input is not modified.
//
//	offset' = offset + Σ h_i/2 + Σ J_ij/4
//	h'_i    = -h_i/2 - ¼ Σ_{j~i} J_ij
//	J'_ij   = J_ij/4
func QUBOToIsing(q *Model) (*Model, error) {
	if q == nil {
		return nil, fmt.Errorf("QUBOToIsing: nil model: %w", ErrValidation)
	}
	if q.vartype != Binary {
		return nil, fmt.Errorf("QUBOToIsing: expected %s model, got %s: %w", Binary, q.vartype, ErrValidation)
	}

	offset := q.offset
	linear := make(map[int]float64, len(q.linear))
	quadratic := make(map[Pair]float64, len(q.quadratic))

	for _, v := range q.Variables() {
		h := q.linear[v]
		offset += h / 2
		linear[v] = -h / 2
	}
	for _, p := range q.Interactions() {
		j := q.quadratic[p] / 4
		offset += j
		linear[p.U] -= j
		linear[p.V] -= j
		quadratic[p] = j
	}
	return NewModel(linear, quadratic, offset, Spin)
}

// IsingToQUBO is the inverse of QUBOToIsing, using z_i = 1 - 2x_i.
//
//	offset' = offset + Σ h_i + Σ J_ij
//	h'_i    = -2h_i - 2 Σ_{j~i} J_ij
//	J'_ij   = 4 J_ij
func IsingToQUBO(s *Model) (*Model, error) {
	if s == nil {
		return nil, fmt.Errorf("IsingToQUBO: nil model: %w", ErrValidation)
	}
	if s.vartype != Spin {
		return nil, fmt.Errorf("IsingToQUBO: expected %s model, got %s: %w", Spin, s.vartype, ErrValidation)
	}

	offset := s.offset
	linear := make(map[int]float64, len(s.linear))
	quadratic := make(map[Pair]float64, len(s.quadratic))

	for _, v := range s.Variables() {
		h := s.linear[v]
		offset += h
		linear[v] = -2 * h
	}
	for _, p := range s.Interactions() {
		j := s.quadratic[p]
		offset += j
		linear[p.U] -= 2 * j
		linear[p.V] -= 2 * j
		quadratic[p] = 4 * j
	}
	return NewModel(linear, quadratic, offset, Binary)
}

// SpinFromBinary returns the spin assignment z_i = 1 - 2x_i.
func SpinFromBinary(x map[int]int) map[int]int {
	z := make(map[int]int, len(x))
	for v, value := range x {
		z[v] = 1 - 2*value
	}
	return z
}
