package qubo

import (
	"fmt"
	"math"
	"sort"
)

// Vartype is the domain of the variables of a Model.
type Vartype string

const (
	// Binary variables take values in {0, 1}.
	Binary Vartype = "BINARY"
	// Spin variables take values in {-1, +1}.
	Spin Vartype = "SPIN"
)

// validVartypes maps accepted vartype strings.
var validVartypes = map[Vartype]bool{
	Binary: true,
	Spin:   true,
}

// IsValidVartype returns true if the given string names a recognized vartype.
func IsValidVartype(name string) bool {
	return validVartypes[Vartype(name)]
}

// inDomain reports whether value is an admissible assignment for vt.
func (vt Vartype) inDomain(value int) bool {
	switch vt {
	case Binary:
		return value == 0 || value == 1
	case Spin:
		return value == -1 || value == 1
	}
	return false
}

// Pair is an unordered pair of distinct variables. Use NewPair to build the
// canonical form (U < V); Model normalizes any Pair it is given.
type Pair struct {
	U, V int
}

// NewPair returns the canonical form of the pair {u, v}.
func NewPair(u, v int) Pair {
	if u > v {
		u, v = v, u
	}
	return Pair{U: u, V: v}
}

// Model is an energy function over binary or spin variables:
//
//	E(s) = offset + Σ_i h_i s_i + Σ_{i<j} J_ij s_i s_j
//
// A Model is immutable once built. Every variable referenced by a quadratic
// term is also a member of the variable set.
type Model struct {
	vartype   Vartype
	offset    float64
	linear    map[int]float64
	quadratic map[Pair]float64
}

// NewModel builds a Model from linear biases, quadratic biases and an offset.
// Inputs are copied. Quadratic keys given in both orders are summed into one
// term. Variables that only appear in quadratic terms get a zero linear bias.
func NewModel(linear map[int]float64, quadratic map[Pair]float64, offset float64, vt Vartype) (*Model, error) {
	if !validVartypes[vt] {
		return nil, fmt.Errorf("unknown vartype %q: %w", vt, ErrValidation)
	}
	if !isFinite(offset) {
		return nil, fmt.Errorf("offset must be finite, got %v: %w", offset, ErrValidation)
	}
	m := &Model{
		vartype:   vt,
		offset:    offset,
		linear:    make(map[int]float64, len(linear)),
		quadratic: make(map[Pair]float64, len(quadratic)),
	}
	for v, bias := range linear {
		if v < 0 {
			return nil, fmt.Errorf("variable %d: labels must be non-negative: %w", v, ErrValidation)
		}
		if !isFinite(bias) {
			return nil, fmt.Errorf("variable %d: linear bias must be finite, got %v: %w", v, bias, ErrValidation)
		}
		m.linear[v] = bias
	}
	for p, bias := range quadratic {
		if p.U == p.V {
			return nil, fmt.Errorf("pair (%d,%d): self-interactions are not allowed: %w", p.U, p.V, ErrValidation)
		}
		if p.U < 0 || p.V < 0 {
			return nil, fmt.Errorf("pair (%d,%d): labels must be non-negative: %w", p.U, p.V, ErrValidation)
		}
		if !isFinite(bias) {
			return nil, fmt.Errorf("pair (%d,%d): quadratic bias must be finite, got %v: %w", p.U, p.V, bias, ErrValidation)
		}
		key := NewPair(p.U, p.V)
		m.quadratic[key] += bias
		if _, ok := m.linear[key.U]; !ok {
			m.linear[key.U] = 0
		}
		if _, ok := m.linear[key.V]; !ok {
			m.linear[key.V] = 0
		}
	}
	return m, nil
}

// EmptyModel returns a model with no variables and the given offset.
func EmptyModel(offset float64, vt Vartype) (*Model, error) {
	return NewModel(nil, nil, offset, vt)
}

// Vartype returns the variable domain.
func (m *Model) Vartype() Vartype { return m.vartype }

// Offset returns the constant energy term.
func (m *Model) Offset() float64 { return m.offset }

// NumVariables returns the size of the variable set.
func (m *Model) NumVariables() int { return len(m.linear) }

// NumInteractions returns the number of stored quadratic terms.
func (m *Model) NumInteractions() int { return len(m.quadratic) }

// HasVariable reports whether v is in the variable set.
func (m *Model) HasVariable(v int) bool {
	_, ok := m.linear[v]
	return ok
}

// Variables returns the variable labels in ascending order.
func (m *Model) Variables() []int {
	vars := make([]int, 0, len(m.linear))
	for v := range m.linear {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	return vars
}

// Linear returns the linear bias of v (0 when v is not a variable).
func (m *Model) Linear(v int) float64 { return m.linear[v] }

// Quadratic returns the bias of the pair {u, v}, in either order.
func (m *Model) Quadratic(u, v int) float64 { return m.quadratic[NewPair(u, v)] }

// Interactions returns the stored pairs sorted by (U, V).
func (m *Model) Interactions() []Pair {
	pairs := make([]Pair, 0, len(m.quadratic))
	for p := range m.quadratic {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].U != pairs[j].U {
			return pairs[i].U < pairs[j].U
		}
		return pairs[i].V < pairs[j].V
	})
	return pairs
}

// LinearBiases returns a copy of the linear bias map.
func (m *Model) LinearBiases() map[int]float64 {
	out := make(map[int]float64, len(m.linear))
	for v, b := range m.linear {
		out[v] = b
	}
	return out
}

// QuadraticBiases returns a copy of the quadratic bias map.
func (m *Model) QuadraticBiases() map[Pair]float64 {
	out := make(map[Pair]float64, len(m.quadratic))
	for p, b := range m.quadratic {
		out[p] = b
	}
	return out
}

// Energy evaluates the model on a full assignment. Every variable must be
// assigned a value from the model's domain.
func (m *Model) Energy(assignment map[int]int) (float64, error) {
	for v := range m.linear {
		value, ok := assignment[v]
		if !ok {
			return 0, fmt.Errorf("variable %d is not assigned: %w", v, ErrValidation)
		}
		if !m.vartype.inDomain(value) {
			return 0, fmt.Errorf("variable %d: value %d outside %s domain: %w", v, value, m.vartype, ErrValidation)
		}
	}
	energy := m.offset
	for _, v := range m.Variables() {
		energy += m.linear[v] * float64(assignment[v])
	}
	for _, p := range m.Interactions() {
		energy += m.quadratic[p] * float64(assignment[p.U]) * float64(assignment[p.V])
	}
	return energy, nil
}

// Equal reports whether two models have the same vartype, variables and
// coefficients, compared exactly. A missing quadratic term equals a stored zero.
func (m *Model) Equal(other *Model) bool {
	return m.compare(other, func(a, b float64) bool { return a == b })
}

// ApproxEqual is Equal with an absolute tolerance on every coefficient.
func (m *Model) ApproxEqual(other *Model, tol float64) bool {
	return m.compare(other, func(a, b float64) bool { return math.Abs(a-b) <= tol })
}

func (m *Model) compare(other *Model, eq func(a, b float64) bool) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.vartype != other.vartype || len(m.linear) != len(other.linear) {
		return false
	}
	if !eq(m.offset, other.offset) {
		return false
	}
	for v, b := range m.linear {
		ob, ok := other.linear[v]
		if !ok || !eq(b, ob) {
			return false
		}
	}
	for p, b := range m.quadratic {
		if !eq(b, other.quadratic[p]) {
			return false
		}
	}
	for p, b := range other.quadratic {
		if _, ok := m.quadratic[p]; !ok && !eq(b, 0) {
			return false
		}
	}
	return true
}

// String renders the model for logs.
func (m *Model) String() string {
	return fmt.Sprintf("Model{%s, %d variables, %d interactions, offset=%g}",
		m.vartype, len(m.linear), len(m.quadratic), m.offset)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
