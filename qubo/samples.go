package qubo

import (
	"fmt"
	"math"
	"strings"
)

// Bitstring is one measured assignment of binary variables 0..n-1.
type Bitstring []uint8

// String renders the bitstring as e.g. "0110".
func (b Bitstring) String() string {
	var sb strings.Builder
	for _, bit := range b {
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}

// Sample is one assignment in a SampleSet. Values are parallel to
// SampleSet.Variables.
type Sample struct {
	Values         []int
	Energy         float64 // NaN when no model was available to evaluate it
	NumOccurrences int
}

// SampleSet is a collection of assignments over a common variable list.
type SampleSet struct {
	Variables []int
	Vartype   Vartype
	Samples   []Sample
}

// EvaluateBitstring returns the energy of a binary model on bits, where bit i
// is the value of variable i. Every model variable must index into bits.
func EvaluateBitstring(m *Model, bits Bitstring) (float64, error) {
	if m == nil {
		return 0, fmt.Errorf("EvaluateBitstring: nil model: %w", ErrValidation)
	}
	if m.vartype != Binary {
		return 0, fmt.Errorf("EvaluateBitstring: expected %s model, got %s: %w", Binary, m.vartype, ErrValidation)
	}
	assignment := make(map[int]int, len(bits))
	for i, bit := range bits {
		assignment[i] = int(bit)
	}
	for v := range m.linear {
		if v >= len(bits) {
			return 0, fmt.Errorf("EvaluateBitstring: variable %d outside bitstring of length %d: %w", v, len(bits), ErrValidation)
		}
	}
	return m.Energy(assignment)
}

// BitstringsToSampleSet wraps bitstrings into a binary sample set over
// variables 0..n-1, one sample per bitstring. When m is non-nil each sample's
// energy is m evaluated on its bitstring; otherwise energies are NaN. flip
// replaces every bit b with 1-b before anything else.
func BitstringsToSampleSet(bits []Bitstring, m *Model, flip bool) (*SampleSet, error) {
	n := 0
	if len(bits) > 0 {
		n = len(bits[0])
	}
	ss := &SampleSet{
		Variables: make([]int, n),
		Vartype:   Binary,
		Samples:   make([]Sample, 0, len(bits)),
	}
	for i := range ss.Variables {
		ss.Variables[i] = i
	}
	for idx, b := range bits {
		if len(b) != n {
			return nil, fmt.Errorf("bitstring %d has length %d, expected %d: %w", idx, len(b), n, ErrValidation)
		}
		converted := make(Bitstring, n)
		values := make([]int, n)
		for i, bit := range b {
			if bit > 1 {
				return nil, fmt.Errorf("bitstring %d: value %d at position %d is not binary: %w", idx, bit, i, ErrValidation)
			}
			if flip {
				bit = 1 - bit
			}
			converted[i] = bit
			values[i] = int(bit)
		}
		energy := math.NaN()
		if m != nil {
			e, err := EvaluateBitstring(m, converted)
			if err != nil {
				return nil, fmt.Errorf("bitstring %d: %w", idx, err)
			}
			energy = e
		}
		ss.Samples = append(ss.Samples, Sample{Values: values, Energy: energy, NumOccurrences: 1})
	}
	return ss, nil
}

// SampleSetToBitstrings is the inverse of BitstringsToSampleSet. The set must
// be binary and its variables must be distinct integers in [0, n). Each sample
// is repeated NumOccurrences times, in sample order.
func SampleSetToBitstrings(ss *SampleSet, flip bool) ([]Bitstring, error) {
	if ss == nil {
		return nil, fmt.Errorf("SampleSetToBitstrings: nil sample set: %w", ErrValidation)
	}
	if ss.Vartype != Binary {
		return nil, fmt.Errorf("SampleSetToBitstrings: expected %s sample set, got %s: %w", Binary, ss.Vartype, ErrValidation)
	}
	n := len(ss.Variables)
	seen := make([]bool, n)
	for _, v := range ss.Variables {
		if v < 0 || v >= n {
			return nil, fmt.Errorf("SampleSetToBitstrings: variable %d outside [0, %d): %w", v, n, ErrValidation)
		}
		if seen[v] {
			return nil, fmt.Errorf("SampleSetToBitstrings: duplicate variable %d: %w", v, ErrValidation)
		}
		seen[v] = true
	}

	var out []Bitstring
	for idx, s := range ss.Samples {
		if len(s.Values) != n {
			return nil, fmt.Errorf("sample %d has %d values, expected %d: %w", idx, len(s.Values), n, ErrValidation)
		}
		b := make(Bitstring, n)
		for i, value := range s.Values {
			if !Binary.inDomain(value) {
				return nil, fmt.Errorf("sample %d: value %d is not binary: %w", idx, value, ErrValidation)
			}
			if flip {
				value = 1 - value
			}
			b[ss.Variables[i]] = uint8(value)
		}
		for k := 0; k < s.NumOccurrences; k++ {
			out = append(out, append(Bitstring(nil), b...))
		}
	}
	return out, nil
}

// Aggregate returns a new sample set in which identical assignments are merged
// and their occurrence counts summed. First-seen order is kept.
func (ss *SampleSet) Aggregate() *SampleSet {
	out := &SampleSet{
		Variables: append([]int(nil), ss.Variables...),
		Vartype:   ss.Vartype,
	}
	index := make(map[string]int)
	for _, s := range ss.Samples {
		key := fmt.Sprint(s.Values)
		if i, ok := index[key]; ok {
			out.Samples[i].NumOccurrences += s.NumOccurrences
			continue
		}
		index[key] = len(out.Samples)
		out.Samples = append(out.Samples, Sample{
			Values:         append([]int(nil), s.Values...),
			Energy:         s.Energy,
			NumOccurrences: s.NumOccurrences,
		})
	}
	return out
}

// Lowest returns the sample with the lowest energy, or false if the set is
// empty or no sample has a known energy. Ties keep the earliest sample.
func (ss *SampleSet) Lowest() (Sample, bool) {
	best := -1
	for i, s := range ss.Samples {
		if math.IsNaN(s.Energy) {
			continue
		}
		if best < 0 || s.Energy < ss.Samples[best].Energy {
			best = i
		}
	}
	if best < 0 {
		return Sample{}, false
	}
	return ss.Samples[best], true
}
