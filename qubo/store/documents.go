package store

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/inference-sim/qubo/qubo"
	"github.com/inference-sim/qubo/qubo/relax"
)

// LinearTerm is one linear bias of a model document.
type LinearTerm struct {
	Variable int     `json:"variable" yaml:"variable" msgpack:"variable"`
	Bias     float64 `json:"bias" yaml:"bias" msgpack:"bias"`
}

// QuadraticTerm is one quadratic bias of a model document.
type QuadraticTerm struct {
	U    int     `json:"u" yaml:"u" msgpack:"u"`
	V    int     `json:"v" yaml:"v" msgpack:"v"`
	Bias float64 `json:"bias" yaml:"bias" msgpack:"bias"`
}

// ModelDocument is the serialized form of a qubo.Model. Terms are sorted by
// variable and by pair so documents diff cleanly.
type ModelDocument struct {
	Vartype   qubo.Vartype    `json:"vartype" yaml:"vartype" msgpack:"vartype"`
	Offset    float64         `json:"offset" yaml:"offset" msgpack:"offset"`
	Linear    []LinearTerm    `json:"linear" yaml:"linear" msgpack:"linear"`
	Quadratic []QuadraticTerm `json:"quadratic" yaml:"quadratic" msgpack:"quadratic"`
}

// NewModelDocument captures m.
func NewModelDocument(m *qubo.Model) ModelDocument {
	doc := ModelDocument{
		Vartype:   m.Vartype(),
		Offset:    m.Offset(),
		Linear:    make([]LinearTerm, 0, m.NumVariables()),
		Quadratic: make([]QuadraticTerm, 0, m.NumInteractions()),
	}
	for _, v := range m.Variables() {
		doc.Linear = append(doc.Linear, LinearTerm{Variable: v, Bias: m.Linear(v)})
	}
	for _, p := range m.Interactions() {
		doc.Quadratic = append(doc.Quadratic, QuadraticTerm{U: p.U, V: p.V, Bias: m.Quadratic(p.U, p.V)})
	}
	return doc
}

// Model validates the document and builds the model. Repeated linear
// variables are an error; repeated pairs are summed like qubo.NewModel does
// for reversed keys.
func (d ModelDocument) Model() (*qubo.Model, error) {
	linear := make(map[int]float64, len(d.Linear))
	for _, t := range d.Linear {
		if _, dup := linear[t.Variable]; dup {
			return nil, fmt.Errorf("model document: variable %d listed twice: %w", t.Variable, qubo.ErrValidation)
		}
		linear[t.Variable] = t.Bias
	}
	quadratic := make(map[qubo.Pair]float64, len(d.Quadratic))
	for _, t := range d.Quadratic {
		if t.U == t.V {
			return nil, fmt.Errorf("model document: pair (%d,%d): self-interactions are not allowed: %w", t.U, t.V, qubo.ErrValidation)
		}
		quadratic[qubo.NewPair(t.U, t.V)] += t.Bias
	}
	m, err := qubo.NewModel(linear, quadratic, d.Offset, d.Vartype)
	if err != nil {
		return nil, fmt.Errorf("model document: %w", err)
	}
	return m, nil
}

// SampleDocument is one sample; a nil Energy stands for an unknown (NaN)
// energy, which JSON cannot represent.
type SampleDocument struct {
	Values         []int    `json:"values" yaml:"values" msgpack:"values"`
	Energy         *float64 `json:"energy" yaml:"energy" msgpack:"energy"`
	NumOccurrences int      `json:"num_occurrences" yaml:"num_occurrences" msgpack:"num_occurrences"`
}

// SampleSetDocument is the serialized form of a qubo.SampleSet.
type SampleSetDocument struct {
	Vartype   qubo.Vartype     `json:"vartype" yaml:"vartype" msgpack:"vartype"`
	Variables []int            `json:"variables" yaml:"variables" msgpack:"variables"`
	Samples   []SampleDocument `json:"samples" yaml:"samples" msgpack:"samples"`
}

// NewSampleSetDocument captures ss.
func NewSampleSetDocument(ss *qubo.SampleSet) SampleSetDocument {
	doc := SampleSetDocument{
		Vartype:   ss.Vartype,
		Variables: append([]int{}, ss.Variables...),
		Samples:   make([]SampleDocument, 0, len(ss.Samples)),
	}
	for _, s := range ss.Samples {
		sd := SampleDocument{Values: append([]int{}, s.Values...), NumOccurrences: s.NumOccurrences}
		if !math.IsNaN(s.Energy) {
			e := s.Energy
			sd.Energy = &e
		}
		doc.Samples = append(doc.Samples, sd)
	}
	return doc
}

// SampleSet validates the document and builds the sample set.
func (d SampleSetDocument) SampleSet() (*qubo.SampleSet, error) {
	if !qubo.IsValidVartype(string(d.Vartype)) {
		return nil, fmt.Errorf("sample set document: unknown vartype %q: %w", d.Vartype, qubo.ErrValidation)
	}
	ss := &qubo.SampleSet{
		Variables: append([]int{}, d.Variables...),
		Vartype:   d.Vartype,
		Samples:   make([]qubo.Sample, 0, len(d.Samples)),
	}
	for i, sd := range d.Samples {
		if len(sd.Values) != len(d.Variables) {
			return nil, fmt.Errorf("sample set document: sample %d has %d values for %d variables: %w",
				i, len(sd.Values), len(d.Variables), qubo.ErrValidation)
		}
		if sd.NumOccurrences < 1 {
			return nil, fmt.Errorf("sample set document: sample %d has %d occurrences: %w", i, sd.NumOccurrences, qubo.ErrValidation)
		}
		energy := math.NaN()
		if sd.Energy != nil {
			energy = *sd.Energy
		}
		ss.Samples = append(ss.Samples, qubo.Sample{
			Values:         append([]int{}, sd.Values...),
			Energy:         energy,
			NumOccurrences: sd.NumOccurrences,
		})
	}
	return ss, nil
}

// BitstringsDocument holds raw measurement results, one row of 0/1 values
// per shot.
type BitstringsDocument struct {
	Bitstrings [][]int `json:"bitstrings" yaml:"bitstrings" msgpack:"bitstrings"`
}

// NewBitstringsDocument captures bits.
func NewBitstringsDocument(bits []qubo.Bitstring) BitstringsDocument {
	doc := BitstringsDocument{Bitstrings: make([][]int, len(bits))}
	for i, b := range bits {
		row := make([]int, len(b))
		for j, bit := range b {
			row[j] = int(bit)
		}
		doc.Bitstrings[i] = row
	}
	return doc
}

// Bits validates the document and returns its bitstrings.
func (d BitstringsDocument) Bits() ([]qubo.Bitstring, error) {
	out := make([]qubo.Bitstring, len(d.Bitstrings))
	for i, row := range d.Bitstrings {
		b := make(qubo.Bitstring, len(row))
		for j, v := range row {
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("bitstrings document: row %d position %d holds %d: %w", i, j, v, qubo.ErrValidation)
			}
			b[j] = uint8(v)
		}
		out[i] = b
	}
	return out, nil
}

// RelaxationReport records one relaxation run.
type RelaxationReport struct {
	RunID     string     `json:"run_id" yaml:"run_id" msgpack:"run_id"`
	Seed      int64      `json:"seed" yaml:"seed" msgpack:"seed"`
	Path      relax.Path `json:"path" yaml:"path" msgpack:"path"`
	Value     float64    `json:"value" yaml:"value" msgpack:"value"`
	Variables []int      `json:"variables" yaml:"variables" msgpack:"variables"`
	Solution  []float64  `json:"solution" yaml:"solution" msgpack:"solution"`
	Trials    []float64  `json:"trial_values,omitempty" yaml:"trial_values,omitempty" msgpack:"trial_values,omitempty"`
	Angles    []float64  `json:"angles,omitempty" yaml:"angles,omitempty" msgpack:"angles,omitempty"`
}

// NewRelaxationReport captures res under a fresh run ID. angles may be nil.
func NewRelaxationReport(res *relax.Result, seed int64, angles []float64) RelaxationReport {
	return RelaxationReport{
		RunID:     uuid.NewString(),
		Seed:      seed,
		Path:      res.Path,
		Value:     res.Value,
		Variables: append([]int{}, res.Variables...),
		Solution:  append([]float64{}, res.Solution...),
		Trials:    append([]float64(nil), res.TrialValues...),
		Angles:    append([]float64(nil), angles...),
	}
}
