// Package store reads and writes models, sample sets, measurement bitstrings
// and relaxation reports as JSON, YAML or msgpack documents.
//
// The Load/Save functions pick the format from the file extension; the
// Read/Write functions take it explicitly.
package store

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/qubo/qubo"
)

// ReadModel decodes a ModelDocument from r and builds the model.
func ReadModel(r io.Reader, f Format) (*qubo.Model, error) {
	var doc ModelDocument
	if err := decode(r, f, &doc); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	return doc.Model()
}

// WriteModel encodes m to w.
func WriteModel(w io.Writer, f Format, m *qubo.Model) error {
	if m == nil {
		return fmt.Errorf("writing model: nil model: %w", qubo.ErrValidation)
	}
	if err := encode(w, f, NewModelDocument(m)); err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	return nil
}

// ReadSampleSet decodes a SampleSetDocument from r.
func ReadSampleSet(r io.Reader, f Format) (*qubo.SampleSet, error) {
	var doc SampleSetDocument
	if err := decode(r, f, &doc); err != nil {
		return nil, fmt.Errorf("decoding sample set: %w", err)
	}
	return doc.SampleSet()
}

// WriteSampleSet encodes ss to w.
func WriteSampleSet(w io.Writer, f Format, ss *qubo.SampleSet) error {
	if ss == nil {
		return fmt.Errorf("writing sample set: nil sample set: %w", qubo.ErrValidation)
	}
	if err := encode(w, f, NewSampleSetDocument(ss)); err != nil {
		return fmt.Errorf("encoding sample set: %w", err)
	}
	return nil
}

// ReadBitstrings decodes a BitstringsDocument from r.
func ReadBitstrings(r io.Reader, f Format) ([]qubo.Bitstring, error) {
	var doc BitstringsDocument
	if err := decode(r, f, &doc); err != nil {
		return nil, fmt.Errorf("decoding bitstrings: %w", err)
	}
	return doc.Bits()
}

// WriteBitstrings encodes bits to w.
func WriteBitstrings(w io.Writer, f Format, bits []qubo.Bitstring) error {
	if err := encode(w, f, NewBitstringsDocument(bits)); err != nil {
		return fmt.Errorf("encoding bitstrings: %w", err)
	}
	return nil
}

// ReadReport decodes a RelaxationReport from r.
func ReadReport(r io.Reader, f Format) (*RelaxationReport, error) {
	var rep RelaxationReport
	if err := decode(r, f, &rep); err != nil {
		return nil, fmt.Errorf("decoding relaxation report: %w", err)
	}
	if len(rep.Variables) != len(rep.Solution) {
		return nil, fmt.Errorf("relaxation report: %d variables for %d solution values: %w",
			len(rep.Variables), len(rep.Solution), qubo.ErrValidation)
	}
	return &rep, nil
}

// WriteReport encodes rep to w.
func WriteReport(w io.Writer, f Format, rep RelaxationReport) error {
	if err := encode(w, f, rep); err != nil {
		return fmt.Errorf("encoding relaxation report: %w", err)
	}
	return nil
}

// LoadModel reads a model file.
func LoadModel(path string) (*qubo.Model, error) {
	var m *qubo.Model
	err := load(path, func(r io.Reader, f Format) (err error) {
		m, err = ReadModel(r, f)
		return err
	})
	return m, err
}

// SaveModel writes m to path.
func SaveModel(path string, m *qubo.Model) error {
	return save(path, func(w io.Writer, f Format) error { return WriteModel(w, f, m) })
}

// LoadSampleSet reads a sample set file.
func LoadSampleSet(path string) (*qubo.SampleSet, error) {
	var ss *qubo.SampleSet
	err := load(path, func(r io.Reader, f Format) (err error) {
		ss, err = ReadSampleSet(r, f)
		return err
	})
	return ss, err
}

// SaveSampleSet writes ss to path.
func SaveSampleSet(path string, ss *qubo.SampleSet) error {
	return save(path, func(w io.Writer, f Format) error { return WriteSampleSet(w, f, ss) })
}

// LoadBitstrings reads a bitstrings file.
func LoadBitstrings(path string) ([]qubo.Bitstring, error) {
	var bits []qubo.Bitstring
	err := load(path, func(r io.Reader, f Format) (err error) {
		bits, err = ReadBitstrings(r, f)
		return err
	})
	return bits, err
}

// SaveBitstrings writes bits to path.
func SaveBitstrings(path string, bits []qubo.Bitstring) error {
	return save(path, func(w io.Writer, f Format) error { return WriteBitstrings(w, f, bits) })
}

// LoadReport reads a relaxation report file.
func LoadReport(path string) (*RelaxationReport, error) {
	var rep *RelaxationReport
	err := load(path, func(r io.Reader, f Format) (err error) {
		rep, err = ReadReport(r, f)
		return err
	})
	return rep, err
}

// SaveReport writes rep to path.
func SaveReport(path string, rep RelaxationReport) error {
	return save(path, func(w io.Writer, f Format) error { return WriteReport(w, f, rep) })
}

func load(path string, read func(io.Reader, Format) error) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()
	if err := read(file, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("store: loaded %s (%s)", path, f)
	return nil
}

func save(path string, write func(io.Writer, Format) error) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(file, f); err != nil {
		_ = file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logrus.Debugf("store: wrote %s (%s)", path, f)
	return nil
}
