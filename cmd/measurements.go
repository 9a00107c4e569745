package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/qubo/qubo"
	"github.com/inference-sim/qubo/qubo/store"
)

var (
	measurementsIn        string
	measurementsQUBO      string
	measurementsFlip      bool
	measurementsAggregate bool
	measurementsOut       string
)

// buildSampleSet turns a bitstrings file into a sample set, evaluated against
// the model at quboPath when one is given.
func buildSampleSet(in, quboPath string, flip, aggregate bool) (*qubo.SampleSet, error) {
	bits, err := store.LoadBitstrings(in)
	if err != nil {
		return nil, err
	}
	var m *qubo.Model
	if quboPath != "" {
		if m, err = store.LoadModel(quboPath); err != nil {
			return nil, err
		}
	}
	ss, err := qubo.BitstringsToSampleSet(bits, m, flip)
	if err != nil {
		return nil, err
	}
	if aggregate {
		ss = ss.Aggregate()
	}
	return ss, nil
}

var measurementsCmd = &cobra.Command{
	Use:   "measurements",
	Short: "Convert measured bitstrings into a sample set",
	Run: func(cmd *cobra.Command, args []string) {
		ss, err := buildSampleSet(measurementsIn, measurementsQUBO, measurementsFlip, measurementsAggregate)
		if err != nil {
			logrus.Fatalf("Failed to build sample set: %v", err)
		}
		if err := store.SaveSampleSet(measurementsOut, ss); err != nil {
			logrus.Fatalf("Failed to save sample set: %v", err)
		}
		if best, ok := ss.Lowest(); ok {
			logrus.Infof("%d samples, lowest energy %g (x%d)", len(ss.Samples), best.Energy, best.NumOccurrences)
		} else {
			logrus.Infof("%d samples, energies not evaluated", len(ss.Samples))
		}
	},
}

func init() {
	measurementsCmd.Flags().StringVar(&measurementsIn, "in", "", "Bitstrings document path")
	measurementsCmd.Flags().StringVar(&measurementsQUBO, "qubo", "", "Optional QUBO model used to evaluate energies")
	measurementsCmd.Flags().BoolVar(&measurementsFlip, "flip", false, "Invert every bit (1-b) before use")
	measurementsCmd.Flags().BoolVar(&measurementsAggregate, "aggregate", false, "Merge identical samples")
	measurementsCmd.Flags().StringVar(&measurementsOut, "out", "sampleset.json", "Output sample set path")
	_ = measurementsCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(measurementsCmd)
}
