package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/qubo/qubo"
	"github.com/inference-sim/qubo/qubo/store"
)

var (
	convertIn  string
	convertOut string
)

// convertFile loads a model, applies conv and saves the result.
func convertFile(in, out string, conv func(*qubo.Model) (*qubo.Model, error)) (*qubo.Model, error) {
	m, err := store.LoadModel(in)
	if err != nil {
		return nil, err
	}
	converted, err := conv(m)
	if err != nil {
		return nil, err
	}
	if err := store.SaveModel(out, converted); err != nil {
		return nil, err
	}
	return converted, nil
}

// --- qubo to-ising ---

var toIsingCmd = &cobra.Command{
	Use:   "to-ising",
	Short: "Convert a QUBO (BINARY) model to Ising (SPIN) form",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := convertFile(convertIn, convertOut, qubo.QUBOToIsing)
		if err != nil {
			logrus.Fatalf("QUBO to Ising conversion failed: %v", err)
		}
		logrus.Infof("Wrote Ising model with %d variables to %s", m.NumVariables(), convertOut)
	},
}

// --- qubo to-qubo ---

var toQUBOCmd = &cobra.Command{
	Use:   "to-qubo",
	Short: "Convert an Ising (SPIN) model to QUBO (BINARY) form",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := convertFile(convertIn, convertOut, qubo.IsingToQUBO)
		if err != nil {
			logrus.Fatalf("Ising to QUBO conversion failed: %v", err)
		}
		logrus.Infof("Wrote QUBO model with %d variables to %s", m.NumVariables(), convertOut)
	},
}

func init() {
	for _, c := range []*cobra.Command{toIsingCmd, toQUBOCmd} {
		c.Flags().StringVar(&convertIn, "in", "", "Input model path")
		c.Flags().StringVar(&convertOut, "out", "", "Output model path")
		_ = c.MarkFlagRequired("in")
		_ = c.MarkFlagRequired("out")
		rootCmd.AddCommand(c)
	}
}
