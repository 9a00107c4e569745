package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/qubo/qubo"
	"github.com/inference-sim/qubo/qubo/store"
)

var (
	evaluateQUBO      string
	evaluateBitstring string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Print the energy of a QUBO on one bitstring",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := store.LoadModel(evaluateQUBO)
		if err != nil {
			logrus.Fatalf("Failed to load model: %v", err)
		}
		bits, err := parseBitstring(evaluateBitstring)
		if err != nil {
			logrus.Fatalf("Invalid --bitstring: %v", err)
		}
		energy, err := qubo.EvaluateBitstring(m, bits)
		if err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %g\n", qubo.Bitstring(bits), energy)
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateQUBO, "qubo", "", "QUBO model path")
	evaluateCmd.Flags().StringVar(&evaluateBitstring, "bitstring", "", "Bitstring, e.g. 0110 or 0,1,1,0")
	_ = evaluateCmd.MarkFlagRequired("qubo")
	_ = evaluateCmd.MarkFlagRequired("bitstring")

	rootCmd.AddCommand(evaluateCmd)
}
