package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/qubo/qubo"
	"github.com/inference-sim/qubo/qubo/relax"
	_ "github.com/inference-sim/qubo/qubo/relax/convex"
	"github.com/inference-sim/qubo/qubo/relax/gonumopt"
	"github.com/inference-sim/qubo/qubo/store"
)

var (
	relaxQUBO              string  // QUBO model path
	relaxConfigPath        string  // Optional relax.yaml
	relaxTrials            int     // Random restarts on the optimizer path
	relaxSymmetrize        bool    // Symmetrize the coefficient matrix
	relaxSeed              int64   // Seed for trial start points
	relaxMethod            string  // gonum/optimize method
	relaxRegularize        bool    // Add regularized angles to the report
	relaxRegularizeEpsilon float64 // Clamp band for regularization
	relaxOut               string  // Report path
)

// runRelaxation solves the relaxation of m under cfg and builds the report.
func runRelaxation(m *qubo.Model, cfg RelaxConfig, seed int64) (store.RelaxationReport, error) {
	opt, err := gonumopt.New(gonumopt.Method(cfg.Optimizer.Method))
	if err != nil {
		return store.RelaxationReport{}, err
	}
	opt.MaxIterations = cfg.Optimizer.MaxIterations

	opts := relax.DefaultOptions()
	opts.Trials = cfg.Trials
	opts.Symmetrize = cfg.Symmetrize
	opts.PSDEpsilon = cfg.PSDEpsilon
	opts.Optimizer = opt
	opts.RNG = qubo.NewPartitionedRNG(qubo.NewRunKey(seed)).ForSubsystem(qubo.SubsystemRelaxation)

	res, err := relax.SolveRelaxation(m, opts)
	if err != nil {
		return store.RelaxationReport{}, err
	}

	var angles []float64
	if cfg.Regularize {
		if angles, err = relax.Regularize(res.Solution, cfg.RegularizeEpsilon); err != nil {
			return store.RelaxationReport{}, err
		}
	}
	return store.NewRelaxationReport(res, seed, angles), nil
}

// applyRelaxFlags overrides config values with explicitly set flags.
func applyRelaxFlags(cmd *cobra.Command, cfg *RelaxConfig) {
	if cmd.Flags().Changed("trials") {
		cfg.Trials = relaxTrials
	}
	if cmd.Flags().Changed("symmetrize") {
		cfg.Symmetrize = relaxSymmetrize
	}
	if cmd.Flags().Changed("method") {
		cfg.Optimizer.Method = relaxMethod
	}
	if cmd.Flags().Changed("regularize") {
		cfg.Regularize = relaxRegularize
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.RegularizeEpsilon = relaxRegularizeEpsilon
	}
}

var relaxCmd = &cobra.Command{
	Use:   "relax",
	Short: "Solve the continuous relaxation of a QUBO over the unit box",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := DefaultRelaxConfig()
		if relaxConfigPath != "" {
			loaded, err := LoadRelaxConfig(relaxConfigPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			cfg = loaded
		}
		applyRelaxFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid relax options: %v", err)
		}

		m, err := store.LoadModel(relaxQUBO)
		if err != nil {
			logrus.Fatalf("Failed to load model: %v", err)
		}
		report, err := runRelaxation(m, cfg, relaxSeed)
		if err != nil {
			logrus.Fatalf("Relaxation failed: %v", err)
		}
		if err := store.SaveReport(relaxOut, report); err != nil {
			logrus.Fatalf("Failed to save report: %v", err)
		}
		logrus.Infof("Relaxation %s: path=%s value=%g -> %s", report.RunID, report.Path, report.Value, relaxOut)
	},
}

func init() {
	defaults := DefaultRelaxConfig()
	relaxCmd.Flags().StringVar(&relaxQUBO, "qubo", "", "QUBO model path")
	relaxCmd.Flags().StringVar(&relaxConfigPath, "config", "", "Path to relax YAML config (flags override its values)")
	relaxCmd.Flags().IntVar(&relaxTrials, "trials", defaults.Trials, "Random restarts when the matrix is not PSD")
	relaxCmd.Flags().BoolVar(&relaxSymmetrize, "symmetrize", defaults.Symmetrize, "Replace P with (P+Pᵀ)/2 before solving")
	relaxCmd.Flags().Int64Var(&relaxSeed, "seed", 42, "Seed for trial start points")
	relaxCmd.Flags().StringVar(&relaxMethod, "method", defaults.Optimizer.Method, "Optimizer method (bfgs, lbfgs, nelder-mead, gradient-descent)")
	relaxCmd.Flags().BoolVar(&relaxRegularize, "regularize", false, "Add regularized rotation angles to the report")
	relaxCmd.Flags().Float64Var(&relaxRegularizeEpsilon, "epsilon", defaults.RegularizeEpsilon, "Regularization clamp band in [0, 0.5]")
	relaxCmd.Flags().StringVar(&relaxOut, "out", "relaxation.json", "Report path (.json, .yaml or .msgpack)")
	_ = relaxCmd.MarkFlagRequired("qubo")

	rootCmd.AddCommand(relaxCmd)
}
