package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/qubo/qubo/relax"
	"github.com/inference-sim/qubo/qubo/relax/gonumopt"
)

// defaultCLITrials is the number of random restarts the relax command uses
// when neither the config file nor --trials sets one.
const defaultCLITrials = 10

// OptimizerConfig selects the gonum/optimize method for the non-PSD path.
type OptimizerConfig struct {
	Method        string `yaml:"method"`
	MaxIterations int    `yaml:"max_iterations"`
}

// RelaxConfig is the relax.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type RelaxConfig struct {
	Trials            int             `yaml:"trials"`
	Symmetrize        bool            `yaml:"symmetrize"`
	PSDEpsilon        float64         `yaml:"psd_epsilon"`
	Regularize        bool            `yaml:"regularize"`
	RegularizeEpsilon float64         `yaml:"regularize_epsilon"`
	Optimizer         OptimizerConfig `yaml:"optimizer"`
}

// DefaultRelaxConfig returns the values used for keys a config file omits.
func DefaultRelaxConfig() RelaxConfig {
	return RelaxConfig{
		Trials:            defaultCLITrials,
		Symmetrize:        true,
		PSDEpsilon:        relax.DefaultPSDEpsilon,
		RegularizeEpsilon: relax.DefaultRegularizationEpsilon,
		Optimizer:         OptimizerConfig{Method: string(gonumopt.DefaultMethod)},
	}
}

// LoadRelaxConfig parses path over DefaultRelaxConfig with strict field
// checking, so typos are errors, and validates the result.
func LoadRelaxConfig(path string) (RelaxConfig, error) {
	cfg := DefaultRelaxConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading relax config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing relax config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("relax config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise only fail deep inside a solve.
func (c RelaxConfig) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("trials must be at least 1, got %d", c.Trials)
	}
	if c.PSDEpsilon < 0 {
		return fmt.Errorf("psd_epsilon must be non-negative, got %g", c.PSDEpsilon)
	}
	if c.RegularizeEpsilon < 0 || c.RegularizeEpsilon > 0.5 {
		return fmt.Errorf("regularize_epsilon must be in [0, 0.5], got %g", c.RegularizeEpsilon)
	}
	if c.Optimizer.Method != "" && !gonumopt.IsValidMethod(c.Optimizer.Method) {
		return fmt.Errorf("unknown optimizer method %q", c.Optimizer.Method)
	}
	if c.Optimizer.MaxIterations < 0 {
		return fmt.Errorf("optimizer.max_iterations must be non-negative, got %d", c.Optimizer.MaxIterations)
	}
	return nil
}
