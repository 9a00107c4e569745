package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRelaxConfig_OmittedKeysKeepDefaults(t *testing.T) {
	// GIVEN a config that only sets trials and the method
	path := writeFile(t, "relax.yaml", "trials: 4\noptimizer:\n  method: lbfgs\n")

	cfg, err := LoadRelaxConfig(path)

	// THEN the rest comes from DefaultRelaxConfig
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Trials)
	assert.Equal(t, "lbfgs", cfg.Optimizer.Method)
	assert.True(t, cfg.Symmetrize)
	assert.Equal(t, DefaultRelaxConfig().PSDEpsilon, cfg.PSDEpsilon)
}

func TestLoadRelaxConfig_UnknownFieldIsError(t *testing.T) {
	// GIVEN a typo in a key name
	path := writeFile(t, "relax.yaml", "trails: 4\n")

	_, err := LoadRelaxConfig(path)

	// THEN strict parsing rejects it
	assert.Error(t, err)
}

func TestLoadRelaxConfig_MissingFile(t *testing.T) {
	_, err := LoadRelaxConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRelaxConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RelaxConfig)
	}{
		{"zero trials", func(c *RelaxConfig) { c.Trials = 0 }},
		{"negative psd epsilon", func(c *RelaxConfig) { c.PSDEpsilon = -1 }},
		{"epsilon above half", func(c *RelaxConfig) { c.RegularizeEpsilon = 0.6 }},
		{"unknown method", func(c *RelaxConfig) { c.Optimizer.Method = "newton" }},
		{"negative iterations", func(c *RelaxConfig) { c.Optimizer.MaxIterations = -1 }},
	}
	require.NoError(t, DefaultRelaxConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRelaxConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyRelaxFlags_OnlyChangedFlagsOverride(t *testing.T) {
	// GIVEN a file config and a command where only --trials was set
	cmd := &cobra.Command{Use: "relax"}
	cmd.Flags().IntVar(&relaxTrials, "trials", 10, "")
	cmd.Flags().BoolVar(&relaxSymmetrize, "symmetrize", true, "")
	cmd.Flags().StringVar(&relaxMethod, "method", "bfgs", "")
	cmd.Flags().BoolVar(&relaxRegularize, "regularize", false, "")
	cmd.Flags().Float64Var(&relaxRegularizeEpsilon, "epsilon", 0.5, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--trials", "3"}))

	cfg := DefaultRelaxConfig()
	cfg.Optimizer.Method = "nelder-mead"
	cfg.Symmetrize = false

	applyRelaxFlags(cmd, &cfg)

	// THEN the flag wins for trials and the file wins elsewhere
	assert.Equal(t, 3, cfg.Trials)
	assert.Equal(t, "nelder-mead", cfg.Optimizer.Method)
	assert.False(t, cfg.Symmetrize)
}
