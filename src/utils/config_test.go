package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadAppConfig("")
		require.NoError(t, err)
		assert.Equal(t, 0.01, cfg.RiskFreeRate)
		assert.Equal(t, 0.2, cfg.Solver.InitialGuess)
		assert.Equal(t, 100, cfg.Solver.MaxIterations)
	})

	t.Run("partial yaml only overrides what it names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("risk_free_rate: 0.045\nsolver:\n  max_sigma: 3.0\n"), 0644))

		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 0.045, cfg.RiskFreeRate)
		assert.Equal(t, 3.0, cfg.Solver.MaxSigma)
		assert.Equal(t, 100, cfg.Solver.MaxIterations)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadAppConfig("/nonexistent/config.yaml")
		assert.Error(t, err)
	})
}
