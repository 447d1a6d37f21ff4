package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig carries the pipeline tunables that are not credentials. Zero
// values are replaced by defaults on load, so a partial yaml file only
// overrides what it names.
type AppConfig struct {
	RiskFreeRate float64 `yaml:"risk_free_rate"`
	Solver       struct {
		InitialGuess  float64 `yaml:"initial_guess"`
		MaxIterations int     `yaml:"max_iterations"`
		Tolerance     float64 `yaml:"tolerance"`
		VegaFloor     float64 `yaml:"vega_floor"`
		MinSigma      float64 `yaml:"min_sigma"`
		MaxSigma      float64 `yaml:"max_sigma"`
	} `yaml:"solver"`
	ExportDir string `yaml:"export_dir"`
}

func DefaultAppConfig() AppConfig {
	var cfg AppConfig
	cfg.RiskFreeRate = 0.01
	cfg.Solver.InitialGuess = 0.2
	cfg.Solver.MaxIterations = 100
	cfg.Solver.Tolerance = 1e-5
	cfg.Solver.VegaFloor = 1e-8
	cfg.Solver.MinSigma = 1e-4
	cfg.Solver.MaxSigma = 5.0
	cfg.ExportDir = "data"
	return cfg
}

// LoadAppConfig reads the yaml config at path, overlaying defaults. An empty
// path returns the defaults unchanged.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("LoadAppConfig: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("LoadAppConfig: failed to parse %s: %w", path, err)
	}

	if cfg.Solver.MaxIterations <= 0 {
		cfg.Solver.MaxIterations = 100
	}
	if cfg.Solver.MaxSigma <= 0 {
		cfg.Solver.MaxSigma = 5.0
	}

	return cfg, nil
}
