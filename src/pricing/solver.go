package pricing

import (
	"fmt"
	"math"

	"github.com/optionsage/optionsage/src/models"
)

// SolverConfig tunes the Newton-Raphson implied volatility solver. The
// sigma bounds are a sanity clamp applied after every step; the base
// iteration would otherwise be free to diverge on pathological inputs.
type SolverConfig struct {
	InitialGuess  float64 `yaml:"initial_guess"`
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
	VegaFloor     float64 `yaml:"vega_floor"`
	MinSigma      float64 `yaml:"min_sigma"`
	MaxSigma      float64 `yaml:"max_sigma"`
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		InitialGuess:  0.2,
		MaxIterations: 100,
		Tolerance:     1e-5,
		VegaFloor:     1e-8,
		MinSigma:      1e-4,
		MaxSigma:      5.0,
	}
}

type IVResult struct {
	Sigma      float64
	Iterations int
	Converged  bool
}

type Solver struct {
	cfg SolverConfig
}

func NewSolver(cfg SolverConfig) *Solver {
	if cfg.MaxIterations <= 0 {
		cfg = DefaultSolverConfig()
	}
	return &Solver{cfg: cfg}
}

// ImpliedVolatility inverts the Black-Scholes price for sigma. Degenerate
// inputs and non-convergence both return NumericDegenerateErr; the result
// still carries the last iterate so callers that prefer a best-effort
// estimate over a hard failure can inspect Converged instead.
func (s *Solver) ImpliedVolatility(side models.OptionType, spot, strike, t, r, observedPrice float64) (IVResult, error) {
	if spot <= 0 || strike <= 0 || t <= 0 || observedPrice <= 0 {
		return IVResult{}, fmt.Errorf("ImpliedVolatility: degenerate input (spot=%v strike=%v t=%v price=%v): %w", spot, strike, t, observedPrice, models.NumericDegenerateErr)
	}

	sigma := s.cfg.InitialGuess

	for i := 0; i < s.cfg.MaxIterations; i++ {
		price := Price(side, spot, strike, t, r, sigma)
		priceDiff := observedPrice - price

		if math.Abs(priceDiff) < s.cfg.Tolerance {
			return IVResult{Sigma: sigma, Iterations: i, Converged: true}, nil
		}

		vega := Vega(spot, strike, t, r, sigma)
		sigma += priceDiff / (vega + s.cfg.VegaFloor)
		sigma = s.clamp(sigma)
	}

	result := IVResult{Sigma: sigma, Iterations: s.cfg.MaxIterations}
	return result, fmt.Errorf("ImpliedVolatility: no convergence after %d iterations (sigma=%v): %w", s.cfg.MaxIterations, sigma, models.NumericDegenerateErr)
}

func (s *Solver) clamp(sigma float64) float64 {
	if sigma < s.cfg.MinSigma || math.IsNaN(sigma) {
		return s.cfg.MinSigma
	}
	if sigma > s.cfg.MaxSigma {
		return s.cfg.MaxSigma
	}
	return sigma
}
