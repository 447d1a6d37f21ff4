package services

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/optionsage/optionsage/src/models"
	"github.com/optionsage/optionsage/src/pricing"
)

const daysPerYear = 365.0

// Enricher turns a normalized chain plus a price snapshot into the fixed
// feature schema the models consume. Missing or degenerate values become
// 0.0 rather than errors so the column contract never varies.
type Enricher struct {
	Solver       *pricing.Solver
	RiskFreeRate float64
	Now          func() time.Time
}

func NewEnricher(solver *pricing.Solver, riskFreeRate float64) *Enricher {
	return &Enricher{
		Solver:       solver,
		RiskFreeRate: riskFreeRate,
		Now:          time.Now,
	}
}

func (e *Enricher) Enrich(chain *models.OptionChain, series *models.PriceSeries) ([]models.FeatureRow, error) {
	if chain == nil || len(chain.Contracts) == 0 {
		return nil, fmt.Errorf("Enrich: empty chain: %w", models.NotFoundErr)
	}

	// UTC on both sides keeps the expiration arithmetic timezone-aware.
	now := e.Now().UTC()
	timeToMaturity := chain.Expiration.UTC().Sub(now).Hours() / 24 / daysPerYear

	currentPrice := series.CurrentClose()

	realizedVol, err := pricing.RealizedVolatility(series.Closes())
	if err != nil {
		log.Warnf("Enrich: realized volatility unavailable for %s: %v", chain.Underlying, err)
		realizedVol = 0
	}

	rows := make([]models.FeatureRow, 0, len(chain.Contracts))
	for _, contract := range chain.Contracts {
		row := models.FeatureRow{
			Symbol:             contract.Symbol,
			Close:              currentPrice,
			Strike:             contract.Strike,
			TimeToMaturity:     timeToMaturity,
			Moneyness:          contract.Strike/currentPrice - 1,
			LastPrice:          contract.LastPrice,
			Volume:             float64(contract.Volume),
			OpenInterest:       float64(contract.OpenInterest),
			SideEncoded:        contract.Type.Encoded(),
			RealizedVolatility: realizedVol,
		}

		row.ImpliedVolatility = e.solveIV(contract, currentPrice, timeToMaturity)

		if row.ImpliedVolatility > 0 && timeToMaturity > 0 {
			row.Greeks = pricing.Greeks(contract.Type, currentPrice, contract.Strike, timeToMaturity, e.RiskFreeRate, row.ImpliedVolatility)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// solveIV inverts the observed last price to an implied volatility. When the
// solver cannot produce a converged estimate the provider-reported IV is
// used, defaulting to 0.0 when that too is absent.
func (e *Enricher) solveIV(contract models.OptionContract, currentPrice, timeToMaturity float64) float64 {
	result, err := e.Solver.ImpliedVolatility(contract.Type, currentPrice, contract.Strike, timeToMaturity, e.RiskFreeRate, contract.LastPrice)
	if err == nil {
		return result.Sigma
	}

	if !errors.Is(err, models.NumericDegenerateErr) {
		log.Errorf("Enrich: iv solve failed for %s: %v", contract.Symbol, err)
	} else {
		log.Warnf("Enrich: iv solve degenerate for %s: %v", contract.Symbol, err)
	}

	return contract.RawIV
}
