package pricing

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

const tradingDaysPerYear = 252

// RealizedVolatility annualizes the standard deviation of daily log returns
// over the given close series. It is an observability column and an optional
// solver starting point, not part of the model input schema.
func RealizedVolatility(closes []float64) (float64, error) {
	if len(closes) < 2 {
		return 0, fmt.Errorf("RealizedVolatility: need at least 2 closes, got %d", len(closes))
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			continue
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}

	if len(returns) == 0 {
		return 0, fmt.Errorf("RealizedVolatility: no valid returns in %d closes", len(closes))
	}

	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, fmt.Errorf("RealizedVolatility: failed to compute standard deviation: %w", err)
	}

	return sd * math.Sqrt(tradingDaysPerYear), nil
}
