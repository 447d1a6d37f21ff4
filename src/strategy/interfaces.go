package strategy

import (
	"context"

	"github.com/optionsage/optionsage/src/models"
)

// PricePredictionModel is the externally-owned per-ticker price model. The
// orchestrator never constructs or mutates model weights; it only checks for
// existence (via the ModelMissingErr variant), triggers training, and
// predicts. Train is long-running and blocks until the artifact is
// published.
type PricePredictionModel interface {
	Predict(ctx context.Context, symbol models.StockSymbol, window [][]float64) (float64, error)
	Train(ctx context.Context, symbol models.StockSymbol) error
}

// StrategyClassifier maps a single feature vector to a strategy label.
// A missing classifier degrades to a neutral stance upstream rather than
// failing the request.
type StrategyClassifier interface {
	Classify(ctx context.Context, features []float64) (models.StrategyLabel, error)
}
