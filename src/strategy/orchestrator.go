package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/optionsage/optionsage/src/models"
)

// TimeSteps is the fixed lookback window of the price predictor. Fewer rows
// than this is a hard precondition failure, not a warning.
const TimeSteps = 60

// Orchestrator drives a prediction request from feature rows to a price
// point plus a strategy recommendation. A missing price model is remediated
// by exactly one training attempt followed by exactly one prediction retry;
// a missing classifier degrades to a neutral hold recommendation.
type Orchestrator struct {
	registry   *ModelRegistry
	classifier StrategyClassifier
}

func NewOrchestrator(registry *ModelRegistry, classifier StrategyClassifier) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		classifier: classifier,
	}
}

func (o *Orchestrator) PredictAndRecommend(ctx context.Context, symbol models.StockSymbol, rows []models.FeatureRow) (float64, models.StrategyRecommendation, error) {
	requestID := uuid.New()
	logFields := log.Fields{"requestID": requestID, "symbol": symbol}

	if len(rows) < TimeSteps {
		return 0, models.StrategyRecommendation{}, fmt.Errorf("PredictAndRecommend: have %d feature rows, need %d: %w", len(rows), TimeSteps, models.InsufficientDataErr)
	}

	window := models.FeatureWindow(rows[len(rows)-TimeSteps:])

	predictedClose, err := o.predictWithRetry(ctx, symbol, window, logFields)
	if err != nil {
		return 0, models.StrategyRecommendation{}, err
	}

	log.WithFields(logFields).Infof("PredictAndRecommend: predicted close %.4f", predictedClose)

	label := o.classify(ctx, rows[len(rows)-1], logFields)

	recommendation := models.StrategyRecommendation{
		Name:       label,
		Confidence: "High",
		Execution:  ExecutionSteps(label),
	}

	return predictedClose, recommendation, nil
}

// predictWithRetry invokes the price model, remediating a missing artifact
// with a single training run and a single retry. The bound is explicit:
// attempt, train, attempt, stop.
func (o *Orchestrator) predictWithRetry(ctx context.Context, symbol models.StockSymbol, window [][]float64, logFields log.Fields) (float64, error) {
	predictedClose, err := o.registry.Predict(ctx, symbol, window)
	if err == nil {
		return predictedClose, nil
	}

	if !errors.Is(err, models.ModelMissingErr) {
		return 0, fmt.Errorf("predictWithRetry: prediction failed for %s: %w", symbol, err)
	}

	log.WithFields(logFields).Warnf("predictWithRetry: price model missing for %s, triggering training", symbol)

	if err := o.registry.EnsureTrained(ctx, symbol); err != nil {
		return 0, fmt.Errorf("predictWithRetry: training failed for %s: %v: %w", symbol, err, models.PredictionUnavailableErr)
	}

	predictedClose, err = o.registry.Predict(ctx, symbol, window)
	if err != nil {
		return 0, fmt.Errorf("predictWithRetry: retry failed for %s: %v: %w", symbol, err, models.PredictionUnavailableErr)
	}

	return predictedClose, nil
}

// classify runs the strategy classifier on the latest row only. Any
// classifier failure degrades to hold: the strategy label is advisory,
// unlike the price point.
func (o *Orchestrator) classify(ctx context.Context, latest models.FeatureRow, logFields log.Fields) models.StrategyLabel {
	label, err := o.classifier.Classify(ctx, latest.Vector())
	if err != nil {
		if errors.Is(err, models.ModelMissingErr) {
			log.WithFields(logFields).Warnf("classify: classifier missing, defaulting to hold")
		} else {
			log.WithFields(logFields).Errorf("classify: classifier failed, defaulting to hold: %v", err)
		}
		return models.StrategyHold
	}

	return label
}
