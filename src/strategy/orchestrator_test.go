package strategy

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optionsage/optionsage/src/models"
)

type fakePriceModel struct {
	predictErrs  []error
	value        float64
	predictCalls int
	trainCalls   int
	trainErr     error
	lastWindow   [][]float64
}

func (m *fakePriceModel) Predict(ctx context.Context, symbol models.StockSymbol, window [][]float64) (float64, error) {
	m.lastWindow = window
	call := m.predictCalls
	m.predictCalls++

	if call < len(m.predictErrs) && m.predictErrs[call] != nil {
		return 0, m.predictErrs[call]
	}

	return m.value, nil
}

func (m *fakePriceModel) Train(ctx context.Context, symbol models.StockSymbol) error {
	m.trainCalls++
	return m.trainErr
}

type fakeClassifier struct {
	label models.StrategyLabel
	err   error
}

func (c *fakeClassifier) Classify(ctx context.Context, features []float64) (models.StrategyLabel, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.label, nil
}

func featureRows(n int) []models.FeatureRow {
	rows := make([]models.FeatureRow, n)
	for i := range rows {
		rows[i] = models.FeatureRow{
			Close:       100 + float64(i),
			Strike:      100,
			SideEncoded: float64(i % 2),
		}
	}
	return rows
}

func newTestOrchestrator(model *fakePriceModel, classifier *fakeClassifier) *Orchestrator {
	return NewOrchestrator(NewModelRegistry(model), classifier)
}

func TestPredictAndRecommend(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		model := &fakePriceModel{value: 123.45}
		orchestrator := newTestOrchestrator(model, &fakeClassifier{label: models.StrategyIronCondor})

		predicted, recommendation, err := orchestrator.PredictAndRecommend(ctx, "XYZ", featureRows(80))
		require.NoError(t, err)

		assert.Equal(t, 123.45, predicted)
		assert.Equal(t, models.StrategyIronCondor, recommendation.Name)
		assert.NotEmpty(t, recommendation.Execution)
		assert.Equal(t, "High", recommendation.Confidence)

		// the model sees exactly the trailing TimeSteps rows
		require.Len(t, model.lastWindow, TimeSteps)
		assert.Len(t, model.lastWindow[0], len(models.FeatureColumns))
		assert.Equal(t, 100.0+79, model.lastWindow[TimeSteps-1][0])
	})

	t.Run("fewer rows than the window is a hard failure", func(t *testing.T) {
		model := &fakePriceModel{value: 1}
		orchestrator := newTestOrchestrator(model, &fakeClassifier{label: models.StrategyStraddle})

		_, _, err := orchestrator.PredictAndRecommend(ctx, "XYZ", featureRows(TimeSteps-1))
		assert.ErrorIs(t, err, models.InsufficientDataErr)
		assert.Zero(t, model.predictCalls)
	})

	t.Run("missing model trains once then retries once", func(t *testing.T) {
		model := &fakePriceModel{
			predictErrs: []error{models.ModelMissingErr},
			value:       55.5,
		}
		orchestrator := newTestOrchestrator(model, &fakeClassifier{label: models.StrategyStrangle})

		predicted, _, err := orchestrator.PredictAndRecommend(ctx, "XYZ", featureRows(60))
		require.NoError(t, err)

		assert.Equal(t, 55.5, predicted)
		assert.Equal(t, 1, model.trainCalls)
		assert.Equal(t, 2, model.predictCalls)
	})

	t.Run("training failure terminates without a retry", func(t *testing.T) {
		model := &fakePriceModel{
			predictErrs: []error{models.ModelMissingErr},
			trainErr:    models.TrainingFailedErr,
		}
		orchestrator := newTestOrchestrator(model, &fakeClassifier{label: models.StrategyStraddle})

		_, _, err := orchestrator.PredictAndRecommend(ctx, "XYZ", featureRows(60))
		assert.ErrorIs(t, err, models.PredictionUnavailableErr)
		assert.Equal(t, 1, model.trainCalls)
		assert.Equal(t, 1, model.predictCalls)
	})

	t.Run("second missing model is terminal", func(t *testing.T) {
		model := &fakePriceModel{
			predictErrs: []error{models.ModelMissingErr, models.ModelMissingErr},
		}
		orchestrator := newTestOrchestrator(model, &fakeClassifier{label: models.StrategyStraddle})

		_, _, err := orchestrator.PredictAndRecommend(ctx, "XYZ", featureRows(60))
		assert.ErrorIs(t, err, models.PredictionUnavailableErr)
		assert.Equal(t, 1, model.trainCalls)
		assert.Equal(t, 2, model.predictCalls)
	})

	t.Run("non-missing prediction error is not remediated", func(t *testing.T) {
		model := &fakePriceModel{
			predictErrs: []error{fmt.Errorf("model server unreachable")},
		}
		orchestrator := newTestOrchestrator(model, &fakeClassifier{label: models.StrategyStraddle})

		_, _, err := orchestrator.PredictAndRecommend(ctx, "XYZ", featureRows(60))
		require.Error(t, err)
		assert.NotErrorIs(t, err, models.PredictionUnavailableErr)
		assert.Zero(t, model.trainCalls)
	})

	t.Run("missing classifier degrades to hold", func(t *testing.T) {
		model := &fakePriceModel{value: 99}
		orchestrator := newTestOrchestrator(model, &fakeClassifier{err: models.ModelMissingErr})

		predicted, recommendation, err := orchestrator.PredictAndRecommend(ctx, "XYZ", featureRows(60))
		require.NoError(t, err)

		assert.Equal(t, 99.0, predicted)
		assert.Equal(t, models.StrategyHold, recommendation.Name)
		assert.Equal(t, "Hold.", recommendation.Execution)
	})

	t.Run("classifier transport failure also degrades to hold", func(t *testing.T) {
		model := &fakePriceModel{value: 99}
		orchestrator := newTestOrchestrator(model, &fakeClassifier{err: fmt.Errorf("classifier unreachable")})

		_, recommendation, err := orchestrator.PredictAndRecommend(ctx, "XYZ", featureRows(60))
		require.NoError(t, err)
		assert.Equal(t, models.StrategyHold, recommendation.Name)
	})
}
