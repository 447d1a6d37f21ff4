package strategy

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/optionsage/optionsage/src/models"
)

type trainingCall struct {
	done chan struct{}
	err  error
}

// ModelRegistry wraps the price model with per-ticker training state so
// concurrent requests for the same ticker trigger at most one training job.
// Callers that hit a missing model during another caller's training window
// wait for that job instead of starting their own.
type ModelRegistry struct {
	model PricePredictionModel

	mu       sync.Mutex
	inflight map[models.StockSymbol]*trainingCall
}

func NewModelRegistry(model PricePredictionModel) *ModelRegistry {
	return &ModelRegistry{
		model:    model,
		inflight: make(map[models.StockSymbol]*trainingCall),
	}
}

func (r *ModelRegistry) Predict(ctx context.Context, symbol models.StockSymbol, window [][]float64) (float64, error) {
	return r.model.Predict(ctx, symbol, window)
}

// TrainingInProgress reports whether a training job for the ticker is
// currently in flight.
func (r *ModelRegistry) TrainingInProgress(symbol models.StockSymbol) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.inflight[symbol]
	return ok
}

// EnsureTrained runs the external trainer for the ticker, coalescing
// concurrent calls into a single job. It blocks until the job completes;
// training can take minutes, so callers on a request-serving path should
// run it off-thread.
func (r *ModelRegistry) EnsureTrained(ctx context.Context, symbol models.StockSymbol) error {
	r.mu.Lock()
	if call, ok := r.inflight[symbol]; ok {
		r.mu.Unlock()

		log.Infof("EnsureTrained: training already in flight for %s, waiting", symbol)

		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return fmt.Errorf("EnsureTrained: cancelled while waiting for %s: %w", symbol, ctx.Err())
		}
	}

	call := &trainingCall{done: make(chan struct{})}
	r.inflight[symbol] = call
	r.mu.Unlock()

	log.Infof("EnsureTrained: starting training for %s", symbol)

	err := r.model.Train(ctx, symbol)
	if err != nil {
		err = fmt.Errorf("EnsureTrained: training failed for %s: %w", symbol, err)
		log.Errorf("%v", err)
	} else {
		log.Infof("EnsureTrained: training complete for %s", symbol)
	}

	call.err = err

	r.mu.Lock()
	delete(r.inflight, symbol)
	r.mu.Unlock()

	close(call.done)

	return err
}
