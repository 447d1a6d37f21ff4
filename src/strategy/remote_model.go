package strategy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/optionsage/optionsage/src/models"
)

// RemoteModelClient talks to the external model server that owns training
// and inference. The server answers 404 for an artifact that has never been
// trained; that maps to the ModelMissingErr variant the orchestrator
// consumes. Training is a synchronous, long-running call, so it runs with a
// much larger timeout than inference.
type RemoteModelClient struct {
	BaseURL string

	inferenceClient http.Client
	trainingClient  http.Client
}

func NewRemoteModelClient(baseURL string) *RemoteModelClient {
	return &RemoteModelClient{
		BaseURL:         baseURL,
		inferenceClient: http.Client{Timeout: 30 * time.Second},
		trainingClient:  http.Client{Timeout: 30 * time.Minute},
	}
}

type predictRequestDTO struct {
	Window [][]float64 `json:"window"`
}

type predictResponseDTO struct {
	PredictedClose float64 `json:"predicted_close"`
}

type classifyRequestDTO struct {
	Features []float64 `json:"features"`
}

type classifyResponseDTO struct {
	Label string `json:"label"`
}

func (c *RemoteModelClient) Predict(ctx context.Context, symbol models.StockSymbol, window [][]float64) (float64, error) {
	url := fmt.Sprintf("%s/models/%s/predict", c.BaseURL, symbol)

	var dto predictResponseDTO
	if err := c.post(ctx, &c.inferenceClient, url, predictRequestDTO{Window: window}, &dto); err != nil {
		return 0, fmt.Errorf("Predict: %w", err)
	}

	return dto.PredictedClose, nil
}

func (c *RemoteModelClient) Train(ctx context.Context, symbol models.StockSymbol) error {
	url := fmt.Sprintf("%s/models/%s/train", c.BaseURL, symbol)

	if err := c.post(ctx, &c.trainingClient, url, struct{}{}, nil); err != nil {
		return fmt.Errorf("Train: %v: %w", err, models.TrainingFailedErr)
	}

	return nil
}

func (c *RemoteModelClient) Classify(ctx context.Context, features []float64) (models.StrategyLabel, error) {
	url := fmt.Sprintf("%s/classifier/classify", c.BaseURL)

	var dto classifyResponseDTO
	if err := c.post(ctx, &c.inferenceClient, url, classifyRequestDTO{Features: features}, &dto); err != nil {
		return "", fmt.Errorf("Classify: %w", err)
	}

	return models.StrategyLabel(dto.Label), nil
}

func (c *RemoteModelClient) post(ctx context.Context, client *http.Client, url string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach model server: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return models.ModelMissingErr
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("model server returned http code %v", res.Status)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode json: %w", err)
		}
	}

	return nil
}
