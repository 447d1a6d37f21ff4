package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/optionsage/optionsage/src/models"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// AlphaVantageClient fetches daily adjusted bars from Alpha Vantage. The
// full history is always requested; the window is applied client-side by
// trimming trailing bars.
type AlphaVantageClient struct {
	BaseURL string
	APIKey  string
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		BaseURL: alphaVantageBaseURL,
		APIKey:  apiKey,
	}
}

func (c *AlphaVantageClient) Source() models.DataSource {
	return models.DataSourceAlphaVantage
}

func (c *AlphaVantageClient) FetchDaily(ctx context.Context, symbol models.StockSymbol, window models.HistoryWindow) (*models.PriceSeries, error) {
	tracer := otel.Tracer("AlphaVantageClient")
	_, span := tracer.Start(ctx, "FetchDaily")
	defer span.End()

	if c.APIKey == "" {
		return nil, models.NewProviderError(models.DataSourceAlphaVantage, "api key not configured", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, models.NewProviderError(models.DataSourceAlphaVantage, "failed to create request", err)
	}

	q := req.URL.Query()
	q.Add("function", "TIME_SERIES_DAILY_ADJUSTED")
	q.Add("symbol", string(symbol))
	q.Add("outputsize", "full")
	q.Add("apikey", c.APIKey)

	req.URL.RawQuery = q.Encode()
	req.Header.Add("Accept", "application/json")

	client := http.Client{
		Timeout: 10 * time.Second,
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, models.NewProviderError(models.DataSourceAlphaVantage, "failed to fetch daily series", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, models.NewProviderError(models.DataSourceAlphaVantage, fmt.Sprintf("unexpected http status %v", res.Status), nil)
	}

	var dto models.AlphaVantageDailyDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, models.NewProviderError(models.DataSourceAlphaVantage, "failed to decode json", err)
	}

	// A throttle note is a provider-side condition, not a missing symbol.
	if dto.Note != "" {
		return nil, models.NewProviderError(models.DataSourceAlphaVantage, fmt.Sprintf("request throttled: %s", dto.Note), nil)
	}

	if len(dto.TimeSeries) == 0 {
		if dto.ErrorMessage != "" {
			log.Warnf("AlphaVantageClient.FetchDaily: %s: %s", symbol, dto.ErrorMessage)
		}
		return nil, fmt.Errorf("AlphaVantageClient.FetchDaily: no daily series for %s: %w", symbol, models.NotFoundErr)
	}

	candles, err := dto.ToCandles()
	if err != nil {
		return nil, models.NewProviderError(models.DataSourceAlphaVantage, "malformed daily series", err)
	}

	if n := window.TradingDays(); n > 0 && len(candles) > n {
		candles = candles[len(candles)-n:]
	}

	return models.NewPriceSeries(symbol, models.DataSourceAlphaVantage, window, candles)
}
