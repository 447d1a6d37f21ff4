package services

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	polygonmodels "github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/optionsage/optionsage/src/models"
)

// PolygonClient fetches daily aggregates via the official polygon.io client.
// It serves as the fallback history source; its bars are split-adjusted,
// which does not necessarily match the primary provider's adjustment
// semantics.
type PolygonClient struct {
	client *polygon.Client
	now    func() time.Time
}

func NewPolygonClient(apiKey string) *PolygonClient {
	return &PolygonClient{
		client: polygon.New(apiKey),
		now:    time.Now,
	}
}

func (c *PolygonClient) Source() models.DataSource {
	return models.DataSourcePolygon
}

func (c *PolygonClient) FetchDaily(ctx context.Context, symbol models.StockSymbol, window models.HistoryWindow) (*models.PriceSeries, error) {
	tracer := otel.Tracer("PolygonClient")
	ctx, span := tracer.Start(ctx, "FetchDaily")
	defer span.End()

	to := c.now().UTC()
	from := to.AddDate(0, 0, -window.CalendarDays())

	log.Debugf("PolygonClient.FetchDaily: %s from %s to %s", symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))

	params := polygonmodels.ListAggsParams{
		Ticker:     string(symbol),
		Multiplier: 1,
		Timespan:   polygonmodels.Day,
		From:       polygonmodels.Millis(from),
		To:         polygonmodels.Millis(to),
	}.WithOrder(polygonmodels.Asc).WithAdjusted(true)

	iter := c.client.ListAggs(ctx, params)

	var candles []models.Candle
	for iter.Next() {
		bar := iter.Item()
		candles = append(candles, models.Candle{
			Date:     time.Time(bar.Timestamp),
			Open:     bar.Open,
			High:     bar.High,
			Low:      bar.Low,
			Close:    bar.Close,
			AdjClose: bar.Close,
			Volume:   int64(bar.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, models.NewProviderError(models.DataSourcePolygon, "failed to list aggregates", err)
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("PolygonClient.FetchDaily: no aggregates for %s in %s window: %w", symbol, window, models.NotFoundErr)
	}

	return models.NewPriceSeries(symbol, models.DataSourcePolygon, window, candles)
}
