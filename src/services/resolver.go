package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/optionsage/optionsage/src/models"
)

// HistoryResolver fetches a price history from the primary provider and, on
// a missing symbol only, cascades to the secondary provider with a
// window-shrinking retry ladder. Provider-side failures (auth, transport,
// malformed payloads) never trigger the fallback: silently substituting a
// second source for an outage is out of policy.
type HistoryResolver struct {
	Primary   PriceDataProvider
	Secondary PriceDataProvider
}

func NewHistoryResolver(primary, secondary PriceDataProvider) *HistoryResolver {
	return &HistoryResolver{Primary: primary, Secondary: secondary}
}

func (r *HistoryResolver) ResolveHistory(ctx context.Context, symbol models.StockSymbol, preferred models.HistoryWindow) (*models.PriceSeries, error) {
	tracer := otel.Tracer("HistoryResolver")
	ctx, span := tracer.Start(ctx, "ResolveHistory")
	defer span.End()

	series, err := r.Primary.FetchDaily(ctx, symbol, preferred)
	if err == nil {
		log.Infof("ResolveHistory: fetched %d candles for %s from %s", len(series.Candles), symbol, series.Source)
		return series, nil
	}

	if !errors.Is(err, models.NotFoundErr) {
		return nil, fmt.Errorf("ResolveHistory: primary provider failed for %s: %w", symbol, err)
	}

	log.Warnf("ResolveHistory: %s not found on %s, falling back to %s", symbol, r.Primary.Source(), r.Secondary.Source())

	var lastErr error = err
	for _, window := range fallbackWindows(preferred) {
		series, err = r.Secondary.FetchDaily(ctx, symbol, window)
		if err == nil {
			log.Infof("ResolveHistory: fetched %d candles for %s from %s (%s window)", len(series.Candles), symbol, series.Source, window)
			return series, nil
		}

		if !errors.Is(err, models.NotFoundErr) {
			return nil, fmt.Errorf("ResolveHistory: secondary provider failed for %s (%s window): %w", symbol, window, err)
		}

		lastErr = err
	}

	return nil, fmt.Errorf("ResolveHistory: no history for %s on either provider: %w", symbol, lastErr)
}

// fallbackWindows is the secondary ladder: the preferred window first, then
// a shorter one, then everything the provider has.
func fallbackWindows(preferred models.HistoryWindow) []models.HistoryWindow {
	ladder := []models.HistoryWindow{preferred}
	if preferred != models.ShortWindow {
		ladder = append(ladder, models.ShortWindow)
	}
	if preferred != models.FullHistory {
		ladder = append(ladder, models.FullHistory)
	}
	return ladder
}
