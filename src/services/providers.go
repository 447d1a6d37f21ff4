package services

import (
	"context"

	"github.com/optionsage/optionsage/src/models"
)

// PriceDataProvider fetches a daily OHLC history for a symbol. A missing or
// unlisted symbol is reported as models.NotFoundErr; every other failure is
// a *models.ProviderError.
type PriceDataProvider interface {
	Source() models.DataSource
	FetchDaily(ctx context.Context, symbol models.StockSymbol, window models.HistoryWindow) (*models.PriceSeries, error)
}

// OptionsChainProvider fetches the chain for the nearest listed expiration.
type OptionsChainProvider interface {
	FetchNearest(ctx context.Context, symbol models.StockSymbol) (*models.OptionChain, error)
}
