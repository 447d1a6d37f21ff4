package models

import (
	"fmt"
	"time"
)

type StockSymbol string

func (s StockSymbol) String() string {
	return string(s)
}

type DataSource string

const (
	DataSourceAlphaVantage DataSource = "alpha_vantage"
	DataSourcePolygon      DataSource = "polygon"
)

// HistoryWindow is the amount of daily history requested from a price
// provider. Providers that return full history apply the window client-side.
type HistoryWindow string

const (
	ShortWindow  HistoryWindow = "short"  // ~1 year of trading days
	MediumWindow HistoryWindow = "medium" // ~2 years of trading days
	FullHistory  HistoryWindow = "full"
)

// TradingDays returns the number of daily bars the window spans, or 0 for
// full history.
func (w HistoryWindow) TradingDays() int {
	switch w {
	case ShortWindow:
		return 250
	case MediumWindow:
		return 500
	default:
		return 0
	}
}

// CalendarDays returns the calendar lookback used when a provider is queried
// by date range rather than by bar count.
func (w HistoryWindow) CalendarDays() int {
	switch w {
	case ShortWindow:
		return 365
	case MediumWindow:
		return 730
	default:
		return 365 * 20
	}
}

type Candle struct {
	Date     time.Time `csv:"date"`
	Open     float64   `csv:"open"`
	High     float64   `csv:"high"`
	Low      float64   `csv:"low"`
	Close    float64   `csv:"close"`
	AdjClose float64   `csv:"adj_close"`
	Volume   int64     `csv:"volume"`
}

// PriceSeries is an ordered-by-date daily price history, tagged with the
// provider that produced it and the window that was requested. It is
// validated once on construction and never mutated afterwards.
type PriceSeries struct {
	Symbol          StockSymbol
	Source          DataSource
	RequestedWindow HistoryWindow
	Candles         []Candle
}

func NewPriceSeries(symbol StockSymbol, source DataSource, window HistoryWindow, candles []Candle) (*PriceSeries, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("NewPriceSeries: no candles for %s: %w", symbol, NotFoundErr)
	}

	for i := 1; i < len(candles); i++ {
		if !candles[i].Date.After(candles[i-1].Date) {
			return nil, fmt.Errorf("NewPriceSeries: candles for %s are not strictly increasing at index %d (%v >= %v)", symbol, i, candles[i-1].Date, candles[i].Date)
		}
	}

	return &PriceSeries{
		Symbol:          symbol,
		Source:          source,
		RequestedWindow: window,
		Candles:         candles,
	}, nil
}

// CurrentClose returns the most recent closing price.
func (p *PriceSeries) CurrentClose() float64 {
	return p.Candles[len(p.Candles)-1].Close
}

func (p *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p.Candles))
	for i, c := range p.Candles {
		closes[i] = c.Close
	}
	return closes
}

// Tail returns a series view truncated to the last n candles. The underlying
// candles are shared, not copied.
func (p *PriceSeries) Tail(n int) *PriceSeries {
	if n <= 0 || n >= len(p.Candles) {
		return p
	}

	return &PriceSeries{
		Symbol:          p.Symbol,
		Source:          p.Source,
		RequestedWindow: p.RequestedWindow,
		Candles:         p.Candles[len(p.Candles)-n:],
	}
}
