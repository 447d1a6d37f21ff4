package models

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// AlphaVantageDailyDTO mirrors the TIME_SERIES_DAILY_ADJUSTED response.
// Alpha Vantage reports every numeric field as a string and signals errors
// in-band: "Error Message" for unknown symbols, "Note" for throttling.
type AlphaVantageDailyDTO struct {
	MetaData     map[string]string             `json:"Meta Data"`
	TimeSeries   map[string]AlphaVantageBarDTO `json:"Time Series (Daily)"`
	ErrorMessage string                        `json:"Error Message"`
	Note         string                        `json:"Note"`
}

type AlphaVantageBarDTO struct {
	Open     string `json:"1. open"`
	High     string `json:"2. high"`
	Low      string `json:"3. low"`
	Close    string `json:"4. close"`
	AdjClose string `json:"5. adjusted close"`
	Volume   string `json:"6. volume"`
}

func (dto *AlphaVantageDailyDTO) ToCandles() ([]Candle, error) {
	dates := make([]string, 0, len(dto.TimeSeries))
	for date := range dto.TimeSeries {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	candles := make([]Candle, 0, len(dates))
	for _, date := range dates {
		bar := dto.TimeSeries[date]

		ts, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("ToCandles: failed to parse date %s: %w", date, err)
		}

		candle := Candle{Date: ts}
		for _, field := range []struct {
			raw string
			dst *float64
		}{
			{bar.Open, &candle.Open},
			{bar.High, &candle.High},
			{bar.Low, &candle.Low},
			{bar.Close, &candle.Close},
			{bar.AdjClose, &candle.AdjClose},
		} {
			v, err := strconv.ParseFloat(field.raw, 64)
			if err != nil {
				return nil, fmt.Errorf("ToCandles: failed to parse bar at %s: %w", date, err)
			}
			*field.dst = v
		}

		if bar.Volume != "" {
			v, err := strconv.ParseInt(bar.Volume, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("ToCandles: failed to parse volume at %s: %w", date, err)
			}
			candle.Volume = v
		}

		candles = append(candles, candle)
	}

	return candles, nil
}
