package models

// FeatureColumns is the fixed input schema of the prediction models. Every
// FeatureRow always carries a value for every column; fields the provider
// did not report default to 0.0 rather than failing the row, so the model
// input shape never varies with provider completeness.
var FeatureColumns = []string{
	"close",
	"strike",
	"time_to_maturity",
	"implied_volatility",
	"moneyness",
	"last_price",
	"volume",
	"open_interest",
	"side_encoded",
}

// FeatureRow is the per-contract model input, computed once from a price
// series snapshot and a normalized contract. Rows are immutable after
// enrichment.
type FeatureRow struct {
	Symbol             string  `csv:"symbol"`
	Close              float64 `csv:"close"`
	Strike             float64 `csv:"strike"`
	TimeToMaturity     float64 `csv:"time_to_maturity"`
	ImpliedVolatility  float64 `csv:"implied_volatility"`
	Moneyness          float64 `csv:"moneyness"`
	LastPrice          float64 `csv:"last_price"`
	Volume             float64 `csv:"volume"`
	OpenInterest       float64 `csv:"open_interest"`
	SideEncoded        float64 `csv:"side_encoded"`
	RealizedVolatility float64 `csv:"realized_volatility"`
	Greeks             Greeks  `csv:"-"`
}

// Vector returns the row in FeatureColumns order.
func (r FeatureRow) Vector() []float64 {
	return []float64{
		r.Close,
		r.Strike,
		r.TimeToMaturity,
		r.ImpliedVolatility,
		r.Moneyness,
		r.LastPrice,
		r.Volume,
		r.OpenInterest,
		r.SideEncoded,
	}
}

// FeatureWindow flattens the trailing rows into the (rows x columns) matrix
// the price predictor expects.
func FeatureWindow(rows []FeatureRow) [][]float64 {
	window := make([][]float64, len(rows))
	for i, row := range rows {
		window[i] = row.Vector()
	}
	return window
}
