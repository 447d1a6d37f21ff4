package models

type ModelKind string

const (
	ModelKindPricePredictor     ModelKind = "price_predictor"
	ModelKindStrategyClassifier ModelKind = "strategy_classifier"
)

type StrategyLabel string

const (
	StrategyCallSpread    StrategyLabel = "call_spread"
	StrategyPutSpread     StrategyLabel = "put_spread"
	StrategyIronCondor    StrategyLabel = "iron_condor"
	StrategyCoveredCall   StrategyLabel = "covered_call"
	StrategyProtectivePut StrategyLabel = "protective_put"
	StrategyStraddle      StrategyLabel = "straddle"
	StrategyStrangle      StrategyLabel = "strangle"
	StrategyButterfly     StrategyLabel = "butterfly"

	// StrategyHold is the neutral stance used when the classifier is
	// unavailable or returns a label outside the known set.
	StrategyHold StrategyLabel = "hold"
)

// StrategyRecommendation is the advisory half of a prediction response. It
// is derived purely from a classifier label via a static policy table.
type StrategyRecommendation struct {
	Name       StrategyLabel `json:"name"`
	Confidence string        `json:"confidence"`
	Execution  string        `json:"execution"`
}
