package strategy

import "github.com/optionsage/optionsage/src/models"

// executionSteps is the static policy table mapping every classifier label
// to a human-readable execution description.
var executionSteps = map[models.StrategyLabel]string{
	models.StrategyCallSpread:    "Buy a call near the money and sell a call one or two strikes higher, same expiration.",
	models.StrategyPutSpread:     "Buy a put near the money and sell a put one or two strikes lower, same expiration.",
	models.StrategyIronCondor:    "Sell an out-of-the-money call spread and an out-of-the-money put spread on the same expiration.",
	models.StrategyCoveredCall:   "Hold 100 shares of the underlying and sell one out-of-the-money call against them.",
	models.StrategyProtectivePut: "Hold the underlying and buy an out-of-the-money put as downside insurance.",
	models.StrategyStraddle:      "Buy a call and a put at the same at-the-money strike, same expiration.",
	models.StrategyStrangle:      "Buy an out-of-the-money call and an out-of-the-money put, same expiration.",
	models.StrategyButterfly:     "Buy one call below the money, sell two at the money, buy one above, same expiration.",
}

// ExecutionSteps is total over labels: anything outside the known set maps
// to "Hold." instead of failing.
func ExecutionSteps(label models.StrategyLabel) string {
	if steps, ok := executionSteps[label]; ok {
		return steps
	}
	return "Hold."
}
