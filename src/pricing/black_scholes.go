package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/optionsage/optionsage/src/models"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// d1d2 computes the Black-Scholes d1/d2 terms. The computation is
// side-independent; call/put branching happens only in the pricing and
// greek formulas that consume these.
func d1d2(spot, strike, t, r, sigma float64) (float64, float64) {
	d1 := (math.Log(spot/strike) + (r+sigma*sigma/2)*t) / (sigma * math.Sqrt(t))
	d2 := d1 - sigma*math.Sqrt(t)
	return d1, d2
}

// Price returns the Black-Scholes closed-form price for a European option.
func Price(side models.OptionType, spot, strike, t, r, sigma float64) float64 {
	d1, d2 := d1d2(spot, strike, t, r, sigma)

	if side == models.OptionTypeCall {
		return spot*stdNormal.CDF(d1) - strike*math.Exp(-r*t)*stdNormal.CDF(d2)
	}

	return strike*math.Exp(-r*t)*stdNormal.CDF(-d2) - spot*stdNormal.CDF(-d1)
}

// Vega is the raw (unscaled) price sensitivity to volatility, used as the
// Newton-Raphson derivative. It is identical for calls and puts.
func Vega(spot, strike, t, r, sigma float64) float64 {
	d1, _ := d1d2(spot, strike, t, r, sigma)
	return spot * stdNormal.Prob(d1) * math.Sqrt(t)
}

// Greeks computes the five standard sensitivities from an already-solved
// volatility. Theta is scaled per calendar day, vega and rho per percentage
// point.
func Greeks(side models.OptionType, spot, strike, t, r, sigma float64) models.Greeks {
	d1, d2 := d1d2(spot, strike, t, r, sigma)

	d2Term := d2
	if side == models.OptionTypePut {
		d2Term = -d2
	}

	delta := stdNormal.CDF(d1)
	if side == models.OptionTypePut {
		delta = stdNormal.CDF(d1) - 1
	}

	return models.Greeks{
		Delta: delta,
		Gamma: stdNormal.Prob(d1) / (spot * sigma * math.Sqrt(t)),
		Theta: (-spot*stdNormal.Prob(d1)*sigma/(2*math.Sqrt(t)) - r*strike*math.Exp(-r*t)*stdNormal.CDF(d2Term)) / 365,
		Vega:  spot * stdNormal.Prob(d1) * math.Sqrt(t) / 100,
		Rho:   strike * t * math.Exp(-r*t) * stdNormal.CDF(d2Term) / 100,
	}
}
