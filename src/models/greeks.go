package models

// Greeks are the Black-Scholes sensitivities for a single contract. Theta is
// per calendar day, vega and rho are per percentage point, matching the
// scaling the pricing models were trained on.
type Greeks struct {
	Delta float64 `json:"delta" csv:"delta"`
	Gamma float64 `json:"gamma" csv:"gamma"`
	Theta float64 `json:"theta" csv:"theta"`
	Vega  float64 `json:"vega" csv:"vega"`
	Rho   float64 `json:"rho" csv:"rho"`
}
