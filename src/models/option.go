package models

import (
	"fmt"
	"time"
)

type OptionType string

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)

// Encoded maps the option side to the model input encoding: calls are 1,
// puts are 0.
func (t OptionType) Encoded() float64 {
	if t == OptionTypeCall {
		return 1
	}
	return 0
}

// OptionContract is a single normalized contract. Numeric fields that the
// provider omitted are zero: missing data is not an error at this layer, so
// the downstream feature schema stays stable.
type OptionContract struct {
	Symbol       string
	Strike       float64
	LastPrice    float64
	RawIV        float64 // provider-reported implied volatility, 0 when absent
	Volume       int64
	OpenInterest int64
	Type         OptionType
	Expiration   time.Time
}

// OptionChain holds every contract for a single underlying at a single
// expiration. Multi-expiration chains are never built; the chain resolver
// always selects one expiration before constructing this.
type OptionChain struct {
	Underlying StockSymbol
	Expiration time.Time
	Contracts  []OptionContract
}

func NewOptionChain(underlying StockSymbol, expiration time.Time, contracts []OptionContract) (*OptionChain, error) {
	if len(contracts) == 0 {
		return nil, fmt.Errorf("NewOptionChain: empty chain for %s at %s: %w", underlying, expiration.Format("2006-01-02"), NotFoundErr)
	}

	for _, c := range contracts {
		if !c.Expiration.Equal(expiration) {
			return nil, fmt.Errorf("NewOptionChain: contract %s expires %v, chain expires %v", c.Symbol, c.Expiration, expiration)
		}
	}

	return &OptionChain{
		Underlying: underlying,
		Expiration: expiration,
		Contracts:  contracts,
	}, nil
}

func (c *OptionChain) Calls() []OptionContract {
	return c.filter(OptionTypeCall)
}

func (c *OptionChain) Puts() []OptionContract {
	return c.filter(OptionTypePut)
}

func (c *OptionChain) filter(t OptionType) []OptionContract {
	var out []OptionContract
	for _, contract := range c.Contracts {
		if contract.Type == t {
			out = append(out, contract)
		}
	}
	return out
}
