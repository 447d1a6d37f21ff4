package models

import (
	"fmt"
	"time"
)

// TradierExpirationsDTO mirrors the /markets/options/expirations response.
type TradierExpirationsDTO struct {
	Expirations struct {
		Date []string `json:"date"`
	} `json:"expirations"`
}

// TradierOptionChainDTO mirrors the /markets/options/chains response for a
// single expiration.
type TradierOptionChainDTO struct {
	Options struct {
		Option []TradierOptionDTO `json:"option"`
	} `json:"options"`
}

type TradierOptionDTO struct {
	Symbol         string                  `json:"symbol"`
	Strike         float64                 `json:"strike"`
	Last           *float64                `json:"last"`
	Volume         *int64                  `json:"volume"`
	OpenInterest   *int64                  `json:"open_interest"`
	OptionType     string                  `json:"option_type"`
	ExpirationDate string                  `json:"expiration_date"`
	Greeks         *TradierOptionGreeksDTO `json:"greeks"`
}

type TradierOptionGreeksDTO struct {
	MidIV float64 `json:"mid_iv"`
}

// ToModel converts the DTO into a normalized contract. The side is tagged
// here, during normalization; nothing downstream re-infers it. Optional
// numeric fields that Tradier omits default to zero.
func (dto *TradierOptionDTO) ToModel() (OptionContract, error) {
	expiration, err := time.Parse("2006-01-02", dto.ExpirationDate)
	if err != nil {
		return OptionContract{}, fmt.Errorf("ToModel: failed to parse expiration date %s: %w", dto.ExpirationDate, err)
	}

	var side OptionType
	switch dto.OptionType {
	case "call":
		side = OptionTypeCall
	case "put":
		side = OptionTypePut
	default:
		return OptionContract{}, fmt.Errorf("ToModel: invalid option type %q for %s", dto.OptionType, dto.Symbol)
	}

	contract := OptionContract{
		Symbol:     dto.Symbol,
		Strike:     dto.Strike,
		Type:       side,
		Expiration: expiration,
	}

	if dto.Last != nil {
		contract.LastPrice = *dto.Last
	}
	if dto.Volume != nil {
		contract.Volume = *dto.Volume
	}
	if dto.OpenInterest != nil {
		contract.OpenInterest = *dto.OpenInterest
	}
	if dto.Greeks != nil {
		contract.RawIV = dto.Greeks.MidIV
	}

	return contract, nil
}
