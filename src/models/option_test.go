package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptionChain(t *testing.T) {
	expiration := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("empty chain is not found", func(t *testing.T) {
		_, err := NewOptionChain("XYZ", expiration, nil)
		assert.ErrorIs(t, err, NotFoundErr)
	})

	t.Run("all contracts must share the chain expiration", func(t *testing.T) {
		contracts := []OptionContract{
			{Symbol: "a", Type: OptionTypeCall, Expiration: expiration},
			{Symbol: "b", Type: OptionTypePut, Expiration: expiration.AddDate(0, 1, 0)},
		}

		_, err := NewOptionChain("XYZ", expiration, contracts)
		assert.Error(t, err)
	})

	t.Run("calls and puts filter by tagged side", func(t *testing.T) {
		contracts := []OptionContract{
			{Symbol: "c1", Type: OptionTypeCall, Expiration: expiration},
			{Symbol: "p1", Type: OptionTypePut, Expiration: expiration},
			{Symbol: "c2", Type: OptionTypeCall, Expiration: expiration},
		}

		chain, err := NewOptionChain("XYZ", expiration, contracts)
		require.NoError(t, err)
		assert.Len(t, chain.Calls(), 2)
		assert.Len(t, chain.Puts(), 1)
	})
}

func TestOptionTypeEncoded(t *testing.T) {
	assert.Equal(t, 1.0, OptionTypeCall.Encoded())
	assert.Equal(t, 0.0, OptionTypePut.Encoded())
}

func TestTradierOptionDTOToModel(t *testing.T) {
	t.Run("invalid option type is rejected", func(t *testing.T) {
		dto := TradierOptionDTO{Symbol: "x", OptionType: "warrant", ExpirationDate: "2024-03-15"}

		_, err := dto.ToModel()
		assert.Error(t, err)
	})

	t.Run("optional fields default to zero", func(t *testing.T) {
		dto := TradierOptionDTO{Symbol: "x", Strike: 50, OptionType: "put", ExpirationDate: "2024-03-15"}

		contract, err := dto.ToModel()
		require.NoError(t, err)
		assert.Equal(t, 0.0, contract.LastPrice)
		assert.Equal(t, int64(0), contract.Volume)
		assert.Equal(t, int64(0), contract.OpenInterest)
		assert.Equal(t, 0.0, contract.RawIV)
		assert.Equal(t, OptionTypePut, contract.Type)
	})
}
