package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optionsage/optionsage/src/models"
)

func TestTradierFetchNearest(t *testing.T) {
	ctx := context.Background()

	t.Run("selects the first listed expiration and tags sides", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/expirations", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "XYZ", r.URL.Query().Get("symbol"))
			fmt.Fprint(w, `{"expirations": {"date": ["2024-03-15", "2024-04-19", "2024-06-21"]}}`)
		})
		mux.HandleFunc("/chains", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2024-03-15", r.URL.Query().Get("expiration"))
			fmt.Fprint(w, `{"options": {"option": [
				{"symbol": "XYZ240315C00100000", "strike": 100, "last": 2.5, "volume": 12, "open_interest": 140, "option_type": "call", "expiration_date": "2024-03-15", "greeks": {"mid_iv": 0.31}},
				{"symbol": "XYZ240315P00100000", "strike": 100, "option_type": "put", "expiration_date": "2024-03-15"}
			]}}`)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := NewTradierChainClient(server.URL+"/expirations", server.URL+"/chains", "test-token")

		chain, err := client.FetchNearest(ctx, "XYZ")
		require.NoError(t, err)

		assert.Equal(t, models.StockSymbol("XYZ"), chain.Underlying)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), chain.Expiration)
		require.Len(t, chain.Contracts, 2)
		assert.Len(t, chain.Calls(), 1)
		assert.Len(t, chain.Puts(), 1)

		call := chain.Calls()[0]
		assert.Equal(t, 2.5, call.LastPrice)
		assert.Equal(t, int64(140), call.OpenInterest)
		assert.Equal(t, 0.31, call.RawIV)

		// optional columns missing from the put default to zero
		put := chain.Puts()[0]
		assert.Equal(t, 0.0, put.LastPrice)
		assert.Equal(t, int64(0), put.Volume)
		assert.Equal(t, 0.0, put.RawIV)
	})

	t.Run("no listed expirations is not found", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/expirations", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"expirations": {"date": []}}`)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := NewTradierChainClient(server.URL+"/expirations", server.URL+"/chains", "test-token")

		_, err := client.FetchNearest(ctx, "NOPE")
		assert.ErrorIs(t, err, models.NotFoundErr)
	})

	t.Run("empty chain at the nearest expiration is not found", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/expirations", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"expirations": {"date": ["2024-03-15"]}}`)
		})
		mux.HandleFunc("/chains", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"options": {"option": []}}`)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := NewTradierChainClient(server.URL+"/expirations", server.URL+"/chains", "test-token")

		_, err := client.FetchNearest(ctx, "XYZ")
		assert.ErrorIs(t, err, models.NotFoundErr)
	})

	t.Run("contracts outside the chain expiration are rejected", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/expirations", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"expirations": {"date": ["2024-03-15"]}}`)
		})
		mux.HandleFunc("/chains", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"options": {"option": [
				{"symbol": "XYZ240419C00100000", "strike": 100, "option_type": "call", "expiration_date": "2024-04-19"}
			]}}`)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := NewTradierChainClient(server.URL+"/expirations", server.URL+"/chains", "test-token")

		_, err := client.FetchNearest(ctx, "XYZ")
		assert.Error(t, err)
	})
}
