package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/optionsage/optionsage/src/models"
)

// TradierChainClient fetches option chains from a Tradier-style market data
// API. Only the nearest listed expiration is used: the first entry in the
// expiration list, earliest-dated, with no liquidity weighting.
type TradierChainClient struct {
	ExpirationsURL string
	ChainURL       string
	BearerToken    string
}

func NewTradierChainClient(expirationsURL, chainURL, bearerToken string) *TradierChainClient {
	return &TradierChainClient{
		ExpirationsURL: expirationsURL,
		ChainURL:       chainURL,
		BearerToken:    bearerToken,
	}
}

func (c *TradierChainClient) FetchNearest(ctx context.Context, symbol models.StockSymbol) (*models.OptionChain, error) {
	tracer := otel.Tracer("TradierChainClient")
	ctx, span := tracer.Start(ctx, "FetchNearest")
	defer span.End()

	expirations, err := c.fetchExpirations(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("FetchNearest: failed to fetch expirations for %s: %w", symbol, err)
	}

	if len(expirations) == 0 {
		return nil, fmt.Errorf("FetchNearest: no listed expirations for %s: %w", symbol, models.NotFoundErr)
	}

	nearest := expirations[0]
	log.Infof("FetchNearest: using expiration %s for %s", nearest, symbol)

	contracts, err := c.fetchChain(ctx, symbol, nearest)
	if err != nil {
		return nil, fmt.Errorf("FetchNearest: failed to fetch chain for %s at %s: %w", symbol, nearest, err)
	}

	if len(contracts) == 0 {
		return nil, fmt.Errorf("FetchNearest: empty chain for %s at %s: %w", symbol, nearest, models.NotFoundErr)
	}

	expiration, err := time.Parse("2006-01-02", nearest)
	if err != nil {
		return nil, fmt.Errorf("FetchNearest: failed to parse expiration %s: %w", nearest, err)
	}

	return models.NewOptionChain(symbol, expiration, contracts)
}

func (c *TradierChainClient) fetchExpirations(ctx context.Context, symbol models.StockSymbol) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExpirationsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetchExpirations: failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Add("symbol", string(symbol))
	q.Add("includeAllRoots", "true")

	req.URL.RawQuery = q.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.BearerToken))

	client := http.Client{
		Timeout: 10 * time.Second,
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetchExpirations: failed to fetch expirations: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetchExpirations: failed to fetch expirations, http code %v", res.Status)
	}

	var dto models.TradierExpirationsDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("fetchExpirations: failed to decode json: %w", err)
	}

	return dto.Expirations.Date, nil
}

func (c *TradierChainClient) fetchChain(ctx context.Context, symbol models.StockSymbol, expiration string) ([]models.OptionContract, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ChainURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetchChain: failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Add("symbol", string(symbol))
	q.Add("expiration", expiration)
	q.Add("greeks", "true")

	req.URL.RawQuery = q.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.BearerToken))

	client := http.Client{
		Timeout: 10 * time.Second,
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetchChain: failed to fetch option chain: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetchChain: failed to fetch option chain, http code %v", res.Status)
	}

	var dto models.TradierOptionChainDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("fetchChain: failed to decode json: %w", err)
	}

	var contracts []models.OptionContract
	for _, optionDTO := range dto.Options.Option {
		contract, err := optionDTO.ToModel()
		if err != nil {
			log.Errorf("fetchChain: skipping contract: %v", err)
			continue
		}

		contracts = append(contracts, contract)
	}

	return contracts, nil
}
