// Package rates aggregates display prices from the GSU rates API.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/metrics"
)

// fetchTimeout bounds every individual ticker fetch.
const fetchTimeout = 5 * time.Second

// DefaultBaseURL is the production GSU rates endpoint.
const DefaultBaseURL = "https://goerli.gsu.io/Umbraco/Api/Rates/GSU/"

// rateResponse is the upstream body: a wei-denominated price string.
type rateResponse struct {
	Price string `json:"price"`
}

// GSUClient fetches prices for every token that declares a GSU rates
// ticker. The required-ticker list is computed once at construction.
type GSUClient struct {
	baseURL    string
	httpClient *http.Client
	tickers    []string
	logger     *slog.Logger
}

// NewGSUClient builds a client over the registry's ticker-bearing tokens.
func NewGSUClient(baseURL string, registry *entities.TokenRegistry, logger *slog.Logger) *GSUClient {
	var tickers []string
	for _, token := range registry.All() {
		if token.GSURatesTicker != "" {
			tickers = append(tickers, token.GSURatesTicker)
		}
	}
	return &GSUClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: fetchTimeout},
		tickers:    tickers,
		logger:     logger,
	}
}

// RequiredTickers lists the tickers the client fetches, in request order.
func (c *GSUClient) RequiredTickers() []string {
	return c.tickers
}

func (c *GSUClient) fetchTicker(ctx context.Context, ticker string) (float64, error) {
	endpoint := c.baseURL + "?symbol=" + url.QueryEscape(ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rates fetch for %s failed: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("rates fetch for %s returned status %d", ticker, resp.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode rates response for %s: %w", ticker, err)
	}

	price, ok := new(big.Float).SetString(body.Price)
	if !ok {
		return 0, fmt.Errorf("unparseable price %q for %s", body.Price, ticker)
	}
	// Upstream prices are wei strings.
	value, _ := new(big.Float).Quo(price, big.NewFloat(1e18)).Float64()
	return value, nil
}

// RatesTickers fetches every required ticker in parallel and returns a flat
// ticker-to-price map. Individual failures are dropped from the result
// rather than failing the batch; this partial-success join is intentional.
func (c *GSUClient) RatesTickers(ctx context.Context) map[string]float64 {
	type result struct {
		price float64
		err   error
	}
	results := make([]result, len(c.tickers))

	var wg sync.WaitGroup
	for i, ticker := range c.tickers {
		wg.Add(1)
		go func(idx int, ticker string) {
			defer wg.Done()
			start := time.Now()
			price, err := c.fetchTicker(ctx, ticker)
			metrics.TickerFetchLatency.WithLabelValues(ticker).Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.TickerFetches.WithLabelValues(ticker, "error").Inc()
			} else {
				metrics.TickerFetches.WithLabelValues(ticker, "ok").Inc()
			}
			results[idx] = result{price: price, err: err}
		}(i, ticker)
	}
	wg.Wait()

	// Map successes back to their ticker key by position in the request
	// list.
	prices := make(map[string]float64, len(c.tickers))
	for i, res := range results {
		if res.err != nil {
			c.logger.Warn("ticker fetch dropped", "ticker", c.tickers[i], "error", res.err)
			continue
		}
		prices[c.tickers[i]] = res.price
	}
	return prices
}

// Tickers implements Provider.
func (c *GSUClient) Tickers(ctx context.Context) (map[string]float64, error) {
	return c.RatesTickers(ctx), nil
}

// Provider is one upstream price source.
type Provider interface {
	Tickers(ctx context.Context) (map[string]float64, error)
}

// TickerService merges one or more providers into the tickers the UI
// displays. Providers are queried in order; later providers overwrite
// duplicate keys.
type TickerService struct {
	providers []Provider
}

// NewTickerService wires the provider chain. Today that chain is just the
// GSU rates API; coinpaprika and coinbase used to sit in front of it.
func NewTickerService(providers ...Provider) *TickerService {
	return &TickerService{providers: providers}
}

// TokenTickers returns the merged ticker map. A provider error fails the
// whole call; partial failure within a provider is that provider's policy.
func (s *TickerService) TokenTickers(ctx context.Context) (map[string]float64, error) {
	merged := make(map[string]float64)
	for _, provider := range s.providers {
		tickers, err := provider.Tickers(ctx)
		if err != nil {
			return nil, fmt.Errorf("ticker provider failed: %w", err)
		}
		for key, price := range tickers {
			merged[key] = price
		}
	}
	return merged, nil
}
