package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"market-pulse/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	coingeckoBaseURL = "https://api.coingecko.com/api/v3"

	// Public tier allows roughly 30 calls a minute.
	coingeckoBurst  = 8
	coingeckoRefill = 7500 * time.Millisecond
)

// ErrNoTrackedAssets is returned when a price response parses but carries
// none of the tracked symbols.
var ErrNoTrackedAssets = errors.New("response contains no tracked assets")

// CoinGeckoProvider is the primary price source.
type CoinGeckoProvider struct {
	client  HTTPClient
	baseURL string
	apiKey  string
	limiter *rateLimiter
	tracer  trace.Tracer
}

// NewCoinGeckoProvider creates a provider for the public API. A non-empty
// apiKey is sent as the demo key header.
func NewCoinGeckoProvider(tracer trace.Tracer, apiKey string) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  newHTTPClient(),
		baseURL: coingeckoBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		limiter: newRateLimiter(coingeckoBurst, coingeckoRefill),
		tracer:  tracer,
	}
}

func (p *CoinGeckoProvider) Name() string { return "coingecko" }

// FetchPrices fetches spot price and 24h change for every tracked symbol in
// one call. Symbols or fields missing from the response come back nil.
func (p *CoinGeckoProvider) FetchPrices(ctx context.Context) ([]domain.PriceItem, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-prices")
	defer span.End()

	if !p.limiter.Allow() {
		return nil, fmt.Errorf("fetch prices: coingecko %w", ErrRateLimited)
	}

	ids := make([]string, 0, len(domain.TrackedSymbols))
	for _, sym := range domain.TrackedSymbols {
		ids = append(ids, domain.CoinGeckoID[sym])
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
		strings.TrimRight(p.baseURL, "/"), strings.Join(ids, ","))

	var header http.Header
	if p.apiKey != "" {
		header = http.Header{"x-cg-demo-api-key": []string{p.apiKey}}
	}

	body, err := getBody(ctx, p.client, "coingecko", url, header)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	// {"bitcoin": {"usd": 97000, "usd_24h_change": 2.34}, ...}
	var raw map[string]map[string]*float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse prices: %w", err)
	}

	items := make([]domain.PriceItem, 0, len(domain.TrackedSymbols))
	found := 0
	for _, sym := range domain.TrackedSymbols {
		item := domain.PriceItem{Symbol: sym}
		if data, ok := raw[domain.CoinGeckoID[sym]]; ok {
			found++
			item.Price = data["usd"]
			item.Change24h = data["usd_24h_change"]
		}
		items = append(items, item)
	}
	span.SetAttributes(attribute.Int("coingecko.assets", found))
	if found == 0 {
		return nil, fmt.Errorf("parse prices: %w", ErrNoTrackedAssets)
	}

	return items, nil
}
