package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"market-pulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const coincapBaseURL = "https://api.coincap.io/v2"

// CoinCapProvider is the secondary price source. Its numerics arrive as
// strings.
type CoinCapProvider struct {
	client  HTTPClient
	baseURL string
	tracer  trace.Tracer
}

func NewCoinCapProvider(tracer trace.Tracer) *CoinCapProvider {
	return &CoinCapProvider{
		client:  newHTTPClient(),
		baseURL: coincapBaseURL,
		tracer:  tracer,
	}
}

func (p *CoinCapProvider) Name() string { return "coincap" }

func (p *CoinCapProvider) FetchPrices(ctx context.Context) ([]domain.PriceItem, error) {
	ctx, span := p.tracer.Start(ctx, "coincap.fetch-prices")
	defer span.End()

	ids := make([]string, 0, len(domain.TrackedSymbols))
	for _, sym := range domain.TrackedSymbols {
		ids = append(ids, domain.CoinCapID[sym])
	}
	url := fmt.Sprintf("%s/assets?ids=%s", strings.TrimRight(p.baseURL, "/"), strings.Join(ids, ","))

	body, err := getBody(ctx, p.client, "coincap", url, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch assets: %w", err)
	}

	var payload struct {
		Data []struct {
			ID                string `json:"id"`
			Symbol            string `json:"symbol"`
			PriceUSD          string `json:"priceUsd"`
			ChangePercent24Hr string `json:"changePercent24Hr"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse assets: %w", err)
	}

	bySymbol := make(map[string]domain.PriceItem, len(payload.Data))
	for _, row := range payload.Data {
		sym := strings.ToUpper(strings.TrimSpace(row.Symbol))
		if !domain.IsTracked(sym) {
			continue
		}
		bySymbol[sym] = domain.PriceItem{
			Symbol:    sym,
			Price:     parseFloatString(row.PriceUSD),
			Change24h: parseFloatString(row.ChangePercent24Hr),
		}
	}
	if len(bySymbol) == 0 {
		return nil, fmt.Errorf("parse assets: %w", ErrNoTrackedAssets)
	}

	items := make([]domain.PriceItem, 0, len(domain.TrackedSymbols))
	for _, sym := range domain.TrackedSymbols {
		item, ok := bySymbol[sym]
		if !ok {
			item = domain.PriceItem{Symbol: sym}
		}
		items = append(items, item)
	}
	return items, nil
}
