// Package app wires providers, fallback chains, the aggregator and the
// insight generator into one graph shared by every binary.
package app

import (
	"time"

	"market-pulse/internal/config"
	"market-pulse/internal/dashboard"
	"market-pulse/internal/insight"
	"market-pulse/internal/job"
	"market-pulse/internal/market"
	"market-pulse/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

// Sources are the upstream adapters. A nil LLM disables insight
// generation.
type Sources struct {
	PrimaryPrices   market.PriceSource
	SecondaryPrices market.PriceSource
	News            market.NewsSource
	Images          market.ImageSource
	LLM             insight.LLMClient
}

// DefaultSources builds the live adapters from cfg.
func DefaultSources(tracer trace.Tracer, cfg *config.Config) Sources {
	src := Sources{
		PrimaryPrices:   provider.NewCoinGeckoProvider(tracer, cfg.CoinGeckoAPIKey),
		SecondaryPrices: provider.NewCoinCapProvider(tracer),
		News:            provider.NewCryptoPanicProvider(tracer, cfg.CryptoPanicToken),
		Images:          provider.NewRedditImageProvider(tracer, cfg.MemeSubreddits),
	}
	if cfg.OpenRouterAPIKey != "" {
		src.LLM = insight.NewOpenAIClient(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL)
	}
	return src
}

type App struct {
	Store        *market.Store
	Aggregator   *dashboard.Aggregator
	InsightCache *insight.MemoryStore
	Insight      *insight.Service
}

// New assembles the graph. When shared is non-nil, insights are also
// written to it so replicas agree on the day's text.
func New(cfg *config.Config, tracer trace.Tracer, src Sources, shared insight.RedisClient) *App {
	timeout := time.Duration(cfg.ProviderTimeoutSecs) * time.Second
	store := market.NewStore()

	prices := market.NewPriceChain(store, src.PrimaryPrices, src.SecondaryPrices, market.PriceOptions{
		ProviderTimeout: timeout,
		BypassCache:     cfg.PricesBypassCache,
	}, tracer)
	news := market.NewNewsChain(store, src.News, market.NewsOptions{
		ProviderTimeout: timeout,
	}, tracer)
	memes := market.NewMemeSelector(store, src.Images, market.MemeOptions{
		AllowedDomains:  cfg.MemeAllowedDomains,
		ProviderTimeout: timeout,
	}, tracer)

	l1 := insight.NewMemoryStore()
	var insightStore insight.Store = l1
	if shared != nil {
		insightStore = insight.NewRedisStore(shared, l1)
	}

	return &App{
		Store:        store,
		Aggregator:   dashboard.NewAggregator(prices, news, memes, tracer),
		InsightCache: l1,
		Insight:      insight.NewService(tracer, src.LLM, insightStore, cfg.OpenRouterModel),
	}
}

// RegisterCaches hands every expiring cache to the sweeper.
func (a *App) RegisterCaches(s *job.CacheSweeper) {
	s.Register("market", a.Store)
	s.Register("insight", a.InsightCache)
}
