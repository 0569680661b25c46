package dashboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/market"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

type priceFunc func(context.Context) domain.PriceResult

func (f priceFunc) GetPrices(ctx context.Context) domain.PriceResult { return f(ctx) }

type newsFunc func(context.Context) domain.NewsResult

func (f newsFunc) GetNews(ctx context.Context) domain.NewsResult { return f(ctx) }

type memeFunc func(context.Context) domain.MemeResult

func (f memeFunc) Pick(ctx context.Context) domain.MemeResult { return f(ctx) }

func testTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

func livePrices(context.Context) domain.PriceResult {
	return domain.PriceResult{
		Items:  []domain.PriceItem{{Symbol: "BTC", Price: domain.Float(100)}},
		Source: domain.TierPrimary,
	}
}

func liveNews(context.Context) domain.NewsResult {
	return domain.NewsResult{
		Items:  []domain.NewsItem{{Title: "t", URL: "u", Source: "s"}},
		Source: domain.TierLive,
	}
}

func feedMeme(context.Context) domain.MemeResult {
	return domain.MemeResult{
		Item:   domain.MemeItem{Title: "m", URL: "https://i.redd.it/m.png", Source: "reddit"},
		Source: domain.TierFeed,
	}
}

func TestSummaryComposesAllKinds(t *testing.T) {
	agg := NewAggregator(priceFunc(livePrices), newsFunc(liveNews), memeFunc(feedMeme), testTracer())

	s := agg.Summary(context.Background())
	require.Equal(t, "BTC", s.Prices[0].Symbol)
	require.Equal(t, "t", s.News[0].Title)
	require.Equal(t, "m", s.Meme.Title)
	require.Equal(t, domain.SummarySources{
		Prices: domain.TierPrimary,
		News:   domain.TierLive,
		Meme:   domain.TierFeed,
	}, s.Sources)
}

func TestSummaryRecoversPanickingBranch(t *testing.T) {
	panicky := newsFunc(func(context.Context) domain.NewsResult {
		panic("boom")
	})
	agg := NewAggregator(priceFunc(livePrices), panicky, memeFunc(feedMeme), testTracer())

	s := agg.Summary(context.Background())
	require.Equal(t, domain.TierPrimary, s.Sources.Prices)
	require.Equal(t, "m", s.Meme.Title)
	require.Equal(t, market.StaticNews(), s.News)
	require.Equal(t, domain.TierFallback, s.Sources.News)
}

func TestSummaryAllBranchesFail(t *testing.T) {
	agg := NewAggregator(
		priceFunc(func(context.Context) domain.PriceResult { panic("prices") }),
		newsFunc(func(context.Context) domain.NewsResult { panic("news") }),
		memeFunc(func(context.Context) domain.MemeResult { panic("meme") }),
		testTracer(),
	)

	s := agg.Summary(context.Background())
	require.Len(t, s.Prices, 4)
	require.Len(t, s.News, 2)
	require.Equal(t, market.StaticMeme(), s.Meme)
	require.Equal(t, domain.TierPlaceholder, s.Sources.Meme)
}

func TestSummarySubstitutesEmptyResults(t *testing.T) {
	agg := NewAggregator(
		priceFunc(func(context.Context) domain.PriceResult { return domain.PriceResult{Source: domain.TierPrimary} }),
		newsFunc(func(context.Context) domain.NewsResult { return domain.NewsResult{Source: domain.TierLive} }),
		memeFunc(func(context.Context) domain.MemeResult { return domain.MemeResult{Source: domain.TierFeed} }),
		testTracer(),
	)

	s := agg.Summary(context.Background())
	require.Equal(t, market.StaticPrices(), s.Prices)
	require.Equal(t, domain.TierFallback, s.Sources.Prices)
	require.NotEmpty(t, s.News)
	require.NotEmpty(t, s.Meme.URL)
}

func TestSummaryRunsBranchesConcurrently(t *testing.T) {
	var running, peak atomic.Int32
	track := func() {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		running.Add(-1)
	}
	agg := NewAggregator(
		priceFunc(func(ctx context.Context) domain.PriceResult { track(); return livePrices(ctx) }),
		newsFunc(func(ctx context.Context) domain.NewsResult { track(); return liveNews(ctx) }),
		memeFunc(func(ctx context.Context) domain.MemeResult { track(); return feedMeme(ctx) }),
		testTracer(),
	)

	agg.Summary(context.Background())
	require.EqualValues(t, 3, peak.Load())
}

func TestSummaryWithRealChainsAndNoCredentials(t *testing.T) {
	store := market.NewStore()
	prices := market.NewPriceChain(store, nil, nil, market.PriceOptions{}, testTracer())
	news := market.NewNewsChain(store, nil, market.NewsOptions{}, testTracer())
	memes := market.NewMemeSelector(store, nil, market.MemeOptions{}, testTracer())

	s := NewAggregator(prices, news, memes, testTracer()).Summary(context.Background())
	require.Len(t, s.Prices, 4)
	for _, p := range s.Prices {
		require.Nil(t, p.Price)
	}
	require.Len(t, s.News, 2)
	require.Contains(t, market.Placeholders(), s.Meme)
	require.Equal(t, domain.TierFallback, s.Sources.Prices)
	require.Equal(t, domain.TierFallback, s.Sources.News)
	require.Equal(t, domain.TierPlaceholder, s.Sources.Meme)
}
