package market

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

func testTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type stubPrices struct {
	name  string
	items []domain.PriceItem
	err   error
	calls atomic.Int32
}

func (s *stubPrices) Name() string { return s.name }

func (s *stubPrices) FetchPrices(ctx context.Context) ([]domain.PriceItem, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type stubNews struct {
	enabled bool
	items   []domain.NewsItem
	err     error
	calls   atomic.Int32
	limit   int
}

func (s *stubNews) Name() string  { return "stub-news" }
func (s *stubNews) Enabled() bool { return s.enabled }

func (s *stubNews) FetchNews(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	s.calls.Add(1)
	s.limit = limit
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type stubImages struct {
	posts []provider.ImagePost
	err   error
	calls atomic.Int32
}

func (s *stubImages) Name() string { return "stub-images" }

func (s *stubImages) FetchImages(ctx context.Context) ([]provider.ImagePost, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.posts, nil
}

var errUpstream = errors.New("upstream down")

func priceItems(btc float64) []domain.PriceItem {
	return []domain.PriceItem{
		{Symbol: "BTC", Price: domain.Float(btc), Change24h: domain.Float(1)},
		{Symbol: "ETH", Price: domain.Float(3000)},
		{Symbol: "SOL"},
		{Symbol: "USDT", Price: domain.Float(1)},
	}
}
