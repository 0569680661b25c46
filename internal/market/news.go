package market

import (
	"context"
	"errors"
	"log"
	"slices"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultNewsLimit       = 6
	DefaultNewsTTL         = 15 * time.Minute
	DefaultNewsDegradedTTL = 5 * time.Minute
)

var errEmptyFeed = errors.New("provider returned no headlines")

// NewsSource is the headline provider. Enabled reports whether it has the
// credential it needs; a disabled source is never called.
type NewsSource interface {
	Name() string
	Enabled() bool
	FetchNews(ctx context.Context, limit int) ([]domain.NewsItem, error)
}

type NewsOptions struct {
	Limit           int
	TTL             time.Duration
	DegradedTTL     time.Duration
	ProviderTimeout time.Duration
}

func (o NewsOptions) withDefaults() NewsOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultNewsLimit
	}
	if o.TTL <= 0 {
		o.TTL = DefaultNewsTTL
	}
	if o.DegradedTTL <= 0 {
		o.DegradedTTL = DefaultNewsDegradedTTL
	}
	if o.ProviderTimeout <= 0 {
		o.ProviderTimeout = DefaultProviderTimeout
	}
	return o
}

type NewsChain struct {
	store  *Store
	source NewsSource
	opts   NewsOptions
	tracer trace.Tracer
}

func NewNewsChain(store *Store, source NewsSource, opts NewsOptions, tracer trace.Tracer) *NewsChain {
	return &NewsChain{
		store:  store,
		source: source,
		opts:   opts.withDefaults(),
		tracer: tracer,
	}
}

// GetNews returns up to Limit headlines and the tier that produced them.
// Without a configured source the static list is returned and nothing is
// cached, so adding a token takes effect on the next request.
func (c *NewsChain) GetNews(ctx context.Context) domain.NewsResult {
	ctx, span := c.tracer.Start(ctx, "news.get")
	defer span.End()

	result := c.resolve(ctx)
	span.SetAttributes(attribute.String("news.tier", string(result.Source)))
	metrics.RecordTierServed("news", string(result.Source))
	return result
}

func (c *NewsChain) resolve(ctx context.Context) domain.NewsResult {
	if hit, ok := c.store.news.Get(newsKey); ok {
		return domain.NewsResult{Items: slices.Clone(hit), Source: domain.TierCache}
	}

	if c.source == nil || !c.source.Enabled() {
		return domain.NewsResult{Items: StaticNews(), Source: domain.TierFallback}
	}

	items, err := c.fetch(ctx)
	if err == nil {
		c.store.setLastNews(items)
		c.store.news.Set(newsKey, items, c.opts.TTL)
		return domain.NewsResult{Items: slices.Clone(items), Source: domain.TierLive}
	}
	if ctx.Err() != nil {
		if last, ok := c.store.LastNews(); ok {
			return domain.NewsResult{Items: last, Source: domain.TierLastKnown}
		}
		return domain.NewsResult{Items: StaticNews(), Source: domain.TierFallback}
	}
	log.Printf("Warning: %s news unavailable: %v", c.source.Name(), err)
	metrics.RecordProviderError(c.source.Name())

	if last, ok := c.store.LastNews(); ok {
		c.store.news.Set(newsKey, last, c.opts.DegradedTTL)
		return domain.NewsResult{Items: slices.Clone(last), Source: domain.TierLastKnown}
	}

	static := StaticNews()
	c.store.news.Set(newsKey, static, c.opts.DegradedTTL)
	return domain.NewsResult{Items: StaticNews(), Source: domain.TierFallback}
}

func (c *NewsChain) fetch(ctx context.Context) ([]domain.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ProviderTimeout)
	defer cancel()

	items, err := c.source.FetchNews(ctx, c.opts.Limit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errEmptyFeed
	}
	if len(items) > c.opts.Limit {
		items = items[:c.opts.Limit]
	}
	return items, nil
}
