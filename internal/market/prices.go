package market

import (
	"context"
	"log"
	"slices"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultPrimaryTTL      = 5 * time.Minute
	DefaultDegradedTTL     = 2 * time.Minute
	DefaultProviderTimeout = 4 * time.Second
)

// PriceSource is a single upstream price provider.
type PriceSource interface {
	Name() string
	FetchPrices(ctx context.Context) ([]domain.PriceItem, error)
}

type PriceOptions struct {
	PrimaryTTL      time.Duration
	DegradedTTL     time.Duration
	ProviderTimeout time.Duration
	// BypassCache skips the cache read. Results are still written.
	BypassCache bool
}

func (o PriceOptions) withDefaults() PriceOptions {
	if o.PrimaryTTL <= 0 {
		o.PrimaryTTL = DefaultPrimaryTTL
	}
	if o.DegradedTTL <= 0 {
		o.DegradedTTL = DefaultDegradedTTL
	}
	if o.ProviderTimeout <= 0 {
		o.ProviderTimeout = DefaultProviderTimeout
	}
	return o
}

// PriceChain walks cache, primary, secondary, last-known-good and static
// tiers in that order and stops at the first one that yields data.
type PriceChain struct {
	store     *Store
	primary   PriceSource
	secondary PriceSource
	opts      PriceOptions
	tracer    trace.Tracer
}

// NewPriceChain wires the chain. Either source may be nil, in which case
// its tier is skipped.
func NewPriceChain(store *Store, primary, secondary PriceSource, opts PriceOptions, tracer trace.Tracer) *PriceChain {
	return &PriceChain{
		store:     store,
		primary:   primary,
		secondary: secondary,
		opts:      opts.withDefaults(),
		tracer:    tracer,
	}
}

// GetPrices never fails. Provider errors are logged and move the chain to
// the next tier.
func (c *PriceChain) GetPrices(ctx context.Context) domain.PriceResult {
	ctx, span := c.tracer.Start(ctx, "prices.get")
	defer span.End()

	result := c.resolve(ctx)
	span.SetAttributes(attribute.String("prices.tier", string(result.Source)))
	metrics.RecordTierServed("prices", string(result.Source))
	return result
}

func (c *PriceChain) resolve(ctx context.Context) domain.PriceResult {
	if !c.opts.BypassCache {
		if hit, ok := c.store.prices.Get(pricesKey); ok {
			return domain.PriceResult{Items: slices.Clone(hit), Source: domain.TierCache}
		}
	}

	tiers := []struct {
		src  PriceSource
		tier domain.Tier
	}{
		{c.primary, domain.TierPrimary},
		{c.secondary, domain.TierSecondary},
	}
	for _, t := range tiers {
		if t.src == nil {
			continue
		}
		items, err := c.fetch(ctx, t.src)
		if err != nil && ctx.Err() != nil {
			return c.abandoned()
		}
		if err != nil {
			log.Printf("Warning: %s prices unavailable: %v", t.src.Name(), err)
			metrics.RecordProviderError(t.src.Name())
			continue
		}
		c.store.setLastPrices(items)
		c.store.prices.Set(pricesKey, items, c.opts.PrimaryTTL)
		return domain.PriceResult{Items: slices.Clone(items), Source: t.tier}
	}

	if last, ok := c.store.LastPrices(); ok {
		c.store.prices.Set(pricesKey, last, c.opts.DegradedTTL)
		return domain.PriceResult{Items: slices.Clone(last), Source: domain.TierLastKnown}
	}

	log.Println("Warning: all price tiers failed, serving static prices")
	static := StaticPrices()
	c.store.prices.Set(pricesKey, static, c.opts.DegradedTTL)
	return domain.PriceResult{Items: StaticPrices(), Source: domain.TierFallback}
}

// abandoned answers a caller that went away mid-fetch. The upstream was
// not at fault, so nothing is cached or counted.
func (c *PriceChain) abandoned() domain.PriceResult {
	if last, ok := c.store.LastPrices(); ok {
		return domain.PriceResult{Items: last, Source: domain.TierLastKnown}
	}
	return domain.PriceResult{Items: StaticPrices(), Source: domain.TierFallback}
}

func (c *PriceChain) fetch(ctx context.Context, src PriceSource) ([]domain.PriceItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ProviderTimeout)
	defer cancel()
	return src.FetchPrices(ctx)
}
