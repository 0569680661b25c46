package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"

	"market-pulse/internal/domain"
	"market-pulse/internal/market"
	"market-pulse/internal/metrics"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

type PriceGetter interface {
	GetPrices(ctx context.Context) domain.PriceResult
}

type NewsGetter interface {
	GetNews(ctx context.Context) domain.NewsResult
}

type MemePicker interface {
	Pick(ctx context.Context) domain.MemeResult
}

var errEmptyResult = errors.New("empty result")

// outcome is the settled result of one branch: exactly one of value or
// err is meaningful.
type outcome[T any] struct {
	value T
	err   error
}

// settle runs fn and converts a panic into an error outcome.
func settle[T any](ctx context.Context, kind string, fn func(context.Context) T) (out outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome[T]{err: fmt.Errorf("%s branch panicked: %v", kind, r)}
		}
	}()
	return outcome[T]{value: fn(ctx)}
}

// Aggregator composes the dashboard summary from the three data kinds.
type Aggregator struct {
	prices PriceGetter
	news   NewsGetter
	memes  MemePicker
	tracer trace.Tracer
}

func NewAggregator(prices PriceGetter, news NewsGetter, memes MemePicker, tracer trace.Tracer) *Aggregator {
	return &Aggregator{prices: prices, news: news, memes: memes, tracer: tracer}
}

// Summary always returns a fully populated summary. The three kinds are
// fetched concurrently and a failure in one never affects the others.
func (a *Aggregator) Summary(ctx context.Context) domain.DashboardSummary {
	ctx, span := a.tracer.Start(ctx, "dashboard.summary")
	defer span.End()

	var (
		g        errgroup.Group
		priceOut outcome[domain.PriceResult]
		newsOut  outcome[domain.NewsResult]
		memeOut  outcome[domain.MemeResult]
	)
	g.Go(func() error {
		priceOut = settle(ctx, "prices", a.prices.GetPrices)
		return nil
	})
	g.Go(func() error {
		newsOut = settle(ctx, "news", a.news.GetNews)
		return nil
	})
	g.Go(func() error {
		memeOut = settle(ctx, "meme", a.memes.Pick)
		return nil
	})
	_ = g.Wait()

	summary := domain.DashboardSummary{}

	if priceOut.err == nil && len(priceOut.value.Items) == 0 {
		priceOut.err = errEmptyResult
	}
	if priceOut.err != nil {
		anomaly("prices", priceOut.err)
		summary.Prices = market.StaticPrices()
		summary.Sources.Prices = domain.TierFallback
	} else {
		summary.Prices = priceOut.value.Items
		summary.Sources.Prices = priceOut.value.Source
	}

	if newsOut.err == nil && len(newsOut.value.Items) == 0 {
		newsOut.err = errEmptyResult
	}
	if newsOut.err != nil {
		anomaly("news", newsOut.err)
		summary.News = market.StaticNews()
		summary.Sources.News = domain.TierFallback
	} else {
		summary.News = newsOut.value.Items
		summary.Sources.News = newsOut.value.Source
	}

	if memeOut.err == nil && memeOut.value.Item.URL == "" {
		memeOut.err = errEmptyResult
	}
	if memeOut.err != nil {
		anomaly("meme", memeOut.err)
		summary.Meme = market.StaticMeme()
		summary.Sources.Meme = domain.TierPlaceholder
	} else {
		summary.Meme = memeOut.value.Item
		summary.Sources.Meme = memeOut.value.Source
	}

	return summary
}

func anomaly(kind string, err error) {
	log.Printf("dashboard %s error: %v", kind, err)
	metrics.RecordAggregatorAnomaly(kind)
}
