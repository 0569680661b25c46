package market

import (
	"slices"
	"sync/atomic"
	"time"

	"market-pulse/internal/cache"
	"market-pulse/internal/domain"
)

const (
	pricesKey = "prices"
	newsKey   = "news"
	memesKey  = "memes"
)

// Store owns the response caches and the last-known-good slots shared by
// the fallback chains. One Store is created per process and handed to the
// chains; tests build their own.
type Store struct {
	prices *cache.TTL[[]domain.PriceItem]
	news   *cache.TTL[[]domain.NewsItem]
	memes  *cache.TTL[[]domain.MemeItem]

	lastPrices atomic.Pointer[[]domain.PriceItem]
	lastNews   atomic.Pointer[[]domain.NewsItem]
}

func NewStore() *Store {
	return &Store{
		prices: cache.NewTTL[[]domain.PriceItem](),
		news:   cache.NewTTL[[]domain.NewsItem](),
		memes:  cache.NewTTL[[]domain.MemeItem](),
	}
}

// WithClock swaps the time source of every cache in the store.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.prices.WithClock(now)
	s.news.WithClock(now)
	s.memes.WithClock(now)
	return s
}

// LastPrices returns a copy of the most recent successful provider result.
func (s *Store) LastPrices() ([]domain.PriceItem, bool) {
	p := s.lastPrices.Load()
	if p == nil {
		return nil, false
	}
	return slices.Clone(*p), true
}

func (s *Store) setLastPrices(items []domain.PriceItem) {
	c := slices.Clone(items)
	s.lastPrices.Store(&c)
}

func (s *Store) LastNews() ([]domain.NewsItem, bool) {
	p := s.lastNews.Load()
	if p == nil {
		return nil, false
	}
	return slices.Clone(*p), true
}

func (s *Store) setLastNews(items []domain.NewsItem) {
	c := slices.Clone(items)
	s.lastNews.Store(&c)
}

// Purge drops expired entries from every cache and reports the total.
func (s *Store) Purge() int {
	return s.prices.Purge() + s.news.Purge() + s.memes.Purge()
}

// Len is the number of stored cache entries across all caches.
func (s *Store) Len() int {
	return s.prices.Len() + s.news.Len() + s.memes.Len()
}
