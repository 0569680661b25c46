package job

import (
	"context"
	"log"
	"sync"
	"time"

	"market-pulse/internal/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultSweepInterval = 5 * time.Minute

// Purger is a cache whose expired entries can be dropped in bulk.
type Purger interface {
	Purge() int
}

// CacheSweeper periodically purges registered caches so keys that are
// never read again (yesterday's insights, for one) do not pile up.
type CacheSweeper struct {
	tracer   trace.Tracer
	interval time.Duration

	mu     sync.Mutex
	caches map[string]Purger
}

func NewCacheSweeper(tracer trace.Tracer, intervalSecs int) *CacheSweeper {
	interval := time.Duration(intervalSecs) * time.Second
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &CacheSweeper{
		tracer:   tracer,
		interval: interval,
		caches:   make(map[string]Purger),
	}
}

func (s *CacheSweeper) Register(name string, p Purger) {
	if p == nil {
		return
	}
	s.mu.Lock()
	s.caches[name] = p
	s.mu.Unlock()
}

// Start blocks until ctx is cancelled.
func (s *CacheSweeper) Start(ctx context.Context) {
	log.Printf("Cache sweeper starting (every %s)", s.interval)
	pollLoop(ctx, "cache-sweep", s.interval, s.sweep)
	log.Println("Cache sweeper stopped")
}

func (s *CacheSweeper) sweep(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "job.cache-sweep")
	defer span.End()

	s.mu.Lock()
	caches := make(map[string]Purger, len(s.caches))
	for name, p := range s.caches {
		caches[name] = p
	}
	s.mu.Unlock()

	total := 0
	for name, p := range caches {
		n := p.Purge()
		metrics.RecordCacheEvictions(name, n)
		total += n
	}
	span.SetAttributes(attribute.Int("cache.evicted", total))
	if total > 0 {
		log.Printf("Cache sweeper removed %d expired entries", total)
	}
	return nil
}

func pollLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		log.Printf("poller %s initial run error: %v", name, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				log.Printf("poller %s error: %v", name, err)
			}
		}
	}
}
