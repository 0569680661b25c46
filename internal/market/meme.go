package market

import (
	"context"
	"log"
	"math/rand/v2"
	"net/url"
	"regexp"
	"strings"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/metrics"
	"market-pulse/internal/provider"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultMemeTTL = 10 * time.Minute
	feedSource     = "reddit"
)

var imageExt = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp)$`)

// ImageSource supplies raw meme candidates.
type ImageSource interface {
	Name() string
	FetchImages(ctx context.Context) ([]provider.ImagePost, error)
}

type MemeOptions struct {
	AllowedDomains  []string
	TTL             time.Duration
	ProviderTimeout time.Duration
}

// MemeSelector picks one image per request from the filtered feed, falling
// back to a placeholder when the feed is down or yields nothing usable.
type MemeSelector struct {
	store   *Store
	source  ImageSource
	allowed map[string]struct{}
	ttl     time.Duration
	timeout time.Duration
	intn    func(n int) int
	tracer  trace.Tracer
}

func NewMemeSelector(store *Store, source ImageSource, opts MemeOptions, tracer trace.Tracer) *MemeSelector {
	allowed := make(map[string]struct{}, len(opts.AllowedDomains))
	for _, d := range opts.AllowedDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			allowed[d] = struct{}{}
		}
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultMemeTTL
	}
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = DefaultProviderTimeout
	}
	return &MemeSelector{
		store:   store,
		source:  source,
		allowed: allowed,
		ttl:     opts.TTL,
		timeout: opts.ProviderTimeout,
		intn:    rand.IntN,
		tracer:  tracer,
	}
}

func (s *MemeSelector) Pick(ctx context.Context) domain.MemeResult {
	ctx, span := s.tracer.Start(ctx, "meme.pick")
	defer span.End()

	result := s.pick(ctx)
	span.SetAttributes(attribute.String("meme.tier", string(result.Source)))
	metrics.RecordTierServed("meme", string(result.Source))
	return result
}

func (s *MemeSelector) pick(ctx context.Context) domain.MemeResult {
	candidates := s.candidates(ctx)
	if len(candidates) > 0 {
		return domain.MemeResult{Item: candidates[s.intn(len(candidates))], Source: domain.TierFeed}
	}
	return domain.MemeResult{Item: placeholders[s.intn(len(placeholders))], Source: domain.TierPlaceholder}
}

func (s *MemeSelector) candidates(ctx context.Context) []domain.MemeItem {
	if hit, ok := s.store.memes.Get(memesKey); ok {
		return hit
	}
	if s.source == nil {
		return nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	posts, err := s.source.FetchImages(fetchCtx)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		log.Printf("Warning: %s memes unavailable: %v", s.source.Name(), err)
		metrics.RecordProviderError(s.source.Name())
		return nil
	}

	filtered := s.filter(posts)
	if len(filtered) == 0 {
		log.Printf("Warning: %s returned %d posts, none usable", s.source.Name(), len(posts))
		return nil
	}
	s.store.memes.Set(memesKey, filtered, s.ttl)
	return filtered
}

func (s *MemeSelector) filter(posts []provider.ImagePost) []domain.MemeItem {
	out := make([]domain.MemeItem, 0, len(posts))
	for _, p := range posts {
		if p.NSFW || p.Spoiler {
			continue
		}
		src, ok := s.imageURL(p)
		if !ok {
			continue
		}
		title := p.Title
		if title == "" {
			title = "Crypto meme"
		}
		out = append(out, domain.MemeItem{Title: title, URL: src, Source: feedSource})
	}
	return out
}

// imageURL returns the post's link when it is a direct image on an allowed
// host, else its preview image under the same rule.
func (s *MemeSelector) imageURL(p provider.ImagePost) (string, bool) {
	for _, raw := range []string{p.URL, p.PreviewURL} {
		if s.usable(raw) {
			return raw, true
		}
	}
	return "", false
}

// usable checks the host actually served, not the feed's reported domain.
func (s *MemeSelector) usable(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return false
	}
	if _, ok := s.allowed[strings.ToLower(u.Hostname())]; !ok {
		return false
	}
	return imageExt.MatchString(u.Path)
}
