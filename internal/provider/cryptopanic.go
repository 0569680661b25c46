package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"market-pulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	cryptopanicBaseURL  = "https://cryptopanic.com/api/developer/v2"
	cryptopanicHomeURL  = "https://cryptopanic.com/"
	cryptopanicSourceID = "CryptoPanic"
)

// CryptoPanicProvider fetches news headlines. It needs an auth token; see
// Enabled.
type CryptoPanicProvider struct {
	client  HTTPClient
	baseURL string
	token   string
	tracer  trace.Tracer
}

func NewCryptoPanicProvider(tracer trace.Tracer, token string) *CryptoPanicProvider {
	return &CryptoPanicProvider{
		client:  newHTTPClient(),
		baseURL: cryptopanicBaseURL,
		token:   strings.TrimSpace(token),
		tracer:  tracer,
	}
}

func (p *CryptoPanicProvider) Name() string { return "cryptopanic" }

// Enabled reports whether a token is configured.
func (p *CryptoPanicProvider) Enabled() bool { return p.token != "" }

// FetchNews returns at most limit headlines in feed order.
func (p *CryptoPanicProvider) FetchNews(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	ctx, span := p.tracer.Start(ctx, "cryptopanic.fetch-news")
	defer span.End()

	if !p.Enabled() {
		return nil, fmt.Errorf("cryptopanic token is not configured")
	}

	q := url.Values{}
	q.Set("auth_token", p.token)
	q.Set("public", "true")
	q.Set("kind", "news")
	u := fmt.Sprintf("%s/posts/?%s", strings.TrimRight(p.baseURL, "/"), q.Encode())

	body, err := getBody(ctx, p.client, "cryptopanic", u, nil)
	if err != nil {
		span.RecordError(err)
		// the token is part of the URL; do not leak it through the error
		return nil, fmt.Errorf("fetch posts: %w", redactToken(err, p.token))
	}

	var payload struct {
		Results []struct {
			Title  string `json:"title"`
			URL    string `json:"url"`
			Source *struct {
				Title string `json:"title"`
			} `json:"source"`
			PublishedAt string `json:"published_at"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse posts: %w", err)
	}

	items := make([]domain.NewsItem, 0, min(limit, len(payload.Results)))
	for _, row := range payload.Results {
		if limit > 0 && len(items) >= limit {
			break
		}
		title := sanitizeText(row.Title, 300)
		if title == "" {
			continue
		}
		link := strings.TrimSpace(row.URL)
		if link == "" {
			link = cryptopanicHomeURL
		}
		source := cryptopanicSourceID
		if row.Source != nil && strings.TrimSpace(row.Source.Title) != "" {
			source = strings.TrimSpace(row.Source.Title)
		}
		items = append(items, domain.NewsItem{
			Title:       title,
			URL:         link,
			Source:      source,
			PublishedAt: strings.TrimSpace(row.PublishedAt),
		})
	}
	return items, nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redactToken(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), token, "REDACTED"), err: err}
}
