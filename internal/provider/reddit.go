package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

const (
	redditBaseURL     = "https://www.reddit.com"
	defaultRedditUA   = "market-pulse/1.0 (dashboard meme feed)"
	defaultRedditSize = 50
)

// ImagePost is one raw feed entry. Filtering for safety and format is left
// to the caller.
type ImagePost struct {
	Title      string
	URL        string
	PreviewURL string
	NSFW       bool
	Spoiler    bool
}

// RedditImageProvider reads hot posts from one or more image subreddits.
type RedditImageProvider struct {
	client     HTTPClient
	baseURL    string
	userAgent  string
	subreddits []string
	tracer     trace.Tracer
}

func NewRedditImageProvider(tracer trace.Tracer, subreddits []string) *RedditImageProvider {
	clean := make([]string, 0, len(subreddits))
	for _, s := range subreddits {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	return &RedditImageProvider{
		client:     newHTTPClient(),
		baseURL:    redditBaseURL,
		userAgent:  defaultRedditUA,
		subreddits: clean,
		tracer:     tracer,
	}
}

func (p *RedditImageProvider) Name() string { return "reddit" }

func (p *RedditImageProvider) FetchImages(ctx context.Context) ([]ImagePost, error) {
	ctx, span := p.tracer.Start(ctx, "reddit.fetch-images")
	defer span.End()

	if len(p.subreddits) == 0 {
		return nil, fmt.Errorf("no subreddits configured")
	}

	escaped := make([]string, 0, len(p.subreddits))
	for _, s := range p.subreddits {
		escaped = append(escaped, url.PathEscape(s))
	}
	u := fmt.Sprintf("%s/r/%s/hot.json?limit=%d",
		strings.TrimRight(p.baseURL, "/"), strings.Join(escaped, "+"), defaultRedditSize)

	var header http.Header
	if p.userAgent != "" {
		header = http.Header{"User-Agent": []string{p.userAgent}}
	}

	body, err := getBody(ctx, p.client, "reddit", u, header)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch hot: %w", err)
	}

	var payload struct {
		Data struct {
			Children []struct {
				Data struct {
					Title   string `json:"title"`
					URL     string `json:"url"`
					Over18  bool   `json:"over_18"`
					Spoiler bool   `json:"spoiler"`
					Preview *struct {
						Images []struct {
							Source struct {
								URL string `json:"url"`
							} `json:"source"`
						} `json:"images"`
					} `json:"preview"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode reddit response: %w", err)
	}

	posts := make([]ImagePost, 0, len(payload.Data.Children))
	for _, row := range payload.Data.Children {
		data := row.Data
		post := ImagePost{
			Title:   sanitizeText(data.Title, 300),
			URL:     strings.TrimSpace(html.UnescapeString(data.URL)),
			NSFW:    data.Over18,
			Spoiler: data.Spoiler,
		}
		if data.Preview != nil && len(data.Preview.Images) > 0 {
			post.PreviewURL = html.UnescapeString(data.Preview.Images[0].Source.URL)
		}
		posts = append(posts, post)
	}
	return posts, nil
}
