package domain

import "time"

// Tier names the fallback stage that produced a value.
type Tier string

const (
	TierCache       Tier = "cache"
	TierPrimary     Tier = "primary"
	TierSecondary   Tier = "secondary"
	TierLive        Tier = "live"
	TierLastKnown   Tier = "last_known"
	TierFallback    Tier = "fallback"
	TierFeed        Tier = "feed"
	TierPlaceholder Tier = "placeholder"
)

// PriceItem is one tracked asset. Price and Change24h are nil when the
// provider did not report them.
type PriceItem struct {
	Symbol    string   `json:"symbol"`
	Price     *float64 `json:"price"`
	Change24h *float64 `json:"change24h"`
}

type PriceResult struct {
	Items  []PriceItem `json:"items"`
	Source Tier        `json:"source"`
}

type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

type NewsResult struct {
	Items  []NewsItem `json:"items"`
	Source Tier       `json:"source"`
}

type MemeItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

type MemeResult struct {
	Item   MemeItem `json:"item"`
	Source Tier     `json:"source"`
}

// SummarySources records which tier served each field of a summary.
type SummarySources struct {
	Prices Tier `json:"prices"`
	News   Tier `json:"news"`
	Meme   Tier `json:"meme"`
}

// DashboardSummary is the composed response. It is built once per request
// and never modified afterwards.
type DashboardSummary struct {
	Prices  []PriceItem    `json:"prices"`
	News    []NewsItem     `json:"news"`
	Meme    MemeItem       `json:"meme"`
	Sources SummarySources `json:"sources"`
}

type InsightSource string

const (
	InsightGenerated InsightSource = "generated"
	InsightFallback  InsightSource = "fallback"
)

type Insight struct {
	Text        string        `json:"text"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Source      InsightSource `json:"source"`
}

// InsightPreferences are the optional onboarding answers that shape the
// daily insight. Empty fields mean "any".
type InsightPreferences struct {
	AssetInterests string `json:"assetInterests,omitempty"`
	InvestorType   string `json:"investorType,omitempty"`
	ContentType    string `json:"contentType,omitempty"`
}

// Float returns a pointer to v, for building PriceItems.
func Float(v float64) *float64 {
	return &v
}
