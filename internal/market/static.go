package market

import (
	"time"

	"market-pulse/internal/domain"
)

const staticNewsURL = "https://cryptopanic.com/"

// staticNewsTime is fixed when the process starts so the fallback list is
// identical on every call.
var staticNewsTime = time.Now().UTC().Format(time.RFC3339)

// StaticPrices is the terminal price fallback: every tracked symbol with
// no price and no change.
func StaticPrices() []domain.PriceItem {
	items := make([]domain.PriceItem, 0, len(domain.TrackedSymbols))
	for _, sym := range domain.TrackedSymbols {
		items = append(items, domain.PriceItem{Symbol: sym})
	}
	return items
}

// StaticNews is the terminal news fallback.
func StaticNews() []domain.NewsItem {
	return []domain.NewsItem{
		{
			Title:       "Crypto markets digest: key moves to watch",
			URL:         staticNewsURL,
			Source:      "Static",
			PublishedAt: staticNewsTime,
		},
		{
			Title:       "On-chain activity snapshot and sentiment check",
			URL:         staticNewsURL,
			Source:      "Static",
			PublishedAt: staticNewsTime,
		},
	}
}
