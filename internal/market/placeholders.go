package market

import (
	"fmt"
	"net/url"
	"strings"

	"market-pulse/internal/domain"
)

const placeholderSource = "inline-svg"

const memeSVGTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="900" height="600">
  <defs>
    <linearGradient id="bg" x1="0" x2="1" y1="0" y2="1">
      <stop offset="0%%" stop-color="#0f172a"/>
      <stop offset="100%%" stop-color="#111827"/>
    </linearGradient>
  </defs>
  <rect width="100%%" height="100%%" fill="url(#bg)"/>
  <rect x="40" y="40" width="820" height="520" rx="28" fill="#0b1220" stroke="%[3]s" stroke-width="4"/>
  <text x="90" y="190" fill="#f8fafc" font-size="48" font-family="Segoe UI, Arial, sans-serif" font-weight="700">%[1]s</text>
  <text x="90" y="260" fill="#cbd5f5" font-size="28" font-family="Segoe UI, Arial, sans-serif">%[2]s</text>
  <text x="90" y="420" fill="%[3]s" font-size="22" font-family="Segoe UI, Arial, sans-serif">Market Pulse Meme</text>
</svg>`

type placeholderSpec struct {
	title    string
	headline string
	subtitle string
	accent   string
}

var placeholderSpecs = []placeholderSpec{
	{"HODL Mode", "HODL Mode: ON", "When the chart drops but you stay calm", "#38bdf8"},
	{"Buy The Dip", "Buy The Dip", "Refreshing the chart every 5 seconds", "#22c55e"},
	{"Altcoin Season", "Altcoin Season", "Every bag is a moon mission", "#f97316"},
	{"Diamond Hands", "Diamond Hands", "Sell button removed from keyboard", "#a855f7"},
	{"To The Moon", "To The Moon", "Launching in 3...2...1", "#facc15"},
}

var placeholders []domain.MemeItem

func init() {
	placeholders = make([]domain.MemeItem, 0, len(placeholderSpecs))
	for _, s := range placeholderSpecs {
		placeholders = append(placeholders, domain.MemeItem{
			Title:  s.title,
			URL:    svgDataURL(fmt.Sprintf(memeSVGTemplate, s.headline, s.subtitle, s.accent)),
			Source: placeholderSource,
		})
	}
	if len(placeholders) == 0 {
		panic("market: placeholder meme set is empty")
	}
}

// svgDataURL percent-encodes svg the way encodeURIComponent does, which
// browsers accept in a utf8 data URL.
func svgDataURL(svg string) string {
	return "data:image/svg+xml;utf8," + strings.ReplaceAll(url.QueryEscape(svg), "+", "%20")
}

// Placeholders returns a copy of the fixed placeholder set.
func Placeholders() []domain.MemeItem {
	out := make([]domain.MemeItem, len(placeholders))
	copy(out, placeholders)
	return out
}

// StaticMeme is the terminal meme fallback used when selection itself
// fails.
func StaticMeme() domain.MemeItem {
	return placeholders[0]
}
