package insight

import (
	"net/url"
	"strings"
	"time"

	"market-pulse/internal/domain"
)

const (
	keyPrefix     = "insight"
	anyPreference = "any"
	maxPrefRunes  = 64
)

// Normalize is the canonical form of prefs used for both the cache key and
// the prompt: trimmed, lowercased, capped at 64 runes, with "any" treated
// as unset.
func Normalize(prefs domain.InsightPreferences) domain.InsightPreferences {
	return domain.InsightPreferences{
		AssetInterests: normalizePref(prefs.AssetInterests),
		InvestorType:   normalizePref(prefs.InvestorType),
		ContentType:    normalizePref(prefs.ContentType),
	}
}

func normalizePref(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if r := []rune(v); len(r) > maxPrefRunes {
		v = strings.TrimSpace(string(r[:maxPrefRunes]))
	}
	if v == anyPreference {
		return ""
	}
	return v
}

// Key returns the cache key for one UTC day and one preference set.
// Distinct normalized preferences always map to distinct keys.
func Key(prefs domain.InsightPreferences, now time.Time) string {
	prefs = Normalize(prefs)
	return strings.Join([]string{
		keyPrefix,
		now.UTC().Format(time.DateOnly),
		keyPart(prefs.AssetInterests),
		keyPart(prefs.InvestorType),
		keyPart(prefs.ContentType),
	}, ":")
}

// keyPart escapes v so it cannot contain the ':' delimiter.
func keyPart(v string) string {
	if v == "" {
		return anyPreference
	}
	return url.QueryEscape(v)
}
