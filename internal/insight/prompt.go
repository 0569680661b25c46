package insight

import (
	"strings"

	"market-pulse/internal/domain"
)

const systemPrompt = "You are a helpful assistant for a crypto dashboard."

const (
	DisabledText    = "AI insight is disabled. Add OPENROUTER_API_KEY to enable it."
	UnavailableText = "AI insight is unavailable right now."
)

// BuildUserPrompt mentions only the preferences that are set.
func BuildUserPrompt(prefs domain.InsightPreferences) string {
	var parts []string
	if v := strings.TrimSpace(prefs.AssetInterests); v != "" {
		parts = append(parts, "assets: "+v)
	}
	if v := strings.TrimSpace(prefs.InvestorType); v != "" {
		parts = append(parts, "investor: "+v)
	}
	if v := strings.TrimSpace(prefs.ContentType); v != "" {
		parts = append(parts, "content: "+v)
	}

	var sb strings.Builder
	sb.WriteString("You are a crypto market assistant. ")
	if len(parts) > 0 {
		sb.WriteString("User preferences: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(". ")
	}
	sb.WriteString("Provide one concise daily insight (max 3 sentences), neutral and not financial advice.")
	return sb.String()
}
