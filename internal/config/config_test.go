package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var envKeys = []string{
	"PORT", "COINGECKO_API_KEY", "CRYPTOPANIC_TOKEN", "OPENROUTER_API_KEY",
	"OPENROUTER_MODEL", "OPENROUTER_BASE_URL", "PRICES_BYPASS_CACHE",
	"PROVIDER_TIMEOUT_SECS", "MEME_SUBREDDITS", "MEME_ALLOWED_DOMAINS",
	"CORS_ORIGIN", "REDIS_URL", "INSIGHT_REDIS_ENABLED", "TELEGRAM_BOT_TOKEN",
	"CACHE_SWEEP_SECS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.ProviderTimeoutSecs != 4 || cfg.CacheSweepSecs != 300 {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.OpenRouterModel != "openai/gpt-4o-mini" {
		t.Fatalf("unexpected model default: %s", cfg.OpenRouterModel)
	}
	if !reflect.DeepEqual(cfg.MemeSubreddits, []string{"cryptocurrencymemes", "bitcoinmemes"}) {
		t.Fatalf("unexpected subreddits: %v", cfg.MemeSubreddits)
	}
	if !reflect.DeepEqual(cfg.MemeAllowedDomains, []string{"i.redd.it", "i.imgur.com"}) {
		t.Fatalf("unexpected domains: %v", cfg.MemeAllowedDomains)
	}
	if cfg.PricesBypassCache || cfg.InsightRedisEnabled || len(cfg.CORSOrigins) != 0 {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CRYPTOPANIC_TOKEN", "cp")
	t.Setenv("OPENROUTER_API_KEY", "or")
	t.Setenv("PRICES_BYPASS_CACHE", "TRUE")
	t.Setenv("PROVIDER_TIMEOUT_SECS", "7")
	t.Setenv("CORS_ORIGIN", `"http://a.example", 'http://b.example' ,`)
	t.Setenv("MEME_SUBREDDITS", "dogecoin")

	cfg := Load()
	if cfg.Port != "9090" || cfg.CryptoPanicToken != "cp" || cfg.OpenRouterAPIKey != "or" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.PricesBypassCache || cfg.ProviderTimeoutSecs != 7 {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://a.example", "http://b.example"}) {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
	if !reflect.DeepEqual(cfg.MemeSubreddits, []string{"dogecoin"}) {
		t.Fatalf("unexpected subreddits: %v", cfg.MemeSubreddits)
	}

	t.Setenv("PROVIDER_TIMEOUT_SECS", "bad")
	cfg = Load()
	if cfg.ProviderTimeoutSecs != 4 {
		t.Fatalf("invalid timeout should fall back to default, got %d", cfg.ProviderTimeoutSecs)
	}
}

func TestLoadFileOverlaysYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRYPTOPANIC_TOKEN", "from-env")
	t.Setenv("PORT", "9000")

	path := filepath.Join(t.TempDir(), "pulse.yaml")
	content := []byte("port: \"7070\"\nopenrouter_model: anthropic/claude-3-haiku\nmeme_allowed_domains:\n  - i.imgur.com\nprovider_timeout_secs: 0\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("yaml should override env port, got %s", cfg.Port)
	}
	if cfg.CryptoPanicToken != "from-env" {
		t.Fatalf("keys absent from yaml keep env values, got %q", cfg.CryptoPanicToken)
	}
	if cfg.OpenRouterModel != "anthropic/claude-3-haiku" {
		t.Fatalf("unexpected model: %s", cfg.OpenRouterModel)
	}
	if !reflect.DeepEqual(cfg.MemeAllowedDomains, []string{"i.imgur.com"}) {
		t.Fatalf("unexpected domains: %v", cfg.MemeAllowedDomains)
	}
	if cfg.ProviderTimeoutSecs != 4 {
		t.Fatalf("zero timeout should be defaulted, got %d", cfg.ProviderTimeoutSecs)
	}
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}

	cfg, err := LoadFile("")
	if err != nil || cfg == nil {
		t.Fatalf("empty path should load env only: %v", err)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(` "x" , ,'y',z `)
	if !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
		t.Fatalf("unexpected split: %v", got)
	}
	if SplitList("") != nil {
		t.Fatal("expected nil for empty input")
	}
}
