package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	CoinGeckoAPIKey     string `yaml:"coingecko_api_key"`
	CryptoPanicToken    string `yaml:"cryptopanic_token"`
	PricesBypassCache   bool   `yaml:"prices_bypass_cache"`
	ProviderTimeoutSecs int    `yaml:"provider_timeout_secs"`

	MemeSubreddits     []string `yaml:"meme_subreddits"`
	MemeAllowedDomains []string `yaml:"meme_allowed_domains"`

	OpenRouterAPIKey  string `yaml:"openrouter_api_key"`
	OpenRouterModel   string `yaml:"openrouter_model"`
	OpenRouterBaseURL string `yaml:"openrouter_base_url"`

	RedisURL            string `yaml:"redis_url"`
	InsightRedisEnabled bool   `yaml:"insight_redis_enabled"`

	CORSOrigins      []string `yaml:"cors_origins"`
	TelegramBotToken string   `yaml:"telegram_bot_token"`
	CacheSweepSecs   int      `yaml:"cache_sweep_secs"`
}

const (
	defaultPort                = "8080"
	defaultProviderTimeoutSecs = 4
	defaultCacheSweepSecs      = 300
	defaultOpenRouterModel     = "openai/gpt-4o-mini"
)

var (
	defaultMemeSubreddits     = []string{"cryptocurrencymemes", "bitcoinmemes"}
	defaultMemeAllowedDomains = []string{"i.redd.it", "i.imgur.com"}
)

// Load reads settings from the environment. Missing credentials are not
// errors; the matching feature falls back to static data.
func Load() *Config {
	cfg := &Config{
		Port:              strings.TrimSpace(os.Getenv("PORT")),
		CoinGeckoAPIKey:   strings.TrimSpace(os.Getenv("COINGECKO_API_KEY")),
		CryptoPanicToken:  strings.TrimSpace(os.Getenv("CRYPTOPANIC_TOKEN")),
		OpenRouterAPIKey:  strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterModel:   strings.TrimSpace(os.Getenv("OPENROUTER_MODEL")),
		OpenRouterBaseURL: strings.TrimSpace(os.Getenv("OPENROUTER_BASE_URL")),
		RedisURL:          strings.TrimSpace(os.Getenv("REDIS_URL")),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.CryptoPanicToken == "" {
		log.Println("Warning: CRYPTOPANIC_TOKEN not set, news will use the static list")
	}
	if cfg.OpenRouterAPIKey == "" {
		log.Println("Warning: OPENROUTER_API_KEY not set, AI insight will be disabled")
	}

	cfg.PricesBypassCache = envBool("PRICES_BYPASS_CACHE")
	cfg.InsightRedisEnabled = envBool("INSIGHT_REDIS_ENABLED")
	cfg.ProviderTimeoutSecs = envPositiveInt("PROVIDER_TIMEOUT_SECS", defaultProviderTimeoutSecs)
	cfg.CacheSweepSecs = envPositiveInt("CACHE_SWEEP_SECS", defaultCacheSweepSecs)

	cfg.MemeSubreddits = SplitList(os.Getenv("MEME_SUBREDDITS"))
	cfg.MemeAllowedDomains = SplitList(os.Getenv("MEME_ALLOWED_DOMAINS"))
	cfg.CORSOrigins = SplitList(os.Getenv("CORS_ORIGIN"))

	cfg.applyDefaults()
	return cfg
}

// LoadFile starts from Load and overlays the keys present in the YAML file
// at path.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.ProviderTimeoutSecs <= 0 {
		c.ProviderTimeoutSecs = defaultProviderTimeoutSecs
	}
	if c.CacheSweepSecs <= 0 {
		c.CacheSweepSecs = defaultCacheSweepSecs
	}
	if c.OpenRouterModel == "" {
		c.OpenRouterModel = defaultOpenRouterModel
	}
	if len(c.MemeSubreddits) == 0 {
		c.MemeSubreddits = append([]string(nil), defaultMemeSubreddits...)
	}
	if len(c.MemeAllowedDomains) == 0 {
		c.MemeAllowedDomains = append([]string(nil), defaultMemeAllowedDomains...)
	}
}

// SplitList splits a comma-separated value, trimming whitespace and
// surrounding quotes from each element and dropping empty ones.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envBool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "true")
}

func envPositiveInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
	}
	return def
}
