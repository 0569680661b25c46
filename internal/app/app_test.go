package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"market-pulse/internal/config"
	"market-pulse/internal/domain"
	"market-pulse/internal/insight"
	"market-pulse/internal/job"
	"market-pulse/internal/provider"

	"github.com/openai/openai-go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func testTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

type stubPrices struct{ err error }

func (s stubPrices) Name() string { return "stub-prices" }

func (s stubPrices) FetchPrices(ctx context.Context) ([]domain.PriceItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.PriceItem{{Symbol: "BTC", Price: domain.Float(100)}}, nil
}

type stubImages struct{}

func (stubImages) Name() string { return "stub-images" }

func (stubImages) FetchImages(ctx context.Context) ([]provider.ImagePost, error) {
	return nil, errors.New("offline")
}

type stubLLM struct{}

func (stubLLM) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "Steady."}}},
	}, nil
}

type memRedis struct {
	data map[string]string
}

func (m *memRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := m.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func TestDefaultSources(t *testing.T) {
	src := DefaultSources(testTracer(), &config.Config{})
	require.NotNil(t, src.PrimaryPrices)
	require.NotNil(t, src.SecondaryPrices)
	require.NotNil(t, src.News)
	require.False(t, src.News.Enabled())
	require.NotNil(t, src.Images)
	require.Nil(t, src.LLM)

	src = DefaultSources(testTracer(), &config.Config{OpenRouterAPIKey: "sk", CryptoPanicToken: "cp"})
	require.NotNil(t, src.LLM)
	require.True(t, src.News.Enabled())
}

func TestNewComposesSummary(t *testing.T) {
	cfg := &config.Config{ProviderTimeoutSecs: 1}
	a := New(cfg, testTracer(), Sources{
		PrimaryPrices:   stubPrices{err: errors.New("down")},
		SecondaryPrices: stubPrices{},
		Images:          stubImages{},
	}, nil)

	summary := a.Aggregator.Summary(context.Background())
	require.Equal(t, domain.TierSecondary, summary.Sources.Prices)
	require.Equal(t, domain.TierFallback, summary.Sources.News)
	require.Equal(t, domain.TierPlaceholder, summary.Sources.Meme)
	require.Len(t, summary.News, 2)

	got := a.Insight.Daily(context.Background(), domain.InsightPreferences{})
	require.Equal(t, insight.DisabledText, got.Text)
}

func TestNewUsesSharedInsightStore(t *testing.T) {
	rdb := &memRedis{data: map[string]string{}}
	a := New(&config.Config{}, testTracer(), Sources{LLM: stubLLM{}}, rdb)

	got := a.Insight.Daily(context.Background(), domain.InsightPreferences{AssetInterests: "btc"})
	require.Equal(t, "Steady.", got.Text)
	require.Len(t, rdb.data, 1)
	require.Equal(t, 1, a.InsightCache.Len())
}

func TestRegisterCaches(t *testing.T) {
	a := New(&config.Config{}, testTracer(), Sources{}, nil)
	sweeper := job.NewCacheSweeper(testTracer(), 60)
	a.RegisterCaches(sweeper)
	// no panics and both caches purge cleanly
	require.Equal(t, 0, a.Store.Purge())
	require.Equal(t, 0, a.InsightCache.Purge())
}
