package cache

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultRedisAddr = "localhost:6379"

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// InitRedis connects to the shared store at rawURL, which may be a bare
// host:port or a redis:// / rediss:// URL. The caller decides whether a
// failure is fatal.
func InitRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	addr := strings.TrimSpace(rawURL)
	if addr == "" {
		addr = defaultRedisAddr
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	log.Printf("Connected to Redis at %s", opts.Addr)
	return client, nil
}
