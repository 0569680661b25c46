package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"market-pulse/internal/app"
	"market-pulse/internal/bot"
	"market-pulse/internal/cache"
	"market-pulse/internal/config"
	"market-pulse/internal/handler"
	"market-pulse/internal/insight"
	"market-pulse/internal/job"
	"market-pulse/internal/metrics"
	"market-pulse/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "market-pulse/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initTracerFunc         = tracing.InitTracer
	initPrometheusFunc     = metrics.InitPrometheus
	initRedisFunc          = cache.InitRedis
	newSourcesFunc         = app.DefaultSources
	startSweeperFunc       = func(s *job.CacheSweeper, ctx context.Context) { go s.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Market Pulse API
// @version         1.0
// @description     Crypto market dashboard with tiered provider fallbacks and a daily AI insight.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing and metrics
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer shutdownTracer(tp)
	initPrometheusFunc("market_pulse")

	// Shared insight cache is optional; memory only when Redis is down
	var shared insight.RedisClient
	if cfg.InsightRedisEnabled {
		rdb, err := initRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: redis unavailable, insight cache is memory only: %v", err)
		} else {
			defer closeRedis(rdb)
			shared = rdb
		}
	}

	pulse := app.New(cfg, tracer, newSourcesFunc(tracer, cfg), shared)

	// Sweep expired cache entries in the background (stopped by ctx cancel)
	sweeper := job.NewCacheSweeper(tracer, cfg.CacheSweepSecs)
	pulse.RegisterCaches(sweeper)
	startSweeperFunc(sweeper, ctx)

	// Start Telegram bot
	startTelegramBotFunc(cfg.TelegramBotToken, pulse.Aggregator, pulse.Insight)

	// Create handlers and routes
	h := handler.New(tracer, pulse.Aggregator, pulse.Insight)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName()))
	r.Use(handler.RequestID())
	r.Use(handler.CORS(cfg.CORSOrigins))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

type tracerShutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdownTracer flushes pending spans. It runs after the root context is
// cancelled, so it gets its own deadline.
func shutdownTracer(tp tracerShutdowner) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil {
		log.Printf("error shutting down tracer provider: %v", err)
	}
}

func closeRedis(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		log.Printf("error closing redis: %v", err)
	}
}
