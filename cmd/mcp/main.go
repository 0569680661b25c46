package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"market-pulse/internal/app"
	"market-pulse/internal/config"
	"market-pulse/internal/domain"
	"market-pulse/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initTracerFunc = tracing.InitTracer
	newSourcesFunc = app.DefaultSources
	runServerFunc  = func(ctx context.Context, s *mcp.Server) error {
		return s.Run(ctx, &mcp.StdioTransport{})
	}
)

type SummaryProvider interface {
	Summary(ctx context.Context) domain.DashboardSummary
}

type InsightProvider interface {
	Daily(ctx context.Context, prefs domain.InsightPreferences) domain.Insight
}

type DashboardSummaryArgs struct{}

type DailyInsightArgs struct {
	AssetInterests string `json:"assetInterests,omitempty" jsonschema:"Asset interests: btc, eth, alts, stable or nft"`
	InvestorType   string `json:"investorType,omitempty" jsonschema:"Investor type: hodler, day_trader, nft_collector, defi or other"`
	ContentType    string `json:"contentType,omitempty" jsonschema:"Content type: market_news, charts, social, fun or all"`
}

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	pulse := app.New(cfg, tracer, newSourcesFunc(tracer, cfg), nil)

	server := newServer(pulse.Aggregator, pulse.Insight)
	if err := runServerFunc(ctx, server); err != nil {
		log.Printf("market-pulse MCP server stopped: %v", err)
	}
}

func newServer(dashboard SummaryProvider, insight InsightProvider) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "market-pulse",
		Version: "1.0.0",
	}, &mcp.ServerOptions{
		Instructions: "Market Pulse exposes a crypto market dashboard and a daily AI insight. " +
			"Results always succeed; the sources field says which fallback tier served them.",
	})
	registerTools(server, dashboard, insight)
	return server
}

func registerTools(s *mcp.Server, dashboard SummaryProvider, insight InsightProvider) {
	mcp.AddTool(s, &mcp.Tool{
		Name:        "dashboard_summary",
		Description: "Get current prices for BTC, ETH, SOL and USDT, the latest news headlines and a meme",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DashboardSummaryArgs) (*mcp.CallToolResult, any, error) {
		return jsonResult(dashboard.Summary(ctx)), nil, nil
	})

	mcp.AddTool(s, &mcp.Tool{
		Name:        "daily_insight",
		Description: "Get today's short market insight, optionally tailored to the investor's preferences",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DailyInsightArgs) (*mcp.CallToolResult, any, error) {
		prefs := domain.InsightPreferences{
			AssetInterests: args.AssetInterests,
			InvestorType:   args.InvestorType,
			ContentType:    args.ContentType,
		}
		return jsonResult(insight.Daily(ctx, prefs)), nil, nil
	})
}

// jsonResult renders v as the tool's text content.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}
