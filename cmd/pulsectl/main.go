package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"market-pulse/internal/app"
	"market-pulse/internal/config"
	"market-pulse/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.LoadFile
	newSourcesFunc = app.DefaultSources
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "pulsectl",
		Short:         "Market Pulse - one-shot dashboard and insight queries",
		Long:          "Runs the same fallback chains as the server once and prints the result as JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (overrides environment)")

	build := func() (*app.App, error) {
		loadEnvFunc()
		cfg, err := loadConfigFunc(configPath)
		if err != nil {
			return nil, err
		}
		tracer := noop.NewTracerProvider().Tracer("pulsectl")
		return app.New(cfg, tracer, newSourcesFunc(tracer, cfg), nil), nil
	}

	rootCmd.AddCommand(summaryCmd(build), insightCmd(build))
	return rootCmd
}

func summaryCmd(build func() (*app.App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pulse, err := build()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), pulse.Aggregator.Summary(cmd.Context()))
		},
	}
}

func insightCmd(build func() (*app.App, error)) *cobra.Command {
	var prefs domain.InsightPreferences

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Print today's AI insight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pulse, err := build()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), pulse.Insight.Daily(cmd.Context(), prefs))
		},
	}
	cmd.Flags().StringVar(&prefs.AssetInterests, "asset", "", "Asset interests (btc, eth, alts, stable, nft)")
	cmd.Flags().StringVar(&prefs.InvestorType, "investor", "", "Investor type (hodler, day_trader, nft_collector, defi, other)")
	cmd.Flags().StringVar(&prefs.ContentType, "content", "", "Content type (market_news, charts, social, fun, all)")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

