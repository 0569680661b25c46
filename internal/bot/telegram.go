package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"market-pulse/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const commandTimeout = 15 * time.Second

type SummaryProvider interface {
	Summary(ctx context.Context) domain.DashboardSummary
}

type InsightProvider interface {
	Daily(ctx context.Context, prefs domain.InsightPreferences) domain.Insight
}

var newBot = tele.NewBot

// StartTelegramBot registers the commands and starts long polling in the
// background. An empty token skips startup.
func StartTelegramBot(token string, dashboard SummaryProvider, insight InsightProvider) {
	if strings.TrimSpace(token) == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := newBot(pref)
	if err != nil {
		log.Printf("failed to create Telegram bot: %v", err)
		return
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/prices", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return c.Send(formatPrices(dashboard.Summary(ctx)))
	})

	b.Handle("/news", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return c.Send(formatNews(dashboard.Summary(ctx)), tele.NoPreview)
	})

	b.Handle("/meme", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		summary := dashboard.Summary(ctx)
		// Telegram cannot fetch data: URLs, so placeholders go out as text.
		if summary.Sources.Meme == domain.TierFeed {
			return c.Send(&tele.Photo{File: tele.FromURL(summary.Meme.URL), Caption: summary.Meme.Title})
		}
		return c.Send(fmt.Sprintf("%s (no live meme right now)", summary.Meme.Title))
	})

	b.Handle("/insight", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return c.Send(formatInsight(insight.Daily(ctx, parseInsightArgs(c.Args()))))
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func formatPrices(s domain.DashboardSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Prices (%s)\n", s.Sources.Prices)
	for _, p := range s.Prices {
		sb.WriteString(p.Symbol)
		if p.Price == nil {
			sb.WriteString(": n/a\n")
			continue
		}
		fmt.Fprintf(&sb, ": $%.2f", *p.Price)
		if p.Change24h != nil {
			fmt.Fprintf(&sb, " (%+.2f%%)", *p.Change24h)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatNews(s domain.DashboardSummary) string {
	if len(s.News) == 0 {
		return "No news right now."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "News (%s)\n", s.Sources.News)
	for i, n := range s.News {
		fmt.Fprintf(&sb, "%d. %s [%s]\n%s\n", i+1, n.Title, n.Source, n.URL)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatInsight(in domain.Insight) string {
	return fmt.Sprintf("%s\n\n(%s, %s)", in.Text, in.Source, in.GeneratedAt.UTC().Format("2006-01-02"))
}

// parseInsightArgs maps "/insight [asset] [investor] [content]"; "-" or
// "any" leaves a slot empty.
func parseInsightArgs(args []string) domain.InsightPreferences {
	slot := func(i int) string {
		if i >= len(args) {
			return ""
		}
		v := strings.TrimSpace(args[i])
		if v == "-" || strings.EqualFold(v, "any") {
			return ""
		}
		return v
	}
	return domain.InsightPreferences{
		AssetInterests: slot(0),
		InvestorType:   slot(1),
		ContentType:    slot(2),
	}
}
