package handler

import (
	"context"

	"market-pulse/internal/domain"
	"market-pulse/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type SummaryProvider interface {
	Summary(ctx context.Context) domain.DashboardSummary
}

type InsightProvider interface {
	Daily(ctx context.Context, prefs domain.InsightPreferences) domain.Insight
}

type Handler struct {
	tracer    trace.Tracer
	dashboard SummaryProvider
	insight   InsightProvider
}

func New(tracer trace.Tracer, dashboard SummaryProvider, insight InsightProvider) *Handler {
	return &Handler{
		tracer:    tracer,
		dashboard: dashboard,
		insight:   insight,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.PrometheusHandler()))

	api := r.Group("/api")
	api.GET("/dashboard/summary", h.GetDashboardSummary)
	api.GET("/insight/daily", h.GetDailyInsight)
}
