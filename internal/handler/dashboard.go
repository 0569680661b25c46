package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetDashboardSummary godoc
// @Summary      Dashboard summary
// @Description  Returns prices, news and a meme in one response. Every field is always populated; sources reports which tier served each one.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.DashboardSummary
// @Router       /api/dashboard/summary [get]
func (h *Handler) GetDashboardSummary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-dashboard-summary")
	defer span.End()

	summary := h.dashboard.Summary(ctx)
	span.SetAttributes(
		attribute.String("source.prices", string(summary.Sources.Prices)),
		attribute.String("source.news", string(summary.Sources.News)),
		attribute.String("source.meme", string(summary.Sources.Meme)),
	)

	c.JSON(http.StatusOK, summary)
}
