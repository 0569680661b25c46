package handler

import (
	"net/http"
	"strings"

	"market-pulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetDailyInsight godoc
// @Summary      Daily AI insight
// @Description  Returns today's market insight for the given preferences. Falls back to a static message when generation is disabled or fails.
// @Tags         insight
// @Produce      json
// @Param        assetInterests  query  string  false  "Asset interests (btc, eth, alts, stable, nft)"
// @Param        investorType    query  string  false  "Investor type (hodler, day_trader, nft_collector, defi, other)"
// @Param        contentType     query  string  false  "Content type (market_news, charts, social, fun, all)"
// @Success      200  {object}  domain.Insight
// @Router       /api/insight/daily [get]
func (h *Handler) GetDailyInsight(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-daily-insight")
	defer span.End()

	prefs := domain.InsightPreferences{
		AssetInterests: strings.TrimSpace(c.Query("assetInterests")),
		InvestorType:   strings.TrimSpace(c.Query("investorType")),
		ContentType:    strings.TrimSpace(c.Query("contentType")),
	}

	insight := h.insight.Daily(ctx, prefs)
	span.SetAttributes(attribute.String("insight.source", string(insight.Source)))

	c.JSON(http.StatusOK, insight)
}
