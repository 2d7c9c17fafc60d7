package rest

import (
	"net/http"

	"newscout/domain"
	"newscout/logger"
	appOtel "newscout/utils/otel"

	"github.com/labstack/echo/v4"
)

func (h *Handler) registerTrendingRoutes(v1 *echo.Group) {
	v1.GET("/hashtags/trending", h.handleTrendingTags)
}

func (h *Handler) handleTrendingTags(c echo.Context) error {
	window, err := domain.SelectTrendingWindow(c.QueryParam("weekly"), c.QueryParam("monthly"))
	if err != nil {
		return handleError(c, err, "trending_tags")
	}

	tags, err := h.trending.Execute(c.Request().Context(), window)
	if err != nil {
		return handleError(c, err, "trending_tags")
	}

	appOtel.RecordTrending(c.Request().Context())
	logger.Logger.Info("trending ok", "count", len(tags))

	// Trending is a single fixed-size page; the list never paginates.
	return c.JSON(http.StatusOK, successEnvelope(map[string]any{
		"results":  tags,
		"count":    len(tags),
		"next":     nil,
		"previous": nil,
	}))
}
