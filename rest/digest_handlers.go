package rest

import (
	"net/http"

	"newscout/logger"

	"github.com/labstack/echo/v4"
)

func (h *Handler) registerDigestRoutes(v1 *echo.Group) {
	v1.GET("/articles/daily-digest", h.handleDailyDigest)
}

func (h *Handler) handleDailyDigest(c echo.Context) error {
	deviceID := c.QueryParam("device_id")

	docs, err := h.digest.Execute(c.Request().Context(), deviceID)
	if err != nil {
		return handleError(c, err, "daily_digest")
	}

	logger.Logger.Info("digest ok", "device_id", deviceID, "count", len(docs))
	return c.JSON(http.StatusOK, successEnvelope(map[string]any{
		"results": docs,
	}))
}
