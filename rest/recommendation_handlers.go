package rest

import (
	"net/http"

	"newscout/logger"

	"github.com/labstack/echo/v4"
)

func (h *Handler) registerRecommendationRoutes(v1 *echo.Group) {
	v1.GET("/articles/:id/recommendations", h.handleArticleRecommendations)
}

func (h *Handler) handleArticleRecommendations(c echo.Context) error {
	articleID := c.Param("id")

	docs, err := h.recommendations.Execute(c.Request().Context(), articleID)
	if err != nil {
		return handleError(c, err, "article_recommendations")
	}

	logger.Logger.Info("recommendations ok", "article_id", articleID, "count", len(docs))
	return c.JSON(http.StatusOK, successEnvelope(map[string]any{
		"results": docs,
	}))
}
