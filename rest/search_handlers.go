package rest

import (
	"net/http"
	"time"

	"newscout/domain"
	"newscout/logger"
	appOtel "newscout/utils/otel"

	"github.com/labstack/echo/v4"
)

func (h *Handler) registerSearchRoutes(v1 *echo.Group) {
	v1.GET("/articles/search", h.handleSearchArticles)
}

func (h *Handler) handleSearchArticles(c echo.Context) error {
	params := c.QueryParams()

	spec := domain.SearchQuerySpec{
		Query:       c.QueryParam("q"),
		Sources:     params["source"],
		CategoryIDs: domain.ParseCategoryIDs(params["category"]),
		DomainIDs:   params["domain"],
		Tags:        params["tag"],
		Sort:        domain.ParseSortOrder(c.QueryParam("sort")),
		Page:        domain.ParsePageParam(c.QueryParam("page")),
		Rows:        domain.ParseRowsParam(c.QueryParam("rows")),
	}

	start := time.Now()
	page, err := h.search.Execute(c.Request().Context(), spec, requestURL(c))
	if err != nil {
		return handleError(c, err, "search_articles")
	}
	appOtel.RecordSearch(c.Request().Context(), time.Since(start))

	logger.Logger.Info("search ok",
		"query", spec.Query,
		"page", page.CurrentPage,
		"count", page.Count,
	)
	return c.JSON(http.StatusOK, successEnvelope(page))
}
