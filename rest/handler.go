package rest

import (
	"context"
	"errors"
	"net/http"

	"newscout/domain"
	"newscout/logger"

	"github.com/labstack/echo/v4"
)

// ArticleSearcher runs one article search and assembles the result page.
type ArticleSearcher interface {
	Execute(ctx context.Context, spec domain.SearchQuerySpec, requestURL string) (*domain.ResultPage, error)
}

// DigestProvider resolves the daily digest for a device.
type DigestProvider interface {
	Execute(ctx context.Context, deviceID string) ([]domain.SearchDocument, error)
}

// TrendingProvider aggregates trending tags over a window.
type TrendingProvider interface {
	Execute(ctx context.Context, window domain.TrendingWindow) ([]domain.TrendingTag, error)
}

// RecommendationsProvider resolves the related articles for an article.
type RecommendationsProvider interface {
	Execute(ctx context.Context, articleID string) ([]domain.SearchDocument, error)
}

// Handler contains all HTTP handlers of the read API.
type Handler struct {
	search          ArticleSearcher
	digest          DigestProvider
	trending        TrendingProvider
	recommendations RecommendationsProvider
}

func NewHandler(search ArticleSearcher, digest DigestProvider, trending TrendingProvider, recommendations RecommendationsProvider) *Handler {
	return &Handler{
		search:          search,
		digest:          digest,
		trending:        trending,
		recommendations: recommendations,
	}
}

// handleError maps domain errors onto the response envelope. Validation
// failures surface their field errors; everything else is an opaque
// internal error.
func handleError(c echo.Context, err error, operation string) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, errorEnvelope(validationErr.Fields))
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.JSON(http.StatusNotFound, errorEnvelope([]domain.FieldError{
			{Field: notFoundErr.Resource, Message: notFoundErr.Error()},
		}))
	}

	logger.Logger.Error("request failed", "operation", operation, "err", err)
	return c.JSON(http.StatusInternalServerError, errorEnvelope([]domain.FieldError{
		{Field: "internal", Message: "internal server error"},
	}))
}

// requestURL reconstructs the caller's absolute URL so pagination links
// point back at the same endpoint.
func requestURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host + c.Request().RequestURI
}
