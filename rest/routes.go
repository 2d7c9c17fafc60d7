package rest

import (
	"net/http"
	"time"

	"newscout/middleware"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes wires the middleware chain and the versioned read API
// onto the echo instance.
func RegisterRoutes(e *echo.Echo, handler *Handler, requestTimeout time.Duration) {
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Recover())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.Use(echomiddleware.TimeoutWithConfig(echomiddleware.TimeoutConfig{
		Timeout: requestTimeout,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/v1/health"
		},
	}))

	e.Use(middleware.OTelStatus("newscout-api"))

	v1 := e.Group("/v1")

	v1.GET("/health", handleHealth)
	handler.registerSearchRoutes(v1)
	handler.registerRecommendationRoutes(v1)
	handler.registerDigestRoutes(v1)
	handler.registerTrendingRoutes(v1)
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
