package bootstrap

import (
	"newscout/config"
	"newscout/rest"

	"github.com/labstack/echo/v4"
)

// newEchoServer builds the HTTP server with the full middleware chain
// and the versioned read API.
func newEchoServer(handler *rest.Handler, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadHeaderTimeout = cfg.HTTP.ReadHeaderTimeout

	rest.RegisterRoutes(e, handler, cfg.HTTP.RequestTimeout)
	return e
}
