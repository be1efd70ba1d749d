// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/anitya/internal/handler"
	"github.com/deppfellow/anitya/internal/middleware"
	"github.com/deppfellow/anitya/internal/server"
)

// NewRouter builds the Echo instance serving the whole API.
//
// Middleware order matters: the request id must exist before the context
// enhancer builds the request logger, and the request logger reads both.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	m := middleware.NewMiddlewares(s)

	r := echo.New()
	r.HideBanner = true
	r.HidePort = true
	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	r.Use(
		m.Global.Recover(),
		m.Global.Secure(),
		m.Global.CORS(),
		middleware.RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
	)

	registerSystemRoutes(r, h)

	api := r.Group("/api")
	registerProjectRoutes(api, h)
	registerCatalogRoutes(api, h)

	return r
}
