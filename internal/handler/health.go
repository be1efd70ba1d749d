package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/anitya/internal/middleware"
	"github.com/deppfellow/anitya/internal/server"
)

// HealthHandler exposes a "system" endpoint that load balancers and uptime
// monitors use to verify the service is alive.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns the service status.
//
// Response includes:
// - overall status
// - timestamp (UTC)
// - environment (from config)
// - checks map (registered plugins)
//
// The store is in memory, so there is no dependency that can be down; the
// endpoint always answers 200 while the process serves requests.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks": map[string]any{
			"plugins": map[string]any{
				"status":          "healthy",
				"backends":        len(h.server.Plugins.BackendNames()),
				"version_schemes": len(h.server.Plugins.VersionSchemeNames()),
			},
		},
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}
