package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/anitya/internal/handler"
)

// registerProjectRoutes registers projects and everything hanging off one:
// flags, versions and distro mappings.
func registerProjectRoutes(api *echo.Group, h *handler.Handlers) {
	api.GET("/forms/project", h.Projects.GetForm)

	projects := api.Group("/projects")
	projects.POST("", h.Projects.Create())
	projects.GET("/:id", h.Projects.Get)

	// GET answers with a confirmation request, POST confirms.
	remove := h.Projects.Delete()
	projects.GET("/:id/delete", remove)
	projects.POST("/:id/delete", remove)

	projects.POST("/:id/flag", h.Projects.Flag())
	projects.POST("/:id/versions", h.Projects.RecordVersion())

	projects.POST("/:id/mappings", h.Mappings.Create())
	projects.GET("/:id/mappings/:pkg", h.Mappings.GetEditForm)
	projects.POST("/:id/mappings/:pkg", h.Mappings.Edit())
}

// registerCatalogRoutes registers the records that exist independently of
// any project.
func registerCatalogRoutes(api *echo.Group, h *handler.Handlers) {
	api.POST("/distros", h.Distros.Create())
	api.POST("/tokens", h.Tokens.Create())
}
