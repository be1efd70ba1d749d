package handler

import (
	"github.com/deppfellow/anitya/internal/server"
	"github.com/deppfellow/anitya/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
//
// Router setup receives one object instead of many.
type Handlers struct {
	Health   *HealthHandler  // Health serves the liveness endpoint.
	Projects *ProjectHandler // Projects serves project creation, deletion, flags and versions.
	Mappings *MappingHandler // Mappings serves distro package mappings of a project.
	Distros  *DistroHandler  // Distros serves distribution creation.
	Tokens   *TokenHandler   // Tokens serves API token creation.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Projects: NewProjectHandler(s, services.Projects),
		Mappings: NewMappingHandler(s, services.Mappings),
		Distros:  NewDistroHandler(s, services.Distros),
		Tokens:   NewTokenHandler(s, services.Tokens),
	}
}
