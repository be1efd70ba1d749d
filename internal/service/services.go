package service

import (
	"github.com/deppfellow/anitya/internal/repository"
	"github.com/deppfellow/anitya/internal/server"
)

// Services groups every service so handlers receive a single dependency.
type Services struct {
	Projects *ProjectService
	Mappings *MappingService
	Distros  *DistroService
	Tokens   *TokenService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	mappings := NewMappingService(repos.Store, s.Config.Server.BaseURL)

	return &Services{
		Projects: NewProjectService(repos.Store, s.Plugins, mappings),
		Mappings: mappings,
		Distros:  NewDistroService(repos.Store),
		Tokens:   NewTokenService(repos.Store),
	}, nil
}
