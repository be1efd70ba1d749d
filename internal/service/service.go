// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated forms from the handler, applies Anitya's rules (ecosystem
// membership, mapping ownership, version schemes, confirmation of
// destructive actions) and calls the store. Rejected operations come
// back as the error types of the domain package.
package service

import (
	"context"

	"github.com/deppfellow/anitya/internal/domain"
)

// Store is the persistence contract the services need.
// *repository.MemoryStore implements it.
type Store interface {
	CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetProject(ctx context.Context, id int) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int) error
	AddVersion(ctx context.Context, id int, version string) (*domain.Project, error)

	CreateDistro(ctx context.Context, name string) (*domain.Distro, error)

	SavePackage(ctx context.Context, pkg *domain.Package) (*domain.Package, error)
	GetPackage(ctx context.Context, projectID, packageID int) (*domain.Package, error)
	ListPackages(ctx context.Context, projectID int) ([]*domain.Package, error)

	CreateFlag(ctx context.Context, projectID int, reason string) (*domain.Flag, error)
	CreateToken(ctx context.Context, t *domain.Token) (*domain.Token, error)
}
