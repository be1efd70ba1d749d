package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/anitya/internal/domain"
	"github.com/deppfellow/anitya/internal/form"
)

type MappingService struct {
	store   Store
	baseURL string
}

// NewMappingService builds the service. baseURL prefixes the project links
// embedded in mapping conflict messages; it may be empty.
func NewMappingService(store Store, baseURL string) *MappingService {
	return &MappingService{
		store:   store,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// ProjectLink returns the URL of a project's page.
func (s *MappingService) ProjectLink(projectID int) string {
	return fmt.Sprintf("%s/project/%d/", s.baseURL, projectID)
}

// Create maps a distribution package onto a project.
func (s *MappingService) Create(ctx context.Context, projectID int, f *form.MappingForm) (*domain.Package, error) {
	return s.save(ctx, &domain.Package{
		ProjectID:   projectID,
		Distro:      f.Distro,
		PackageName: f.PackageName,
		VersionURL:  f.VersionURL,
		Regex:       f.Regex,
	})
}

// EditForm returns a MappingForm pre-filled from an existing mapping.
func (s *MappingService) EditForm(ctx context.Context, projectID, packageID int) (*form.MappingForm, error) {
	pkg, err := s.store.GetPackage(ctx, projectID, packageID)
	if err != nil {
		return nil, err
	}
	return form.NewMappingForm(pkg), nil
}

// Edit replaces an existing mapping with the form's values.
func (s *MappingService) Edit(ctx context.Context, projectID, packageID int, f *form.MappingForm) (*domain.Package, error) {
	return s.save(ctx, &domain.Package{
		ID:          packageID,
		ProjectID:   projectID,
		Distro:      f.Distro,
		PackageName: f.PackageName,
		VersionURL:  f.VersionURL,
		Regex:       f.Regex,
	})
}

func (s *MappingService) save(ctx context.Context, pkg *domain.Package) (*domain.Package, error) {
	saved, err := s.store.SavePackage(ctx, pkg)
	if err != nil {
		var invalid *domain.InvalidMappingError
		if errors.As(err, &invalid) && invalid.Link == "" {
			invalid.Link = s.ProjectLink(invalid.ProjectID)
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int("project_id", saved.ProjectID).
		Int("package_id", saved.ID).
		Str("distro", saved.Distro).
		Str("package", saved.PackageName).
		Msg("mapping saved")

	return saved, nil
}
