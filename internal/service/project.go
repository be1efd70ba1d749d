package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/anitya/internal/domain"
	"github.com/deppfellow/anitya/internal/form"
	"github.com/deppfellow/anitya/internal/plugins"
)

// ecosystems maps the backends whose projects share a naming namespace to
// the name of that namespace. Projects of any other backend are outside
// every ecosystem.
var ecosystems = map[string]string{
	"crates.io":     "crates.io",
	"Maven Central": "maven",
	"npmjs":         "npm",
	"PyPI":          "pypi",
	"Rubygems":      "rubygems",
}

// EcosystemFor returns the ecosystem a backend's projects belong to, or "".
func EcosystemFor(backend string) string {
	return ecosystems[backend]
}

type ProjectService struct {
	store    Store
	plugins  *plugins.Registry
	mappings *MappingService
}

func NewProjectService(store Store, registry *plugins.Registry, mappings *MappingService) *ProjectService {
	return &ProjectService{
		store:    store,
		plugins:  registry,
		mappings: mappings,
	}
}

// NewForm returns an empty ProjectForm offering the registered backends and
// version schemes.
func (s *ProjectService) NewForm() *form.ProjectForm {
	return form.NewProjectForm(form.ProjectOptions{
		Backends:       s.plugins.BackendNames(),
		VersionSchemes: s.plugins.VersionSchemeNames(),
	})
}

// Create stores the project described by a validated form.
//
// When the form also names a distro and a package, the mapping is created
// in the same call; if the mapping is rejected the project is removed again
// and the mapping error is returned.
func (s *ProjectService) Create(ctx context.Context, f *form.ProjectForm) (*domain.Project, error) {
	logger := zerolog.Ctx(ctx)

	project, err := s.store.CreateProject(ctx, &domain.Project{
		Name:          f.Name,
		Homepage:      f.Homepage,
		Backend:       f.Backend,
		VersionURL:    f.VersionURL,
		VersionPrefix: f.VersionPrefix,
		VersionScheme: f.VersionScheme,
		Regex:         f.Regex,
		Insecure:      f.Insecure.Bool(),
		EcosystemName: EcosystemFor(f.Backend),
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("project_id", project.ID).
		Str("project", project.Name).
		Str("ecosystem", project.EcosystemName).
		Msg("project created")

	if f.Distro != "" && f.PackageName != "" {
		_, err := s.mappings.Create(ctx, project.ID, &form.MappingForm{
			Distro:      f.Distro,
			PackageName: f.PackageName,
		})
		if err != nil {
			if delErr := s.store.DeleteProject(ctx, project.ID); delErr != nil {
				logger.Error().Err(delErr).Int("project_id", project.ID).Msg("failed to roll back project")
			}
			return nil, err
		}
	}

	return project, nil
}

// Get returns a project with its mappings.
func (s *ProjectService) Get(ctx context.Context, id int) (*domain.Project, []*domain.Package, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	packages, err := s.store.ListPackages(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("listing packages of project %d: %w", id, err)
	}
	return project, packages, nil
}

// Delete removes a project. It refuses with domain.ErrNotConfirmed unless
// the confirmation form was submitted.
func (s *ProjectService) Delete(ctx context.Context, id int, _ *form.ConfirmationForm, submitted bool) error {
	if !submitted {
		return domain.ErrNotConfirmed
	}

	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int("project_id", id).Msg("project deleted")
	return nil
}

// Flag opens a flag on a project.
func (s *ProjectService) Flag(ctx context.Context, id int, f *form.FlagProjectForm) (*domain.Flag, error) {
	flag, err := s.store.CreateFlag(ctx, id, f.Reason)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int("project_id", id).Int("flag_id", flag.ID).Msg("project flagged")
	return flag, nil
}

// RecordVersion validates a version under the project's version scheme and
// records it. The project's version prefix is stripped first.
//
// An unparsable version yields *domain.InvalidVersionError; an unknown
// scheme yields *domain.PluginError.
func (s *ProjectService) RecordVersion(ctx context.Context, id int, f *form.VersionForm) (*domain.Project, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	scheme, ok := s.plugins.VersionScheme(project.VersionScheme)
	if !ok {
		return nil, domain.NewPluginError(fmt.Sprintf("unknown version scheme %q", project.VersionScheme), nil)
	}

	version := f.Version
	if project.VersionPrefix != "" {
		version = strings.TrimPrefix(version, project.VersionPrefix)
	}

	if err := scheme.Parse(version); err != nil {
		return nil, err
	}

	return s.store.AddVersion(ctx, id, version)
}
