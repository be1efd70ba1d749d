package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/deppfellow/anitya/internal/domain"
)

// MemoryStore keeps every record in maps guarded by one RWMutex.
//
// Records are copied on the way in and out, so callers never share memory
// with the store.
type MemoryStore struct {
	mu sync.RWMutex

	projects map[int]*domain.Project
	packages map[int]*domain.Package
	distros  map[string]*domain.Distro // keyed by lower-cased name
	flags    map[int]*domain.Flag
	tokens   map[string]*domain.Token

	nextProjectID int
	nextPackageID int
	nextFlagID    int

	now func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[int]*domain.Project),
		packages: make(map[int]*domain.Package),
		distros:  make(map[string]*domain.Distro),
		flags:    make(map[int]*domain.Flag),
		tokens:   make(map[string]*domain.Token),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateProject stores p and returns the stored copy with its ID and
// timestamps set.
//
// If p belongs to an ecosystem that already holds a project of the same
// name (case-insensitive), it returns *domain.ProjectExistsError carrying
// the existing project.
func (s *MemoryStore) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.EcosystemName != "" {
		for _, existing := range s.projects {
			if existing.EcosystemName == p.EcosystemName && strings.EqualFold(existing.Name, p.Name) {
				return nil, &domain.ProjectExistsError{Project: cloneProject(existing)}
			}
		}
	}

	s.nextProjectID++
	stored := cloneProject(p)
	stored.ID = s.nextProjectID
	stored.CreatedOn = s.now()
	stored.UpdatedOn = stored.CreatedOn
	s.projects[stored.ID] = stored

	return cloneProject(stored), nil
}

// GetProject returns the project with the given id.
func (s *MemoryStore) GetProject(ctx context.Context, id int) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

// DeleteProject removes the project along with its mappings and flags.
func (s *MemoryStore) DeleteProject(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(s.projects, id)

	for pkgID, pkg := range s.packages {
		if pkg.ProjectID == id {
			delete(s.packages, pkgID)
		}
	}
	for flagID, flag := range s.flags {
		if flag.ProjectID == id {
			delete(s.flags, flagID)
		}
	}
	return nil
}

// AddVersion records version on the project and makes it the latest one.
// Recording a known version again only updates the latest marker.
func (s *MemoryStore) AddVersion(ctx context.Context, id int, version string) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	if !slices.Contains(p.Versions, version) {
		p.Versions = append(p.Versions, version)
	}
	p.LatestVersion = version
	p.UpdatedOn = s.now()

	return cloneProject(p), nil
}

// CreateDistro stores a distribution. Names are unique, case-insensitive.
func (s *MemoryStore) CreateDistro(ctx context.Context, name string) (*domain.Distro, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := s.distros[key]; ok {
		return nil, domain.ErrDistroExists
	}
	d := &domain.Distro{Name: name}
	s.distros[key] = d

	return &domain.Distro{Name: d.Name}, nil
}

// GetDistro looks a distribution up by name, case-insensitive.
func (s *MemoryStore) GetDistro(ctx context.Context, name string) (*domain.Distro, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.distros[strings.ToLower(name)]
	if !ok {
		return nil, domain.ErrDistroNotFound
	}
	return &domain.Distro{Name: d.Name}, nil
}

// SavePackage creates (ID == 0) or updates a mapping of a distribution
// package onto pkg.ProjectID. A missing distribution is created on the fly.
//
// If the distro/package pair is already mapped to another project, it
// returns *domain.InvalidMappingError; Link is left empty for the caller to
// fill. Creating a mapping that already exists on the same project returns
// the existing one; editing another mapping of that project onto it returns
// domain.ErrMappingExists.
func (s *MemoryStore) SavePackage(ctx context.Context, pkg *domain.Package) (*domain.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects[pkg.ProjectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if pkg.ID != 0 {
		current, ok := s.packages[pkg.ID]
		if !ok || current.ProjectID != pkg.ProjectID {
			return nil, domain.ErrPackageNotFound
		}
	}

	for _, other := range s.packages {
		if other.ID == pkg.ID ||
			!strings.EqualFold(other.Distro, pkg.Distro) ||
			!strings.EqualFold(other.PackageName, pkg.PackageName) {
			continue
		}
		if other.ProjectID == pkg.ProjectID {
			if pkg.ID == 0 {
				return clonePackage(other), nil
			}
			return nil, domain.ErrMappingExists
		}

		owner := s.projects[other.ProjectID]
		return nil, &domain.InvalidMappingError{
			PackageName:      pkg.PackageName,
			Distro:           pkg.Distro,
			FoundPackageName: other.PackageName,
			FoundDistro:      other.Distro,
			ProjectID:        owner.ID,
			ProjectName:      owner.Name,
		}
	}

	distro, ok := s.distros[strings.ToLower(pkg.Distro)]
	if !ok {
		distro = &domain.Distro{Name: pkg.Distro}
		s.distros[strings.ToLower(pkg.Distro)] = distro
	}

	stored := clonePackage(pkg)
	stored.Distro = distro.Name
	stored.ProjectName = project.Name
	if stored.ID == 0 {
		s.nextPackageID++
		stored.ID = s.nextPackageID
	}
	s.packages[stored.ID] = stored

	return clonePackage(stored), nil
}

// GetPackage returns a mapping of the given project.
func (s *MemoryStore) GetPackage(ctx context.Context, projectID, packageID int) (*domain.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pkg, ok := s.packages[packageID]
	if !ok || pkg.ProjectID != projectID {
		return nil, domain.ErrPackageNotFound
	}
	return clonePackage(pkg), nil
}

// ListPackages returns the mappings of a project ordered by ID.
func (s *MemoryStore) ListPackages(ctx context.Context, projectID int) ([]*domain.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Package{}
	for _, pkg := range s.packages {
		if pkg.ProjectID == projectID {
			out = append(out, clonePackage(pkg))
		}
	}
	slices.SortFunc(out, func(a, b *domain.Package) int { return a.ID - b.ID })
	return out, nil
}

// CreateFlag opens a flag on a project.
func (s *MemoryStore) CreateFlag(ctx context.Context, projectID int, reason string) (*domain.Flag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[projectID]; !ok {
		return nil, domain.ErrProjectNotFound
	}

	s.nextFlagID++
	flag := &domain.Flag{
		ID:        s.nextFlagID,
		ProjectID: projectID,
		Reason:    reason,
		State:     domain.FlagStateOpen,
		CreatedOn: s.now(),
	}
	s.flags[flag.ID] = flag

	copied := *flag
	return &copied, nil
}

// CreateToken stores an API token, stamping its creation time.
func (s *MemoryStore) CreateToken(ctx context.Context, t *domain.Token) (*domain.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *t
	copied.CreatedOn = s.now()
	s.tokens[copied.Token] = &copied

	out := copied
	return &out, nil
}

func cloneProject(p *domain.Project) *domain.Project {
	c := *p
	c.Versions = slices.Clone(p.Versions)
	return &c
}

func clonePackage(p *domain.Package) *domain.Package {
	c := *p
	return &c
}
