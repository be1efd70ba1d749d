// Package plugins keeps the registry of backends and version schemes
// available to Anitya.
//
// A backend fetches a project's versions from an upstream source. A version
// scheme decides whether a version string is valid. The registry's sorted
// names populate the choice lists of form.ProjectForm.
package plugins

import (
	"fmt"
	"slices"
	"sync"
)

// Backend is a pluggable upstream source of versions.
type Backend interface {
	Name() string
}

// VersionScheme parses version strings.
//
// Parse returns *domain.InvalidVersionError for a version the scheme
// rejects, and *domain.PluginError for a failure of the scheme itself.
type VersionScheme interface {
	Name() string
	Parse(version string) error
}

// NamedBackend is a Backend known only by name. Fetching versions is done
// outside this service.
type NamedBackend string

func (b NamedBackend) Name() string { return string(b) }

// DefaultBackends is registered when configuration names none.
var DefaultBackends = []string{
	"BitBucket", "CPAN (perl)", "crates.io", "Debian project", "Drupal7",
	"folder", "GitHub", "GitLab", "GNOME", "GNU project", "Hackage",
	"Maven Central", "npmjs", "PEAR", "PECL", "PyPI", "Rubygems",
	"SourceForge", "custom",
}

// Registry holds the registered plugins. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
	schemes  map[string]VersionScheme
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
		schemes:  make(map[string]VersionScheme),
	}
}

// NewDefaultRegistry registers the given backend names (DefaultBackends when
// empty) and the built-in version schemes.
func NewDefaultRegistry(backends []string) (*Registry, error) {
	if len(backends) == 0 {
		backends = DefaultBackends
	}

	r := NewRegistry()
	for _, name := range backends {
		if err := r.RegisterBackend(NamedBackend(name)); err != nil {
			return nil, err
		}
	}
	for _, scheme := range []VersionScheme{RPMScheme{}, SemanticScheme{}} {
		if err := r.RegisterVersionScheme(scheme); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterBackend adds b. Names must be non-empty and unique.
func (r *Registry) RegisterBackend(b Backend) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := b.Name()
	if name == "" {
		return fmt.Errorf("backend name is empty")
	}
	if _, ok := r.backends[name]; ok {
		return fmt.Errorf("backend %q already registered", name)
	}
	r.backends[name] = b
	return nil
}

// RegisterVersionScheme adds s. Names must be non-empty and unique.
func (r *Registry) RegisterVersionScheme(s VersionScheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if name == "" {
		return fmt.Errorf("version scheme name is empty")
	}
	if _, ok := r.schemes[name]; ok {
		return fmt.Errorf("version scheme %q already registered", name)
	}
	r.schemes[name] = s
	return nil
}

// BackendNames returns the registered backend names, sorted.
func (r *Registry) BackendNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.backends)
}

// VersionSchemeNames returns the registered version scheme names, sorted.
func (r *Registry) VersionSchemeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.schemes)
}

// VersionScheme looks up a scheme by name.
func (r *Registry) VersionScheme(name string) (VersionScheme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemes[name]
	return s, ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
