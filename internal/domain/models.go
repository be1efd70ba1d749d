package domain

import (
	"time"
)

// Project is an upstream project whose releases are monitored.
//
// EcosystemName groups projects into a uniqueness namespace (e.g. "pypi").
// An empty EcosystemName means the project is outside any ecosystem and its
// name does not need to be unique.
type Project struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Homepage      string    `json:"homepage"`
	Backend       string    `json:"backend"`
	VersionURL    string    `json:"version_url"`
	VersionPrefix string    `json:"version_prefix"`
	VersionScheme string    `json:"version_scheme"`
	Regex         string    `json:"regex"`
	Insecure      bool      `json:"insecure"`
	EcosystemName string    `json:"ecosystem_name"`
	LatestVersion string    `json:"version"`
	Versions      []string  `json:"versions"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}

// JSON returns the structured representation of the project used in API
// responses and error payloads.
//
// Timestamps are rendered as Unix seconds. Versions is never nil so it
// always serializes as a list.
func (p *Project) JSON() map[string]any {
	versions := p.Versions
	if versions == nil {
		versions = []string{}
	}

	var ecosystem any
	if p.EcosystemName != "" {
		ecosystem = p.EcosystemName
	}

	return map[string]any{
		"id":             p.ID,
		"name":           p.Name,
		"homepage":       p.Homepage,
		"backend":        p.Backend,
		"version_url":    p.VersionURL,
		"version_prefix": p.VersionPrefix,
		"version_scheme": p.VersionScheme,
		"regex":          p.Regex,
		"insecure":       p.Insecure,
		"ecosystem_name": ecosystem,
		"version":        p.LatestVersion,
		"versions":       versions,
		"created_on":     p.CreatedOn.Unix(),
		"updated_on":     p.UpdatedOn.Unix(),
	}
}

// Distro is a downstream distribution (Fedora, Debian, ...).
type Distro struct {
	Name string `json:"name"`
}

// Package maps a distribution's package name onto a tracked project.
//
// It satisfies form.Mapping through its Get* accessors so an existing
// mapping can pre-fill the mapping edit form.
type Package struct {
	ID          int    `json:"id"`
	Distro      string `json:"distro"`
	PackageName string `json:"package_name"`
	VersionURL  string `json:"version_url"`
	Regex       string `json:"regex"`
	ProjectID   int    `json:"project_id"`
	ProjectName string `json:"project_name"`
}

func (p *Package) GetDistro() string      { return p.Distro }
func (p *Package) GetPackageName() string { return p.PackageName }
func (p *Package) GetVersionURL() string  { return p.VersionURL }
func (p *Package) GetRegex() string       { return p.Regex }

// FlagState is the lifecycle state of a project flag.
type FlagState string

const (
	FlagStateOpen   FlagState = "open"
	FlagStateClosed FlagState = "closed"
)

// Flag is a user report that something is wrong with a project,
// e.g. a duplicate or a dead homepage.
type Flag struct {
	ID        int       `json:"id"`
	ProjectID int       `json:"project_id"`
	Reason    string    `json:"reason"`
	State     FlagState `json:"state"`
	CreatedOn time.Time `json:"created_on"`
}

// Token is an API token issued to a user.
type Token struct {
	Token       string    `json:"token"`
	Description string    `json:"description"`
	CreatedOn   time.Time `json:"created_on"`
}
