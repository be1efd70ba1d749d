package domain

import (
	"errors"
	"fmt"
)

// Kind tags each variant of the Anitya error family.
type Kind uint8

const (
	// KindUnknown is the zero value; it is never returned by a variant.
	KindUnknown Kind = iota
	// KindPlugin marks a failure reported by a backend or version scheme.
	KindPlugin
	// KindProjectExists marks an ecosystem uniqueness violation.
	KindProjectExists
	// KindInvalidMapping marks a distro/package mapping collision.
	KindInvalidMapping
	// KindInvalidVersion marks a version string the scheme cannot parse.
	KindInvalidVersion
)

// String returns a machine-friendly name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlugin:
		return "plugin"
	case KindProjectExists:
		return "project_exists"
	case KindInvalidMapping:
		return "invalid_mapping"
	case KindInvalidVersion:
		return "invalid_version"
	default:
		return "unknown"
	}
}

var (
	// ErrAnitya is the root of the taxonomy. Every variant below matches it
	// with errors.Is.
	ErrAnitya = errors.New("anitya error")

	// ErrPlugin is matched by every *PluginError.
	ErrPlugin = errors.New("plugin error")
)

// Lookup and workflow failures that carry no payload.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrPackageNotFound = errors.New("package not found")
	ErrDistroNotFound  = errors.New("distribution not found")
	ErrDistroExists    = errors.New("distribution already exists")
	ErrMappingExists   = errors.New("the project already maps this package")
	ErrNotConfirmed    = errors.New("action requires an explicit confirmation")
)

// Error is implemented by every variant of the taxonomy.
type Error interface {
	error
	Kind() Kind
}

// Dicter is implemented by variants that expose a structured payload for API
// error bodies.
type Dicter interface {
	ToDict() map[string]any
}

// KindOf returns the Kind of the first taxonomy variant in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}

// PluginError is what backends and version schemes return to signal a
// recoverable domain failure, as opposed to an unexpected crash.
type PluginError struct {
	Message string
	Err     error
}

// NewPluginError builds a PluginError. Either argument may be empty.
func NewPluginError(message string, err error) *PluginError {
	return &PluginError{Message: message, Err: err}
}

func (e *PluginError) Kind() Kind { return KindPlugin }

func (e *PluginError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return ErrPlugin.Error()
	}
}

func (e *PluginError) Unwrap() error { return e.Err }

func (e *PluginError) Is(target error) bool {
	return target == ErrAnitya || target == ErrPlugin
}

// ProjectExistsError is returned when creating a project whose name is
// already taken inside the same ecosystem. Projects outside any ecosystem
// never produce it.
type ProjectExistsError struct {
	// Project is the existing project the request collided with.
	Project *Project
}

// projectExistsMessage is fixed whatever the conflicting project.
const projectExistsMessage = "Unable to create project since it already exists."

func (e *ProjectExistsError) Kind() Kind { return KindProjectExists }

func (e *ProjectExistsError) Error() string { return projectExistsMessage }

func (e *ProjectExistsError) Is(target error) bool { return target == ErrAnitya }

// ToDict returns {"requested_project": <project JSON>}.
func (e *ProjectExistsError) ToDict() map[string]any {
	var project any
	if e.Project != nil {
		project = e.Project.JSON()
	}
	return map[string]any{
		"requested_project": project,
	}
}

// InvalidMappingError is returned when editing a mapping would land on a
// distro/package pair that already belongs to another project.
type InvalidMappingError struct {
	PackageName      string
	Distro           string
	FoundPackageName string
	FoundDistro      string
	ProjectID        int
	ProjectName      string
	// Link points at the conflicting project; it may be empty.
	Link string
}

func (e *InvalidMappingError) Kind() Kind { return KindInvalidMapping }

// Message renders the conflict as an HTML-ready sentence, the project name
// wrapped in a link.
func (e *InvalidMappingError) Message() string {
	return fmt.Sprintf(
		"Could not edit the mapping of %s on %s, there is already a package %s on %s "+
			"as part of the project <a href=\"%s\">%s</a>.",
		e.PackageName, e.Distro, e.FoundPackageName, e.FoundDistro, e.Link, e.ProjectName,
	)
}

func (e *InvalidMappingError) Error() string { return e.Message() }

func (e *InvalidMappingError) Is(target error) bool { return target == ErrAnitya }

// ToDict exposes the conflicting mapping for API clients.
func (e *InvalidMappingError) ToDict() map[string]any {
	return map[string]any{
		"package_name":       e.PackageName,
		"distro":             e.Distro,
		"found_package_name": e.FoundPackageName,
		"found_distro":       e.FoundDistro,
		"project_id":         e.ProjectID,
		"project_name":       e.ProjectName,
		"link":               e.Link,
	}
}

// InvalidVersionError is returned when a version string is not valid for a
// version scheme. Err is the parser's own error, if any.
type InvalidVersionError struct {
	Version string
	Err     error
}

func (e *InvalidVersionError) Kind() Kind { return KindInvalidVersion }

func (e *InvalidVersionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Invalid version \"%s\": %s", e.Version, e.Err.Error())
	}
	return fmt.Sprintf("Invalid version \"%s\"", e.Version)
}

func (e *InvalidVersionError) Unwrap() error { return e.Err }

func (e *InvalidVersionError) Is(target error) bool { return target == ErrAnitya }
