package form

import (
	"github.com/deppfellow/anitya/internal/validation"
)

// ProjectOptions is the runtime data a ProjectForm is built with: the names
// of the currently registered backends and version schemes.
type ProjectOptions struct {
	Backends       []string
	VersionSchemes []string
}

// ProjectForm creates or edits a monitored project.
type ProjectForm struct {
	Name          string   `form:"name" json:"name" validate:"required"`
	Homepage      string   `form:"homepage" json:"homepage" validate:"required,homepage"`
	Backend       string   `form:"backend" json:"backend" validate:"required"`
	VersionURL    string   `form:"version_url" json:"version_url"`
	VersionPrefix string   `form:"version_prefix" json:"version_prefix"`
	VersionScheme string   `form:"version_scheme" json:"version_scheme" validate:"required"`
	Regex         string   `form:"regex" json:"regex"`
	Insecure      Checkbox `form:"insecure" json:"insecure"`

	// Distro and PackageName optionally map the new project onto a
	// distribution package in the same submission.
	Distro      string `form:"distro" json:"distro"`
	PackageName string `form:"package_name" json:"package_name"`
	// CheckRelease is accepted but not acted on: versions are not fetched here.
	CheckRelease Checkbox `form:"check_release" json:"check_release"`

	backendChoices       Choices
	versionSchemeChoices Choices
}

// NewProjectForm builds an empty ProjectForm whose backend and version
// scheme choices come from opts. With a zero opts both lists are empty and
// any non-empty backend or scheme is rejected.
func NewProjectForm(opts ProjectOptions) *ProjectForm {
	return &ProjectForm{
		backendChoices:       NewChoices(opts.Backends),
		versionSchemeChoices: NewChoices(opts.VersionSchemes),
	}
}

// BackendChoices returns the options of the backend field.
func (f *ProjectForm) BackendChoices() Choices { return f.backendChoices }

// VersionSchemeChoices returns the options of the version_scheme field.
func (f *ProjectForm) VersionSchemeChoices() Choices { return f.versionSchemeChoices }

// Validate normalizes the text fields, then checks the tag rules and the
// choice lists.
func (f *ProjectForm) Validate() error {
	trim(&f.Name, &f.Homepage, &f.Backend, &f.VersionURL, &f.VersionPrefix,
		&f.VersionScheme, &f.Regex, &f.Distro, &f.PackageName)

	errs := validation.Struct(f)

	if e := validation.Choice("backend", f.Backend, f.backendChoices.Values()); e != nil {
		errs = append(errs, *e)
	}
	if e := validation.Choice("version_scheme", f.VersionScheme, f.versionSchemeChoices.Values()); e != nil {
		errs = append(errs, *e)
	}

	return errs.ErrorOrNil()
}
