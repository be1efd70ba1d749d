package form

import (
	"github.com/deppfellow/anitya/internal/validation"
)

// Mapping is an existing distro/package mapping that can pre-fill a
// MappingForm. domain.Package implements it.
type Mapping interface {
	GetDistro() string
	GetPackageName() string
	GetVersionURL() string
	GetRegex() string
}

// MappingForm adds or edits the mapping of a distribution package onto a
// project.
type MappingForm struct {
	Distro      string `form:"distro" json:"distro" validate:"required"`
	PackageName string `form:"package_name" json:"package_name" validate:"required"`
	VersionURL  string `form:"version_url" json:"version_url"`
	Regex       string `form:"regex" json:"regex"`
}

// NewMappingForm builds a MappingForm, pre-filled from m when m is not nil.
//
// Binding a request into a pre-filled form overwrites only the submitted
// keys, so an edit can send just the fields that change.
func NewMappingForm(m Mapping) *MappingForm {
	f := &MappingForm{}
	if m != nil {
		f.Distro = m.GetDistro()
		f.PackageName = m.GetPackageName()
		f.VersionURL = m.GetVersionURL()
		f.Regex = m.GetRegex()
	}
	return f
}

func (f *MappingForm) Validate() error {
	trim(&f.Distro, &f.PackageName, &f.VersionURL, &f.Regex)
	return validation.Struct(f).ErrorOrNil()
}
