package form

import (
	"github.com/deppfellow/anitya/internal/validation"
)

// TokenForm creates an API token.
type TokenForm struct {
	// Description is a human-readable note on what the token is for.
	Description string `form:"description" json:"description"`
}

func (f *TokenForm) Validate() error {
	trim(&f.Description)
	return validation.Struct(f).ErrorOrNil()
}

// FlagProjectForm reports a problem with a project.
type FlagProjectForm struct {
	// Reason is multi-line free text.
	Reason string `form:"reason" json:"reason" validate:"required"`
}

func (f *FlagProjectForm) Validate() error {
	trim(&f.Reason)
	return validation.Struct(f).ErrorOrNil()
}

// DistroForm creates a distribution.
type DistroForm struct {
	Name string `form:"name" json:"name" validate:"required"`
}

func (f *DistroForm) Validate() error {
	trim(&f.Name)
	return validation.Struct(f).ErrorOrNil()
}

// VersionForm records a version of a project.
type VersionForm struct {
	Version string `form:"version" json:"version" validate:"required"`
}

func (f *VersionForm) Validate() error {
	trim(&f.Version)
	return validation.Struct(f).ErrorOrNil()
}

// ConfirmationForm has no fields. It gates destructive actions: the only
// question it answers is whether it was submitted (see IsSubmitted).
type ConfirmationForm struct{}

func (f *ConfirmationForm) Validate() error { return nil }
