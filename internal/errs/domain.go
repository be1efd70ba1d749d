package errs

import (
	"errors"

	"github.com/deppfellow/anitya/internal/domain"
)

// Machine codes of the domain errors.
var (
	CodeProjectExists        = "PROJECT_EXISTS"
	CodeInvalidMapping       = "INVALID_MAPPING"
	CodeInvalidVersion       = "INVALID_VERSION"
	CodePluginError          = "PLUGIN_ERROR"
	CodeDistroExists         = "DISTRO_EXISTS"
	CodeMappingExists        = "MAPPING_EXISTS"
	CodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	CodeProjectNotFound      = "PROJECT_NOT_FOUND"
	CodePackageNotFound      = "PACKAGE_NOT_FOUND"
	CodeDistroNotFound       = "DISTRO_NOT_FOUND"
)

// FromDomain converts a domain error into its HTTP shape.
//
// It returns false when err is not a known domain error, leaving the caller
// to fall back to a generic 500.
func FromDomain(err error) (*HTTPError, bool) {
	var (
		exists  *domain.ProjectExistsError
		mapping *domain.InvalidMappingError
		version *domain.InvalidVersionError
		plugin  *domain.PluginError
	)

	switch {
	case errors.As(err, &exists):
		return NewConflictError(exists.Error(), &CodeProjectExists, exists.ToDict(), nil), true

	case errors.As(err, &mapping):
		var action *Action
		if mapping.Link != "" {
			action = &Action{
				Type:    ActionTypeRedirect,
				Message: "The package is already mapped to " + mapping.ProjectName,
				Value:   mapping.Link,
			}
		}
		return NewConflictError(mapping.Message(), &CodeInvalidMapping, mapping.ToDict(), action), true

	case errors.As(err, &version):
		return NewBadRequestError(version.Error(), false, &CodeInvalidVersion, nil, nil), true

	case errors.As(err, &plugin):
		return NewBadGatewayError(plugin.Error(), &CodePluginError), true

	case errors.Is(err, domain.ErrDistroExists):
		return NewConflictError(domain.ErrDistroExists.Error(), &CodeDistroExists, nil, nil), true

	case errors.Is(err, domain.ErrMappingExists):
		return NewConflictError(domain.ErrMappingExists.Error(), &CodeMappingExists, nil, nil), true

	case errors.Is(err, domain.ErrNotConfirmed):
		return NewBadRequestError(domain.ErrNotConfirmed.Error(), false, &CodeConfirmationRequired, nil, &Action{
			Type:    ActionTypeConfirm,
			Message: "Submit the confirmation form to proceed",
		}), true

	case errors.Is(err, domain.ErrProjectNotFound):
		return NewNotFoundError(domain.ErrProjectNotFound.Error(), false, &CodeProjectNotFound), true

	case errors.Is(err, domain.ErrPackageNotFound):
		return NewNotFoundError(domain.ErrPackageNotFound.Error(), false, &CodePackageNotFound), true

	case errors.Is(err, domain.ErrDistroNotFound):
		return NewNotFoundError(domain.ErrDistroNotFound.Error(), false, &CodeDistroNotFound), true
	}

	return nil, false
}
