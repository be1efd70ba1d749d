package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/anitya/internal/errs"
)

// Validatable is implemented by forms that know how to validate themselves.
//
// Typical pattern:
//   - Define a form struct with validator tags (`validate:"required,url"`)
//   - Implement Validate() error that calls Struct(form) plus any rule that
//     cannot be expressed with a tag (e.g. runtime choice lists)
//   - Return CustomValidationErrors.ErrorOrNil()
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Add appends an error for field, returning the grown slice.
func (c CustomValidationErrors) Add(field, message string) CustomValidationErrors {
	return append(c, CustomValidationError{Field: field, Message: message})
}

// Has reports whether field already has at least one error.
func (c CustomValidationErrors) Has(field string) bool {
	for _, e := range c {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Fields groups the messages per field, in the order they were reported.
func (c CustomValidationErrors) Fields() map[string][]string {
	out := make(map[string][]string, len(c))
	for _, e := range c {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// ErrorOrNil returns nil when there are no errors.
//
// An empty CustomValidationErrors stored in an error interface is not nil,
// so Validate implementations must return through this.
func (c CustomValidationErrors) ErrorOrNil() error {
	if len(c) == 0 {
		return nil
	}
	return c
}

// validate is shared: validator caches struct metadata and is safe for
// concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the form key instead of the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registering a known tag name with a valid func cannot fail.
	_ = v.RegisterValidation("homepage", isHomepage)

	return v
}

// isHomepage implements the `homepage` tag: an absolute scheme://host URL
// whose host has a top-level domain. Opaque forms such as mailto: and
// javascript: are rejected.
func isHomepage(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if !strings.Contains(raw, "://") {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Opaque != "" {
		return false
	}

	host := u.Hostname()
	dot := strings.LastIndex(host, ".")
	return dot > 0 && dot < len(host)-1
}

// Struct validates s against its `validate` tags and converts any failure
// into CustomValidationErrors. It returns nil when s is valid.
func Struct(s any) CustomValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// InvalidValidationError: s was not a struct. That is a programming
		// error, surface it against no particular field.
		return CustomValidationErrors{{Field: "", Message: err.Error()}}
	}

	out := make(CustomValidationErrors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = out.Add(fe.Field(), messageFor(fe))
	}
	return out
}

// Choice checks that value is one of allowed. An empty value passes: whether
// the field may be empty is the `required` tag's job.
func Choice(field, value string, allowed []string) *CustomValidationError {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}

	msg := "is not a valid choice"
	if len(allowed) > 0 {
		msg = fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))
	}
	return &CustomValidationError{Field: field, Message: msg}
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates the form from the request body (form-encoded or JSON).
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError (400) with field-level errors if validation fails.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request payload"

		// Echo wraps bind failures in *echo.HTTPError with a string message.
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if m, ok := echoErr.Message.(string); ok && m != "" {
				message = m
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	var validationErrors validator.ValidationErrors

	switch {
	case errors.As(err, &customValidationErrors):
		for _, e := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}

	case errors.As(err, &validationErrors):
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fe.Field(),
				Error: messageFor(fe),
			})
		}

	default:
		// Validate returned something that is not a validation error at all.
		fieldErrors = append(fieldErrors, errs.FieldError{Error: err.Error()})
	}

	return "Validation failed", fieldErrors
}

// messageFor converts a validator tag failure into a user-friendly message.
func messageFor(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "url", "http_url", "homepage":
		return "must be a valid URL"

	case "min":
		// min tag means:
		// - for strings: minimum length
		// - for numbers: minimum value
		if err.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "uuid":
		return "must be a valid UUID"

	default:
		// Fallback for tags not explicitly handled above.
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", err.Field(), err.Tag())
	}
}
