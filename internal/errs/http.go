package errs

import "strings"

// FieldError represents a field-level validation error of a submitted form.
// Example:
//
//	{ "field": "homepage", "error": "must be a valid URL" }
type FieldError struct {
	// Field is the form key the error relates to (e.g. "version_url").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Usually "Value" holds the URL or route.
	ActionTypeRedirect ActionType = "redirect"

	// ActionTypeConfirm tells the client the request must be re-submitted
	// through the confirmation form.
	ActionTypeConfirm ActionType = "confirm"
)

// Action describes an optional “what the client should do next” instruction.
//
// Used for destructive actions gated behind a confirmation step, and for
// pointing at the project that owns a conflicting mapping.
type Action struct {
	// Type is the kind of action (e.g. "redirect").
	Type ActionType `json:"type"`

	// Message is human-readable guidance for the client/UI.
	Message string `json:"message"`

	// Value is the payload for the action (e.g. redirect URL).
	Value string `json:"value"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is
// serialized directly to JSON.
// Fields:
//   - Code: machine-friendly error code (e.g. "PROJECT_EXISTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: flag to let middleware decide whether to override the message.
//   - Errors: list of per-field errors (validation).
//   - Action: client instruction, action to be taken (optional).
//   - Details: structured payload of a domain error (optional).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors of the submitted form.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction (redirect, confirm).
	Action *Action `json:"action"`

	// Details carries the ToDict() payload of domain errors that have one,
	// e.g. {"requested_project": {...}} for a duplicate project.
	Details map[string]any `json:"details,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
// Printing or logging the error shows the Message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError.
//
// It does NOT compare Code/Status; it only matches on type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
		Details:  e.Details,
	}
}

// FieldMessages groups the field errors by field name.
func (e *HTTPError) FieldMessages() map[string][]string {
	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Error)
	}
	return out
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
