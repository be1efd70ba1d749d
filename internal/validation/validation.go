// Package validation contains the logic for validating
// submitted form data.
//
// It uses the `validator` library to enforce rules (like
// required fields or URL formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand. Field names in the errors are the form keys
// (the `form` struct tag), e.g. "version_url".
package validation
