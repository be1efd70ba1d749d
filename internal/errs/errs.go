// Package errs defines the error envelope returned by the HTTP API.
//
// Its purpose is to give every failure the same JSON shape
// (HTTPError), whether it came from form validation (FieldErrors)
// or from a rejected domain operation (a duplicate project, a
// conflicting mapping, an unparsable version).
package errs
