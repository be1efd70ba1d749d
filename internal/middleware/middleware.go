// Package middleware holds the Echo middleware of the HTTP API:
// request ids, the request-scoped logger, access logging, recovery,
// security headers, CORS, and the global error handler that turns
// validation and domain errors into the errs.HTTPError envelope.
package middleware
