// Package repository stores Anitya's records.
//
// The store is in-memory and process-local. It enforces the two
// uniqueness rules that surface as domain errors: project names inside
// an ecosystem, and distro/package pairs across projects.
package repository
