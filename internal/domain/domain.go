// Package domain holds the records Anitya tracks (projects, distributions,
// package mappings, flags, API tokens) and the error taxonomy raised when an
// operation on them is rejected.
//
// The records here are plain values. Storage lives in the repository package
// and business rules in the service package.
package domain
