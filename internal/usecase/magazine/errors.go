// Package magazine provides use cases for managing magazines and for the
// per-magazine and cross-magazine reports built on their articles.
package magazine

import "errors"

// Sentinel errors for magazine use case operations.
var (
	// ErrMagazineNotFound indicates that the requested magazine was not found.
	ErrMagazineNotFound = errors.New("magazine not found")

	// ErrInvalidMagazineID indicates that the provided magazine ID is invalid.
	ErrInvalidMagazineID = errors.New("invalid magazine ID")
)
