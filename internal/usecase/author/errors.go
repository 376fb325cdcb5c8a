// Package author provides use cases for managing authors: creating and
// renaming them, browsing what they wrote and where, and adding articles.
package author

import "errors"

// Sentinel errors for author use case operations.
var (
	// ErrAuthorNotFound indicates that the requested author was not found.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrInvalidAuthorID indicates that the provided author ID is invalid.
	// Author IDs must be positive integers.
	ErrInvalidAuthorID = errors.New("invalid author ID")

	// ErrMagazineNotFound indicates that an article targets a missing magazine.
	ErrMagazineNotFound = errors.New("magazine not found")
)
