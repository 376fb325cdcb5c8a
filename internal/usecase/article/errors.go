// Package article provides use cases for managing article entities.
// It implements creating, editing and querying articles, including
// validation and resolution of an article's author and magazine.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	// This error is typically returned when attempting to retrieve or update
	// an article that does not exist in the repository.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrDanglingReference indicates that an article points at an author or
	// magazine that no longer exists.
	ErrDanglingReference = errors.New("article references a missing author or magazine")
)
