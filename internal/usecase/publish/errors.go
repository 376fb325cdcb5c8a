// Package publish implements the transactional writer: one author and the
// articles they wrote are stored together or not at all.
package publish

import (
	"errors"
	"fmt"
)

// Steps reported by Error.
const (
	StepValidate       = "validate"
	StepCreateAuthor   = "create author"
	StepLookupMagazine = "lookup magazine"
	StepCreateArticle  = "create article"
	StepTransaction    = "transaction"
)

// ErrMagazineNotFound indicates that an article spec targets a missing magazine.
var ErrMagazineNotFound = errors.New("magazine not found")

// Error reports the step at which CreateAuthorWithArticles failed.
// Index is the position of the offending article spec, or -1 when the
// failure concerns the author.
type Error struct {
	Step  string
	Index int
	Err   error
}

func (e *Error) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("publish: %s #%d: %v", e.Step, e.Index, e.Err)
	}
	return fmt.Sprintf("publish: %s: %v", e.Step, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
