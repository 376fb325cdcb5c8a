package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the maximum number of characters for names and titles.
const MaxTextLength = 255

// requireText checks that value is not blank and, when maxLen > 0,
// does not exceed maxLen characters.
func requireText(entity, field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Entity: entity, Field: field, Message: "must not be blank"}
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return &ValidationError{
			Entity:  entity,
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxLen),
		}
	}
	return nil
}

// requirePositiveID checks that a foreign-key-like identifier is positive.
func requirePositiveID(entity, field string, id int64) error {
	if id <= 0 {
		return &ValidationError{Entity: entity, Field: field, Message: "must be a positive integer"}
	}
	return nil
}
