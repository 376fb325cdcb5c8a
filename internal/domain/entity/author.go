// Package entity defines the core domain entities and validation logic for the application.
// It contains the publishing records Author, Magazine and Article, along with
// their construction-time validation rules and domain-specific errors.
package entity

import "time"

// Author is a person who writes articles for magazines.
// ID and CreatedAt are assigned by storage on first persist.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuthor builds an unsaved Author after validating its name.
func NewAuthor(name string) (*Author, error) {
	if err := ValidateAuthorName(name); err != nil {
		return nil, err
	}
	return &Author{Name: name}, nil
}

// RestoreAuthor rebuilds a persisted Author. Storage-assigned fields are taken
// as-is; the name is still validated.
func RestoreAuthor(id int64, name string, createdAt time.Time) (*Author, error) {
	if err := ValidateAuthorName(name); err != nil {
		return nil, err
	}
	return &Author{ID: id, Name: name, CreatedAt: createdAt}, nil
}

// ValidateAuthorName reports whether name is acceptable for an Author.
func ValidateAuthorName(name string) error {
	return requireText("author", "name", name, MaxTextLength)
}

// Rename changes the author's name. The author is left untouched on error.
func (a *Author) Rename(name string) error {
	if err := ValidateAuthorName(name); err != nil {
		return err
	}
	a.Name = name
	return nil
}

// IsPersisted reports whether storage has assigned an identity.
func (a *Author) IsPersisted() bool {
	return a.ID > 0
}
