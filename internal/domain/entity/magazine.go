package entity

import "time"

// Magazine is a publication that articles appear in.
type Magazine struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMagazine builds an unsaved Magazine after validating its fields.
func NewMagazine(name, category string) (*Magazine, error) {
	if err := ValidateMagazine(name, category); err != nil {
		return nil, err
	}
	return &Magazine{Name: name, Category: category}, nil
}

// RestoreMagazine rebuilds a persisted Magazine.
func RestoreMagazine(id int64, name, category string, createdAt time.Time) (*Magazine, error) {
	if err := ValidateMagazine(name, category); err != nil {
		return nil, err
	}
	return &Magazine{ID: id, Name: name, Category: category, CreatedAt: createdAt}, nil
}

// ValidateMagazine checks the user-supplied fields of a Magazine.
func ValidateMagazine(name, category string) error {
	if err := requireText("magazine", "name", name, MaxTextLength); err != nil {
		return err
	}
	return requireText("magazine", "category", category, 0)
}

// Rename changes the magazine's name.
func (m *Magazine) Rename(name string) error {
	if err := ValidateMagazine(name, m.Category); err != nil {
		return err
	}
	m.Name = name
	return nil
}

// Recategorize moves the magazine to another category.
func (m *Magazine) Recategorize(category string) error {
	if err := ValidateMagazine(m.Name, category); err != nil {
		return err
	}
	m.Category = category
	return nil
}

// IsPersisted reports whether storage has assigned an identity.
func (m *Magazine) IsPersisted() bool {
	return m.ID > 0
}
