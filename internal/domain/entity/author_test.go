package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "Alice Walker", false},
		{"single character", "A", false},
		{"exactly 255 characters", strings.Repeat("a", 255), false},
		{"255 multibyte characters", strings.Repeat("é", 255), false},
		{"empty", "", true},
		{"spaces only", "   ", true},
		{"tabs and newlines", "\t\n", true},
		{"256 characters", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAuthor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, errors.Is(err, ErrValidationFailed))

				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "author", ve.Entity)
				assert.Equal(t, "name", ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.Name)
			assert.Zero(t, got.ID)
			assert.False(t, got.IsPersisted())
		})
	}
}

func TestRestoreAuthor(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	a, err := RestoreAuthor(7, "Mark Twain", now)
	require.NoError(t, err)
	assert.Equal(t, &Author{ID: 7, Name: "Mark Twain", CreatedAt: now}, a)
	assert.True(t, a.IsPersisted())

	_, err = RestoreAuthor(7, " ", now)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestAuthor_Rename(t *testing.T) {
	a := &Author{ID: 1, Name: "Jane Austen"}

	require.NoError(t, a.Rename("J. Austen"))
	assert.Equal(t, "J. Austen", a.Name)

	err := a.Rename("")
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "J. Austen", a.Name, "name must be unchanged after a failed rename")
}
