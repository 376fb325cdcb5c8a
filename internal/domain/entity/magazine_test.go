package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMagazine(t *testing.T) {
	tests := []struct {
		name      string
		magName   string
		category  string
		wantField string
	}{
		{"valid", "Nature", "Science", ""},
		{"long category is allowed", "Nature", strings.Repeat("c", 1000), ""},
		{"blank name", " ", "Science", "name"},
		{"name too long", strings.Repeat("n", 256), "Science", "name"},
		{"blank category", "Nature", "", "category"},
		{"whitespace category", "Nature", "\t", "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMagazine(tt.magName, tt.category)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.magName, got.Name)
				assert.Equal(t, tt.category, got.Category)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestMagazine_Mutations(t *testing.T) {
	m, err := NewMagazine("Time", "News")
	require.NoError(t, err)

	require.NoError(t, m.Rename("TIME"))
	require.NoError(t, m.Recategorize("Politics"))
	assert.Equal(t, "TIME", m.Name)
	assert.Equal(t, "Politics", m.Category)

	assert.Error(t, m.Rename(""))
	assert.Error(t, m.Recategorize("  "))
	assert.Equal(t, "TIME", m.Name)
	assert.Equal(t, "Politics", m.Category)
}
