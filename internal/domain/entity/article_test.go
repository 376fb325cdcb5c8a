package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticle(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		content    string
		authorID   int64
		magazineID int64
		wantField  string
	}{
		{"valid", "Pride and Prejudice", "It is a truth...", 1, 2, ""},
		{"empty content allowed", "The Color Purple", "", 1, 2, ""},
		{"blank title", "  ", "body", 1, 2, "title"},
		{"title too long", strings.Repeat("t", 256), "body", 1, 2, "title"},
		{"zero author", "Title", "body", 0, 2, "author_id"},
		{"negative author", "Title", "body", -4, 2, "author_id"},
		{"zero magazine", "Title", "body", 1, 0, "magazine_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewArticle(tt.title, tt.content, tt.authorID, tt.magazineID)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, &Article{
					Title: tt.title, Content: tt.content,
					AuthorID: tt.authorID, MagazineID: tt.magazineID,
				}, got)
				return
			}
			require.Nil(t, got)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "article", ve.Entity)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestRestoreArticle(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a, err := RestoreArticle(3, "Title", "", 1, 2, at)
	require.NoError(t, err)
	assert.Equal(t, int64(3), a.ID)
	assert.Equal(t, at, a.PublishedAt)
	assert.True(t, a.IsPersisted())
}

func TestArticle_EditAndMove(t *testing.T) {
	a, err := NewArticle("Draft", "", 1, 1)
	require.NoError(t, err)

	require.NoError(t, a.Edit("Final", "text"))
	assert.Equal(t, "Final", a.Title)
	assert.Equal(t, "text", a.Content)

	assert.Error(t, a.Edit("", "other"))
	assert.Equal(t, "text", a.Content)

	require.NoError(t, a.MoveTo(9))
	assert.Equal(t, int64(9), a.MagazineID)
	assert.Error(t, a.MoveTo(0))
	assert.Equal(t, int64(9), a.MagazineID)
}
