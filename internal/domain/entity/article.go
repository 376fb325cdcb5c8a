package entity

import "time"

// Article is a piece written by one Author and published in one Magazine.
// Content may be empty; PublishedAt is assigned by storage on first persist.
type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    int64     `json:"author_id"`
	MagazineID  int64     `json:"magazine_id"`
	PublishedAt time.Time `json:"published_at"`
}

// NewArticle builds an unsaved Article after validating its fields.
func NewArticle(title, content string, authorID, magazineID int64) (*Article, error) {
	if err := ValidateArticle(title, authorID, magazineID); err != nil {
		return nil, err
	}
	return &Article{
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		MagazineID: magazineID,
	}, nil
}

// RestoreArticle rebuilds a persisted Article.
func RestoreArticle(id int64, title, content string, authorID, magazineID int64, publishedAt time.Time) (*Article, error) {
	a, err := NewArticle(title, content, authorID, magazineID)
	if err != nil {
		return nil, err
	}
	a.ID = id
	a.PublishedAt = publishedAt
	return a, nil
}

// ValidateArticle checks the user-supplied fields of an Article.
func ValidateArticle(title string, authorID, magazineID int64) error {
	if err := ValidateArticleTitle(title); err != nil {
		return err
	}
	if err := requirePositiveID("article", "author_id", authorID); err != nil {
		return err
	}
	return requirePositiveID("article", "magazine_id", magazineID)
}

// ValidateArticleTitle checks an article title on its own, for callers that
// do not know the author yet.
func ValidateArticleTitle(title string) error {
	return requireText("article", "title", title, MaxTextLength)
}

// Edit replaces the title and content. The article is left untouched on error.
func (a *Article) Edit(title, content string) error {
	if err := ValidateArticleTitle(title); err != nil {
		return err
	}
	a.Title = title
	a.Content = content
	return nil
}

// MoveTo reassigns the article to another magazine.
func (a *Article) MoveTo(magazineID int64) error {
	if err := requirePositiveID("article", "magazine_id", magazineID); err != nil {
		return err
	}
	a.MagazineID = magazineID
	return nil
}

// IsPersisted reports whether storage has assigned an identity.
func (a *Article) IsPersisted() bool {
	return a.ID > 0
}
