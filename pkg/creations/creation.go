package creations

import (
	"context"
	"errors"
	"time"
)

// Type is the kind of generated content.
type Type string

const (
	TypeArticle   Type = "article"
	TypeBlogTitle Type = "blog-title"
	TypeImage     Type = "image"
)

var (
	ErrNotFound    = errors.New("creations.errors.not_found")
	ErrInsert      = errors.New("creations.errors.insert_failed")
	ErrQuery       = errors.New("creations.errors.query_failed")
	ErrUpdate      = errors.New("creations.errors.update_failed")
	ErrInvalidType = errors.New("creations.errors.invalid_type")
)

// Creation is one generated item. For images Content is the public URL.
type Creation struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Prompt    string    `json:"prompt"`
	Content   string    `json:"content"`
	Type      Type      `json:"type"`
	Publish   bool      `json:"publish"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCreation is the input for Insert.
type NewCreation struct {
	UserID  string
	Prompt  string
	Content string
	Type    Type
	Publish bool
}

// Store is the creations log.
type Store interface {
	Insert(ctx context.Context, c NewCreation) (Creation, error)
	// ListByUser returns the user's creations, newest first.
	ListByUser(ctx context.Context, userID string) ([]Creation, error)
	// ListPublished returns published creations of every user, newest first.
	ListPublished(ctx context.Context) ([]Creation, error)
	// ToggleLike adds userID to the creation's likes, or removes it when
	// present. It reports whether the creation is liked afterwards.
	ToggleLike(ctx context.Context, id int64, userID string) (bool, error)
}

func (t Type) valid() bool {
	switch t {
	case TypeArticle, TypeBlogTitle, TypeImage:
		return true
	}
	return false
}
