// Package repository is the content store: blog and user persistence behind
// interfaces with a gorm (postgres, sqlite) and a MongoDB implementation.
package repository

import (
	"context"
	"errors"

	"inkpost/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type SortOrder int

const (
	// SortLatest orders by created_at descending.
	SortLatest SortOrder = iota
	// SortTrending orders by likes descending, then created_at descending.
	SortTrending
)

// BlogFilter narrows a blog query. Zero fields do not filter, except that a
// non-nil empty AuthorIDs matches nothing.
type BlogFilter struct {
	Visibility models.Visibility
	AuthorIDs  []string
	Search     string
	Tag        string
}

type BlogRepository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	Find(ctx context.Context, filter BlogFilter, order SortOrder, limit int) ([]models.Blog, error)
	Create(ctx context.Context, blog *models.Blog) error
	// Save persists the author-editable fields of blog and its updated_at.
	// Slug, author and like state are never written by Save.
	Save(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id string) error
	// ToggleLike atomically flips userID's membership in the liker set and
	// recomputes the like count from the set.
	ToggleLike(ctx context.Context, blogID, userID string) (models.LikeState, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	ActiveIDs(ctx context.Context) ([]string, error)
}
