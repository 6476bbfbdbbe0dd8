package models

import (
	"time"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

const MaxHashtags = 5

type Blog struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Title       string     `json:"title" gorm:"not null" bson:"title"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null" bson:"slug"`
	Content     string     `json:"content" gorm:"type:text;not null" bson:"content"`
	CoverImage  string     `json:"cover_image" bson:"cover_image"`
	Hashtags    []string   `json:"hashtags" gorm:"-" bson:"hashtags"`
	AuthorID    string     `json:"author_id" gorm:"type:varchar(36);not null;index" bson:"author_id"`
	AuthorName  string     `json:"author_name" gorm:"not null" bson:"author_name"`
	Visibility  Visibility `json:"visibility" gorm:"type:varchar(16);not null;index" bson:"visibility"`
	Likes       int        `json:"likes" gorm:"not null;default:0;index" bson:"likes"`
	LikedBy     []string   `json:"liked_by" gorm:"-" bson:"liked_by"`
	SearchTerms string     `json:"-" gorm:"type:text" bson:"-"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`

	Author      *AuthorSummary `json:"author,omitempty" gorm:"-" bson:"-"`
	ContentHTML string         `json:"content_html,omitempty" gorm:"-" bson:"-"`
}

// IsLikedBy reports whether userID is in the liker set.
func (b *Blog) IsLikedBy(userID string) bool {
	for _, id := range b.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// AuthorSummary is the byline projection attached to detail reads.
type AuthorSummary struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Profile  Profile `json:"profile"`
}

// BlogHashtag is one ordered hashtag row of a blog in the relational store.
type BlogHashtag struct {
	BlogID   string `gorm:"primaryKey;type:varchar(36)"`
	Position int    `gorm:"primaryKey"`
	Tag      string `gorm:"not null;index"`
}

// BlogLike is one (blog, user) like in the relational store. The composite
// primary key keeps each user at most once per blog.
type BlogLike struct {
	BlogID    string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time
}

type CreateBlogRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CoverImage string     `json:"cover_image"`
	Hashtags   []string   `json:"hashtags"`
	Visibility Visibility `json:"visibility"`
}

// BlogPatch carries a partial update. A nil field was absent from the request.
type BlogPatch struct {
	Title      *string     `json:"title"`
	Content    *string     `json:"content"`
	CoverImage *string     `json:"cover_image"`
	Hashtags   *[]string   `json:"hashtags"`
	Visibility *Visibility `json:"visibility"`
}

type BlogQuery struct {
	Search string `form:"search"`
	Tag    string `form:"tag"`
}

type BlogListing struct {
	Latest   []Blog `json:"latest"`
	Trending []Blog `json:"trending"`
}

type LikeState struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}
