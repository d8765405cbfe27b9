package models

import "time"

// Status values for Post.Status.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Post represents a blog post. The slug is derived from the title and is
// unique across all posts; the unique index is the authority under
// concurrent creation.
type Post struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title      string    `json:"title" gorm:"type:varchar(200)"`
	Content    string    `json:"content" gorm:"type:text"`
	Excerpt    string    `json:"excerpt" gorm:"type:varchar(300)"`
	Slug       string    `json:"slug" gorm:"uniqueIndex;type:varchar(220)"`
	CategoryID string    `json:"categoryId" gorm:"index;type:varchar(36)"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	AuthorID   string    `json:"authorId" gorm:"index;type:varchar(36)"`
	Author     *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	AuthorName string    `json:"authorName" gorm:"type:varchar(101)"`
	Tags       []string  `json:"tags" gorm:"serializer:json;type:text"`
	Status     string    `json:"status" gorm:"index;type:varchar(10);default:draft"`
	Views      int64     `json:"views" gorm:"default:0"`
	ReadTime   int       `json:"readTime" gorm:"default:0"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PostLike records that a user liked a post. The composite unique index
// makes the toggle idempotent per (post, user) pair.
type PostLike struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"postId" gorm:"uniqueIndex:idx_post_user;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_post_user;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatePostRequest is the payload for post creation.
type CreatePostRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Content    string   `json:"content" validate:"required,min=10"`
	Excerpt    string   `json:"excerpt" validate:"omitempty,max=300"`
	CategoryID string   `json:"categoryId" validate:"required,uuid"`
	Tags       []string `json:"tags" validate:"omitempty,dive,max=30"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// UpdatePostRequest is the payload for post updates. Empty fields are left
// unchanged; Tags replaces the whole set when present.
type UpdatePostRequest struct {
	Title      string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content    string   `json:"content" validate:"omitempty,min=10"`
	Excerpt    string   `json:"excerpt" validate:"omitempty,max=300"`
	CategoryID string   `json:"categoryId" validate:"omitempty,uuid"`
	Tags       []string `json:"tags" validate:"omitempty,dive,max=30"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// Pagination describes the page window returned with post listings.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}
