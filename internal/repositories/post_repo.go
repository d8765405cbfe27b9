package repositories

import "pena/internal/models"

// PostFilter narrows and orders a post listing. Zero values mean "no
// constraint"; SortBy must be one of the JSON field names accepted by
// the listing endpoint (createdAt, updatedAt, title, views).
type PostFilter struct {
	Status     string
	CategoryID string
	AuthorID   string
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	List(filter PostFilter) ([]models.Post, int64, error)
	Update(post *models.Post) error
	Delete(id string) error
	SlugExists(slug string) (bool, error)
	IncrementViews(id string) error
	ToggleLike(postID, userID string) (liked bool, total int64, err error)
}

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListByPost(postID string) ([]models.Comment, error)
	Delete(id string) error
	DeleteByPost(postID string) error
}
