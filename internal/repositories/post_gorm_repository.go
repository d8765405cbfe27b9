package repositories

import (
	"errors"
	"fmt"

	"pena/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sortColumns whitelists the sortable fields, mapping the API names to
// database columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"views":     "views",
}

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create creates a new post. A duplicate slug surfaces as ErrConflict;
// the unique index is what actually arbitrates concurrent creation of
// identically titled posts.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: slug %s", models.ErrConflict, post.Slug)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByID retrieves a post with its author and category preloaded.
func (r *GORMPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Category").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post with ID %s", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}
	return &post, nil
}

// List returns one page of posts matching the filter plus the unpaged
// total count.
func (r *GORMPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ? OR tags LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	var posts []models.Post
	err := query.Preload("Author").Preload("Category").
		Order(column + " " + direction).
		Offset(offset).Limit(filter.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// Update saves changes to an existing post.
func (r *GORMPostRepository) Update(post *models.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: slug %s", models.ErrConflict, post.Slug)
		}
		return fmt.Errorf("failed to update post %s: %w", post.ID, err)
	}
	return nil
}

// Delete removes a post together with its likes.
func (r *GORMPostRepository) Delete(id string) error {
	if err := r.db.Delete(&models.PostLike{}, "post_id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete likes for post %s: %w", id, err)
	}
	result := r.db.Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: post with ID %s", models.ErrNotFound, id)
	}
	return nil
}

// SlugExists reports whether any post already uses the slug.
func (r *GORMPostRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// IncrementViews bumps the view counter without touching UpdatedAt.
func (r *GORMPostRepository) IncrementViews(id string) error {
	err := r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment views for post %s: %w", id, err)
	}
	return nil
}

// ToggleLike likes the post for the user, or removes the like if it is
// already present. Returns the resulting state and like count.
func (r *GORMPostRepository) ToggleLike(postID, userID string) (bool, int64, error) {
	var liked bool
	var existing models.PostLike
	err := r.db.First(&existing, "post_id = ? AND user_id = ?", postID, userID).Error
	switch {
	case err == nil:
		if err := r.db.Delete(&existing).Error; err != nil {
			return false, 0, fmt.Errorf("failed to remove like: %w", err)
		}
		liked = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.PostLike{ID: uuid.New().String(), PostID: postID, UserID: userID}
		if err := r.db.Create(&like).Error; err != nil {
			return false, 0, fmt.Errorf("failed to add like: %w", err)
		}
		liked = true
	default:
		return false, 0, fmt.Errorf("failed to look up like: %w", err)
	}

	var total int64
	if err := r.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return liked, 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return liked, total, nil
}
