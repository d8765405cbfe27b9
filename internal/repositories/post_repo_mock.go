package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"pena/internal/models"

	"github.com/google/uuid"
)

// MockPostRepository is an in-memory implementation of PostRepository.
type MockPostRepository struct {
	posts map[string]models.Post
	likes map[string]map[string]bool // postID -> userID set
	mu    sync.RWMutex
}

// NewMockPostRepository creates a new instance of MockPostRepository.
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		posts: make(map[string]models.Post),
		likes: make(map[string]map[string]bool),
	}
}

// Create adds a new post.
func (r *MockPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	for _, p := range r.posts {
		if p.Slug == post.Slug {
			return fmt.Errorf("%w: slug %s", models.ErrConflict, post.Slug)
		}
	}
	r.posts[post.ID] = *post
	return nil
}

// GetByID returns a post by its ID.
func (r *MockPostRepository) GetByID(id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("%w: post with ID %s", models.ErrNotFound, id)
	}
	return &post, nil
}

// List filters, sorts and pages the in-memory posts.
func (r *MockPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Post
	for _, p := range r.posts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			haystack := strings.ToLower(p.Title + " " + p.Content + " " + strings.Join(p.Tags, " "))
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		matched = append(matched, p)
	}

	asc := filter.SortOrder == "asc"
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case "title":
			less = matched[i].Title < matched[j].Title
		case "views":
			less = matched[i].Views < matched[j].Views
		case "updatedAt":
			less = matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Update modifies an existing post.
func (r *MockPostRepository) Update(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; !ok {
		return fmt.Errorf("%w: post with ID %s", models.ErrNotFound, post.ID)
	}
	r.posts[post.ID] = *post
	return nil
}

// Delete removes a post by its ID.
func (r *MockPostRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return fmt.Errorf("%w: post with ID %s", models.ErrNotFound, id)
	}
	delete(r.posts, id)
	delete(r.likes, id)
	return nil
}

// SlugExists reports whether any stored post uses the slug.
func (r *MockPostRepository) SlugExists(slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// IncrementViews bumps the view counter.
func (r *MockPostRepository) IncrementViews(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("%w: post with ID %s", models.ErrNotFound, id)
	}
	post.Views++
	r.posts[id] = post
	return nil
}

// ToggleLike flips the (post, user) like state.
func (r *MockPostRepository) ToggleLike(postID, userID string) (bool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[postID]; !ok {
		return false, 0, fmt.Errorf("%w: post with ID %s", models.ErrNotFound, postID)
	}
	set := r.likes[postID]
	if set == nil {
		set = make(map[string]bool)
		r.likes[postID] = set
	}
	liked := !set[userID]
	if liked {
		set[userID] = true
	} else {
		delete(set, userID)
	}
	return liked, int64(len(set)), nil
}
