package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"pena/internal/models"
	"pena/internal/repositories"
	"pena/pkg/cache"
	"pena/pkg/slug"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	wordsPerMinute   = 200
	postCacheTTL     = time.Minute
)

// EventPublisher publishes domain events. A nil publisher disables
// publishing; failures are logged and never fail the request.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// PostService handles business logic related to posts, comments and likes.
type PostService struct {
	postRepo     repositories.PostRepository
	commentRepo  repositories.CommentRepository
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepository
	publisher    EventPublisher
	cache        *cache.Cache
}

// NewPostService creates a new PostService. publisher and c may be nil.
func NewPostService(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	categoryRepo repositories.CategoryRepository,
	userRepo repositories.UserRepository,
	publisher EventPublisher,
	c *cache.Cache,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		cache:        c,
	}
}

// ListPosts returns one page of posts and the pagination window. Page and
// limit are clamped before the query runs.
func (s *PostService) ListPosts(filter repositories.PostFilter) ([]models.Post, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	posts, total, err := s.postRepo.List(filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	pagination := models.Pagination{
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalPosts:  total,
		HasNextPage: filter.Page < totalPages,
		HasPrevPage: filter.Page > 1,
	}
	return posts, pagination, nil
}

// GetPublishedPost returns a published post by ID and increments its view
// counter. Unpublished posts are reported as not found. A cached read may
// show a view count up to the cache TTL stale; the counter itself always
// goes to the database.
func (s *PostService) GetPublishedPost(id string) (*models.Post, error) {
	key := "post:" + id
	if data, ok := s.cache.Get(context.Background(), key); ok {
		var cached models.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			if err := s.postRepo.IncrementViews(id); err != nil {
				log.Printf("Failed to increment views for post %s: %v", id, err)
			}
			return &cached, nil
		}
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post.Status != models.StatusPublished {
		return nil, fmt.Errorf("%w: post with ID %s", models.ErrNotFound, id)
	}

	if err := s.postRepo.IncrementViews(id); err != nil {
		log.Printf("Failed to increment views for post %s: %v", id, err)
	} else {
		post.Views++
	}

	if data, err := json.Marshal(post); err == nil {
		s.cache.Set(context.Background(), key, data, postCacheTTL)
	}
	return post, nil
}

// CreatePost validates the category reference, derives a unique slug and
// persists the post for the author.
func (s *PostService) CreatePost(authorID string, req models.CreatePostRequest) (*models.Post, error) {
	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		return nil, fmt.Errorf("%w: category %s does not exist", models.ErrInvalidReference, req.CategoryID)
	}

	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, err
	}

	uniqueSlug, err := s.deriveSlug(req.Title, "")
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		Slug:       uniqueSlug,
		CategoryID: req.CategoryID,
		AuthorID:   author.ID,
		AuthorName: author.FullName(),
		Tags:       req.Tags,
		Status:     status,
		ReadTime:   readTime(req.Content),
	}
	if post.Excerpt == "" {
		post.Excerpt = deriveExcerpt(req.Content)
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.publishEvent("post.created", post)
	if post.Status == models.StatusPublished {
		s.publishEvent("post.published", post)
	}
	return post, nil
}

// UpdatePost applies changes to a post the actor owns (or administers).
// The resource is fetched first: not-found wins over access-denied, and
// nothing is written on a failed guard.
func (s *PostService) UpdatePost(actorID, actorRole, id string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !canModify(actorID, actorRole, post.AuthorID) {
		return nil, fmt.Errorf("%w: you can only edit your own posts", models.ErrAccessDenied)
	}

	wasPublished := post.Status == models.StatusPublished

	if req.Title != "" && req.Title != post.Title {
		post.Title = req.Title
		newSlug, err := s.deriveSlug(req.Title, post.Slug)
		if err != nil {
			return nil, err
		}
		post.Slug = newSlug
	}
	if req.Content != "" {
		post.Content = req.Content
		post.ReadTime = readTime(req.Content)
	}
	if req.Excerpt != "" {
		post.Excerpt = req.Excerpt
	}
	if req.CategoryID != "" && req.CategoryID != post.CategoryID {
		if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
			return nil, fmt.Errorf("%w: category %s does not exist", models.ErrInvalidReference, req.CategoryID)
		}
		post.CategoryID = req.CategoryID
		post.Category = nil
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.Status != "" {
		post.Status = req.Status
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	s.cache.Delete(context.Background(), "post:"+post.ID)
	if !wasPublished && post.Status == models.StatusPublished {
		s.publishEvent("post.published", post)
	}
	return post, nil
}

// DeletePost removes a post and its comments, guarded by ownership.
func (s *PostService) DeletePost(actorID, actorRole, id string) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !canModify(actorID, actorRole, post.AuthorID) {
		return fmt.Errorf("%w: you can only delete your own posts", models.ErrAccessDenied)
	}

	if err := s.commentRepo.DeleteByPost(id); err != nil {
		return err
	}
	if err := s.postRepo.Delete(id); err != nil {
		return err
	}
	s.cache.Delete(context.Background(), "post:"+id)
	return nil
}

// ToggleLike flips the actor's like on a post.
func (s *PostService) ToggleLike(actorID, postID string) (bool, int64, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return false, 0, err
	}
	return s.postRepo.ToggleLike(postID, actorID)
}

// ListComments returns a post's comments, oldest first.
func (s *PostService) ListComments(postID string) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(postID)
}

// AddComment attaches a comment to an existing post.
func (s *PostService) AddComment(actorID, postID string, req models.CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:     postID,
		AuthorID:   author.ID,
		AuthorName: author.FullName(),
		Content:    req.Content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment, guarded by the comment's authorship.
func (s *PostService) DeleteComment(actorID, actorRole, postID, commentID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return fmt.Errorf("%w: comment with ID %s", models.ErrNotFound, commentID)
	}
	if !canModify(actorID, actorRole, comment.AuthorID) {
		return fmt.Errorf("%w: you can only delete your own comments", models.ErrAccessDenied)
	}
	return s.commentRepo.Delete(commentID)
}

// deriveSlug turns a title into a unique slug by sequential probing:
// base, base-1, base-2, ... keep is the post's current slug on updates so
// a post keeps its slug when re-deriving to the same value. The probe is
// check-then-insert and not atomic; the unique index on slug is what
// actually settles concurrent identical titles.
func (s *PostService) deriveSlug(title, keep string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "post"
	}
	candidate := base
	for i := 1; ; i++ {
		if candidate == keep {
			return candidate, nil
		}
		exists, err := s.postRepo.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func canModify(actorID, actorRole, ownerID string) bool {
	return actorID == ownerID || actorRole == models.RoleAdmin
}

func (s *PostService) publishEvent(event string, post *models.Post) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":    event,
		"postId":   post.ID,
		"slug":     post.Slug,
		"title":    post.Title,
		"authorId": post.AuthorID,
		"status":   post.Status,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for post %s: %v", event, post.ID, err)
		return
	}
	if err := s.publisher.Publish("", "post_events", body); err != nil {
		log.Printf("Warning: failed to publish %s event for post %s: %v", event, post.ID, err)
	}
}

func readTime(content string) int {
	words := len(strings.Fields(content))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

func deriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= 200 {
		return content
	}
	return string(runes[:200]) + "..."
}
