package handlers

import (
	"log"

	"pena/internal/models"
	"pena/internal/repositories"
	"pena/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts, comments and likes.
type PostHandler struct {
	postService *services.PostService
	validate    *validator.Validate
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the post routes with the Fiber app. auth guards
// the mutating routes; listing and reading published posts is public.
// "/mine" is registered before "/:id" so the literal segment wins.
func (h *PostHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	posts := router.Group("/posts")
	posts.Get("/", h.HandleListPosts)
	posts.Get("/mine", auth, h.HandleListMyPosts)
	posts.Get("/:id", h.HandleGetPost)
	posts.Post("/", auth, h.HandleCreatePost)
	posts.Put("/:id", auth, h.HandleUpdatePost)
	posts.Delete("/:id", auth, h.HandleDeletePost)
	posts.Post("/:id/like", auth, h.HandleToggleLike)
	posts.Get("/:id/comments", h.HandleListComments)
	posts.Post("/:id/comments", auth, h.HandleAddComment)
	posts.Delete("/:id/comments/:commentId", auth, h.HandleDeleteComment)
}

// HandleListPosts lists published posts with pagination, filtering and
// search. The public listing never exposes drafts or archived posts.
func (h *PostHandler) HandleListPosts(c *fiber.Ctx) error {
	filter := repositories.PostFilter{
		Status:     models.StatusPublished,
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 10),
	}

	posts, pagination, err := h.postService.ListPosts(filter)
	if err != nil {
		return respondDomainError(c, err, "Could not retrieve posts")
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": pagination,
	})
}

// HandleListMyPosts lists the caller's own posts in any status.
func (h *PostHandler) HandleListMyPosts(c *fiber.Ctx) error {
	filter := repositories.PostFilter{
		AuthorID:  userID(c),
		Status:    c.Query("status"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 10),
	}

	posts, pagination, err := h.postService.ListPosts(filter)
	if err != nil {
		return respondDomainError(c, err, "Could not retrieve posts")
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": pagination,
	})
}

// HandleGetPost returns a single published post and counts the view.
func (h *PostHandler) HandleGetPost(c *fiber.Ctx) error {
	post, err := h.postService.GetPublishedPost(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err, "Could not retrieve post")
	}
	return c.JSON(post)
}

// HandleCreatePost creates a post for the authenticated user.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req models.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	post, err := h.postService.CreatePost(userID(c), req)
	if err != nil {
		return respondDomainError(c, err, "Could not create post")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Blog post created successfully",
		"post":    post,
	})
}

// HandleUpdatePost updates a post owned by the caller (or any post for an
// admin).
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	var req models.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	post, err := h.postService.UpdatePost(userID(c), userRole(c), c.Params("id"), req)
	if err != nil {
		return respondDomainError(c, err, "Could not update post")
	}

	return c.JSON(fiber.Map{
		"message": "Post updated successfully",
		"post":    post,
	})
}

// HandleDeletePost deletes a post owned by the caller (or any, for admin).
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	if err := h.postService.DeletePost(userID(c), userRole(c), c.Params("id")); err != nil {
		return respondDomainError(c, err, "Could not delete post")
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// HandleToggleLike likes or unlikes a post for the caller.
func (h *PostHandler) HandleToggleLike(c *fiber.Ctx) error {
	liked, total, err := h.postService.ToggleLike(userID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err, "Could not like post")
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	return c.JSON(fiber.Map{
		"message":   message,
		"likes":     total,
		"userLiked": liked,
	})
}

// HandleListComments lists a post's comments.
func (h *PostHandler) HandleListComments(c *fiber.Ctx) error {
	comments, err := h.postService.ListComments(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err, "Could not retrieve comments")
	}
	return c.JSON(fiber.Map{
		"comments": comments,
	})
}

// HandleAddComment attaches a comment to a post.
func (h *PostHandler) HandleAddComment(c *fiber.Ctx) error {
	var req models.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	comment, err := h.postService.AddComment(userID(c), c.Params("id"), req)
	if err != nil {
		return respondDomainError(c, err, "Could not add comment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// HandleDeleteComment deletes a comment authored by the caller (or any,
// for admin).
func (h *PostHandler) HandleDeleteComment(c *fiber.Ctx) error {
	err := h.postService.DeleteComment(userID(c), userRole(c), c.Params("id"), c.Params("commentId"))
	if err != nil {
		return respondDomainError(c, err, "Could not delete comment")
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}
