package handlers

import (
	"log"

	"pena/internal/models"
	"pena/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
// Listing is public; creation is restricted to admins.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler, admin fiber.Handler) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleGetCategories)
	categories.Post("/", auth, admin, h.HandleCreateCategory)
}

// HandleGetCategories returns all categories ordered by name.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAllCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
		})
	}
	return c.JSON(fiber.Map{
		"categories": categories,
	})
}

// HandleCreateCategory creates a category with a unique name.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req models.CreateCategoryRequest
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

	category, err := h.categoryService.CreateCategory(req)
	if err != nil {
		return respondDomainError(c, err, "Could not create category")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}
