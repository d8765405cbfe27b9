package services

import (
	"fmt"

	"pena/internal/models"
	"pena/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// GetAllCategories retrieves all categories ordered by name.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// CreateCategory creates a category with a unique name.
func (s *CategoryService) CreateCategory(req models.CreateCategoryRequest) (*models.Category, error) {
	if existing, err := s.repo.GetByName(req.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: category '%s'", models.ErrConflict, req.Name)
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}
