package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories retrieves all categories.
func (s *CategoryService) ListCategories() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

// CreateCategory creates a new category with a display color.
func (s *CategoryService) CreateCategory(name, color string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if color == "" {
		color = "#6b7280"
	}
	return s.categoryRepo.Create(&domain.Category{
		ID:    uuid.New(),
		Name:  name,
		Color: color,
	})
}

// UpdateCategory renames or recolors a category.
func (s *CategoryService) UpdateCategory(id uuid.UUID, name, color string) (*domain.Category, error) {
	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	existing.Name = name
	if color != "" {
		existing.Color = color
	}
	return s.categoryRepo.Update(existing)
}
