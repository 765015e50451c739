package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
	"github.com/davembu/centavo/centavo-backend/internal/service"
	"github.com/davembu/centavo/centavo-backend/internal/websocket"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
	publisher       websocket.EventPublisher
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService, publisher websocket.EventPublisher) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, publisher: publisher}
}

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func toCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:    cat.ID.String(),
		Name:  cat.Name,
		Color: cat.Color,
	}
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, toCategoryResponse(cat))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	cat, err := h.categoryService.CreateCategory(req.Name, req.Color)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toCategoryResponse(cat)
	h.publisher.Publish(websocket.CategoryCreated(resp))
	return c.JSON(http.StatusCreated, resp)
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	cat, err := h.categoryService.UpdateCategory(id, req.Name, req.Color)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toCategoryResponse(cat)
	h.publisher.Publish(websocket.CategoryUpdated(resp))
	return c.JSON(http.StatusOK, resp)
}
