package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/restopos/backend/internal/application/catalog"
)

// CategoryService is the part of catalogapp.CategoryService the handler uses
type CategoryService interface {
	Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.CategoryResponse, error)
	List(ctx context.Context, activeOnly bool) ([]catalogapp.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateCategoryRequest) (*catalogapp.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryHandler handles menu category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryListQuery struct {
	ActiveOnly bool `form:"active_only"`
}

// Create creates a category
// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// List lists categories by sort order
// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	var q categoryListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), q.ActiveOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// GetByID returns a category
// GET /categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Update updates a category
// PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete removes a category without products
// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
