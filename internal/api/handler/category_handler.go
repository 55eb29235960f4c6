package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/service"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/response"
)

// CategoryHandler handles category CRUD.
type CategoryHandler struct {
	catSvc service.CategoryService
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(catSvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{catSvc: catSvc}
}

// ListCategories
// GET /api/v1/admin/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.catSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": categories})
}

// GetCategory
// GET /api/v1/admin/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cat, err := h.catSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.OK(c, cat)
}

// CreateCategory
// POST /api/v1/admin/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	cat, err := h.catSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.Created(c, cat)
}

// UpdateCategory
// PUT /api/v1/admin/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	cat, err := h.catSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.OK(c, cat)
}

// DeleteCategory
// DELETE /api/v1/admin/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CategoryHandler) handleCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, 12001, "category not found")
	case errors.Is(err, service.ErrCategoryNameRequired):
		response.BadRequest(c, 12002, "category name is required")
	case errors.Is(err, service.ErrBadMaxSelections):
		response.BadRequest(c, 12003, "max_selections must be at least 1")
	default:
		response.InternalError(c)
	}
}
