package handlers

import (
	"github.com/gin-gonic/gin"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/domain/category"
	"finledger/internal/infrastructure/http/v1/dto"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	*BaseHandler
	service *category.Service
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cat, err := h.service.Create(ctx, h.GetUserID(c), req.ToCategory())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromCategory(cat))
}

// List handles GET /categories. Defaults come first, then the user's own.
func (h *CategoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	cats, err := h.service.List(ctx, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"data": dto.FromCategories(cats)})
}

// Update handles PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	categoryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid category ID"))
		return
	}

	var req dto.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cat, err := h.service.Update(ctx, categoryID, h.GetUserID(c), req.Name, category.Kind(req.Type))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCategory(cat))
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	categoryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid category ID"))
		return
	}

	if err := h.service.Delete(ctx, categoryID, h.GetUserID(c)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "Category deleted successfully")
}
