package handlers

import (
	"github.com/gin-gonic/gin"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/domain/budget"
	"finledger/internal/infrastructure/http/v1/dto"
)

// BudgetHandler handles budget endpoints.
type BudgetHandler struct {
	*BaseHandler
	service *budget.Service
}

// NewBudgetHandler creates a new budget handler.
func NewBudgetHandler(base *BaseHandler, service *budget.Service) *BudgetHandler {
	return &BudgetHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /budgets
func (h *BudgetHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateBudgetRequest
	if !h.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Create(ctx, h.GetUserID(c), req.ToBudget())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromBudget(b))
}

// List handles GET /budgets
func (h *BudgetHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page := h.ParseIntQuery(c, "page", 1)
	limit := h.ParseIntQuery(c, "limit", 10)

	items, total, err := h.service.List(ctx, h.GetUserID(c), page, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[dto.BudgetResponse]{
		Data:       dto.FromBudgets(items),
		Pagination: dto.NewPaginationResponse(total, page, limit),
	})
}

// GetByID handles GET /budgets/:id
func (h *BudgetHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	budgetID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid budget ID"))
		return
	}

	b, err := h.service.GetByID(ctx, budgetID, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBudget(b))
}

// Delete handles DELETE /budgets/:id
func (h *BudgetHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	budgetID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid budget ID"))
		return
	}

	if err := h.service.Delete(ctx, budgetID, h.GetUserID(c)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "Budget deleted successfully")
}
