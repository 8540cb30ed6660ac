package handlers

import (
	"github.com/gin-gonic/gin"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/domain/expense"
	"finledger/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler handles expense record endpoints.
type ExpenseHandler struct {
	*BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(base *BaseHandler, service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	exp, err := h.service.Create(ctx, h.GetUserID(c), req.ToExpense())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromExpense(exp))
}

// List handles GET /expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page := h.ParseIntQuery(c, "page", 1)
	limit := h.ParseIntQuery(c, "limit", 10)

	items, total, err := h.service.List(ctx, h.GetUserID(c), page, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[dto.ExpenseResponse]{
		Data:       dto.FromExpenses(items),
		Pagination: dto.NewPaginationResponse(total, page, limit),
	})
}

// GetByID handles GET /expenses/:id
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	expenseID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid expense ID"))
		return
	}

	exp, err := h.service.GetByID(ctx, expenseID, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromExpense(exp))
}

// Delete handles DELETE /expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	expenseID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid expense ID"))
		return
	}

	if err := h.service.Delete(ctx, expenseID, h.GetUserID(c)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "Expense deleted successfully")
}
