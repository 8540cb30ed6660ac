package handlers

import (
	"github.com/gin-gonic/gin"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/domain/income"
	"finledger/internal/infrastructure/http/v1/dto"
)

// IncomeHandler handles income record endpoints.
type IncomeHandler struct {
	*BaseHandler
	service *income.Service
}

// NewIncomeHandler creates a new income handler.
func NewIncomeHandler(base *BaseHandler, service *income.Service) *IncomeHandler {
	return &IncomeHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /incomes
func (h *IncomeHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateIncomeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inc, err := h.service.Create(ctx, h.GetUserID(c), req.ToIncome())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromIncome(inc))
}

// List handles GET /incomes
func (h *IncomeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page := h.ParseIntQuery(c, "page", 1)
	limit := h.ParseIntQuery(c, "limit", 10)

	items, total, err := h.service.List(ctx, h.GetUserID(c), page, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[dto.IncomeResponse]{
		Data:       dto.FromIncomes(items),
		Pagination: dto.NewPaginationResponse(total, page, limit),
	})
}

// GetByID handles GET /incomes/:id
func (h *IncomeHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	incomeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid income ID"))
		return
	}

	inc, err := h.service.GetByID(ctx, incomeID, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromIncome(inc))
}

// Delete handles DELETE /incomes/:id
func (h *IncomeHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	incomeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid income ID"))
		return
	}

	if err := h.service.Delete(ctx, incomeID, h.GetUserID(c)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "Income deleted successfully")
}
