package handlers

import (
	"github.com/gin-gonic/gin"

	"finledger/internal/domain/dashboard"
	"finledger/internal/infrastructure/http/v1/dto"
)

// DashboardHandler handles the financial summary endpoint.
type DashboardHandler struct {
	*BaseHandler
	service *dashboard.Service
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(base *BaseHandler, service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Summary handles GET /dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	sum, err := h.service.Summary(ctx, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSummary(sum))
}
