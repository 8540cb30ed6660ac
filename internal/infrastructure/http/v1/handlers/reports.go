package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/domain/report"
	"finledger/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles report generation and retrieval endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *report.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *report.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Generate handles POST /reports/generate
// Creates the job and returns it immediately; generation runs in the
// background.
func (h *ReportsHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateReportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.service.Create(ctx,
		h.GetUserID(c),
		report.Type(req.ReportType),
		report.Period(req.Period),
		report.Format(req.Format),
		req.ToRange(),
	)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromJob(job))
}

// List handles GET /reports
func (h *ReportsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page := h.ParseIntQuery(c, "page", 1)
	limit := h.ParseIntQuery(c, "limit", 10)

	result, err := h.service.List(ctx, h.GetUserID(c), page, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[dto.ReportResponse]{
		Data: dto.FromJobs(result.Jobs),
		Pagination: dto.PaginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Stats handles GET /reports/stats
func (h *ReportsHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.service.Stats(ctx, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStats(stats))
}

// GetByID handles GET /reports/:id
func (h *ReportsHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, ok := h.parseReportID(c)
	if !ok {
		return
	}

	job, err := h.service.GetByID(ctx, jobID, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromJob(job))
}

// Download handles GET /reports/download/:id
// Streams the rendered artifact of a completed report.
func (h *ReportsHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, ok := h.parseReportID(c)
	if !ok {
		return
	}

	job, path, err := h.service.ResolveDownload(ctx, jobID, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.FileName))
	c.File(path)
}

// Delete handles DELETE /reports/:id
func (h *ReportsHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, ok := h.parseReportID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, jobID, h.GetUserID(c)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "Report deleted successfully")
}

func (h *ReportsHandler) parseReportID(c *gin.Context) (id.ID, bool) {
	jobID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid report ID"))
		return id.Nil(), false
	}
	return jobID, true
}
