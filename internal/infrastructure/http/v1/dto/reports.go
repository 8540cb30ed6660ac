package dto

import (
	"time"

	"finledger/internal/core/types"
	"finledger/internal/domain/report"
)

// --- Request DTOs ---

// CustomPeriodRequest is an explicit date range for custom-period reports.
type CustomPeriodRequest struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// GenerateReportRequest for starting report generation.
type GenerateReportRequest struct {
	ReportType   string               `json:"reportType" binding:"required"`
	Period       string               `json:"period" binding:"required"`
	Format       string               `json:"format"`
	CustomPeriod *CustomPeriodRequest `json:"customPeriod"`
}

// ToRange converts the custom period to a domain range. Missing bounds are
// preserved as zero times so the resolver can reject them.
func (r *GenerateReportRequest) ToRange() *report.Range {
	if r.CustomPeriod == nil {
		return nil
	}
	rng := &report.Range{}
	if r.CustomPeriod.StartDate != nil {
		rng.StartDate = *r.CustomPeriod.StartDate
	}
	if r.CustomPeriod.EndDate != nil {
		rng.EndDate = *r.CustomPeriod.EndDate
	}
	return rng
}

// --- Response DTOs ---

// RangeResponse represents a resolved date range.
type RangeResponse struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// ReportDataResponse is the aggregation payload of a completed report.
type ReportDataResponse struct {
	Summary map[string]types.Money `json:"summary"`
	Details any                    `json:"details,omitempty"`
	Period  RangeResponse          `json:"period"`
}

// ReportResponse represents a report job in API responses.
type ReportResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	ReportType   string              `json:"reportType"`
	Period       string              `json:"period"`
	Format       string              `json:"format"`
	Status       string              `json:"status"`
	ReportData   *ReportDataResponse `json:"reportData,omitempty"`
	CustomPeriod *RangeResponse      `json:"customPeriod,omitempty"`
	GeneratedAt  *time.Time          `json:"generatedAt,omitempty"`
	FileName     string              `json:"fileName,omitempty"`
	FileURL      string              `json:"fileUrl,omitempty"`
	ErrorMessage string              `json:"errorMessage,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// FromJob creates response from a domain job.
func FromJob(j *report.Job) *ReportResponse {
	resp := &ReportResponse{
		ID:           j.ID.String(),
		UserID:       j.UserID,
		ReportType:   string(j.Type),
		Period:       string(j.Period),
		Format:       string(j.Format),
		Status:       string(j.Status),
		GeneratedAt:  j.GeneratedAt,
		FileName:     j.FileName,
		FileURL:      j.FileURL,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
	if j.Data != nil {
		resp.ReportData = &ReportDataResponse{
			Summary: j.Data.Summary,
			Details: j.Data.Details,
			Period:  RangeResponse(j.Data.Period),
		}
	}
	if j.CustomPeriod != nil {
		rng := RangeResponse(*j.CustomPeriod)
		resp.CustomPeriod = &rng
	}
	return resp
}

// FromJobs converts a page of jobs.
func FromJobs(jobs []report.Job) []ReportResponse {
	out := make([]ReportResponse, len(jobs))
	for i := range jobs {
		out[i] = *FromJob(&jobs[i])
	}
	return out
}

// ReportStatsResponse is the per-status job count for the current user.
type ReportStatsResponse struct {
	Pending    int64 `json:"pending"`
	Generating int64 `json:"generating"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
	Total      int64 `json:"total"`
}

// FromStats creates response from per-status counts.
func FromStats(stats map[report.Status]int64) *ReportStatsResponse {
	resp := &ReportStatsResponse{
		Pending:    stats[report.StatusPending],
		Generating: stats[report.StatusGenerating],
		Completed:  stats[report.StatusCompleted],
		Failed:     stats[report.StatusFailed],
	}
	resp.Total = resp.Pending + resp.Generating + resp.Completed + resp.Failed
	return resp
}
