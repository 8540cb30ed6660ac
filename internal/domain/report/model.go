// Package report implements the financial report generation pipeline:
// resolving logical periods, aggregating financial records into summaries,
// driving the asynchronous job lifecycle and rendering document artifacts.
package report

import (
	"time"

	"finledger/internal/core/id"
	"finledger/internal/core/types"
)

// Type identifies the kind of financial report to build.
type Type string

const (
	TypeIncomeStatement Type = "Income Statement"
	TypeExpenseReport   Type = "Expense Report"
	TypeTaxSummary      Type = "Tax Summary"
	TypeBudgetAnalysis  Type = "Budget Analysis"
	TypeCashFlow        Type = "Cash Flow Statement"
)

// Valid reports whether t is a member of the closed type enum.
func (t Type) Valid() bool {
	switch t {
	case TypeIncomeStatement, TypeExpenseReport, TypeTaxSummary, TypeBudgetAnalysis, TypeCashFlow:
		return true
	}
	return false
}

// Period names the date range a report covers.
type Period string

const (
	PeriodCurrentMonth   Period = "Current Month"
	PeriodLastMonth      Period = "Last Month"
	PeriodCurrentQuarter Period = "Current Quarter"
	PeriodLastQuarter    Period = "Last Quarter"
	PeriodCurrentYear    Period = "Current Year"
	PeriodLastYear       Period = "Last Year"
	PeriodCustom         Period = "Custom"
)

// Valid reports whether p is a member of the closed period enum.
func (p Period) Valid() bool {
	switch p {
	case PeriodCurrentMonth, PeriodLastMonth, PeriodCurrentQuarter,
		PeriodLastQuarter, PeriodCurrentYear, PeriodLastYear, PeriodCustom:
		return true
	}
	return false
}

// Format is the requested output format. Only PDF rendering is implemented;
// Excel and CSV are accepted on create for forward compatibility.
type Format string

const (
	FormatPDF   Format = "PDF"
	FormatExcel Format = "Excel"
	FormatCSV   Format = "CSV"
)

// Valid reports whether f is a member of the closed format enum.
func (f Format) Valid() bool {
	switch f {
	case FormatPDF, FormatExcel, FormatCSV:
		return true
	}
	return false
}

// Status is the job lifecycle state. Transitions are one-directional:
// pending -> generating -> completed | failed. Completed and failed are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions can occur.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Range is an inclusive date range.
type Range struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Data is the aggregation payload attached to a completed job.
type Data struct {
	Summary map[string]types.Money `json:"summary"`
	Details any                    `json:"details,omitempty"`
	Period  Range                  `json:"period"`
}

// Job is one report-generation request and its evolving record.
// The row is created once and thereafter mutated only by the generation
// task, except for deletion.
type Job struct {
	ID           id.ID      `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"userId"`
	Type         Type       `db:"report_type" json:"reportType"`
	Period       Period     `db:"period" json:"period"`
	Format       Format     `db:"format" json:"format"`
	Status       Status     `db:"status" json:"status"`
	Data         *Data      `db:"report_data" json:"reportData,omitempty"`
	CustomPeriod *Range     `db:"custom_period" json:"customPeriod,omitempty"`
	GeneratedAt  *time.Time `db:"generated_at" json:"generatedAt,omitempty"`
	FileName     string     `db:"file_name" json:"fileName,omitempty"`
	FileURL      string     `db:"file_url" json:"fileUrl,omitempty"`
	ErrorMessage string     `db:"error_message" json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}
