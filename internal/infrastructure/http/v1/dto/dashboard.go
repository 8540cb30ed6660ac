package dto

import (
	"finledger/internal/core/types"
	"finledger/internal/domain/dashboard"
)

// DashboardResponse is the owner's aggregate financial position.
type DashboardResponse struct {
	TotalIncome     types.Money `json:"totalIncome"`
	TotalExpenses   types.Money `json:"totalExpenses"`
	EstimatedTaxDue types.Money `json:"estimatedTaxDue"`
	SavingsRate     types.Money `json:"savingsRate"`
}

// FromSummary creates response from the domain summary.
func FromSummary(sum *dashboard.Summary) *DashboardResponse {
	return &DashboardResponse{
		TotalIncome:     sum.TotalIncome,
		TotalExpenses:   sum.TotalExpenses,
		EstimatedTaxDue: sum.EstimatedTaxDue,
		SavingsRate:     sum.SavingsRate,
	}
}
