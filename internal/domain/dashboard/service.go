// Package dashboard summarizes a user's overall financial position from
// their income and expense records.
package dashboard

import (
	"context"
	"fmt"

	"finledger/internal/core/types"
	"finledger/internal/domain/expense"
	"finledger/internal/domain/income"
)

// taxRate mirrors the flat rate applied by report generation.
var (
	taxRate = types.MustMoney("0.10")
	hundred = types.MustMoney("100")
)

// IncomeSource reads all income records for an owner.
type IncomeSource interface {
	ListAll(ctx context.Context, userID string) ([]income.Income, error)
}

// ExpenseSource reads all expense records for an owner.
type ExpenseSource interface {
	ListAll(ctx context.Context, userID string) ([]expense.Expense, error)
}

// Summary is the owner's aggregate position across all records.
type Summary struct {
	TotalIncome     types.Money `json:"totalIncome"`
	TotalExpenses   types.Money `json:"totalExpenses"`
	EstimatedTaxDue types.Money `json:"estimatedTaxDue"`
	SavingsRate     types.Money `json:"savingsRate"`
}

// Service computes dashboard summaries.
type Service struct {
	incomes  IncomeSource
	expenses ExpenseSource
}

// NewService creates a new dashboard service.
func NewService(incomes IncomeSource, expenses ExpenseSource) *Service {
	return &Service{incomes: incomes, expenses: expenses}
}

// Summary totals the owner's records. The savings rate is the net share of
// income as a percentage and stays zero when there is no income.
func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	incs, err := s.incomes.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load incomes: %w", err)
	}
	exps, err := s.expenses.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	totalIncome := income.Total(incs)
	totalExpenses := expense.Total(exps)

	sum := &Summary{
		TotalIncome:     totalIncome,
		TotalExpenses:   totalExpenses,
		EstimatedTaxDue: totalIncome.Mul(taxRate),
		SavingsRate:     types.Zero(),
	}
	if totalIncome.IsPositive() {
		sum.SavingsRate = totalIncome.Sub(totalExpenses).Div(totalIncome).Mul(hundred)
	}
	return sum, nil
}
