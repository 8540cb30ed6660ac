package report

import (
	"context"
	"fmt"
	"time"

	"finledger/internal/core/types"
	"finledger/internal/domain/budget"
	"finledger/internal/domain/expense"
	"finledger/internal/domain/income"
)

// taxRate is the flat illustrative rate applied to positive taxable income.
var taxRate = types.MustMoney("0.10")

// IncomeSource reads income records filtered by owner and date range.
type IncomeSource interface {
	ListByRange(ctx context.Context, userID string, start, end time.Time) ([]income.Income, error)
}

// ExpenseSource reads expense records filtered by owner and date range.
type ExpenseSource interface {
	ListByRange(ctx context.Context, userID string, start, end time.Time) ([]expense.Expense, error)
}

// BudgetSource reads budget records filtered by owner and month-key membership.
type BudgetSource interface {
	ListByMonths(ctx context.Context, userID string, months []string) ([]budget.Budget, error)
}

// Aggregator computes a report's summary and detail payload from the
// collaborator records. It only ever reads them.
type Aggregator struct {
	incomes  IncomeSource
	expenses ExpenseSource
	budgets  BudgetSource
}

// NewAggregator creates an aggregator over the given record sources.
func NewAggregator(incomes IncomeSource, expenses ExpenseSource, budgets BudgetSource) *Aggregator {
	return &Aggregator{incomes: incomes, expenses: expenses, budgets: budgets}
}

// Build dispatches on the report type and produces the aggregation payload
// for the resolved range. Empty matches produce all-zero summaries, never
// an error. Sums are plain totals of the amount field; nothing is clamped
// during summation.
func (a *Aggregator) Build(ctx context.Context, userID string, typ Type, rng Range) (*Data, error) {
	data := &Data{
		Summary: map[string]types.Money{},
		Period:  rng,
	}

	switch typ {
	case TypeIncomeStatement:
		incomes, expenses, totalIncome, totalExpense, err := a.incomeAndExpense(ctx, userID, rng)
		if err != nil {
			return nil, err
		}
		data.Summary["totalIncome"] = totalIncome
		data.Summary["totalExpense"] = totalExpense
		data.Summary["netIncome"] = totalIncome.Sub(totalExpense)
		data.Details = map[string]any{"incomes": incomes, "expenses": expenses}

	case TypeExpenseReport:
		expenses, err := a.expenses.ListByRange(ctx, userID, rng.StartDate, rng.EndDate)
		if err != nil {
			return nil, fmt.Errorf("load expenses: %w", err)
		}
		totalExpense := types.Zero()
		for _, e := range expenses {
			totalExpense = totalExpense.Add(e.Amount)
		}
		data.Summary["totalExpense"] = totalExpense
		data.Details = expenses

	case TypeTaxSummary:
		incomes, expenses, totalIncome, totalExpense, err := a.incomeAndExpense(ctx, userID, rng)
		if err != nil {
			return nil, err
		}
		taxable := totalIncome.Sub(totalExpense)
		liability := types.Zero()
		if taxable.IsPositive() {
			liability = taxable.Mul(taxRate)
		}
		data.Summary["totalIncome"] = totalIncome
		data.Summary["totalExpense"] = totalExpense
		data.Summary["taxableIncome"] = taxable
		data.Summary["taxLiability"] = liability
		data.Details = map[string]any{"incomes": incomes, "expenses": expenses}

	case TypeBudgetAnalysis:
		months := MonthKeys(rng.StartDate, rng.EndDate)
		budgets, err := a.budgets.ListByMonths(ctx, userID, months)
		if err != nil {
			return nil, fmt.Errorf("load budgets: %w", err)
		}
		totalBudget, totalSpent := types.Zero(), types.Zero()
		for _, b := range budgets {
			totalBudget = totalBudget.Add(b.Amount)
			totalSpent = totalSpent.Add(b.Spent)
		}
		data.Summary["totalBudget"] = totalBudget
		data.Summary["totalSpent"] = totalSpent
		data.Summary["remaining"] = totalBudget.Sub(totalSpent)
		data.Details = budgets

	case TypeCashFlow:
		incomes, expenses, totalIncome, totalExpense, err := a.incomeAndExpense(ctx, userID, rng)
		if err != nil {
			return nil, err
		}
		net := totalIncome.Sub(totalExpense)
		data.Summary["openingBalance"] = types.Zero()
		data.Summary["totalIncome"] = totalIncome
		data.Summary["totalExpense"] = totalExpense
		data.Summary["netCashFlow"] = net
		data.Summary["closingBalance"] = net
		data.Details = map[string]any{"incomes": incomes, "expenses": expenses}

	default:
		// Create() validates enum membership, so this is unreachable for
		// persisted jobs.
		return nil, fmt.Errorf("unknown report type %q", typ)
	}

	return data, nil
}

func (a *Aggregator) incomeAndExpense(ctx context.Context, userID string, rng Range) ([]income.Income, []expense.Expense, types.Money, types.Money, error) {
	incomes, err := a.incomes.ListByRange(ctx, userID, rng.StartDate, rng.EndDate)
	if err != nil {
		return nil, nil, types.Money{}, types.Money{}, fmt.Errorf("load incomes: %w", err)
	}
	expenses, err := a.expenses.ListByRange(ctx, userID, rng.StartDate, rng.EndDate)
	if err != nil {
		return nil, nil, types.Money{}, types.Money{}, fmt.Errorf("load expenses: %w", err)
	}

	totalIncome, totalExpense := types.Zero(), types.Zero()
	for _, i := range incomes {
		totalIncome = totalIncome.Add(i.Amount)
	}
	for _, e := range expenses {
		totalExpense = totalExpense.Add(e.Amount)
	}
	return incomes, expenses, totalIncome, totalExpense, nil
}
