package dto

import (
	"time"

	"finledger/internal/core/types"
	"finledger/internal/domain/budget"
	"finledger/internal/domain/expense"
	"finledger/internal/domain/income"
)

// --- Income ---

// CreateIncomeRequest for recording income.
type CreateIncomeRequest struct {
	Description string      `json:"description" binding:"required"`
	Amount      types.Money `json:"amount" binding:"required"`
	Category    string      `json:"category" binding:"required"`
	Date        *time.Time  `json:"date"`
	Notes       string      `json:"notes"`
}

// ToIncome converts to a domain record.
func (r *CreateIncomeRequest) ToIncome() *income.Income {
	inc := &income.Income{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Notes:       r.Notes,
	}
	if r.Date != nil {
		inc.Date = *r.Date
	}
	return inc
}

// IncomeResponse represents an income record in API responses.
type IncomeResponse struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      types.Money `json:"amount"`
	Category    string      `json:"category"`
	Date        time.Time   `json:"date"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// FromIncome creates response from domain record.
func FromIncome(inc *income.Income) *IncomeResponse {
	return &IncomeResponse{
		ID:          inc.ID.String(),
		Description: inc.Description,
		Amount:      inc.Amount,
		Category:    inc.Category,
		Date:        inc.Date,
		Notes:       inc.Notes,
		CreatedAt:   inc.CreatedAt,
	}
}

// FromIncomes converts a page of income records.
func FromIncomes(items []income.Income) []IncomeResponse {
	out := make([]IncomeResponse, len(items))
	for i := range items {
		out[i] = *FromIncome(&items[i])
	}
	return out
}

// --- Expense ---

// CreateExpenseRequest for recording an expense.
type CreateExpenseRequest struct {
	Description string      `json:"description" binding:"required"`
	Amount      types.Money `json:"amount" binding:"required"`
	Category    string      `json:"category" binding:"required"`
	Date        *time.Time  `json:"date"`
	Notes       string      `json:"notes"`
}

// ToExpense converts to a domain record.
func (r *CreateExpenseRequest) ToExpense() *expense.Expense {
	exp := &expense.Expense{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Notes:       r.Notes,
	}
	if r.Date != nil {
		exp.Date = *r.Date
	}
	return exp
}

// ExpenseResponse represents an expense record in API responses.
type ExpenseResponse struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      types.Money `json:"amount"`
	Category    string      `json:"category"`
	Date        time.Time   `json:"date"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// FromExpense creates response from domain record.
func FromExpense(exp *expense.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          exp.ID.String(),
		Description: exp.Description,
		Amount:      exp.Amount,
		Category:    exp.Category,
		Date:        exp.Date,
		Notes:       exp.Notes,
		CreatedAt:   exp.CreatedAt,
	}
}

// FromExpenses converts a page of expense records.
func FromExpenses(items []expense.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(items))
	for i := range items {
		out[i] = *FromExpense(&items[i])
	}
	return out
}

// --- Budget ---

// CreateBudgetRequest for setting a monthly category budget.
type CreateBudgetRequest struct {
	Category    string      `json:"category" binding:"required"`
	Amount      types.Money `json:"amount" binding:"required"`
	Spent       types.Money `json:"spent"`
	Month       string      `json:"month" binding:"required"`
	Description string      `json:"description"`
}

// ToBudget converts to a domain record.
func (r *CreateBudgetRequest) ToBudget() *budget.Budget {
	return &budget.Budget{
		Category:    r.Category,
		Amount:      r.Amount,
		Spent:       r.Spent,
		Month:       r.Month,
		Description: r.Description,
	}
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID          string      `json:"id"`
	Category    string      `json:"category"`
	Amount      types.Money `json:"amount"`
	Spent       types.Money `json:"spent"`
	Remaining   types.Money `json:"remaining"`
	Month       string      `json:"month"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// FromBudget creates response from domain record.
func FromBudget(b *budget.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:          b.ID.String(),
		Category:    b.Category,
		Amount:      b.Amount,
		Spent:       b.Spent,
		Remaining:   b.Remaining(),
		Month:       b.Month,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

// FromBudgets converts a page of budgets.
func FromBudgets(items []budget.Budget) []BudgetResponse {
	out := make([]BudgetResponse, len(items))
	for i := range items {
		out[i] = *FromBudget(&items[i])
	}
	return out
}
