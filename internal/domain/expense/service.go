package expense

import (
	"context"
	"fmt"
	"time"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/core/types"
)

// Service provides expense operations.
type Service struct {
	repo Repository
}

// NewService creates a new expense service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new expense entry for userID.
func (s *Service) Create(ctx context.Context, userID string, exp *Expense) (*Expense, error) {
	if exp.Description == "" {
		return nil, apperror.NewValidation("description is required")
	}
	if exp.Category == "" {
		return nil, apperror.NewValidation("category is required")
	}
	if exp.Amount.IsNegative() || exp.Amount.IsZero() {
		return nil, apperror.NewValidation("amount must be positive")
	}
	if exp.Date.IsZero() {
		return nil, apperror.NewValidation("date is required")
	}

	now := time.Now()
	exp.ID = id.New()
	exp.UserID = userID
	exp.CreatedAt = now
	exp.UpdatedAt = now

	if err := s.repo.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return exp, nil
}

// List returns the owner's expenses, newest first, with a total count.
func (s *Service) List(ctx context.Context, userID string, page, limit int) ([]Expense, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.List(ctx, userID, limit, (page-1)*limit)
}

// GetByID fetches one entry scoped to the owner.
func (s *Service) GetByID(ctx context.Context, expenseID id.ID, userID string) (*Expense, error) {
	return s.repo.GetByID(ctx, expenseID, userID)
}

// Delete removes the entry if owned by userID.
func (s *Service) Delete(ctx context.Context, expenseID id.ID, userID string) error {
	deleted, err := s.repo.Delete(ctx, expenseID, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("Expense")
	}
	return nil
}

// Total sums the amounts of items.
func Total(items []Expense) types.Money {
	sum := types.Zero()
	for _, it := range items {
		sum = sum.Add(it.Amount)
	}
	return sum
}
