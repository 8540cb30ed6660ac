package income

import (
	"context"
	"fmt"
	"time"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/core/types"
)

// Service provides income operations.
type Service struct {
	repo Repository
}

// NewService creates a new income service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new income entry for userID.
func (s *Service) Create(ctx context.Context, userID string, inc *Income) (*Income, error) {
	if inc.Amount.IsNegative() || inc.Amount.IsZero() {
		return nil, apperror.NewValidation("amount must be positive")
	}
	if inc.Date.IsZero() {
		inc.Date = time.Now()
	}

	now := time.Now()
	inc.ID = id.New()
	inc.UserID = userID
	inc.CreatedAt = now
	inc.UpdatedAt = now

	if err := s.repo.Create(ctx, inc); err != nil {
		return nil, fmt.Errorf("create income: %w", err)
	}
	return inc, nil
}

// List returns the owner's incomes, newest first, with a total count.
func (s *Service) List(ctx context.Context, userID string, page, limit int) ([]Income, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.List(ctx, userID, limit, (page-1)*limit)
}

// GetByID fetches one entry scoped to the owner.
func (s *Service) GetByID(ctx context.Context, incomeID id.ID, userID string) (*Income, error) {
	return s.repo.GetByID(ctx, incomeID, userID)
}

// Delete removes the entry if owned by userID.
func (s *Service) Delete(ctx context.Context, incomeID id.ID, userID string) error {
	deleted, err := s.repo.Delete(ctx, incomeID, userID)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("Income")
	}
	return nil
}

// Total sums the amounts of items.
func Total(items []Income) types.Money {
	sum := types.Zero()
	for _, it := range items {
		sum = sum.Add(it.Amount)
	}
	return sum
}
