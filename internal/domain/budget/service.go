package budget

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Service provides budget operations.
type Service struct {
	repo Repository
}

// NewService creates a new budget service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new budget for userID.
func (s *Service) Create(ctx context.Context, userID string, b *Budget) (*Budget, error) {
	if b.Category == "" {
		return nil, apperror.NewValidation("category is required")
	}
	if b.Amount.IsNegative() || b.Amount.IsZero() {
		return nil, apperror.NewValidation("amount must be positive")
	}
	if !monthKeyPattern.MatchString(b.Month) {
		return nil, apperror.NewValidation("month must be in YYYY-MM format")
	}
	if b.Spent.IsNegative() {
		return nil, apperror.NewValidation("spent cannot be negative")
	}

	now := time.Now()
	b.ID = id.New()
	b.UserID = userID
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

// List returns the owner's budgets with a total count.
func (s *Service) List(ctx context.Context, userID string, page, limit int) ([]Budget, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.List(ctx, userID, limit, (page-1)*limit)
}

// GetByID fetches one budget scoped to the owner.
func (s *Service) GetByID(ctx context.Context, budgetID id.ID, userID string) (*Budget, error) {
	return s.repo.GetByID(ctx, budgetID, userID)
}

// Delete removes the budget if owned by userID.
func (s *Service) Delete(ctx context.Context, budgetID id.ID, userID string) error {
	deleted, err := s.repo.Delete(ctx, budgetID, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("Budget")
	}
	return nil
}
