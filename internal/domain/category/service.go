package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
)

// Service provides category operations.
type Service struct {
	repo Repository
}

// NewService creates a new category service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new category for userID.
func (s *Service) Create(ctx context.Context, userID string, cat *Category) (*Category, error) {
	cat.Name = strings.TrimSpace(cat.Name)
	if cat.Name == "" {
		return nil, apperror.NewValidation("name is required")
	}
	if !cat.Kind.Valid() {
		return nil, apperror.NewValidation("type must be expense or income")
	}

	now := time.Now()
	cat.ID = id.New()
	cat.UserID = userID
	cat.CreatedAt = now
	cat.UpdatedAt = now

	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

// List returns the built-in defaults followed by the owner's categories.
func (s *Service) List(ctx context.Context, userID string) ([]Category, error) {
	own, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return append(Defaults(), own...), nil
}

// Update applies the non-empty fields to the owner's category. The built-in
// defaults have no row, so they come back not found like any foreign ID.
func (s *Service) Update(ctx context.Context, categoryID id.ID, userID string, name string, kind Kind) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		cat.Name = name
	}
	if kind != "" {
		if !kind.Valid() {
			return nil, apperror.NewValidation("type must be expense or income")
		}
		cat.Kind = kind
	}
	cat.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if !updated {
		return nil, apperror.NewNotFound("Category")
	}
	return cat, nil
}

// Delete removes the category if owned by userID.
func (s *Service) Delete(ctx context.Context, categoryID id.ID, userID string) error {
	deleted, err := s.repo.Delete(ctx, categoryID, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("Category")
	}
	return nil
}
