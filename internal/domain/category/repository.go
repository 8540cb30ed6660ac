package category

import (
	"context"

	"finledger/internal/core/id"
)

// Repository defines category data access.
type Repository interface {
	Create(ctx context.Context, cat *Category) error
	GetByID(ctx context.Context, categoryID id.ID, userID string) (*Category, error)
	List(ctx context.Context, userID string) ([]Category, error)
	Update(ctx context.Context, cat *Category) (bool, error)
	Delete(ctx context.Context, categoryID id.ID, userID string) (bool, error)
}
