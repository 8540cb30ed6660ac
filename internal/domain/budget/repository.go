package budget

import (
	"context"

	"finledger/internal/core/id"
)

// Repository defines budget data access.
type Repository interface {
	Create(ctx context.Context, b *Budget) error
	GetByID(ctx context.Context, budgetID id.ID, userID string) (*Budget, error)
	List(ctx context.Context, userID string, limit, offset int) ([]Budget, int64, error)
	// ListByMonths returns the owner's budgets whose month key is in months.
	ListByMonths(ctx context.Context, userID string, months []string) ([]Budget, error)
	Delete(ctx context.Context, budgetID id.ID, userID string) (bool, error)
}
