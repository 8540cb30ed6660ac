package expense

import (
	"context"
	"time"

	"finledger/internal/core/id"
)

// Repository defines expense data access.
type Repository interface {
	Create(ctx context.Context, exp *Expense) error
	GetByID(ctx context.Context, expenseID id.ID, userID string) (*Expense, error)
	List(ctx context.Context, userID string, limit, offset int) ([]Expense, int64, error)
	// ListByRange returns the owner's expenses with date inside [start, end].
	ListByRange(ctx context.Context, userID string, start, end time.Time) ([]Expense, error)
	Delete(ctx context.Context, expenseID id.ID, userID string) (bool, error)
}
