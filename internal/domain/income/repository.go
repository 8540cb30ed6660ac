package income

import (
	"context"
	"time"

	"finledger/internal/core/id"
)

// Repository defines income data access.
type Repository interface {
	Create(ctx context.Context, inc *Income) error
	GetByID(ctx context.Context, incomeID id.ID, userID string) (*Income, error)
	List(ctx context.Context, userID string, limit, offset int) ([]Income, int64, error)
	// ListByRange returns the owner's incomes with date inside [start, end].
	ListByRange(ctx context.Context, userID string, start, end time.Time) ([]Income, error)
	Delete(ctx context.Context, incomeID id.ID, userID string) (bool, error)
}
