// Package tx decouples domain services from the concrete transaction
// implementation in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs a function within a database transaction. If fn returns an
// error the transaction is rolled back, otherwise it is committed. Nested
// calls reuse the transaction already in context.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
