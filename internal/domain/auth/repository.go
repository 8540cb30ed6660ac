package auth

import (
	"context"

	"finledger/internal/core/id"
)

// Repository defines user account data access.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID id.ID) (*User, error)
}
