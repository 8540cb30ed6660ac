// Package auth provides authentication domain logic: user accounts,
// password hashing and JWT issuance/validation.
package auth

import (
	"time"

	"finledger/internal/core/id"
)

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
