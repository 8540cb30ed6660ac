// Package income provides income record management.
package income

import (
	"time"

	"finledger/internal/core/id"
	"finledger/internal/core/types"
)

// Income is a single income entry owned by a user.
type Income struct {
	ID          id.ID       `db:"id" json:"id"`
	UserID      string      `db:"user_id" json:"userId"`
	Description string      `db:"description" json:"description"`
	Amount      types.Money `db:"amount" json:"amount"`
	Category    string      `db:"category" json:"category"`
	Date        time.Time   `db:"date" json:"date"`
	Notes       string      `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}
