// Package budget provides monthly category budget management.
package budget

import (
	"time"

	"finledger/internal/core/id"
	"finledger/internal/core/types"
)

// Budget is a per-category monthly budget. Month is a "YYYY-MM" key rather
// than a date; report aggregation matches budgets by month-key membership.
type Budget struct {
	ID          id.ID       `db:"id" json:"id"`
	UserID      string      `db:"user_id" json:"userId"`
	Category    string      `db:"category" json:"category"`
	Amount      types.Money `db:"amount" json:"amount"`
	Spent       types.Money `db:"spent" json:"spent"`
	Month       string      `db:"month" json:"month"`
	Description string      `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// Remaining is the unspent part of the budget.
func (b Budget) Remaining() types.Money {
	return b.Amount.Sub(b.Spent)
}
