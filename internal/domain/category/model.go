// Package category provides the classification labels users attach to
// income and expense entries.
package category

import (
	"time"

	"finledger/internal/core/id"
)

// Kind tells whether a category classifies expense or income entries.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Category is a classification label owned by a user. Built-in defaults
// carry a zero ID and no owner.
type Category struct {
	ID        id.ID     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	Kind      Kind      `db:"kind" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Defaults returns the built-in categories prepended to every listing.
// They are not persisted and cannot be modified or deleted.
func Defaults() []Category {
	return []Category{
		{Name: "Business Expenses", Kind: KindExpense},
		{Name: "Office Rent", Kind: KindExpense},
		{Name: "Travel", Kind: KindExpense},
		{Name: "Salary", Kind: KindIncome},
		{Name: "Investments", Kind: KindIncome},
	}
}
