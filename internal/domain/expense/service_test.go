package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core/id"
	"finledger/internal/core/types"
)

type memRepo struct {
	created []*Expense
}

func (r *memRepo) Create(ctx context.Context, exp *Expense) error {
	r.created = append(r.created, exp)
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, expenseID id.ID, userID string) (*Expense, error) {
	return nil, nil
}

func (r *memRepo) List(ctx context.Context, userID string, limit, offset int) ([]Expense, int64, error) {
	return nil, 0, nil
}

func (r *memRepo) ListByRange(ctx context.Context, userID string, start, end time.Time) ([]Expense, error) {
	return nil, nil
}

func (r *memRepo) Delete(ctx context.Context, expenseID id.ID, userID string) (bool, error) {
	return false, nil
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(&memRepo{})
	ctx := context.Background()
	valid := Expense{
		Description: "Groceries",
		Category:    "Food",
		Amount:      types.MustMoney("42.50"),
		Date:        time.Now(),
	}

	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr string
	}{
		{"missing description", func(e *Expense) { e.Description = "" }, "description is required"},
		{"missing category", func(e *Expense) { e.Category = "" }, "category is required"},
		{"zero amount", func(e *Expense) { e.Amount = types.Zero() }, "amount must be positive"},
		{"negative amount", func(e *Expense) { e.Amount = types.MustMoney("-5") }, "amount must be positive"},
		{"missing date", func(e *Expense) { e.Date = time.Time{} }, "date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			_, err := svc.Create(ctx, "u1", &e)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestService_CreateSetsOwnership(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)

	exp, err := svc.Create(context.Background(), "u1", &Expense{
		Description: "Groceries",
		Category:    "Food",
		Amount:      types.MustMoney("42.50"),
		Date:        time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", exp.UserID)
	assert.False(t, id.IsNil(exp.ID))
	require.Len(t, repo.created, 1)
}
