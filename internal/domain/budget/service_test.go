package budget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core/id"
	"finledger/internal/core/types"
)

type memRepo struct {
	created []*Budget
}

func (r *memRepo) Create(ctx context.Context, b *Budget) error {
	r.created = append(r.created, b)
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, budgetID id.ID, userID string) (*Budget, error) {
	return nil, nil
}

func (r *memRepo) List(ctx context.Context, userID string, limit, offset int) ([]Budget, int64, error) {
	return nil, 0, nil
}

func (r *memRepo) ListByMonths(ctx context.Context, userID string, months []string) ([]Budget, error) {
	return nil, nil
}

func (r *memRepo) Delete(ctx context.Context, budgetID id.ID, userID string) (bool, error) {
	return false, nil
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(&memRepo{})
	ctx := context.Background()

	tests := []struct {
		name    string
		budget  Budget
		wantErr string
	}{
		{
			name:    "missing category",
			budget:  Budget{Amount: types.MustMoney("100"), Month: "2025-05"},
			wantErr: "category is required",
		},
		{
			name:    "zero amount",
			budget:  Budget{Category: "Food", Amount: types.Zero(), Month: "2025-05"},
			wantErr: "amount must be positive",
		},
		{
			name:    "month out of range",
			budget:  Budget{Category: "Food", Amount: types.MustMoney("100"), Month: "2025-13"},
			wantErr: "YYYY-MM",
		},
		{
			name:    "month not zero padded",
			budget:  Budget{Category: "Food", Amount: types.MustMoney("100"), Month: "2025-5"},
			wantErr: "YYYY-MM",
		},
		{
			name:    "negative spent",
			budget:  Budget{Category: "Food", Amount: types.MustMoney("100"), Month: "2025-05", Spent: types.MustMoney("-1")},
			wantErr: "spent cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.budget
			_, err := svc.Create(ctx, "u1", &b)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestService_CreateSetsOwnership(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)

	b, err := svc.Create(context.Background(), "u1", &Budget{
		Category: "Rent",
		Amount:   types.MustMoney("1200"),
		Month:    "2025-06",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", b.UserID)
	assert.False(t, id.IsNil(b.ID))
	require.Len(t, repo.created, 1)
}

func TestBudget_Remaining(t *testing.T) {
	b := Budget{Amount: types.MustMoney("500"), Spent: types.MustMoney("320")}
	assert.True(t, types.MustMoney("180").Equal(b.Remaining()))

	over := Budget{Amount: types.MustMoney("100"), Spent: types.MustMoney("150")}
	assert.True(t, types.MustMoney("-50").Equal(over.Remaining()))
}
