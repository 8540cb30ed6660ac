package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
)

type memRepo struct {
	rows map[id.ID]*Category
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[id.ID]*Category{}}
}

func (r *memRepo) Create(ctx context.Context, cat *Category) error {
	cp := *cat
	r.rows[cat.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, categoryID id.ID, userID string) (*Category, error) {
	cat, ok := r.rows[categoryID]
	if !ok || cat.UserID != userID {
		return nil, apperror.NewNotFound("Category")
	}
	cp := *cat
	return &cp, nil
}

func (r *memRepo) List(ctx context.Context, userID string) ([]Category, error) {
	var out []Category
	for _, cat := range r.rows {
		if cat.UserID == userID {
			out = append(out, *cat)
		}
	}
	return out, nil
}

func (r *memRepo) Update(ctx context.Context, cat *Category) (bool, error) {
	existing, ok := r.rows[cat.ID]
	if !ok || existing.UserID != cat.UserID {
		return false, nil
	}
	cp := *cat
	r.rows[cat.ID] = &cp
	return true, nil
}

func (r *memRepo) Delete(ctx context.Context, categoryID id.ID, userID string) (bool, error) {
	cat, ok := r.rows[categoryID]
	if !ok || cat.UserID != userID {
		return false, nil
	}
	delete(r.rows, categoryID)
	return true, nil
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	tests := []struct {
		name     string
		category Category
		wantErr  string
	}{
		{
			name:     "missing name",
			category: Category{Kind: KindExpense},
			wantErr:  "name is required",
		},
		{
			name:     "whitespace name",
			category: Category{Name: "   ", Kind: KindExpense},
			wantErr:  "name is required",
		},
		{
			name:     "unknown kind",
			category: Category{Name: "Tools", Kind: Kind("transfer")},
			wantErr:  "type must be expense or income",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.category
			_, err := svc.Create(ctx, "u1", &c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestService_CreateTrimsNameAndSetsOwnership(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	cat, err := svc.Create(context.Background(), "u1", &Category{
		Name: "  Consulting  ",
		Kind: KindIncome,
	})
	require.NoError(t, err)

	assert.Equal(t, "Consulting", cat.Name)
	assert.Equal(t, "u1", cat.UserID)
	assert.False(t, id.IsNil(cat.ID))
}

func TestService_ListPrependsDefaults(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", &Category{Name: "Equipment", Kind: KindExpense})
	require.NoError(t, err)

	cats, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cats, len(Defaults())+1)

	assert.Equal(t, "Business Expenses", cats[0].Name)
	assert.True(t, id.IsNil(cats[0].ID))

	var names []string
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Equipment")

	// Another user only sees the defaults.
	other, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, other, len(Defaults()))
}

func TestService_Update(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cat, err := svc.Create(ctx, "u1", &Category{Name: "Misc", Kind: KindExpense})
	require.NoError(t, err)

	t.Run("renames and retypes", func(t *testing.T) {
		updated, err := svc.Update(ctx, cat.ID, "u1", "Side Projects", KindIncome)
		require.NoError(t, err)
		assert.Equal(t, "Side Projects", updated.Name)
		assert.Equal(t, KindIncome, updated.Kind)
	})

	t.Run("empty fields keep current values", func(t *testing.T) {
		updated, err := svc.Update(ctx, cat.ID, "u1", "", "")
		require.NoError(t, err)
		assert.Equal(t, "Side Projects", updated.Name)
		assert.Equal(t, KindIncome, updated.Kind)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, cat.ID, "u1", "", Kind("transfer"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type must be expense or income")
	})

	t.Run("foreign owner sees not found", func(t *testing.T) {
		_, err := svc.Update(ctx, cat.ID, "u2", "Stolen", "")
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestService_Delete(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cat, err := svc.Create(ctx, "u1", &Category{Name: "Temp", Kind: KindExpense})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, cat.ID, "u1"))

	err = svc.Delete(ctx, cat.ID, "u1")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
