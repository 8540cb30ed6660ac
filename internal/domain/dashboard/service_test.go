package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core/types"
	"finledger/internal/domain/expense"
	"finledger/internal/domain/income"
)

type fakeSources struct {
	incomes  []income.Income
	expenses []expense.Expense
	err      error
}

func (f *fakeSources) ListAll(ctx context.Context, userID string) ([]income.Income, error) {
	return f.incomes, f.err
}

type fakeExpenseSource struct{ f *fakeSources }

func (s fakeExpenseSource) ListAll(ctx context.Context, userID string) ([]expense.Expense, error) {
	return s.f.expenses, s.f.err
}

func newTestService(f *fakeSources) *Service {
	return NewService(f, fakeExpenseSource{f: f})
}

func assertMoney(t *testing.T, want string, got types.Money) {
	t.Helper()
	assert.True(t, types.MustMoney(want).Equal(got), "want %s, got %s", want, got)
}

func TestSummary(t *testing.T) {
	f := &fakeSources{
		incomes: []income.Income{
			{Amount: types.MustMoney("3000")},
			{Amount: types.MustMoney("1000")},
		},
		expenses: []expense.Expense{
			{Amount: types.MustMoney("2500")},
			{Amount: types.MustMoney("500")},
		},
	}

	sum, err := newTestService(f).Summary(context.Background(), "u1")
	require.NoError(t, err)

	assertMoney(t, "4000", sum.TotalIncome)
	assertMoney(t, "3000", sum.TotalExpenses)
	assertMoney(t, "400", sum.EstimatedTaxDue)
	assertMoney(t, "25", sum.SavingsRate)
}

func TestSummary_NoIncomeKeepsRateZero(t *testing.T) {
	f := &fakeSources{
		expenses: []expense.Expense{{Amount: types.MustMoney("120")}},
	}

	sum, err := newTestService(f).Summary(context.Background(), "u1")
	require.NoError(t, err)

	assertMoney(t, "0", sum.TotalIncome)
	assertMoney(t, "120", sum.TotalExpenses)
	assertMoney(t, "0", sum.EstimatedTaxDue)
	assertMoney(t, "0", sum.SavingsRate)
}

func TestSummary_OverspendGoesNegative(t *testing.T) {
	f := &fakeSources{
		incomes:  []income.Income{{Amount: types.MustMoney("100")}},
		expenses: []expense.Expense{{Amount: types.MustMoney("150")}},
	}

	sum, err := newTestService(f).Summary(context.Background(), "u1")
	require.NoError(t, err)

	assertMoney(t, "-50", sum.SavingsRate)
}

func TestSummary_SourceFailure(t *testing.T) {
	f := &fakeSources{err: errors.New("storage unavailable")}

	_, err := newTestService(f).Summary(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage unavailable")
}
