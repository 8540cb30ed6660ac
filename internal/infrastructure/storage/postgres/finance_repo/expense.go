package finance_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/domain/expense"
	"finledger/internal/infrastructure/storage/postgres"
)

var expenseCols = []string{
	"id", "user_id", "description", "amount", "category",
	"date", "notes", "created_at", "updated_at",
}

// ExpenseRepo implements expense.Repository.
type ExpenseRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(txm *postgres.TxManager) *ExpenseRepo {
	return &ExpenseRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ExpenseRepo) Create(ctx context.Context, exp *expense.Expense) error {
	sql, args, err := r.builder.
		Insert("expenses").
		SetMap(postgres.StructToMap(exp)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, expenseID id.ID, userID string) (*expense.Expense, error) {
	sql, args, err := r.builder.
		Select(expenseCols...).
		From("expenses").
		Where(squirrel.Eq{"id": expenseID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var exp expense.Expense
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &exp, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Expense")
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &exp, nil
}

func (r *ExpenseRepo) List(ctx context.Context, userID string, limit, offset int) ([]expense.Expense, int64, error) {
	sql, args, err := r.builder.
		Select(expenseCols...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)

	expenses := []expense.Expense{}
	if err := pgxscan.Select(ctx, querier, &expenses, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}

	countSQL, countArgs, err := r.builder.
		Select("COUNT(*)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	return expenses, total, nil
}

func (r *ExpenseRepo) ListByRange(ctx context.Context, userID string, start, end time.Time) ([]expense.Expense, error) {
	sql, args, err := r.builder.
		Select(expenseCols...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build range list: %w", err)
	}

	expenses := []expense.Expense{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &expenses, sql, args...); err != nil {
		return nil, fmt.Errorf("list expenses by range: %w", err)
	}
	return expenses, nil
}

// ListAll returns every expense record the user owns, for whole-history
// aggregation.
func (r *ExpenseRepo) ListAll(ctx context.Context, userID string) ([]expense.Expense, error) {
	sql, args, err := r.builder.
		Select(expenseCols...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list all: %w", err)
	}

	expenses := []expense.Expense{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &expenses, sql, args...); err != nil {
		return nil, fmt.Errorf("list all expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, expenseID id.ID, userID string) (bool, error) {
	sql, args, err := r.builder.
		Delete("expenses").
		Where(squirrel.Eq{"id": expenseID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
