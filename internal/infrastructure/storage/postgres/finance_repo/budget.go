package finance_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/domain/budget"
	"finledger/internal/infrastructure/storage/postgres"
)

var budgetCols = []string{
	"id", "user_id", "category", "amount", "spent",
	"month", "description", "created_at", "updated_at",
}

// BudgetRepo implements budget.Repository.
type BudgetRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewBudgetRepo creates a new budget repository.
func NewBudgetRepo(txm *postgres.TxManager) *BudgetRepo {
	return &BudgetRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *BudgetRepo) Create(ctx context.Context, b *budget.Budget) error {
	sql, args, err := r.builder.
		Insert("budgets").
		SetMap(postgres.StructToMap(b)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (r *BudgetRepo) GetByID(ctx context.Context, budgetID id.ID, userID string) (*budget.Budget, error) {
	sql, args, err := r.builder.
		Select(budgetCols...).
		From("budgets").
		Where(squirrel.Eq{"id": budgetID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var b budget.Budget
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &b, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Budget")
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}

func (r *BudgetRepo) List(ctx context.Context, userID string, limit, offset int) ([]budget.Budget, int64, error) {
	sql, args, err := r.builder.
		Select(budgetCols...).
		From("budgets").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("month DESC", "category ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)

	budgets := []budget.Budget{}
	if err := pgxscan.Select(ctx, querier, &budgets, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list budgets: %w", err)
	}

	countSQL, countArgs, err := r.builder.
		Select("COUNT(*)").
		From("budgets").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count budgets: %w", err)
	}

	return budgets, total, nil
}

func (r *BudgetRepo) ListByMonths(ctx context.Context, userID string, months []string) ([]budget.Budget, error) {
	if len(months) == 0 {
		return []budget.Budget{}, nil
	}

	sql, args, err := r.builder.
		Select(budgetCols...).
		From("budgets").
		Where(squirrel.Eq{"user_id": userID, "month": months}).
		OrderBy("month ASC", "category ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build month list: %w", err)
	}

	budgets := []budget.Budget{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &budgets, sql, args...); err != nil {
		return nil, fmt.Errorf("list budgets by months: %w", err)
	}
	return budgets, nil
}

func (r *BudgetRepo) Delete(ctx context.Context, budgetID id.ID, userID string) (bool, error) {
	sql, args, err := r.builder.
		Delete("budgets").
		Where(squirrel.Eq{"id": budgetID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("delete budget: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
