// Package finance_repo provides the PostgreSQL repositories for the
// financial record domains that feed report aggregation.
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
	"finledger/internal/domain/income"
	"finledger/internal/infrastructure/storage/postgres"
)

var incomeCols = []string{
	"id", "user_id", "description", "amount", "category",
	"date", "notes", "created_at", "updated_at",
}

// IncomeRepo implements income.Repository.
type IncomeRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewIncomeRepo creates a new income repository.
func NewIncomeRepo(txm *postgres.TxManager) *IncomeRepo {
	return &IncomeRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *IncomeRepo) Create(ctx context.Context, inc *income.Income) error {
	sql, args, err := r.builder.
		Insert("incomes").
		SetMap(postgres.StructToMap(inc)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert income: %w", err)
	}
	return nil
}

func (r *IncomeRepo) GetByID(ctx context.Context, incomeID id.ID, userID string) (*income.Income, error) {
	sql, args, err := r.builder.
		Select(incomeCols...).
		From("incomes").
		Where(squirrel.Eq{"id": incomeID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var inc income.Income
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &inc, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Income")
		}
		return nil, fmt.Errorf("get income: %w", err)
	}
	return &inc, nil
}

func (r *IncomeRepo) List(ctx context.Context, userID string, limit, offset int) ([]income.Income, int64, error) {
	sql, args, err := r.builder.
		Select(incomeCols...).
		From("incomes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)

	incomes := []income.Income{}
	if err := pgxscan.Select(ctx, querier, &incomes, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list incomes: %w", err)
	}

	countSQL, countArgs, err := r.builder.
		Select("COUNT(*)").
		From("incomes").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count incomes: %w", err)
	}

	return incomes, total, nil
}

func (r *IncomeRepo) ListByRange(ctx context.Context, userID string, start, end time.Time) ([]income.Income, error) {
	sql, args, err := r.builder.
		Select(incomeCols...).
		From("incomes").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build range list: %w", err)
	}

	incomes := []income.Income{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &incomes, sql, args...); err != nil {
		return nil, fmt.Errorf("list incomes by range: %w", err)
	}
	return incomes, nil
}

// ListAll returns every income record the user owns, for whole-history
// aggregation.
func (r *IncomeRepo) ListAll(ctx context.Context, userID string) ([]income.Income, error) {
	sql, args, err := r.builder.
		Select(incomeCols...).
		From("incomes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list all: %w", err)
	}

	incomes := []income.Income{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &incomes, sql, args...); err != nil {
		return nil, fmt.Errorf("list all incomes: %w", err)
	}
	return incomes, nil
}

func (r *IncomeRepo) Delete(ctx context.Context, incomeID id.ID, userID string) (bool, error) {
	sql, args, err := r.builder.
		Delete("incomes").
		Where(squirrel.Eq{"id": incomeID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("delete income: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
