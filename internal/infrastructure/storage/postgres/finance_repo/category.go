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
	"finledger/internal/domain/category"
	"finledger/internal/infrastructure/storage/postgres"
)

var categoryCols = []string{
	"id", "user_id", "name", "kind", "created_at", "updated_at",
}

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *CategoryRepo) Create(ctx context.Context, cat *category.Category) error {
	sql, args, err := r.builder.
		Insert("categories").
		SetMap(postgres.StructToMap(cat)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, categoryID id.ID, userID string) (*category.Category, error) {
	sql, args, err := r.builder.
		Select(categoryCols...).
		From("categories").
		Where(squirrel.Eq{"id": categoryID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var cat category.Category
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &cat, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Category")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &cat, nil
}

func (r *CategoryRepo) List(ctx context.Context, userID string) ([]category.Category, error) {
	sql, args, err := r.builder.
		Select(categoryCols...).
		From("categories").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	cats := []category.Category{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &cats, sql, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (r *CategoryRepo) Update(ctx context.Context, cat *category.Category) (bool, error) {
	sql, args, err := r.builder.
		Update("categories").
		SetMap(map[string]any{
			"name":       cat.Name,
			"kind":       cat.Kind,
			"updated_at": cat.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": cat.ID, "user_id": cat.UserID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("update category: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, categoryID id.ID, userID string) (bool, error) {
	sql, args, err := r.builder.
		Delete("categories").
		Where(squirrel.Eq{"id": categoryID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
