// Package report_repo provides the PostgreSQL implementation of the report
// job repository.
package report_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/domain/report"
	"finledger/internal/infrastructure/storage/postgres"
)

const tableName = "reports"

var selectCols = []string{
	"id", "user_id", "report_type", "period", "format", "status",
	"report_data", "custom_period", "generated_at",
	"file_name", "file_url", "error_message",
	"created_at", "updated_at",
}

// ReportRepo implements report.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new pending job row.
func (r *ReportRepo) Create(ctx context.Context, job *report.Job) error {
	var customPeriod []byte
	if job.CustomPeriod != nil {
		raw, err := json.Marshal(job.CustomPeriod)
		if err != nil {
			return fmt.Errorf("marshal custom period: %w", err)
		}
		customPeriod = raw
	}

	q := r.builder.
		Insert(tableName).
		SetMap(map[string]any{
			"id":            job.ID,
			"user_id":       job.UserID,
			"report_type":   job.Type,
			"period":        job.Period,
			"format":        job.Format,
			"status":        job.Status,
			"custom_period": customPeriod,
			"file_name":     job.FileName,
			"file_url":      job.FileURL,
			"error_message": job.ErrorMessage,
			"created_at":    job.CreatedAt,
			"updated_at":    job.UpdatedAt,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetByID fetches one row scoped by id and owner. A foreign-owned job and a
// nonexistent one are both reported as not found.
func (r *ReportRepo) GetByID(ctx context.Context, jobID id.ID, userID string) (*report.Job, error) {
	sql, args, err := r.builder.
		Select(selectCols...).
		From(tableName).
		Where(squirrel.Eq{"id": jobID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var job report.Job
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &job, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Report")
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &job, nil
}

// List returns the owner's jobs sorted by creation time descending. The page
// and its total run in one read-only transaction so they see the same
// snapshot.
func (r *ReportRepo) List(ctx context.Context, userID string, limit, offset int) (jobs []report.Job, total int64, err error) {
	sql, args, err := r.builder.
		Select(selectCols...).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	countSQL, countArgs, err := r.builder.
		Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	jobs = []report.Job{}
	err = r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		querier := r.txm.GetQuerier(ctx)
		if err := pgxscan.Select(ctx, querier, &jobs, sql, args...); err != nil {
			return fmt.Errorf("list reports: %w", err)
		}
		if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count reports: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// Delete removes the row if owned by userID; reports success by row count.
func (r *ReportRepo) Delete(ctx context.Context, jobID id.ID, userID string) (bool, error) {
	sql, args, err := r.builder.
		Delete(tableName).
		Where(squirrel.Eq{"id": jobID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("delete report: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountByStatus groups the owner's jobs by status.
func (r *ReportRepo) CountByStatus(ctx context.Context, userID string) (map[report.Status]int64, error) {
	sql, args, err := r.builder.
		Select("status", "COUNT(*) AS count").
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats: %w", err)
	}

	var rows []struct {
		Status report.Status `db:"status"`
		Count  int64         `db:"count"`
	}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	stats := make(map[report.Status]int64, len(rows))
	for _, row := range rows {
		stats[row.Status] = row.Count
	}
	return stats, nil
}

// SetGenerating moves a pending job to generating. The status guard keeps
// transitions one-directional even if the task were ever re-entered.
func (r *ReportRepo) SetGenerating(ctx context.Context, jobID id.ID) error {
	return r.transition(ctx, jobID,
		map[string]any{"status": report.StatusGenerating},
		squirrel.Eq{"status": report.StatusPending},
	)
}

// MarkCompleted finalizes a generating job with its payload and artifact
// reference.
func (r *ReportRepo) MarkCompleted(ctx context.Context, jobID id.ID, data *report.Data, generatedAt time.Time, fileName, fileURL string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal report data: %w", err)
	}

	return r.transition(ctx, jobID,
		map[string]any{
			"status":       report.StatusCompleted,
			"report_data":  raw,
			"generated_at": generatedAt,
			"file_name":    fileName,
			"file_url":     fileURL,
		},
		squirrel.Eq{"status": report.StatusGenerating},
	)
}

// MarkFailed finalizes a job with the failure message. Allowed from both
// pending and generating so a job can never stay stuck once the task ends.
func (r *ReportRepo) MarkFailed(ctx context.Context, jobID id.ID, message string) error {
	return r.transition(ctx, jobID,
		map[string]any{
			"status":        report.StatusFailed,
			"error_message": message,
		},
		squirrel.Eq{"status": []report.Status{report.StatusPending, report.StatusGenerating}},
	)
}

func (r *ReportRepo) transition(ctx context.Context, jobID id.ID, set map[string]any, guard squirrel.Eq) error {
	set["updated_at"] = time.Now()

	sql, args, err := r.builder.
		Update(tableName).
		SetMap(set).
		Where(squirrel.Eq{"id": jobID}).
		Where(guard).
		ToSql()
	if err != nil {
		return fmt.Errorf("build transition: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConflict("report status transition rejected").
			WithDetail("report_id", jobID.String())
	}
	return nil
}
