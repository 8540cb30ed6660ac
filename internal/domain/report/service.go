package report

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/core/tx"
	"finledger/pkg/logger"
)

// Auditor records job lifecycle events. Implementations must not fail the
// pipeline; errors are logged and swallowed by the implementation.
type Auditor interface {
	Record(ctx context.Context, action string, entityID id.ID, userID string, payload any)
}

// ListResult carries one page of jobs with pagination metadata.
type ListResult struct {
	Jobs       []Job
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// Service drives the report job lifecycle: synchronous validation and
// creation, detached background generation, and ownership-scoped retrieval.
type Service struct {
	repo      Repository
	agg       *Aggregator
	artifacts *ArtifactWriter
	txManager tx.Manager
	auditor   Auditor
	log       *logger.Logger

	now func() time.Time
	wg  sync.WaitGroup
}

// NewService creates the report service. auditor may be nil.
func NewService(repo Repository, agg *Aggregator, artifacts *ArtifactWriter, txManager tx.Manager, auditor Auditor, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		agg:       agg,
		artifacts: artifacts,
		txManager: txManager,
		auditor:   auditor,
		log:       log.WithComponent("reports"),
		now:       time.Now,
	}
}

// Create validates the request, persists a pending job and returns it
// without waiting for generation. One detached goroutine per job performs
// the aggregation and rendering; the caller never blocks on it.
func (s *Service) Create(ctx context.Context, userID string, typ Type, period Period, format Format, custom *Range) (*Job, error) {
	if userID == "" {
		return nil, apperror.NewUnauthorized("Authentication required. Please login to generate reports.")
	}
	if !typ.Valid() {
		return nil, apperror.NewValidation("Invalid report type")
	}
	if !period.Valid() {
		return nil, apperror.NewValidation("Invalid period")
	}
	if format == "" {
		format = FormatPDF
	}
	if !format.Valid() {
		return nil, apperror.NewValidation("Invalid format")
	}
	if period != PeriodCustom {
		custom = nil
	}

	// Resolving the range also enforces the custom-period constraints, so
	// a bad request is rejected before any row exists.
	rng, err := ResolveRange(s.now(), period, custom)
	if err != nil {
		return nil, err
	}

	now := s.now()
	job := &Job{
		ID:           id.New(),
		UserID:       userID,
		Type:         typ,
		Period:       period,
		Format:       format,
		Status:       StatusPending,
		CustomPeriod: custom,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The job row and its audit record commit together.
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, job); err != nil {
			return fmt.Errorf("persist report job: %w", err)
		}
		if s.auditor != nil {
			s.auditor.Record(ctx, "create", job.ID, userID, map[string]any{
				"reportType": typ,
				"period":     period,
				"format":     format,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// The request context ends when the response is written; the
		// generation task outlives it.
		s.processGeneration(context.Background(), job, rng)
	}()

	return job, nil
}

// processGeneration drives one job from pending to a terminal state. Every
// failure, including panics in the aggregation or rendering code, ends in
// StatusFailed with the error's message; the job never remains stuck in
// generating once this method returns.
func (s *Service) processGeneration(ctx context.Context, job *Job, rng Range) {
	log := s.log.With("job_id", job.ID.String(), "report_type", job.Type)

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("report generation panic: %v", r)
			}
		}()

		if err := s.repo.SetGenerating(ctx, job.ID); err != nil {
			return fmt.Errorf("mark generating: %w", err)
		}

		data, err := s.agg.Build(ctx, job.UserID, job.Type, rng)
		if err != nil {
			return fmt.Errorf("Failed to generate report data: %w", err)
		}

		fileName, fileURL, err := s.artifacts.Render(job.Type, rng, data.Summary)
		if err != nil {
			return err
		}

		// The file is fully written before the row turns completed, so a
		// completed job never references a partial artifact.
		if err := s.repo.MarkCompleted(ctx, job.ID, data, s.now(), fileName, fileURL); err != nil {
			return fmt.Errorf("mark completed: %w", err)
		}

		log.Infow("report generated", "file", fileName)
		if s.auditor != nil {
			s.auditor.Record(ctx, "complete", job.ID, job.UserID, map[string]any{"fileName": fileName})
		}
		return nil
	}()

	if err != nil {
		log.Errorw("report generation failed", "error", err)
		if mfErr := s.repo.MarkFailed(ctx, job.ID, err.Error()); mfErr != nil {
			log.Errorw("mark failed", "error", mfErr)
		}
		if s.auditor != nil {
			s.auditor.Record(ctx, "fail", job.ID, job.UserID, map[string]any{"error": err.Error()})
		}
	}
}

// Wait blocks until all in-flight generation tasks finish. Used by graceful
// shutdown and tests; new jobs created while waiting are also drained.
func (s *Service) Wait() {
	s.wg.Wait()
}

// GetByID fetches one job scoped to the owner.
func (s *Service) GetByID(ctx context.Context, jobID id.ID, userID string) (*Job, error) {
	return s.repo.GetByID(ctx, jobID, userID)
}

// List returns one page of the owner's jobs, newest first.
func (s *Service) List(ctx context.Context, userID string, page, limit int) (*ListResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	jobs, total, err := s.repo.List(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return &ListResult{Jobs: jobs, Total: total, Page: page, Limit: limit, TotalPages: totalPages}, nil
}

// Delete removes the job row if owned by userID. The artifact file is left
// on disk (observed behavior of the system this replaces).
func (s *Service) Delete(ctx context.Context, jobID id.ID, userID string) error {
	deleted, err := s.repo.Delete(ctx, jobID, userID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("Report")
	}
	if s.auditor != nil {
		s.auditor.Record(ctx, "delete", jobID, userID, nil)
	}
	return nil
}

// Stats returns the count of the owner's jobs grouped by status.
func (s *Service) Stats(ctx context.Context, userID string) (map[Status]int64, error) {
	return s.repo.CountByStatus(ctx, userID)
}

// ResolveDownload checks that the job is downloadable and returns it with
// the artifact's on-disk path. A job that is not completed yields a 400
// with the current status; a completed job whose file has vanished from
// disk yields a 404 distinct from "job not found".
func (s *Service) ResolveDownload(ctx context.Context, jobID id.ID, userID string) (*Job, string, error) {
	job, err := s.repo.GetByID(ctx, jobID, userID)
	if err != nil {
		return nil, "", err
	}
	if job.Status != StatusCompleted {
		return nil, "", apperror.NewReportNotReady(string(job.Status))
	}
	if job.FileName == "" {
		return nil, "", &apperror.AppError{
			Code: apperror.CodeNotFound, Message: "File not available", HTTPStatus: http.StatusNotFound,
		}
	}
	if !s.artifacts.Exists(job.FileName) {
		return nil, "", &apperror.AppError{
			Code: apperror.CodeNotFound, Message: "File not found on server", HTTPStatus: http.StatusNotFound,
		}
	}
	return job, s.artifacts.Path(job.FileName), nil
}
