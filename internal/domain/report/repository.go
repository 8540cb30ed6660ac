package report

import (
	"context"
	"time"

	"finledger/internal/core/id"
)

// Repository defines report job persistence. All read and delete operations
// are scoped by both job id and owner: a job owned by a different user is
// indistinguishable from a nonexistent one.
type Repository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, jobID id.ID, userID string) (*Job, error)
	// List returns the owner's jobs sorted by creation time descending.
	List(ctx context.Context, userID string, limit, offset int) ([]Job, int64, error)
	// Delete removes the row and reports success by row count. The on-disk
	// artifact is intentionally left behind.
	Delete(ctx context.Context, jobID id.ID, userID string) (bool, error)
	// CountByStatus groups the owner's jobs by status.
	CountByStatus(ctx context.Context, userID string) (map[Status]int64, error)

	// Status transitions used by the generation task. Each update is guarded
	// by the expected current status so transitions stay one-directional.
	SetGenerating(ctx context.Context, jobID id.ID) error
	MarkCompleted(ctx context.Context, jobID id.ID, data *Data, generatedAt time.Time, fileName, fileURL string) error
	MarkFailed(ctx context.Context, jobID id.ID, message string) error
}
