package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
	"finledger/internal/domain/income"
	"finledger/pkg/logger"
)

// memRepo is an in-memory Repository that enforces the same one-directional
// status transitions as the SQL implementation.
type memRepo struct {
	mu    sync.Mutex
	jobs  map[id.ID]*Job
	order []id.ID
}

func newMemRepo() *memRepo {
	return &memRepo{jobs: map[id.ID]*Job{}}
}

func (r *memRepo) Create(ctx context.Context, job *Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.jobs[job.ID] = &cp
	r.order = append(r.order, job.ID)
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, jobID id.ID, userID string) (*Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return nil, apperror.NewNotFound("Report")
	}
	cp := *job
	return &cp, nil
}

func (r *memRepo) List(ctx context.Context, userID string, limit, offset int) ([]Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []Job
	// Newest first, mirroring ORDER BY created_at DESC.
	for i := len(r.order) - 1; i >= 0; i-- {
		if job := r.jobs[r.order[i]]; job != nil && job.UserID == userID {
			owned = append(owned, *job)
		}
	}

	total := int64(len(owned))
	if offset >= len(owned) {
		return []Job{}, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total, nil
}

func (r *memRepo) Delete(ctx context.Context, jobID id.ID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return false, nil
	}
	delete(r.jobs, jobID)
	return true, nil
}

func (r *memRepo) CountByStatus(ctx context.Context, userID string) (map[Status]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := map[Status]int64{}
	for _, job := range r.jobs {
		if job.UserID == userID {
			stats[job.Status]++
		}
	}
	return stats, nil
}

func (r *memRepo) SetGenerating(ctx context.Context, jobID id.ID) error {
	return r.transition(jobID, StatusPending, func(j *Job) {
		j.Status = StatusGenerating
	})
}

func (r *memRepo) MarkCompleted(ctx context.Context, jobID id.ID, data *Data, generatedAt time.Time, fileName, fileURL string) error {
	return r.transition(jobID, StatusGenerating, func(j *Job) {
		j.Status = StatusCompleted
		j.Data = data
		j.GeneratedAt = &generatedAt
		j.FileName = fileName
		j.FileURL = fileURL
	})
}

func (r *memRepo) MarkFailed(ctx context.Context, jobID id.ID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return apperror.NewNotFound("Report")
	}
	if job.Status.Terminal() {
		return apperror.NewConflict("report status transition rejected")
	}
	job.Status = StatusFailed
	job.ErrorMessage = message
	return nil
}

func (r *memRepo) transition(jobID id.ID, from Status, apply func(*Job)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return apperror.NewNotFound("Report")
	}
	if job.Status != from {
		return apperror.NewConflict("report status transition rejected")
	}
	apply(job)
	return nil
}

// failingIncomeSource makes every aggregation fail.
type failingIncomeSource struct{}

func (failingIncomeSource) ListByRange(ctx context.Context, userID string, start, end time.Time) ([]income.Income, error) {
	return nil, errors.New("storage unavailable")
}

// immediateTx satisfies tx.Manager without a database and counts invocations.
type immediateTx struct {
	mu    sync.Mutex
	calls int
}

func (t *immediateTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return fn(ctx)
}

// capturingAuditor collects recorded actions.
type capturingAuditor struct {
	mu      sync.Mutex
	actions []string
}

func (a *capturingAuditor) Record(ctx context.Context, action string, entityID id.ID, userID string, payload any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
}

func newTestService(t *testing.T, repo Repository, agg *Aggregator) *Service {
	t.Helper()
	return NewService(repo, agg, NewArtifactWriter(t.TempDir()), &immediateTx{}, nil, logger.Default())
}

func TestService_CreateValidation(t *testing.T) {
	svc := newTestService(t, newMemRepo(), newTestAggregator(&fakeSources{}))
	ctx := context.Background()

	t.Run("anonymous caller rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "", TypeIncomeStatement, PeriodCurrentMonth, FormatPDF, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Authentication required. Please login to generate reports.")
	})

	t.Run("unknown report type rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "u1", Type("Balance Sheet"), PeriodCurrentMonth, FormatPDF, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid report type")
	})

	t.Run("unknown period rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "u1", TypeIncomeStatement, Period("Fortnight"), FormatPDF, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid period")
	})

	t.Run("custom period needs both dates", func(t *testing.T) {
		_, err := svc.Create(ctx, "u1", TypeIncomeStatement, PeriodCustom, FormatPDF, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Custom period requires startDate and endDate")
	})

	t.Run("inverted custom period rejected before persisting", func(t *testing.T) {
		custom := &Range{StartDate: date(2025, time.March, 1), EndDate: date(2025, time.January, 1)}
		_, err := svc.Create(ctx, "u1", TypeIncomeStatement, PeriodCustom, FormatPDF, custom)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Start date must be before end date")
	})

	t.Run("format defaults to PDF", func(t *testing.T) {
		job, err := svc.Create(ctx, "u1", TypeIncomeStatement, PeriodCurrentMonth, "", nil)
		require.NoError(t, err)
		assert.Equal(t, FormatPDF, job.Format)
	})

	t.Run("custom range discarded for named periods", func(t *testing.T) {
		custom := &Range{StartDate: date(2025, time.January, 1), EndDate: date(2025, time.February, 1)}
		job, err := svc.Create(ctx, "u1", TypeIncomeStatement, PeriodCurrentMonth, FormatPDF, custom)
		require.NoError(t, err)
		assert.Nil(t, job.CustomPeriod)
	})

	svc.Wait()
}

type createFailRepo struct {
	*memRepo
}

func (r *createFailRepo) Create(ctx context.Context, job *Job) error {
	return errors.New("insert rejected")
}

func TestService_CreateWritesJobAndAuditTogether(t *testing.T) {
	ctx := context.Background()

	t.Run("insert and audit record share one transaction", func(t *testing.T) {
		txm := &immediateTx{}
		auditor := &capturingAuditor{}
		svc := NewService(newMemRepo(), newTestAggregator(&fakeSources{}),
			NewArtifactWriter(t.TempDir()), txm, auditor, logger.Default())

		_, err := svc.Create(ctx, "u1", TypeIncomeStatement, PeriodCurrentMonth, FormatPDF, nil)
		require.NoError(t, err)
		svc.Wait()

		assert.Equal(t, 1, txm.calls)
		assert.Contains(t, auditor.actions, "create")
	})

	t.Run("rejected insert leaves no audit record", func(t *testing.T) {
		txm := &immediateTx{}
		auditor := &capturingAuditor{}
		svc := NewService(&createFailRepo{memRepo: newMemRepo()}, newTestAggregator(&fakeSources{}),
			NewArtifactWriter(t.TempDir()), txm, auditor, logger.Default())

		_, err := svc.Create(ctx, "u1", TypeIncomeStatement, PeriodCurrentMonth, FormatPDF, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert rejected")
		assert.Equal(t, 1, txm.calls)
		assert.Empty(t, auditor.actions)
		svc.Wait()
	})
}

func TestService_GenerationCompletes(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo, newTestAggregator(&fakeSources{
		incomes:  incomesOf("1000"),
		expenses: expensesOf("400"),
	}))
	ctx := context.Background()

	job, err := svc.Create(ctx, "u1", TypeIncomeStatement, PeriodCurrentMonth, FormatPDF, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, job.Status)
	assert.False(t, id.IsNil(job.ID))

	svc.Wait()

	done, err := svc.GetByID(ctx, job.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)
	require.NotNil(t, done.Data)
	assertMoney(t, "600", done.Data.Summary["netIncome"])
	require.NotNil(t, done.GeneratedAt)
	assert.NotEmpty(t, done.FileName)
	assert.Equal(t, "/reports/"+done.FileName, done.FileURL)
	assert.Empty(t, done.ErrorMessage)
}

func TestService_GenerationFailureMarksFailed(t *testing.T) {
	repo := newMemRepo()
	f := &fakeSources{}
	agg := NewAggregator(failingIncomeSource{}, fakeExpenseSource{f}, fakeBudgetSource{f})
	svc := newTestService(t, repo, agg)
	ctx := context.Background()

	job, err := svc.Create(ctx, "u1", TypeIncomeStatement, PeriodCurrentMonth, FormatPDF, nil)
	require.NoError(t, err)

	svc.Wait()

	failed, err := svc.GetByID(ctx, job.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Contains(t, failed.ErrorMessage, "Failed to generate report data")
	assert.Empty(t, failed.FileName)
	assert.Nil(t, failed.Data)
}

func TestService_OwnershipScoping(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo, newTestAggregator(&fakeSources{}))
	ctx := context.Background()

	job, err := svc.Create(ctx, "owner", TypeExpenseReport, PeriodCurrentMonth, FormatPDF, nil)
	require.NoError(t, err)
	svc.Wait()

	// A foreign owner and a random id fail identically.
	_, errForeign := svc.GetByID(ctx, job.ID, "intruder")
	_, errMissing := svc.GetByID(ctx, id.New(), "owner")
	require.Error(t, errForeign)
	require.Error(t, errMissing)
	assert.Equal(t, errMissing.Error(), errForeign.Error())

	err = svc.Delete(ctx, job.ID, "intruder")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	// Still there for the owner.
	_, err = svc.GetByID(ctx, job.ID, "owner")
	require.NoError(t, err)
}

func TestService_ListPagination(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo, newTestAggregator(&fakeSources{}))
	ctx := context.Background()

	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		require.NoError(t, repo.Create(ctx, &Job{
			ID:        id.New(),
			UserID:    "u1",
			Type:      TypeExpenseReport,
			Period:    PeriodCurrentMonth,
			Format:    FormatPDF,
			Status:    StatusCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page1, err := svc.List(ctx, "u1", 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.Jobs, 10)
	assert.Equal(t, int64(15), page1.Total)
	assert.Equal(t, 2, page1.TotalPages)

	page2, err := svc.List(ctx, "u1", 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2.Jobs, 5)
	assert.Equal(t, 2, page2.Page)

	// Newest first across the page boundary.
	assert.True(t, page1.Jobs[0].CreatedAt.After(page2.Jobs[0].CreatedAt))

	// Out-of-range values fall back to defaults.
	fallback, err := svc.List(ctx, "u1", 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.Page)
	assert.Equal(t, 10, fallback.Limit)

	capped, err := svc.List(ctx, "u1", 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 10, capped.Limit)
}

func TestService_Stats(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo, newTestAggregator(&fakeSources{}))
	ctx := context.Background()

	for i, status := range []Status{StatusCompleted, StatusCompleted, StatusFailed, StatusPending} {
		require.NoError(t, repo.Create(ctx, &Job{
			ID:        id.New(),
			UserID:    "u1",
			Status:    status,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	stats, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats[StatusCompleted])
	assert.Equal(t, int64(1), stats[StatusFailed])
	assert.Equal(t, int64(1), stats[StatusPending])
	assert.Equal(t, int64(0), stats[StatusGenerating])
}

func TestService_ResolveDownload(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo, newTestAggregator(&fakeSources{
		incomes: incomesOf("100"),
	}))
	ctx := context.Background()

	t.Run("not yet completed", func(t *testing.T) {
		job := &Job{ID: id.New(), UserID: "u1", Status: StatusPending, CreatedAt: time.Now()}
		require.NoError(t, repo.Create(ctx, job))

		_, _, err := svc.ResolveDownload(ctx, job.ID, "u1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Report is pending. Cannot download yet.")
	})

	t.Run("completed without artifact reference", func(t *testing.T) {
		job := &Job{ID: id.New(), UserID: "u1", Status: StatusCompleted, CreatedAt: time.Now()}
		require.NoError(t, repo.Create(ctx, job))

		_, _, err := svc.ResolveDownload(ctx, job.ID, "u1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "File not available")
	})

	t.Run("artifact vanished from disk", func(t *testing.T) {
		job := &Job{ID: id.New(), UserID: "u1", Status: StatusCompleted, FileName: "gone.pdf", CreatedAt: time.Now()}
		require.NoError(t, repo.Create(ctx, job))

		_, _, err := svc.ResolveDownload(ctx, job.ID, "u1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "File not found on server")
	})

	t.Run("completed job downloads", func(t *testing.T) {
		created, err := svc.Create(ctx, "u1", TypeIncomeStatement, PeriodCurrentMonth, FormatPDF, nil)
		require.NoError(t, err)
		svc.Wait()

		job, path, err := svc.ResolveDownload(ctx, created.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, job.Status)
		assert.Contains(t, path, job.FileName)
	})
}

func TestService_DeleteIsIdempotentlyNotFound(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo, newTestAggregator(&fakeSources{}))
	ctx := context.Background()

	job, err := svc.Create(ctx, "u1", TypeExpenseReport, PeriodCurrentMonth, FormatPDF, nil)
	require.NoError(t, err)
	svc.Wait()

	require.NoError(t, svc.Delete(ctx, job.ID, "u1"))

	err = svc.Delete(ctx, job.ID, "u1")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
