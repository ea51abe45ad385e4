package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fund-order-platform/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// JobRepo implements ports.JobRepository, the durable store behind the
// fulfillment scheduler.
type JobRepo struct {
	pool Pool
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(pool Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

const jobColumns = `id, order_id, provider_ref, kind, interval_ms, run_after, status, poll_count, max_polls,
	created_at, updated_at`

// Upsert inserts the job row or replaces an existing one under the same
// deterministic ID, resetting status and the poll counter.
func (r *JobRepo) Upsert(ctx context.Context, j *domain.ReconciliationJob) error {
	query := `INSERT INTO reconciliation_jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			order_id = EXCLUDED.order_id,
			provider_ref = EXCLUDED.provider_ref,
			kind = EXCLUDED.kind,
			interval_ms = EXCLUDED.interval_ms,
			run_after = EXCLUDED.run_after,
			status = EXCLUDED.status,
			poll_count = EXCLUDED.poll_count,
			max_polls = EXCLUDED.max_polls,
			updated_at = EXCLUDED.updated_at`

	now := time.Now()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		j.ID, j.OrderID, j.ProviderRef, j.Kind, j.Interval.Milliseconds(), j.RunAfter,
		j.Status, j.PollCount, j.MaxPolls, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert reconciliation job: %w", err)
	}
	return nil
}

// Get fetches one job row.
func (r *JobRepo) Get(ctx context.Context, id string) (*domain.ReconciliationJob, error) {
	query := `SELECT ` + jobColumns + ` FROM reconciliation_jobs WHERE id = $1`
	return scanJob(r.pool.QueryRow(ctx, query, id))
}

// IncrementPoll bumps the poll counter and returns the new value.
func (r *JobRepo) IncrementPoll(ctx context.Context, id string) (int, error) {
	query := `UPDATE reconciliation_jobs SET poll_count = poll_count + 1, updated_at = $1
		WHERE id = $2 RETURNING poll_count`

	var count int
	err := r.pool.QueryRow(ctx, query, time.Now(), id).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("reconciliation job not found: %s", id)
		}
		return 0, fmt.Errorf("increment poll count: %w", err)
	}
	return count, nil
}

// MarkDone flips the job row to DONE. Idempotent.
func (r *JobRepo) MarkDone(ctx context.Context, id string) error {
	query := `UPDATE reconciliation_jobs SET status = $1, updated_at = $2 WHERE id = $3`

	if _, err := r.pool.Exec(ctx, query, domain.JobStatusDone, time.Now(), id); err != nil {
		return fmt.Errorf("mark job done: %w", err)
	}
	return nil
}

// ListActive fetches every job the scheduler must restore after a restart.
func (r *JobRepo) ListActive(ctx context.Context) ([]domain.ReconciliationJob, error) {
	query := `SELECT ` + jobColumns + ` FROM reconciliation_jobs WHERE status = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, domain.JobStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.ReconciliationJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job rows: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*domain.ReconciliationJob, error) {
	j := &domain.ReconciliationJob{}
	var intervalMs int64
	err := row.Scan(
		&j.ID, &j.OrderID, &j.ProviderRef, &j.Kind, &intervalMs, &j.RunAfter,
		&j.Status, &j.PollCount, &j.MaxPolls, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan reconciliation job: %w", err)
	}
	j.Interval = time.Duration(intervalMs) * time.Millisecond
	return j, nil
}
