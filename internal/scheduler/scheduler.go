package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// jobRunTimeout bounds one reconciliation run so a stuck provider call can
// never pin a worker indefinitely.
const jobRunTimeout = 2 * time.Minute

// GocronScheduler implements ports.FulfillmentScheduler on top of gocron with
// a durable job table. Job identities are deterministic, so registering the
// same provider reference twice replaces the in-memory job instead of
// duplicating it; the durable row is upserted alongside.
type GocronScheduler struct {
	engine     gocron.Scheduler
	jobs       ports.JobRepository
	reconciler ports.Reconciler
	log        zerolog.Logger

	mu         sync.Mutex
	registered map[string]uuid.UUID // job ID -> gocron job handle
}

// New creates a GocronScheduler with a bounded worker pool.
func New(jobs ports.JobRepository, reconciler ports.Reconciler, maxConcurrent int, log zerolog.Logger) (*GocronScheduler, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	engine, err := gocron.NewScheduler(
		gocron.WithLimitConcurrentJobs(uint(maxConcurrent), gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}
	return &GocronScheduler{
		engine:     engine,
		jobs:       jobs,
		reconciler: reconciler,
		log:        log,
		registered: make(map[string]uuid.UUID),
	}, nil
}

// Start begins executing scheduled jobs on background workers.
func (s *GocronScheduler) Start() {
	s.engine.Start()
}

// Shutdown stops the engine, waiting for running jobs to finish.
func (s *GocronScheduler) Shutdown() error {
	return s.engine.Shutdown()
}

// Restore re-registers every ACTIVE durable job after a restart.
func (s *GocronScheduler) Restore(ctx context.Context) error {
	active, err := s.jobs.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("listing active jobs: %w", err)
	}
	for _, job := range active {
		if err := s.Register(ctx, job); err != nil {
			s.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to restore reconciliation job")
		}
	}
	s.log.Info().Int("count", len(active)).Msg("reconciliation jobs restored")
	return nil
}

// Register persists the durable row and (re)schedules the in-memory job.
func (s *GocronScheduler) Register(ctx context.Context, job domain.ReconciliationJob) error {
	if err := s.jobs.Upsert(ctx, &job); err != nil {
		return fmt.Errorf("upsert job row: %w", err)
	}

	var definition gocron.JobDefinition
	switch job.Kind {
	case domain.JobKindOneShot:
		runAt := job.RunAfter
		if runAt.Before(time.Now()) {
			runAt = time.Now().Add(time.Second)
		}
		definition = gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(runAt))
	default:
		definition = gocron.DurationJob(job.Interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.registered[job.ID]; ok {
		if err := s.engine.RemoveJob(existing); err != nil {
			s.log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to remove job before replace")
		}
		delete(s.registered, job.ID)
	}

	handle, err := s.engine.NewJob(
		definition,
		gocron.NewTask(s.run, job.ID, job.ProviderRef),
		gocron.WithName(job.ID),
	)
	if err != nil {
		return fmt.Errorf("schedule job %s: %w", job.ID, err)
	}
	s.registered[job.ID] = handle.ID()

	s.log.Debug().
		Str("job_id", job.ID).
		Str("kind", string(job.Kind)).
		Dur("interval", job.Interval).
		Msg("reconciliation job registered")
	return nil
}

// RegisterBatch registers jobs one by one. A failed registration is logged
// and skipped so it never blocks sibling jobs or the triggering operation.
func (s *GocronScheduler) RegisterBatch(ctx context.Context, jobs []domain.ReconciliationJob) {
	for _, job := range jobs {
		if err := s.Register(ctx, job); err != nil {
			s.log.Error().Err(err).Str("job_id", job.ID).Msg("reconciliation job registration failed")
		}
	}
}

// Cancel removes the in-memory job and marks the durable row done.
func (s *GocronScheduler) Cancel(ctx context.Context, jobID string) error {
	s.removeHandle(jobID)
	if err := s.jobs.MarkDone(ctx, jobID); err != nil {
		return fmt.Errorf("mark job done: %w", err)
	}
	return nil
}

// run is the task body executed by gocron workers. The reconciler self-detects
// terminal states; when it reports done the job stops rescheduling. A cycle
// that errored keeps its schedule even if the reconciler claimed done: the
// terminal write may have rolled back, and only the next cycle can repair it.
func (s *GocronScheduler) run(jobID string, providerRef string) {
	ctx, cancel := context.WithTimeout(context.Background(), jobRunTimeout)
	defer cancel()

	done, err := s.reconciler.Reconcile(ctx, jobID, providerRef)
	if err != nil {
		s.log.Warn().Err(err).
			Str("job_id", jobID).
			Str("provider_ref", providerRef).
			Msg("reconciliation cycle failed, will retry next cycle")
		return
	}
	if done {
		s.removeHandle(jobID)
	}
}

func (s *GocronScheduler) removeHandle(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if handle, ok := s.registered[jobID]; ok {
		if err := s.engine.RemoveJob(handle); err != nil {
			s.log.Warn().Err(err).Str("job_id", jobID).Msg("failed to remove finished job")
		}
		delete(s.registered, jobID)
	}
}
