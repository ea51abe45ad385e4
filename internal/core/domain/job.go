package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReconciliationJobKind distinguishes the two job shapes.
type ReconciliationJobKind string

const (
	JobKindRecurring ReconciliationJobKind = "RECURRING"
	JobKindOneShot   ReconciliationJobKind = "ONE_SHOT"
)

// ReconciliationJobStatus is the durable job row state.
type ReconciliationJobStatus string

const (
	JobStatusActive ReconciliationJobStatus = "ACTIVE"
	JobStatusDone   ReconciliationJobStatus = "DONE"
)

// ReconciliationJob is the durable record behind a scheduled status poll. The
// ID is derived deterministically from the provider reference, so registering
// the same reference twice replaces rather than duplicates the job.
type ReconciliationJob struct {
	ID          string                  `json:"id"`
	OrderID     uuid.UUID               `json:"order_id"`
	ProviderRef string                  `json:"provider_ref"`
	Kind        ReconciliationJobKind   `json:"kind"`
	Interval    time.Duration           `json:"interval"` // recurring cadence or one-shot delay
	RunAfter    time.Time               `json:"run_after"`
	Status      ReconciliationJobStatus `json:"status"`
	PollCount   int                     `json:"poll_count"`
	MaxPolls    int                     `json:"max_polls"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// ReconciliationJobID builds the deterministic job identity for a provider
// reference.
func ReconciliationJobID(providerRef string) string {
	return "recon:" + providerRef
}

// PollBudgetExhausted reports whether the bounded-retry policy forces the
// order to FAILED instead of polling forever.
func (j *ReconciliationJob) PollBudgetExhausted() bool {
	return j.MaxPolls > 0 && j.PollCount >= j.MaxPolls
}
