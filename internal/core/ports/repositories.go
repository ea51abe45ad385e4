package ports

import (
	"context"

	"fund-order-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentRepository defines persistence for the Payment aggregate.
// Methods accepting pgx.Tx run inside transaction blocks.
// Update applies optimistic locking on the version column and returns
// apperror.ErrVersionConflict when the row moved underneath the caller.
type PaymentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	GetByProviderPaymentRef(ctx context.Context, ref string) (*domain.Payment, error)
	Update(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error
}

// OrderRepository defines persistence for Orders.
type OrderRepository interface {
	Create(ctx context.Context, tx pgx.Tx, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]domain.Order, error)
	Update(ctx context.Context, tx pgx.Tx, order *domain.Order) error
}

// OrderItemRepository defines persistence for per-fund order lines.
// SetProviderRefs writes the provider references exactly once; a second call
// for the same item is a no-op reported via the returned bool.
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, tx pgx.Tx, items []domain.OrderItem) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error)
	GetByProviderRef(ctx context.Context, providerRef string) (*domain.OrderItem, error)
	SetProviderRefs(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, orderRef, paymentRef string) (bool, error)
	UpdateState(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, state domain.OrderItemState) error
}

// MfaSessionRepository defines persistence for MFA sessions and their
// append-only attempt trail.
type MfaSessionRepository interface {
	Create(ctx context.Context, session *domain.MfaSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MfaSession, error)
	Update(ctx context.Context, session *domain.MfaSession) error
	AppendAttempt(ctx context.Context, attempt *domain.MfaAttempt) error
}

// SettlementRepository defines persistence for the immutable settlement
// ledger. ExistsByProviderRef is the idempotency check before terminal writes.
type SettlementRepository interface {
	Create(ctx context.Context, tx pgx.Tx, record *domain.SettlementRecord) error
	ExistsByProviderRef(ctx context.Context, providerRef string) (bool, error)
	SumUnits(ctx context.Context, userID, goalID int64, fundID string) (int64, error)
}

// FolioRepository defines lookup of settlement accounts per fund.
type FolioRepository interface {
	ListByFund(ctx context.Context, fundID string) ([]domain.Folio, error)
}

// GoalRepository defines goal lookups and the running SIP total side effect.
type GoalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Goal, error)
	ListEligibleByChild(ctx context.Context, userID, childID int64) ([]domain.Goal, error)
	AddToSIPTotal(ctx context.Context, tx pgx.Tx, goalID int64, delta int64) error
}

// BeneficiaryRepository resolves the child/investor a payment is made for.
type BeneficiaryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Beneficiary, error)
}

// ContactRepository resolves a user's OTP destination for a channel.
// Returns "" with no error when the user has no destination on file.
type ContactRepository interface {
	GetDestination(ctx context.Context, userID int64, channel domain.MfaChannel) (string, error)
}

// BankVerificationRepository defines persistence for reverse-penny-drop
// confirmations.
type BankVerificationRepository interface {
	GetByReference(ctx context.Context, referenceID string) (*domain.BankVerification, error)
	Update(ctx context.Context, verification *domain.BankVerification) error
}

// JobRepository is the durable store behind the fulfillment scheduler.
// Upsert replaces an existing row with the same deterministic ID.
type JobRepository interface {
	Upsert(ctx context.Context, job *domain.ReconciliationJob) error
	Get(ctx context.Context, id string) (*domain.ReconciliationJob, error)
	IncrementPoll(ctx context.Context, id string) (int, error)
	MarkDone(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]domain.ReconciliationJob, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
