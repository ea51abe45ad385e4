package ports

import (
	"context"
	"time"

	"fund-order-platform/internal/core/domain"

	"github.com/google/uuid"
)

// OtpChallenger generates, hashes and verifies one-time codes. All three
// operations are pure functions over their input.
type OtpChallenger interface {
	Generate() (string, error)
	Hash(code string) (string, error)
	Verify(code string, digest string) (bool, error)
}

// OtpSender dispatches a one-time code through a delivery channel.
type OtpSender interface {
	Send(ctx context.Context, channel domain.MfaChannel, destination string, code string) error
}

// RequestContext carries audit fields from the HTTP layer.
type RequestContext struct {
	ClientIP  string
	UserAgent string
}

// StartSessionResult is returned from MfaService.StartSession.
type StartSessionResult struct {
	SessionID         uuid.UUID
	MaskedDestination string
	ExpiresAt         time.Time
}

// MfaService manages challenge/response sessions gating sensitive actions.
type MfaService interface {
	StartSession(ctx context.Context, userID int64, action string, channel domain.MfaChannel, reqCtx RequestContext) (*StartSessionResult, error)
	VerifySession(ctx context.Context, userID int64, sessionID uuid.UUID, code string, reqCtx RequestContext) (string, error)
	// ValidateToken is a pure read-side guard: it never mutates the session.
	ValidateToken(ctx context.Context, token string, requiredAction string) error
}

// SellLine is one requested redemption line. Either Units or Amount is set;
// amount-based lines are converted through the fund's current NAV.
type SellLine struct {
	GoalID int64
	FundID string
	Units  int64 // micro-units; 0 when Amount drives the line
	Amount int64 // minor currency units; 0 when Units drives the line
}

// ValidatedSellLine is a sell line with its auto-selected folio resolved.
type ValidatedSellLine struct {
	SellLine
	FolioNumber string
	Units       int64 // resolved micro-units after NAV conversion
}

// HoldingsService checks redemption requests against the net holdings ledger.
type HoldingsService interface {
	AvailableUnits(ctx context.Context, userID, goalID int64, fundID string) (int64, error)
	ValidateSellRequest(ctx context.Context, userID int64, lines []SellLine) ([]ValidatedSellLine, error)
}

// OrderSpec describes one order inside a payment creation request.
type OrderSpec struct {
	GoalID          int64
	Kind            domain.OrderKind
	Amount          int64
	RecurringAmount int64     // SIP only
	StartDate       time.Time // SIP only
}

// CreatePaymentRequest is the validated input for payment creation.
type CreatePaymentRequest struct {
	UserID  int64
	ChildID int64
	Method  domain.PaymentMethod
	Orders  []OrderSpec
}

// PaymentService owns the Payment/Order lifecycle from creation through
// terminal settlement callbacks.
type PaymentService interface {
	CreatePaymentWithOrders(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error)
	Verify(ctx context.Context, paymentID uuid.UUID, code string) (*domain.Payment, error)
	Initiate(ctx context.Context, paymentID uuid.UUID, clientIP string) (*domain.Payment, error)
	MarkSuccess(ctx context.Context, providerPaymentRef string) error
	MarkFailure(ctx context.Context, providerPaymentRef string) error
}

// SellOrderRequest is the validated input for a standalone sell order.
type SellOrderRequest struct {
	UserID   int64
	MfaToken string
	Reason   string
	Lines    []SellLine
	ClientIP string
}

// SellService places MFA-gated redemption orders.
type SellService interface {
	PlaceSellOrder(ctx context.Context, req SellOrderRequest) ([]domain.Order, error)
}

// SipService submits recurring orders once their mandate is authorized.
// RefreshMandateURL re-issues the mandate confirmation URL for investors who
// returned from the bank flow without completing authorization.
type SipService interface {
	SubmitSipOrders(ctx context.Context, paymentID uuid.UUID) error
	RefreshMandateURL(ctx context.Context, paymentID uuid.UUID) (string, error)
}

// Reconciler is the body of a scheduled status poll. It returns
// (done, err): done=true signals the scheduler to stop rescheduling.
type Reconciler interface {
	Reconcile(ctx context.Context, jobID string, providerRef string) (bool, error)
}

// FulfillmentScheduler registers reconciliation jobs keyed by deterministic
// identities; registering an existing ID replaces the job. RegisterBatch
// logs and skips individual failures so one bad job never blocks siblings.
type FulfillmentScheduler interface {
	Register(ctx context.Context, job domain.ReconciliationJob) error
	RegisterBatch(ctx context.Context, jobs []domain.ReconciliationJob)
	Cancel(ctx context.Context, jobID string) error
}

// BankVerificationEvent is the inbound reverse-penny-drop webhook payload.
type BankVerificationEvent struct {
	ReferenceID     string
	TransactionID   string
	TrxStatus       string
	Amount          int64
	RemitterAccount string
	RemitterIFSC    string
	UTR             string
}

// VerificationService processes bank-verification webhooks idempotently.
type VerificationService interface {
	HandleBankVerification(ctx context.Context, event BankVerificationEvent) error
}

// TokenService handles investor JWT operations for the API surface.
type TokenService interface {
	Generate(userID int64) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID int64
}
