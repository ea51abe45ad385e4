package ports

import (
	"context"
	"time"
)

// OtpScope narrows a provider OTP to the funds a payment touches.
type OtpScope struct {
	InvestorRef string
	FundIDs     []string
}

// MandateRequest asks the provider for a standing auto-debit authorization.
type MandateRequest struct {
	InvestorRef string
	BankRef     string
	MandateType string
	AuthLimit   int64
}

// MandateResult carries the provider mandate reference and the URL the
// investor must visit to confirm it.
type MandateResult struct {
	MandateRef  string
	RedirectURL string
}

// ProviderOrderDetail is one fund line of a bulk order submission.
type ProviderOrderDetail struct {
	FundID      string
	FolioNumber string
	Amount      int64
}

// BulkOrderRequest submits all buy lines of a verified payment at once.
type BulkOrderRequest struct {
	InvestorRef string
	AuthRef     string // OTP reference obtained at payment creation
	InvestorIP  string
	Orders      []ProviderOrderDetail
}

// BulkOrderResult carries the provider's bulk order identity.
type BulkOrderResult struct {
	BulkOrderRef string
	ItemRefs     map[string]string // fund ID -> per-item provider order ref
}

// PaymentInitRequest asks the provider to start the bank transfer / UPI leg.
type PaymentInitRequest struct {
	BankRef     string
	Method      string
	OrderRefs   []string
	Amount      int64
	CallbackURL string
}

// PaymentInitResult carries the provider payment identity and redirect URL.
type PaymentInitResult struct {
	PaymentRef  string
	RedirectURL string
}

// SipPlanDetail is one recurring plan line.
type SipPlanDetail struct {
	FundID          string
	FolioNumber     string
	RecurringAmount int64
	StartDate       time.Time
	MandateRef      string
}

// SipOrderItemResult is the per-item outcome of a SIP submission.
type SipOrderItemResult struct {
	FundID     string
	OrderRef   string
	PaymentRef string
}

// SellOrderDetail is one redemption line.
type SellOrderDetail struct {
	FundID      string
	FolioNumber string
	Units       int64 // micro-units
}

// SellOrderResult carries per-line provider references.
type SellOrderResult struct {
	ItemRefs map[string]string // fund ID -> provider order ref
}

// ProviderOrderStatus is the normalized status of a submitted order.
type ProviderOrderStatus string

const (
	ProviderStatusPending  ProviderOrderStatus = "PENDING"
	ProviderStatusAllotted ProviderOrderStatus = "ALLOTTED"
	ProviderStatusRejected ProviderOrderStatus = "REJECTED"
)

// OrderStatusResult is the provider's answer to a status poll. NAV and Units
// are populated only for ALLOTTED orders.
type OrderStatusResult struct {
	Status    ProviderOrderStatus
	NAV       int64 // micro-rupees per unit
	Units     int64 // micro-units
	Amount    int64
	SettledAt time.Time
}

// ProviderGateway abstracts the external fund-processing provider. Exact wire
// shapes are provider-specific; this is the orchestration contract only.
// Implementations must bound every call with a timeout and must never leak
// raw provider error bodies to callers.
type ProviderGateway interface {
	SendOtp(ctx context.Context, scope OtpScope) (string, error)
	VerifyOtp(ctx context.Context, otpRef string, code string) (bool, error)
	CreateMandate(ctx context.Context, req MandateRequest) (*MandateResult, error)
	AuthorizeMandate(ctx context.Context, mandateRef string) (*MandateResult, error)
	CreatePayment(ctx context.Context, req PaymentInitRequest) (*PaymentInitResult, error)
	PlaceBulkOrder(ctx context.Context, req BulkOrderRequest) (*BulkOrderResult, error)
	PlaceSipOrder(ctx context.Context, plans []SipPlanDetail) ([]SipOrderItemResult, error)
	PlaceSellOrder(ctx context.Context, investorRef string, details []SellOrderDetail) (*SellOrderResult, error)
	ConfirmOrder(ctx context.Context, orderRefs []string) error
	UpdateConsent(ctx context.Context, orderRef string, contact string, state string) error
	FetchStatus(ctx context.Context, orderRef string) (*OrderStatusResult, error)
}
