package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnitScale converts fractional fund units to the int64 micro-unit ledger
// representation (10.5 units = 10_500_000).
const UnitScale = 1_000_000

// SettlementRecord is an immutable ledger row written when the provider
// reports terminal success for a submitted order. Units are signed: buys
// contribute positive, sells negative. ProviderOrderRef is unique and is the
// idempotency anchor for duplicate reconciliation runs.
type SettlementRecord struct {
	ID               uuid.UUID `json:"id"`
	UserID           int64     `json:"user_id"`
	GoalID           int64     `json:"goal_id"`
	FundID           string    `json:"fund_id"`
	ProviderOrderRef string    `json:"provider_order_ref"`
	Units            int64     `json:"units"` // micro-units, signed
	NAV              int64     `json:"nav"`   // micro-rupees per unit
	Amount           int64     `json:"amount"`
	SettledAt        time.Time `json:"settled_at"`
}

// Folio is a settlement/holding account at the provider for one (user, fund)
// pair. Exactly one folio is auto-selected per fund on the sell path.
type Folio struct {
	ID          uuid.UUID `json:"id"`
	UserID      int64     `json:"user_id"`
	FundID      string    `json:"fund_id"`
	FolioNumber string    `json:"folio_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// Goal is an investment goal holding a basket allocation. Only DRAFT goals are
// eligible when a new Payment is assembled.
type Goal struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	ChildID     int64        `json:"child_id"`
	Status      string       `json:"status"` // DRAFT, ACTIVE, CLOSED
	SIPTotal    int64        `json:"sip_total"`
	BasketFunds []BasketFund `json:"basket_funds"`
}

// GoalStatusDraft marks goals still accepting new orders.
const GoalStatusDraft = "DRAFT"

// BasketFund is one constituent of a goal's basket with its percentage
// allocation.
type BasketFund struct {
	FundID   string `json:"fund_id"`
	Percent  int64  `json:"percent"` // whole percent, sums to 100 per basket
	BankRef  string `json:"bank_ref"`
	FundName string `json:"fund_name"`
}

// Beneficiary is the child/minor an investment is made for, together with the
// provider-side investor identity and masked contact destinations.
type Beneficiary struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	InvestorRef string  `json:"investor_ref"`
	BankRef     string  `json:"bank_ref"`
	Phone       *string `json:"-"`
	Name        string  `json:"name"`
}

// BankVerificationStatus tracks the reverse-penny-drop confirmation.
type BankVerificationStatus string

const (
	BankVerifyPending  BankVerificationStatus = "PENDING"
	BankVerifyVerified BankVerificationStatus = "VERIFIED"
	BankVerifyRejected BankVerificationStatus = "REJECTED"
)

// BankVerification is one reverse-penny-drop cycle confirming an investor's
// remitting account. Processing is idempotent on ReferenceID/TransactionID.
type BankVerification struct {
	ReferenceID     string                 `json:"reference_id"`
	UserID          int64                  `json:"user_id"`
	Status          BankVerificationStatus `json:"status"`
	TransactionID   *string                `json:"transaction_id,omitempty"`
	UTR             *string                `json:"utr,omitempty"`
	RemitterAccount *string                `json:"remitter_account,omitempty"`
	RemitterIFSC    *string                `json:"remitter_ifsc,omitempty"`
	Amount          int64                  `json:"amount"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
