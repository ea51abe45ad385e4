package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the funding rail chosen by the investor.
type PaymentMethod string

const (
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodNetBanking PaymentMethod = "NETBANKING"
)

// VerificationStatus tracks the OTP-gated authorization axis of a Payment.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
)

// PaymentStatus is the lifecycle state of a Payment aggregate.
type PaymentStatus string

const (
	PaymentStatusPending      PaymentStatus = "PENDING"
	PaymentStatusActive       PaymentStatus = "ACTIVE"
	PaymentStatusCompleted    PaymentStatus = "COMPLETED"
	PaymentStatusFailed       PaymentStatus = "FAILED"
	PaymentStatusNotAvailable PaymentStatus = "NOT_AVAILABLE"
)

// Payment is the aggregate root for one funding transaction covering one or
// more Orders. Orders may only be submitted to the provider once
// VerificationStatus is VERIFIED, and the provider order reference is set at
// most once; it is the idempotency anchor for re-invoked submissions.
type Payment struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             int64              `json:"user_id"`
	ChildID            int64              `json:"child_id"`
	InvestorRef        string             `json:"investor_ref"` // provider-side investor identity
	Method             PaymentMethod      `json:"method"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	Status             PaymentStatus      `json:"status"`
	ProviderOtpRef     *string            `json:"-"` // authorization reference from SendOtp
	ProviderPaymentRef *string            `json:"provider_payment_ref,omitempty"`
	ProviderOrderRef   *string            `json:"provider_order_ref,omitempty"`
	MandateRef         *string            `json:"mandate_ref,omitempty"`
	MandateURL         *string            `json:"mandate_url,omitempty"`
	PaymentURL         *string            `json:"payment_url,omitempty"`
	Version            int64              `json:"-"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// IsTerminal returns true once the Payment reached a final state.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusFailed
}

// IsVerified reports whether the OTP gate has been passed.
func (p *Payment) IsVerified() bool {
	return p.VerificationStatus == VerificationVerified
}
