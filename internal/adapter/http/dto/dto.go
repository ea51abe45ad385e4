package dto

// OrderSpecRequest is one order line inside a payment creation request.
type OrderSpecRequest struct {
	GoalID          int64  `json:"goal_id" binding:"required,gt=0"`
	Kind            string `json:"kind" binding:"required,oneof=BUY SIP"`
	Amount          int64  `json:"amount" binding:"required,gt=0"`
	RecurringAmount int64  `json:"recurring_amount,omitempty" binding:"gte=0"`
	StartDate       string `json:"start_date,omitempty"` // YYYY-MM-DD, SIP only
}

// CreatePaymentRequest is the request body for payment creation.
type CreatePaymentRequest struct {
	ChildID int64              `json:"child_id" binding:"required,gt=0"`
	Method  string             `json:"method" binding:"required,oneof=UPI NETBANKING"`
	Orders  []OrderSpecRequest `json:"orders" binding:"required,min=1,dive"`
}

// VerifyPaymentRequest is the request body for the OTP verification step.
type VerifyPaymentRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// PaymentResponse is the response body for payment operations.
type PaymentResponse struct {
	ID                 string  `json:"id"`
	ChildID            int64   `json:"child_id"`
	Method             string  `json:"method"`
	VerificationStatus string  `json:"verification_status"`
	Status             string  `json:"status"`
	MandateURL         *string `json:"mandate_url,omitempty"`
	PaymentURL         *string `json:"payment_url,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// StartMfaSessionRequest is the request body for starting an MFA challenge.
type StartMfaSessionRequest struct {
	Action  string `json:"action" binding:"required,oneof=MF_SELL MF_BUY"`
	Channel string `json:"channel" binding:"required,oneof=SMS WHATSAPP TOTP"`
}

// StartMfaSessionResponse is the response body for a started challenge.
type StartMfaSessionResponse struct {
	SessionID         string `json:"session_id"`
	MaskedDestination string `json:"masked_destination"`
	ExpiresAt         string `json:"expires_at"`
}

// VerifyMfaSessionRequest is the request body for answering a challenge.
type VerifyMfaSessionRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// VerifyMfaSessionResponse carries the minted action token.
type VerifyMfaSessionResponse struct {
	Token string `json:"token"`
}

// SellLineRequest is one redemption line. Exactly one of units or amount
// drives the line; the cross-field rule is enforced in the handler.
type SellLineRequest struct {
	GoalID int64  `json:"goal_id" binding:"required,gt=0"`
	FundID string `json:"fund_id" binding:"required,safe_id"`
	Units  int64  `json:"units,omitempty" binding:"gte=0"`
	Amount int64  `json:"amount,omitempty" binding:"gte=0"`
}

// SellOrderRequest is the request body for placing a redemption order.
type SellOrderRequest struct {
	Reason string            `json:"reason" binding:"required,max=200"`
	Lines  []SellLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderResponse is the response body for order results.
type OrderResponse struct {
	ID        string `json:"id"`
	GoalID    int64  `json:"goal_id"`
	Kind      string `json:"kind"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// BankVerificationWebhook is the inbound reverse-penny-drop payload.
type BankVerificationWebhook struct {
	ReferenceID     string `json:"referenceId"`
	TransactionID   string `json:"transactionId"`
	TrxStatus       string `json:"trxStatus"`
	Amount          int64  `json:"amount"`
	RemitterAccount string `json:"remitterAccount"`
	RemitterIFSC    string `json:"remitterIfsc"`
	UTR             string `json:"utr"`
}

// PaymentCallbackWebhook is the provider settlement callback payload.
type PaymentCallbackWebhook struct {
	PaymentRef string `json:"payment_ref" binding:"required"`
	Status     string `json:"status" binding:"required"`
}
