package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderKind discriminates the Order variants. Variant-specific fields live in
// the SIP/Sell payloads rather than in subtypes.
type OrderKind string

const (
	OrderKindBuy  OrderKind = "BUY"
	OrderKindSIP  OrderKind = "SIP"
	OrderKindSell OrderKind = "SELL"
)

// OrderStatus is the lifecycle state of an Order. Transitions are monotonic
// forward; terminal states are never left.
type OrderStatus string

const (
	OrderStatusNotPlaced OrderStatus = "NOT_PLACED"
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderRank encodes the forward-only ordering of states. Terminal states share
// the highest rank so no terminal-to-terminal hop is possible either.
var orderRank = map[OrderStatus]int{
	OrderStatusNotPlaced: 0,
	OrderStatusPlaced:    1,
	OrderStatusCompleted: 2,
	OrderStatusFailed:    2,
	OrderStatusCancelled: 2,
}

// Order is one logical investment instruction. BUY and SIP orders are owned by
// a Payment; SELL orders stand alone and carry their own MFA authorization.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	PaymentID *uuid.UUID  `json:"payment_id,omitempty"` // nil for SELL
	UserID    int64       `json:"user_id"`
	GoalID    int64       `json:"goal_id"`
	Kind      OrderKind   `json:"kind"`
	Amount    int64       `json:"amount"` // minor currency unit (paise)
	Status    OrderStatus `json:"status"`
	SIP       *SIPDetail  `json:"sip,omitempty"`
	Sell      *SellDetail `json:"sell,omitempty"`
	Version   int64       `json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SIPDetail carries the recurring-order payload.
type SIPDetail struct {
	StartDate       time.Time `json:"start_date"`
	NextRunAt       time.Time `json:"next_run_at"`
	RecurringAmount int64     `json:"recurring_amount"`
	MandateRef      *string   `json:"mandate_ref,omitempty"`
}

// SellDetail carries the redemption payload. FolioNumber is auto-selected
// during sell validation, never supplied by the client.
type SellDetail struct {
	Reason      string `json:"reason"`
	FolioNumber string `json:"folio_number"`
	Units       int64  `json:"units"` // micro-units, 1 unit = 1_000_000
}

// IsTerminal returns true for COMPLETED, FAILED and CANCELLED.
func (o *Order) IsTerminal() bool {
	return orderRank[o.Status] == 2
}

// CanTransition reports whether moving to the target status preserves the
// monotonic state machine.
func (o *Order) CanTransition(to OrderStatus) bool {
	from, ok := orderRank[o.Status]
	if !ok {
		return false
	}
	target, ok := orderRank[to]
	if !ok {
		return false
	}
	if o.IsTerminal() {
		return false
	}
	return target > from
}

// OrderItemState tracks the per-fund line item through submission and
// settlement.
type OrderItemState string

const (
	OrderItemPending   OrderItemState = "PENDING"
	OrderItemSubmitted OrderItemState = "SUBMITTED"
	OrderItemSettled   OrderItemState = "SETTLED"
	OrderItemFailed    OrderItemState = "FAILED"
)

// OrderItem is a per-fund line of an Order. The provider order reference is
// set exactly once, after submission, and keys all reconciliation work.
type OrderItem struct {
	ID                 uuid.UUID      `json:"id"`
	OrderID            uuid.UUID      `json:"order_id"`
	FundID             string         `json:"fund_id"`
	Amount             int64          `json:"amount"` // allocated minor units
	ProviderOrderRef   *string        `json:"provider_order_ref,omitempty"`
	ProviderPaymentRef *string        `json:"provider_payment_ref,omitempty"`
	State              OrderItemState `json:"state"`
	CreatedAt          time.Time      `json:"created_at"`
}

// IsSubmitted reports whether the item already carries a provider reference,
// in which case re-submission must be skipped.
func (i *OrderItem) IsSubmitted() bool {
	return i.ProviderOrderRef != nil && *i.ProviderOrderRef != ""
}
