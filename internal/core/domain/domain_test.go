package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPayment_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status PaymentStatus
		want   bool
	}{
		{"pending", PaymentStatusPending, false},
		{"active", PaymentStatusActive, false},
		{"completed", PaymentStatusCompleted, true},
		{"failed", PaymentStatusFailed, true},
		{"not available", PaymentStatusNotAvailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Payment{Status: tt.status}
			assert.Equal(t, tt.want, p.IsTerminal())
		})
	}
}

func TestPayment_IsVerified(t *testing.T) {
	assert.False(t, (&Payment{VerificationStatus: VerificationPending}).IsVerified())
	assert.True(t, (&Payment{VerificationStatus: VerificationVerified}).IsVerified())
}

func TestOrder_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		want   bool
	}{
		{"not placed", OrderStatusNotPlaced, false},
		{"placed", OrderStatusPlaced, false},
		{"completed", OrderStatusCompleted, true},
		{"failed", OrderStatusFailed, true},
		{"cancelled", OrderStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.status}
			assert.Equal(t, tt.want, o.IsTerminal())
		})
	}
}

func TestOrder_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"not placed to placed", OrderStatusNotPlaced, OrderStatusPlaced, true},
		{"not placed to completed", OrderStatusNotPlaced, OrderStatusCompleted, true},
		{"placed to completed", OrderStatusPlaced, OrderStatusCompleted, true},
		{"placed to failed", OrderStatusPlaced, OrderStatusFailed, true},
		{"placed to not placed", OrderStatusPlaced, OrderStatusNotPlaced, false},
		{"completed to failed", OrderStatusCompleted, OrderStatusFailed, false},
		{"failed to completed", OrderStatusFailed, OrderStatusCompleted, false},
		{"cancelled to placed", OrderStatusCancelled, OrderStatusPlaced, false},
		{"same state", OrderStatusPlaced, OrderStatusPlaced, false},
		{"unknown target", OrderStatusPlaced, OrderStatus("LIMBO"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.from}
			assert.Equal(t, tt.want, o.CanTransition(tt.to))
		})
	}
}

func TestOrderItem_IsSubmitted(t *testing.T) {
	ref := "ORD-A-1"
	empty := ""
	assert.False(t, (&OrderItem{}).IsSubmitted())
	assert.False(t, (&OrderItem{ProviderOrderRef: &empty}).IsSubmitted())
	assert.True(t, (&OrderItem{ProviderOrderRef: &ref}).IsSubmitted())
}

func TestMfaSession_OTPExpired(t *testing.T) {
	now := time.Now()
	s := &MfaSession{OTPExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.OTPExpired(now))
	assert.True(t, s.OTPExpired(now.Add(2*time.Minute)))
}

func TestMfaSession_AttemptsExhausted(t *testing.T) {
	s := &MfaSession{Attempts: 2, MaxAttempts: 3}
	assert.False(t, s.AttemptsExhausted())
	s.Attempts = 3
	assert.True(t, s.AttemptsExhausted())
}

func TestMfaSession_TokenValidAt(t *testing.T) {
	now := time.Now()
	token := "tok"
	expiry := now.Add(5 * time.Minute)

	s := &MfaSession{
		Status:         MfaStatusVerified,
		Token:          &token,
		TokenExpiresAt: &expiry,
	}
	assert.True(t, s.TokenValidAt(now))
	assert.False(t, s.TokenValidAt(expiry.Add(time.Second)))

	s.Status = MfaStatusPending
	assert.False(t, s.TokenValidAt(now))

	s.Status = MfaStatusVerified
	s.Token = nil
	assert.False(t, s.TokenValidAt(now))
}

func TestReconciliationJobID(t *testing.T) {
	assert.Equal(t, "recon:ORD-A-1", ReconciliationJobID("ORD-A-1"))
}

func TestReconciliationJob_PollBudgetExhausted(t *testing.T) {
	tests := []struct {
		name      string
		pollCount int
		maxPolls  int
		want      bool
	}{
		{"under budget", 5, 28, false},
		{"at budget", 28, 28, true},
		{"over budget", 30, 28, true},
		{"unbounded", 1000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &ReconciliationJob{PollCount: tt.pollCount, MaxPolls: tt.maxPolls}
			assert.Equal(t, tt.want, j.PollBudgetExhausted())
		})
	}
}
