package domain

import (
	"time"

	"github.com/google/uuid"
)

// MfaAction names the sensitive action a session authorizes. Tokens are bound
// to exactly one action.
const (
	ActionSellOrder = "MF_SELL"
	ActionBuyOrder  = "MF_BUY"
)

// MfaChannel is the OTP delivery channel.
type MfaChannel string

const (
	ChannelSMS      MfaChannel = "SMS"
	ChannelWhatsApp MfaChannel = "WHATSAPP"
	ChannelTOTP     MfaChannel = "TOTP"
)

// MfaSessionStatus is the session lifecycle. Once the status leaves PENDING
// the session is immutable, except for the time-driven token expiry on the
// verified side.
type MfaSessionStatus string

const (
	MfaStatusPending  MfaSessionStatus = "PENDING"
	MfaStatusVerified MfaSessionStatus = "VERIFIED"
	MfaStatusExpired  MfaSessionStatus = "EXPIRED"
	MfaStatusFailed   MfaSessionStatus = "FAILED"
)

// MfaSession is one challenge lifecycle for a sensitive user action.
type MfaSession struct {
	ID                uuid.UUID        `json:"id"`
	UserID            int64            `json:"user_id"`
	Action            string           `json:"action"`
	Channel           MfaChannel       `json:"channel"`
	MaskedDestination string           `json:"masked_destination"`
	OTPHash           string           `json:"-"`
	OTPExpiresAt      time.Time        `json:"otp_expires_at"`
	Attempts          int              `json:"attempts"`
	MaxAttempts       int              `json:"max_attempts"`
	Status            MfaSessionStatus `json:"status"`
	Token             *string          `json:"-"`
	TokenExpiresAt    *time.Time       `json:"-"`
	ClientIP          string           `json:"-"`
	UserAgent         string           `json:"-"`
	CreatedAt         time.Time        `json:"created_at"`
}

// OTPExpired reports whether the challenge window has closed at the given
// instant.
func (s *MfaSession) OTPExpired(now time.Time) bool {
	return now.After(s.OTPExpiresAt)
}

// AttemptsExhausted reports whether no verification tries remain.
func (s *MfaSession) AttemptsExhausted() bool {
	return s.Attempts >= s.MaxAttempts
}

// TokenValidAt reports whether the issued token is still live at the given
// instant.
func (s *MfaSession) TokenValidAt(now time.Time) bool {
	return s.Status == MfaStatusVerified &&
		s.Token != nil &&
		s.TokenExpiresAt != nil &&
		now.Before(*s.TokenExpiresAt)
}

// MfaAttempt is an append-only audit record of one verification try.
type MfaAttempt struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Success   bool      `json:"success"`
	ClientIP  string    `json:"client_ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}
