package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MfaConfig carries the tunables of the challenge lifecycle.
type MfaConfig struct {
	OTPExpiry   time.Duration
	TokenExpiry time.Duration
	MaxAttempts int
	TokenSecret string
}

// MfaServiceImpl implements ports.MfaService.
type MfaServiceImpl struct {
	sessions ports.MfaSessionRepository
	contacts ports.ContactRepository
	otp      ports.OtpChallenger
	sender   ports.OtpSender
	cfg      MfaConfig
	now      func() time.Time
	log      zerolog.Logger
}

// NewMfaService creates a new MfaServiceImpl.
func NewMfaService(
	sessions ports.MfaSessionRepository,
	contacts ports.ContactRepository,
	otp ports.OtpChallenger,
	sender ports.OtpSender,
	cfg MfaConfig,
	log zerolog.Logger,
) *MfaServiceImpl {
	return &MfaServiceImpl{
		sessions: sessions,
		contacts: contacts,
		otp:      otp,
		sender:   sender,
		cfg:      cfg,
		now:      time.Now,
		log:      log,
	}
}

// StartSession opens a PENDING challenge for a sensitive action and dispatches
// the code through the channel collaborator. A dispatch failure marks the
// session FAILED and is surfaced to the caller; there is no silent success.
func (s *MfaServiceImpl) StartSession(
	ctx context.Context,
	userID int64,
	action string,
	channel domain.MfaChannel,
	reqCtx ports.RequestContext,
) (*ports.StartSessionResult, error) {
	destination, err := s.contacts.GetDestination(ctx, userID, channel)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup contact destination: %w", err))
	}
	if destination == "" {
		return nil, apperror.ErrNotFound("contact destination")
	}

	code, err := s.otp.Generate()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate otp: %w", err))
	}
	digest, err := s.otp.Hash(code)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash otp: %w", err))
	}

	now := s.now().UTC()
	session := &domain.MfaSession{
		ID:                uuid.New(),
		UserID:            userID,
		Action:            action,
		Channel:           channel,
		MaskedDestination: maskDestination(destination),
		OTPHash:           digest,
		OTPExpiresAt:      now.Add(s.cfg.OTPExpiry),
		Attempts:          0,
		MaxAttempts:       s.cfg.MaxAttempts,
		Status:            domain.MfaStatusPending,
		ClientIP:          reqCtx.ClientIP,
		UserAgent:         reqCtx.UserAgent,
		CreatedAt:         now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("persist mfa session: %w", err))
	}

	if err := s.sender.Send(ctx, channel, destination, code); err != nil {
		session.Status = domain.MfaStatusFailed
		if updateErr := s.sessions.Update(ctx, session); updateErr != nil {
			s.log.Error().Err(updateErr).Str("session_id", session.ID.String()).Msg("failed to mark session FAILED after dispatch error")
		}
		return nil, apperror.InternalError(fmt.Errorf("dispatch otp: %w", err))
	}

	s.log.Info().
		Str("session_id", session.ID.String()).
		Int64("user_id", userID).
		Str("action", action).
		Str("channel", string(channel)).
		Msg("mfa session started")

	return &ports.StartSessionResult{
		SessionID:         session.ID,
		MaskedDestination: session.MaskedDestination,
		ExpiresAt:         session.OTPExpiresAt,
	}, nil
}

// VerifySession checks a code against a PENDING session and mints an
// action-bound token on success. Every attempt against a live or exhausted
// session is appended to the attempt trail.
func (s *MfaServiceImpl) VerifySession(
	ctx context.Context,
	userID int64,
	sessionID uuid.UUID,
	code string,
	reqCtx ports.RequestContext,
) (string, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("load mfa session: %w", err))
	}
	if session == nil || session.UserID != userID {
		return "", apperror.ErrNotFound("mfa session")
	}
	if session.Status != domain.MfaStatusPending {
		// A session failed by exhausted attempts keeps rejecting with the
		// attempts error regardless of code correctness. The call still
		// lands in the audit trail.
		if session.Status == domain.MfaStatusFailed && session.AttemptsExhausted() {
			s.appendAttempt(ctx, session.ID, false, reqCtx)
			return "", apperror.ErrAttemptsExceeded()
		}
		return "", apperror.ErrInvalidState("mfa session is not pending")
	}

	now := s.now().UTC()
	if session.OTPExpired(now) {
		s.appendAttempt(ctx, session.ID, false, reqCtx)
		session.Status = domain.MfaStatusExpired
		if err := s.sessions.Update(ctx, session); err != nil {
			return "", apperror.InternalError(fmt.Errorf("expire mfa session: %w", err))
		}
		return "", apperror.ErrOtpExpired()
	}
	if session.AttemptsExhausted() {
		s.appendAttempt(ctx, session.ID, false, reqCtx)
		session.Status = domain.MfaStatusFailed
		if err := s.sessions.Update(ctx, session); err != nil {
			return "", apperror.InternalError(fmt.Errorf("fail mfa session: %w", err))
		}
		return "", apperror.ErrAttemptsExceeded()
	}

	match, err := s.otp.Verify(code, session.OTPHash)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("verify otp digest: %w", err))
	}

	s.appendAttempt(ctx, session.ID, match, reqCtx)

	if !match {
		session.Attempts++
		if session.AttemptsExhausted() {
			session.Status = domain.MfaStatusFailed
		}
		if err := s.sessions.Update(ctx, session); err != nil {
			return "", apperror.InternalError(fmt.Errorf("record failed attempt: %w", err))
		}
		return "", apperror.ErrInvalidOtp()
	}

	token := s.mintToken(session.UserID, session.Action, session.ID)
	tokenExpiry := now.Add(s.cfg.TokenExpiry)

	session.Attempts++
	session.Status = domain.MfaStatusVerified
	session.Token = &token
	session.TokenExpiresAt = &tokenExpiry
	if err := s.sessions.Update(ctx, session); err != nil {
		return "", apperror.InternalError(fmt.Errorf("verify mfa session: %w", err))
	}

	s.log.Info().
		Str("session_id", session.ID.String()).
		Int64("user_id", userID).
		Str("action", session.Action).
		Msg("mfa session verified")

	return token, nil
}

// ValidateToken checks a presented token against the required action and its
// backing session. Read-side only; no mutation.
func (s *MfaServiceImpl) ValidateToken(ctx context.Context, token string, requiredAction string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return apperror.ErrInvalidMfaToken()
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return apperror.ErrInvalidMfaToken()
	}
	action := parts[1]
	sessionID, err := uuid.Parse(parts[2])
	if err != nil {
		return apperror.ErrInvalidMfaToken()
	}

	expected := s.sign(userID, action, sessionID)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(parts[3])) != 1 {
		return apperror.ErrInvalidMfaToken()
	}
	if action != requiredAction {
		return apperror.ErrInvalidMfaToken()
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load mfa session: %w", err))
	}
	if session == nil {
		return apperror.ErrInvalidMfaToken()
	}
	if !session.TokenValidAt(s.now().UTC()) {
		return apperror.ErrInvalidMfaToken()
	}
	if *session.Token != token {
		return apperror.ErrInvalidMfaToken()
	}

	return nil
}

// mintToken builds the four-field action token: userID.action.sessionID.sig.
func (s *MfaServiceImpl) mintToken(userID int64, action string, sessionID uuid.UUID) string {
	return fmt.Sprintf("%d.%s.%s.%s", userID, action, sessionID, s.sign(userID, action, sessionID))
}

func (s *MfaServiceImpl) sign(userID int64, action string, sessionID uuid.UUID) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.TokenSecret))
	fmt.Fprintf(mac, "%d.%s.%s", userID, action, sessionID)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *MfaServiceImpl) appendAttempt(ctx context.Context, sessionID uuid.UUID, success bool, reqCtx ports.RequestContext) {
	attempt := &domain.MfaAttempt{
		ID:        uuid.New(),
		SessionID: sessionID,
		Success:   success,
		ClientIP:  reqCtx.ClientIP,
		UserAgent: reqCtx.UserAgent,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.AppendAttempt(ctx, attempt); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("failed to append mfa attempt record")
	}
}

// maskDestination hides all but the last four characters of a destination.
func maskDestination(destination string) string {
	if len(destination) <= 4 {
		return destination
	}
	return strings.Repeat("*", len(destination)-4) + destination[len(destination)-4:]
}
