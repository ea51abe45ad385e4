package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/internal/core/ports/mocks"
	"fund-order-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mfaTestDeps struct {
	svc      *MfaServiceImpl
	sessions *mocks.MockMfaSessionRepository
	contacts *mocks.MockContactRepository
	otp      *mocks.MockOtpChallenger
	sender   *mocks.MockOtpSender
	ctrl     *gomock.Controller
}

func setupMfaService(t *testing.T) *mfaTestDeps {
	ctrl := gomock.NewController(t)
	d := &mfaTestDeps{
		sessions: mocks.NewMockMfaSessionRepository(ctrl),
		contacts: mocks.NewMockContactRepository(ctrl),
		otp:      mocks.NewMockOtpChallenger(ctrl),
		sender:   mocks.NewMockOtpSender(ctrl),
		ctrl:     ctrl,
	}
	d.svc = NewMfaService(d.sessions, d.contacts, d.otp, d.sender, MfaConfig{
		OTPExpiry:   60 * time.Second,
		TokenExpiry: 5 * time.Minute,
		MaxAttempts: 3,
		TokenSecret: "test-secret",
	}, zerolog.Nop())
	return d
}

func pendingSession(userID int64, action string, expiresAt time.Time) *domain.MfaSession {
	return &domain.MfaSession{
		ID:           uuid.New(),
		UserID:       userID,
		Action:       action,
		Channel:      domain.ChannelSMS,
		OTPHash:      "$argon2id$digest",
		OTPExpiresAt: expiresAt,
		Attempts:     0,
		MaxAttempts:  3,
		Status:       domain.MfaStatusPending,
	}
}

func TestMfaService_StartSession_Success(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	reqCtx := ports.RequestContext{ClientIP: "1.2.3.4", UserAgent: "test"}

	d.contacts.EXPECT().GetDestination(ctx, int64(42), domain.ChannelSMS).Return("+919876543210", nil)
	d.otp.EXPECT().Generate().Return("123456", nil)
	d.otp.EXPECT().Hash("123456").Return("$argon2id$digest", nil)
	d.sessions.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.MfaSession) error {
			assert.Equal(t, domain.MfaStatusPending, s.Status)
			assert.Equal(t, 3, s.MaxAttempts)
			assert.Equal(t, "$argon2id$digest", s.OTPHash)
			return nil
		},
	)
	d.sender.EXPECT().Send(ctx, domain.ChannelSMS, "+919876543210", "123456").Return(nil)

	result, err := d.svc.StartSession(ctx, 42, domain.ActionSellOrder, domain.ChannelSMS, reqCtx)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEqual(t, uuid.Nil, result.SessionID)
	assert.Equal(t, "*********3210", result.MaskedDestination)
	assert.False(t, result.ExpiresAt.IsZero())
}

func TestMfaService_StartSession_NoContactDestination(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.contacts.EXPECT().GetDestination(ctx, int64(42), domain.ChannelWhatsApp).Return("", nil)

	result, err := d.svc.StartSession(ctx, 42, domain.ActionSellOrder, domain.ChannelWhatsApp, ports.RequestContext{})
	assert.Nil(t, result)
	assertAppError(t, err, "NF_001")
}

func TestMfaService_StartSession_DispatchFailureMarksFailed(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.contacts.EXPECT().GetDestination(ctx, int64(42), domain.ChannelSMS).Return("+919876543210", nil)
	d.otp.EXPECT().Generate().Return("123456", nil)
	d.otp.EXPECT().Hash("123456").Return("$argon2id$digest", nil)
	d.sessions.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.sender.EXPECT().Send(ctx, domain.ChannelSMS, "+919876543210", "123456").Return(errors.New("gateway down"))
	d.sessions.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.MfaSession) error {
			assert.Equal(t, domain.MfaStatusFailed, s.Status)
			return nil
		},
	)

	result, err := d.svc.StartSession(ctx, 42, domain.ActionSellOrder, domain.ChannelSMS, ports.RequestContext{})
	assert.Nil(t, result)
	assertAppError(t, err, "SYS_001")
}

func TestMfaService_VerifySession_Success(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	d.svc.now = func() time.Time { return now }

	session := pendingSession(42, domain.ActionSellOrder, now.Add(30*time.Second))

	d.sessions.EXPECT().GetByID(ctx, session.ID).Return(session, nil)
	d.otp.EXPECT().Verify("123456", "$argon2id$digest").Return(true, nil)
	d.sessions.EXPECT().AppendAttempt(ctx, gomock.Any()).Return(nil)
	d.sessions.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.MfaSession) error {
			assert.Equal(t, domain.MfaStatusVerified, s.Status)
			assert.Equal(t, 1, s.Attempts)
			require.NotNil(t, s.Token)
			require.NotNil(t, s.TokenExpiresAt)
			assert.Equal(t, now.Add(5*time.Minute), *s.TokenExpiresAt)
			return nil
		},
	)

	token, err := d.svc.VerifySession(ctx, 42, session.ID, "123456", ports.RequestContext{})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestMfaService_VerifySession_WrongUser(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	session := pendingSession(42, domain.ActionSellOrder, time.Now().Add(time.Minute))

	d.sessions.EXPECT().GetByID(ctx, session.ID).Return(session, nil)

	_, err := d.svc.VerifySession(ctx, 99, session.ID, "123456", ports.RequestContext{})
	assertAppError(t, err, "NF_001")
}

func TestMfaService_VerifySession_ExpiredCode(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 1, 1, 0, time.UTC)
	d.svc.now = func() time.Time { return now }

	// Issued 61 seconds ago with a 60-second window.
	session := pendingSession(42, domain.ActionSellOrder, now.Add(-time.Second))

	d.sessions.EXPECT().GetByID(ctx, session.ID).Return(session, nil)
	// The late attempt still lands in the trail before the session expires.
	d.sessions.EXPECT().AppendAttempt(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, a *domain.MfaAttempt) error {
			assert.Equal(t, session.ID, a.SessionID)
			assert.False(t, a.Success)
			return nil
		},
	)
	d.sessions.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.MfaSession) error {
			assert.Equal(t, domain.MfaStatusExpired, s.Status)
			return nil
		},
	)

	_, err := d.svc.VerifySession(ctx, 42, session.ID, "123456", ports.RequestContext{})
	assertAppError(t, err, "AUTHZ_002")
}

func TestMfaService_VerifySession_AttemptBound(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	d.svc.now = func() time.Time { return now }

	session := pendingSession(42, domain.ActionSellOrder, now.Add(time.Minute))

	// Three wrong codes burn all attempts; the third flips the session FAILED.
	for i := 0; i < 3; i++ {
		d.sessions.EXPECT().GetByID(ctx, session.ID).Return(session, nil)
		d.otp.EXPECT().Verify("000000", "$argon2id$digest").Return(false, nil)
		d.sessions.EXPECT().AppendAttempt(ctx, gomock.Any()).Return(nil)
		d.sessions.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		_, err := d.svc.VerifySession(ctx, 42, session.ID, "000000", ports.RequestContext{})
		assertAppError(t, err, "AUTHZ_001")
	}
	assert.Equal(t, 3, session.Attempts)
	assert.Equal(t, domain.MfaStatusFailed, session.Status)

	// The fourth try is rejected without touching the verifier, even if the
	// code would have been correct. It is still recorded in the trail.
	d.sessions.EXPECT().GetByID(ctx, session.ID).Return(session, nil)
	d.sessions.EXPECT().AppendAttempt(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, a *domain.MfaAttempt) error {
			assert.False(t, a.Success)
			return nil
		},
	)

	_, err := d.svc.VerifySession(ctx, 42, session.ID, "123456", ports.RequestContext{})
	assertAppError(t, err, "AUTHZ_003")
}

func TestMfaService_VerifySession_NotPending(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	session := pendingSession(42, domain.ActionSellOrder, time.Now().Add(time.Minute))
	session.Status = domain.MfaStatusVerified

	d.sessions.EXPECT().GetByID(ctx, session.ID).Return(session, nil)

	_, err := d.svc.VerifySession(ctx, 42, session.ID, "123456", ports.RequestContext{})
	assertAppError(t, err, "STATE_001")
}

func TestMfaService_ValidateToken_ActionBinding(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	d.svc.now = func() time.Time { return now }

	sessionID := uuid.New()
	token := d.svc.mintToken(42, domain.ActionSellOrder, sessionID)
	tokenExpiry := now.Add(5 * time.Minute)
	session := &domain.MfaSession{
		ID:             sessionID,
		UserID:         42,
		Action:         domain.ActionSellOrder,
		Status:         domain.MfaStatusVerified,
		Token:          &token,
		TokenExpiresAt: &tokenExpiry,
	}

	d.sessions.EXPECT().GetByID(ctx, sessionID).Return(session, nil)
	require.NoError(t, d.svc.ValidateToken(ctx, token, domain.ActionSellOrder))

	// Same token presented for a different action is rejected before any
	// session lookup.
	err := d.svc.ValidateToken(ctx, token, domain.ActionBuyOrder)
	assertAppError(t, err, "AUTHZ_004")
}

func TestMfaService_ValidateToken_TamperedSignature(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	sessionID := uuid.New()
	token := d.svc.mintToken(42, domain.ActionSellOrder, sessionID)
	tampered := token[:len(token)-1] + "0"
	if tampered == token {
		tampered = token[:len(token)-1] + "1"
	}

	err := d.svc.ValidateToken(context.Background(), tampered, domain.ActionSellOrder)
	assertAppError(t, err, "AUTHZ_004")
}

func TestMfaService_ValidateToken_ExpiredToken(t *testing.T) {
	d := setupMfaService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	d.svc.now = func() time.Time { return now }

	sessionID := uuid.New()
	token := d.svc.mintToken(42, domain.ActionSellOrder, sessionID)
	expired := now.Add(-time.Second)
	session := &domain.MfaSession{
		ID:             sessionID,
		UserID:         42,
		Action:         domain.ActionSellOrder,
		Status:         domain.MfaStatusVerified,
		Token:          &token,
		TokenExpiresAt: &expired,
	}

	d.sessions.EXPECT().GetByID(ctx, sessionID).Return(session, nil)

	err := d.svc.ValidateToken(ctx, token, domain.ActionSellOrder)
	assertAppError(t, err, "AUTHZ_004")
}

func TestMaskDestination(t *testing.T) {
	assert.Equal(t, "*********3210", maskDestination("+919876543210"))
	assert.Equal(t, "1234", maskDestination("1234"))
	assert.Equal(t, "*bcde", maskDestination("abcde"))
}

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
