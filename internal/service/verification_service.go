package service

import (
	"context"
	"fmt"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/pkg/apperror"

	"github.com/rs/zerolog"
)

const bankVerifyCacheTTL = 24 * time.Hour

// ProcessedEventCache is the fast-path idempotency check for inbound
// webhooks, backed by Redis.
type ProcessedEventCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// VerificationServiceImpl implements ports.VerificationService for
// reverse-penny-drop bank confirmations.
type VerificationServiceImpl struct {
	verifications ports.BankVerificationRepository
	cache         ProcessedEventCache
	log           zerolog.Logger
}

// NewVerificationService creates a new VerificationServiceImpl.
func NewVerificationService(
	verifications ports.BankVerificationRepository,
	cache ProcessedEventCache,
	log zerolog.Logger,
) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		verifications: verifications,
		cache:         cache,
		log:           log,
	}
}

// HandleBankVerification processes an inbound penny-drop confirmation.
// Idempotent on referenceId/transactionId; a non-SUCCESS status or a missing
// pending record is rejected with a human-readable reason.
func (s *VerificationServiceImpl) HandleBankVerification(ctx context.Context, event ports.BankVerificationEvent) error {
	if event.ReferenceID == "" || event.TransactionID == "" {
		return apperror.Validation("referenceId and transactionId are required")
	}
	if event.TrxStatus != "SUCCESS" {
		return apperror.Validation(fmt.Sprintf("transaction status %q is not SUCCESS", event.TrxStatus))
	}

	cacheKey := "bankverify:" + event.ReferenceID + ":" + event.TransactionID
	if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
		s.log.Warn().Err(err).Str("reference_id", event.ReferenceID).Msg("webhook idempotency cache unavailable, falling through to db")
	} else if cached != nil {
		s.log.Debug().Str("reference_id", event.ReferenceID).Msg("duplicate bank verification webhook ignored")
		return nil
	}

	verification, err := s.verifications.GetByReference(ctx, event.ReferenceID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load bank verification: %w", err))
	}
	if verification == nil {
		return apperror.ErrNotFound("pending bank verification")
	}
	if verification.Status != domain.BankVerifyPending {
		// Already processed through the durable path; duplicate delivery.
		return nil
	}

	verification.Status = domain.BankVerifyVerified
	verification.TransactionID = &event.TransactionID
	verification.UTR = &event.UTR
	verification.RemitterAccount = &event.RemitterAccount
	verification.RemitterIFSC = &event.RemitterIFSC
	verification.Amount = event.Amount
	verification.UpdatedAt = time.Now().UTC()

	if err := s.verifications.Update(ctx, verification); err != nil {
		return apperror.InternalError(fmt.Errorf("update bank verification: %w", err))
	}

	if err := s.cache.Set(ctx, cacheKey, []byte("1"), bankVerifyCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("reference_id", event.ReferenceID).Msg("failed to cache webhook idempotency marker")
	}

	s.log.Info().
		Str("reference_id", event.ReferenceID).
		Str("utr", event.UTR).
		Msg("bank verification confirmed")
	return nil
}
