package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fund-order-platform/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// BankVerificationRepo implements ports.BankVerificationRepository.
type BankVerificationRepo struct {
	pool Pool
}

// NewBankVerificationRepo creates a new BankVerificationRepo.
func NewBankVerificationRepo(pool Pool) *BankVerificationRepo {
	return &BankVerificationRepo{pool: pool}
}

// GetByReference fetches a verification cycle by its reference ID.
func (r *BankVerificationRepo) GetByReference(ctx context.Context, referenceID string) (*domain.BankVerification, error) {
	query := `SELECT reference_id, user_id, status, transaction_id, utr, remitter_account, remitter_ifsc,
		amount, created_at, updated_at
		FROM bank_verifications WHERE reference_id = $1`

	v := &domain.BankVerification{}
	err := r.pool.QueryRow(ctx, query, referenceID).Scan(
		&v.ReferenceID, &v.UserID, &v.Status, &v.TransactionID, &v.UTR, &v.RemitterAccount, &v.RemitterIFSC,
		&v.Amount, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan bank verification: %w", err)
	}
	return v, nil
}

// Update persists the verification outcome. The status guard makes concurrent
// duplicate callbacks no-ops at the row level.
func (r *BankVerificationRepo) Update(ctx context.Context, v *domain.BankVerification) error {
	query := `UPDATE bank_verifications SET status = $1, transaction_id = $2, utr = $3,
		remitter_account = $4, remitter_ifsc = $5, updated_at = $6
		WHERE reference_id = $7 AND status = $8`

	now := time.Now()
	tag, err := r.pool.Exec(ctx, query,
		v.Status, v.TransactionID, v.UTR, v.RemitterAccount, v.RemitterIFSC, now,
		v.ReferenceID, domain.BankVerifyPending,
	)
	if err != nil {
		return fmt.Errorf("update bank verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bank verification not pending: %s", v.ReferenceID)
	}
	v.UpdatedAt = now
	return nil
}
