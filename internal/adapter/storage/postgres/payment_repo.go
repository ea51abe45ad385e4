package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentRepo implements ports.PaymentRepository.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `id, user_id, child_id, investor_ref, method, verification_status, status,
	provider_otp_ref, provider_payment_ref, provider_order_ref, mandate_ref, mandate_url, payment_url,
	version, created_at, updated_at`

// Create inserts a new payment within a database transaction.
func (r *PaymentRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Payment) error {
	query := `INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := tx.Exec(ctx, query,
		p.ID, p.UserID, p.ChildID, p.InvestorRef, p.Method, p.VerificationStatus, p.Status,
		p.ProviderOtpRef, p.ProviderPaymentRef, p.ProviderOrderRef, p.MandateRef, p.MandateURL, p.PaymentURL,
		p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by UUID.
func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.scanPayment(r.pool.QueryRow(ctx, query, id))
}

// GetByProviderPaymentRef fetches a payment by the provider payment reference,
// the key the provider callback reports on.
func (r *PaymentRepo) GetByProviderPaymentRef(ctx context.Context, ref string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE provider_payment_ref = $1`
	return r.scanPayment(r.pool.QueryRow(ctx, query, ref))
}

// Update persists the payment with an optimistic version check. The version on
// the struct is incremented on success; a stale version yields
// apperror.ErrVersionConflict.
func (r *PaymentRepo) Update(ctx context.Context, tx pgx.Tx, p *domain.Payment) error {
	query := `UPDATE payments SET verification_status = $1, status = $2, provider_otp_ref = $3,
		provider_payment_ref = $4, provider_order_ref = $5, mandate_ref = $6, mandate_url = $7,
		payment_url = $8, version = version + 1, updated_at = $9
		WHERE id = $10 AND version = $11`

	now := time.Now()
	tag, err := tx.Exec(ctx, query,
		p.VerificationStatus, p.Status, p.ProviderOtpRef,
		p.ProviderPaymentRef, p.ProviderOrderRef, p.MandateRef, p.MandateURL,
		p.PaymentURL, now,
		p.ID, p.Version,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrVersionConflict()
	}
	p.Version++
	p.UpdatedAt = now
	return nil
}

// scanPayment is a helper to scan a single row into a Payment.
func (r *PaymentRepo) scanPayment(row pgx.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.ChildID, &p.InvestorRef, &p.Method, &p.VerificationStatus, &p.Status,
		&p.ProviderOtpRef, &p.ProviderPaymentRef, &p.ProviderOrderRef, &p.MandateRef, &p.MandateURL, &p.PaymentURL,
		&p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return p, nil
}
