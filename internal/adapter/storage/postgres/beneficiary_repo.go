package postgres

import (
	"context"
	"errors"
	"fmt"

	"fund-order-platform/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// BeneficiaryRepo implements ports.BeneficiaryRepository.
type BeneficiaryRepo struct {
	pool Pool
}

// NewBeneficiaryRepo creates a new BeneficiaryRepo.
func NewBeneficiaryRepo(pool Pool) *BeneficiaryRepo {
	return &BeneficiaryRepo{pool: pool}
}

// GetByID fetches a beneficiary by ID.
func (r *BeneficiaryRepo) GetByID(ctx context.Context, id int64) (*domain.Beneficiary, error) {
	query := `SELECT id, user_id, investor_ref, bank_ref, phone, name FROM beneficiaries WHERE id = $1`

	b := &domain.Beneficiary{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.UserID, &b.InvestorRef, &b.BankRef, &b.Phone, &b.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan beneficiary: %w", err)
	}
	return b, nil
}

// ContactRepo implements ports.ContactRepository over the user_contacts table.
type ContactRepo struct {
	pool Pool
}

// NewContactRepo creates a new ContactRepo.
func NewContactRepo(pool Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

// GetDestination returns the user's delivery destination for the channel, or
// "" when none is on file.
func (r *ContactRepo) GetDestination(ctx context.Context, userID int64, channel domain.MfaChannel) (string, error) {
	query := `SELECT destination FROM user_contacts WHERE user_id = $1 AND channel = $2`

	var destination string
	err := r.pool.QueryRow(ctx, query, userID, channel).Scan(&destination)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("scan contact destination: %w", err)
	}
	return destination, nil
}
