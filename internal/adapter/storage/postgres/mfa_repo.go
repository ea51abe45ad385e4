package postgres

import (
	"context"
	"errors"
	"fmt"

	"fund-order-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MfaSessionRepo implements ports.MfaSessionRepository.
type MfaSessionRepo struct {
	pool Pool
}

// NewMfaSessionRepo creates a new MfaSessionRepo.
func NewMfaSessionRepo(pool Pool) *MfaSessionRepo {
	return &MfaSessionRepo{pool: pool}
}

const mfaSessionColumns = `id, user_id, action, channel, masked_destination, otp_hash, otp_expires_at,
	attempts, max_attempts, status, token, token_expires_at, client_ip, user_agent, created_at`

// Create inserts a new MFA session.
func (r *MfaSessionRepo) Create(ctx context.Context, s *domain.MfaSession) error {
	query := `INSERT INTO mfa_sessions (` + mfaSessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.UserID, s.Action, s.Channel, s.MaskedDestination, s.OTPHash, s.OTPExpiresAt,
		s.Attempts, s.MaxAttempts, s.Status, s.Token, s.TokenExpiresAt, s.ClientIP, s.UserAgent, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert mfa session: %w", err)
	}
	return nil
}

// GetByID fetches an MFA session by UUID.
func (r *MfaSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MfaSession, error) {
	query := `SELECT ` + mfaSessionColumns + ` FROM mfa_sessions WHERE id = $1`

	s := &domain.MfaSession{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Action, &s.Channel, &s.MaskedDestination, &s.OTPHash, &s.OTPExpiresAt,
		&s.Attempts, &s.MaxAttempts, &s.Status, &s.Token, &s.TokenExpiresAt, &s.ClientIP, &s.UserAgent, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan mfa session: %w", err)
	}
	return s, nil
}

// Update persists the mutable session fields.
func (r *MfaSessionRepo) Update(ctx context.Context, s *domain.MfaSession) error {
	query := `UPDATE mfa_sessions SET attempts = $1, status = $2, token = $3, token_expires_at = $4
		WHERE id = $5`

	tag, err := r.pool.Exec(ctx, query, s.Attempts, s.Status, s.Token, s.TokenExpiresAt, s.ID)
	if err != nil {
		return fmt.Errorf("update mfa session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mfa session not found: %s", s.ID)
	}
	return nil
}

// AppendAttempt writes one audit row to the append-only attempt trail.
func (r *MfaSessionRepo) AppendAttempt(ctx context.Context, a *domain.MfaAttempt) error {
	query := `INSERT INTO mfa_attempts (id, session_id, success, client_ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query, a.ID, a.SessionID, a.Success, a.ClientIP, a.UserAgent, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert mfa attempt: %w", err)
	}
	return nil
}
