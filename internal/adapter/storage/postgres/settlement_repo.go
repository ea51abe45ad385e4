package postgres

import (
	"context"
	"fmt"

	"fund-order-platform/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// SettlementRepo implements ports.SettlementRepository over the append-only
// settlement ledger.
type SettlementRepo struct {
	pool Pool
}

// NewSettlementRepo creates a new SettlementRepo.
func NewSettlementRepo(pool Pool) *SettlementRepo {
	return &SettlementRepo{pool: pool}
}

// Create inserts one ledger row. The unique index on provider_order_ref backs
// the idempotency check; a duplicate insert is a hard error because callers
// must check ExistsByProviderRef first inside the same transaction flow.
func (r *SettlementRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.SettlementRecord) error {
	query := `INSERT INTO settlement_records (id, user_id, goal_id, fund_id, provider_order_ref, units, nav, amount, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		rec.ID, rec.UserID, rec.GoalID, rec.FundID, rec.ProviderOrderRef,
		rec.Units, rec.NAV, rec.Amount, rec.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert settlement record: %w", err)
	}
	return nil
}

// ExistsByProviderRef reports whether a ledger row already exists for the
// provider order reference.
func (r *SettlementRepo) ExistsByProviderRef(ctx context.Context, providerRef string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM settlement_records WHERE provider_order_ref = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, providerRef).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check settlement exists: %w", err)
	}
	return exists, nil
}

// SumUnits returns the net signed unit position for a (user, goal, fund).
func (r *SettlementRepo) SumUnits(ctx context.Context, userID, goalID int64, fundID string) (int64, error) {
	query := `SELECT COALESCE(SUM(units), 0) FROM settlement_records
		WHERE user_id = $1 AND goal_id = $2 AND fund_id = $3`

	var sum int64
	err := r.pool.QueryRow(ctx, query, userID, goalID, fundID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum settlement units: %w", err)
	}
	return sum, nil
}
