package postgres

import (
	"context"
	"fmt"

	"fund-order-platform/internal/core/domain"
)

// FolioRepo implements ports.FolioRepository.
type FolioRepo struct {
	pool Pool
}

// NewFolioRepo creates a new FolioRepo.
func NewFolioRepo(pool Pool) *FolioRepo {
	return &FolioRepo{pool: pool}
}

// ListByFund fetches every folio registered against the fund.
func (r *FolioRepo) ListByFund(ctx context.Context, fundID string) ([]domain.Folio, error) {
	query := `SELECT id, user_id, fund_id, folio_number, created_at FROM folios
		WHERE fund_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, fundID)
	if err != nil {
		return nil, fmt.Errorf("list folios: %w", err)
	}
	defer rows.Close()

	var folios []domain.Folio
	for rows.Next() {
		f := domain.Folio{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.FundID, &f.FolioNumber, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan folio row: %w", err)
		}
		folios = append(folios, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folio rows: %w", err)
	}
	return folios, nil
}
