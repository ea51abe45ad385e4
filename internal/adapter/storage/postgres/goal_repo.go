package postgres

import (
	"context"
	"errors"
	"fmt"

	"fund-order-platform/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// GoalRepo implements ports.GoalRepository. Basket constituents live in a
// child table and are loaded with every goal.
type GoalRepo struct {
	pool Pool
}

// NewGoalRepo creates a new GoalRepo.
func NewGoalRepo(pool Pool) *GoalRepo {
	return &GoalRepo{pool: pool}
}

// GetByID fetches one goal with its basket funds.
func (r *GoalRepo) GetByID(ctx context.Context, id int64) (*domain.Goal, error) {
	query := `SELECT id, user_id, child_id, status, sip_total FROM goals WHERE id = $1`

	g := &domain.Goal{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&g.ID, &g.UserID, &g.ChildID, &g.Status, &g.SIPTotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	funds, err := r.basketFunds(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.BasketFunds = funds
	return g, nil
}

// ListEligibleByChild fetches the DRAFT goals of a (user, child) pair, each
// with its basket funds.
func (r *GoalRepo) ListEligibleByChild(ctx context.Context, userID, childID int64) ([]domain.Goal, error) {
	query := `SELECT id, user_id, child_id, status, sip_total FROM goals
		WHERE user_id = $1 AND child_id = $2 AND status = $3 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID, childID, domain.GoalStatusDraft)
	if err != nil {
		return nil, fmt.Errorf("list eligible goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		g := domain.Goal{}
		if err := rows.Scan(&g.ID, &g.UserID, &g.ChildID, &g.Status, &g.SIPTotal); err != nil {
			return nil, fmt.Errorf("scan goal row: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goal rows: %w", err)
	}

	for i := range goals {
		funds, err := r.basketFunds(ctx, goals[i].ID)
		if err != nil {
			return nil, err
		}
		goals[i].BasketFunds = funds
	}
	return goals, nil
}

// AddToSIPTotal atomically adds the delta to the goal's running SIP total.
func (r *GoalRepo) AddToSIPTotal(ctx context.Context, tx pgx.Tx, goalID int64, delta int64) error {
	query := `UPDATE goals SET sip_total = sip_total + $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, delta, goalID)
	if err != nil {
		return fmt.Errorf("add to sip total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal not found: %d", goalID)
	}
	return nil
}

func (r *GoalRepo) basketFunds(ctx context.Context, goalID int64) ([]domain.BasketFund, error) {
	query := `SELECT fund_id, percent, bank_ref, fund_name FROM basket_funds
		WHERE goal_id = $1 ORDER BY position`

	rows, err := r.pool.Query(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("list basket funds: %w", err)
	}
	defer rows.Close()

	var funds []domain.BasketFund
	for rows.Next() {
		f := domain.BasketFund{}
		if err := rows.Scan(&f.FundID, &f.Percent, &f.BankRef, &f.FundName); err != nil {
			return nil, fmt.Errorf("scan basket fund row: %w", err)
		}
		funds = append(funds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate basket fund rows: %w", err)
	}
	return funds, nil
}
