package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepo implements ports.OrderRepository. The SIP and sell payloads are
// stored as JSONB so the orders table stays one row per order across kinds.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, payment_id, user_id, goal_id, kind, amount, status, sip_detail, sell_detail,
	version, created_at, updated_at`

// Create inserts a new order within a database transaction.
func (r *OrderRepo) Create(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	sipJSON, sellJSON, err := marshalDetails(o)
	if err != nil {
		return err
	}

	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = tx.Exec(ctx, query,
		o.ID, o.PaymentID, o.UserID, o.GoalID, o.Kind, o.Amount, o.Status, sipJSON, sellJSON,
		o.Version, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches an order by UUID.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.pool.QueryRow(ctx, query, id))
}

// ListByPaymentID fetches every order owned by the payment.
func (r *OrderRepo) ListByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

// Update persists the order with an optimistic version check.
func (r *OrderRepo) Update(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	sipJSON, sellJSON, err := marshalDetails(o)
	if err != nil {
		return err
	}

	query := `UPDATE orders SET status = $1, sip_detail = $2, sell_detail = $3,
		version = version + 1, updated_at = $4
		WHERE id = $5 AND version = $6`

	now := time.Now()
	tag, err := tx.Exec(ctx, query, o.Status, sipJSON, sellJSON, now, o.ID, o.Version)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrVersionConflict()
	}
	o.Version++
	o.UpdatedAt = now
	return nil
}

func marshalDetails(o *domain.Order) ([]byte, []byte, error) {
	var sipJSON, sellJSON []byte
	var err error
	if o.SIP != nil {
		if sipJSON, err = json.Marshal(o.SIP); err != nil {
			return nil, nil, fmt.Errorf("marshal sip detail: %w", err)
		}
	}
	if o.Sell != nil {
		if sellJSON, err = json.Marshal(o.Sell); err != nil {
			return nil, nil, fmt.Errorf("marshal sell detail: %w", err)
		}
	}
	return sipJSON, sellJSON, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	o := &domain.Order{}
	var sipJSON, sellJSON []byte
	err := row.Scan(
		&o.ID, &o.PaymentID, &o.UserID, &o.GoalID, &o.Kind, &o.Amount, &o.Status, &sipJSON, &sellJSON,
		&o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if len(sipJSON) > 0 {
		o.SIP = &domain.SIPDetail{}
		if err := json.Unmarshal(sipJSON, o.SIP); err != nil {
			return nil, fmt.Errorf("unmarshal sip detail: %w", err)
		}
	}
	if len(sellJSON) > 0 {
		o.Sell = &domain.SellDetail{}
		if err := json.Unmarshal(sellJSON, o.Sell); err != nil {
			return nil, fmt.Errorf("unmarshal sell detail: %w", err)
		}
	}
	return o, nil
}
