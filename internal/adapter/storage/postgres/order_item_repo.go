package postgres

import (
	"context"
	"errors"
	"fmt"

	"fund-order-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderItemRepo implements ports.OrderItemRepository.
type OrderItemRepo struct {
	pool Pool
}

// NewOrderItemRepo creates a new OrderItemRepo.
func NewOrderItemRepo(pool Pool) *OrderItemRepo {
	return &OrderItemRepo{pool: pool}
}

const orderItemColumns = `id, order_id, fund_id, amount, provider_order_ref, provider_payment_ref, state, created_at`

// CreateBatch inserts all line items of an order within a database transaction.
func (r *OrderItemRepo) CreateBatch(ctx context.Context, tx pgx.Tx, items []domain.OrderItem) error {
	query := `INSERT INTO order_items (` + orderItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i := range items {
		item := &items[i]
		_, err := tx.Exec(ctx, query,
			item.ID, item.OrderID, item.FundID, item.Amount,
			item.ProviderOrderRef, item.ProviderPaymentRef, item.State, item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", item.FundID, err)
		}
	}
	return nil
}

// ListByOrderID fetches all line items of an order.
func (r *OrderItemRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.FundID, &item.Amount,
			&item.ProviderOrderRef, &item.ProviderPaymentRef, &item.State, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}
	return items, nil
}

// GetByProviderRef fetches the item a reconciliation poll is keyed on.
func (r *OrderItemRepo) GetByProviderRef(ctx context.Context, providerRef string) (*domain.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE provider_order_ref = $1`

	item := &domain.OrderItem{}
	err := r.pool.QueryRow(ctx, query, providerRef).Scan(
		&item.ID, &item.OrderID, &item.FundID, &item.Amount,
		&item.ProviderOrderRef, &item.ProviderPaymentRef, &item.State, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order item: %w", err)
	}
	return item, nil
}

// SetProviderRefs writes the provider references exactly once. The guard runs
// in SQL so concurrent submissions cannot both win; the returned bool reports
// whether this call took the write.
func (r *OrderItemRepo) SetProviderRefs(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, orderRef, paymentRef string) (bool, error) {
	query := `UPDATE order_items SET provider_order_ref = $1, provider_payment_ref = NULLIF($2, '')
		WHERE id = $3 AND provider_order_ref IS NULL`

	tag, err := tx.Exec(ctx, query, orderRef, paymentRef, itemID)
	if err != nil {
		return false, fmt.Errorf("set provider refs: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateState moves the item to a new submission/settlement state.
func (r *OrderItemRepo) UpdateState(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, state domain.OrderItemState) error {
	query := `UPDATE order_items SET state = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, state, itemID)
	if err != nil {
		return fmt.Errorf("update order item state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order item not found: %s", itemID)
	}
	return nil
}
