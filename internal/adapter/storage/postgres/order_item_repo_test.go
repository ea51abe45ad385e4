package postgres

import (
	"context"
	"testing"
	"time"

	"fund-order-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderItem(orderID uuid.UUID) *domain.OrderItem {
	return &domain.OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		FundID:    "FUND_A",
		Amount:    3000,
		State:     domain.OrderItemPending,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func orderItemTestColumns() []string {
	return []string{"id", "order_id", "fund_id", "amount", "provider_order_ref", "provider_payment_ref", "state", "created_at"}
}

func orderItemRow(item *domain.OrderItem) *pgxmock.Rows {
	return pgxmock.NewRows(orderItemTestColumns()).AddRow(
		item.ID, item.OrderID, item.FundID, item.Amount,
		item.ProviderOrderRef, item.ProviderPaymentRef, item.State, item.CreatedAt,
	)
}

func TestOrderItemRepo_CreateBatch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderItemRepo(mock)
	orderID := uuid.New()
	items := []domain.OrderItem{*newTestOrderItem(orderID), *newTestOrderItem(orderID)}
	items[1].FundID = "FUND_B"
	items[1].Amount = 2000

	mock.ExpectBegin()
	for i := range items {
		item := &items[i]
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(
				item.ID, item.OrderID, item.FundID, item.Amount,
				item.ProviderOrderRef, item.ProviderPaymentRef, item.State, item.CreatedAt,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.CreateBatch(context.Background(), dbTx, items)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderItemRepo_ListByOrderID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderItemRepo(mock)
	orderID := uuid.New()
	first := newTestOrderItem(orderID)
	second := newTestOrderItem(orderID)
	second.FundID = "FUND_B"

	rows := orderItemRow(first).AddRow(
		second.ID, second.OrderID, second.FundID, second.Amount,
		second.ProviderOrderRef, second.ProviderPaymentRef, second.State, second.CreatedAt,
	)
	mock.ExpectQuery("SELECT .+ FROM order_items WHERE order_id").
		WithArgs(orderID).
		WillReturnRows(rows)

	result, err := repo.ListByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "FUND_A", result[0].FundID)
	assert.Equal(t, "FUND_B", result[1].FundID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderItemRepo_GetByProviderRef(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderItemRepo(mock)
	item := newTestOrderItem(uuid.New())
	item.ProviderOrderRef = strPtr("ORD-A-1")
	item.State = domain.OrderItemSubmitted

	mock.ExpectQuery("SELECT .+ FROM order_items WHERE provider_order_ref").
		WithArgs("ORD-A-1").
		WillReturnRows(orderItemRow(item))

	result, err := repo.GetByProviderRef(context.Background(), "ORD-A-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, item.ID, result.ID)
	assert.Equal(t, domain.OrderItemSubmitted, result.State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderItemRepo_GetByProviderRef_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderItemRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM order_items WHERE provider_order_ref").
		WithArgs("ORD-MISSING").
		WillReturnRows(pgxmock.NewRows(orderItemTestColumns()))

	result, err := repo.GetByProviderRef(context.Background(), "ORD-MISSING")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderItemRepo_SetProviderRefs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderItemRepo(mock)
	itemID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE order_items SET provider_order_ref").
		WithArgs("ORD-A-1", "PAY-A-1", itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	won, err := repo.SetProviderRefs(context.Background(), dbTx, itemID, "ORD-A-1", "PAY-A-1")
	assert.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderItemRepo_SetProviderRefs_AlreadySet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderItemRepo(mock)
	itemID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE order_items SET provider_order_ref").
		WithArgs("ORD-A-2", "", itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	won, err := repo.SetProviderRefs(context.Background(), dbTx, itemID, "ORD-A-2", "")
	assert.NoError(t, err)
	assert.False(t, won, "a second writer must not overwrite provider refs")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderItemRepo_UpdateState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderItemRepo(mock)
	itemID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE order_items SET state").
		WithArgs(domain.OrderItemSubmitted, itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateState(context.Background(), dbTx, itemID, domain.OrderItemSubmitted)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
