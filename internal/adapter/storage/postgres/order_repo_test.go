package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(paymentID *uuid.UUID) *domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Order{
		ID:        uuid.New(),
		PaymentID: paymentID,
		UserID:    42,
		GoalID:    1,
		Kind:      domain.OrderKindBuy,
		Amount:    5000,
		Status:    domain.OrderStatusNotPlaced,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func orderTestColumns() []string {
	return []string{"id", "payment_id", "user_id", "goal_id", "kind", "amount", "status", "sip_detail", "sell_detail",
		"version", "created_at", "updated_at"}
}

func orderRow(t *testing.T, o *domain.Order) *pgxmock.Rows {
	t.Helper()
	var sipJSON, sellJSON []byte
	var err error
	if o.SIP != nil {
		sipJSON, err = json.Marshal(o.SIP)
		require.NoError(t, err)
	}
	if o.Sell != nil {
		sellJSON, err = json.Marshal(o.Sell)
		require.NoError(t, err)
	}
	return pgxmock.NewRows(orderTestColumns()).AddRow(
		o.ID, o.PaymentID, o.UserID, o.GoalID, o.Kind, o.Amount, o.Status, sipJSON, sellJSON,
		o.Version, o.CreatedAt, o.UpdatedAt,
	)
}

func TestOrderRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	paymentID := uuid.New()
	o := newTestOrder(&paymentID)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			o.ID, o.PaymentID, o.UserID, o.GoalID, o.Kind, o.Amount, o.Status,
			[]byte(nil), []byte(nil),
			o.Version, o.CreatedAt, o.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, o)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetByID_SellPayloadRoundtrip(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder(nil)
	o.Kind = domain.OrderKindSell
	o.Sell = &domain.SellDetail{
		Reason:      "rebalancing",
		FolioNumber: "FOL-001",
		Units:       2_000_000,
	}

	mock.ExpectQuery("SELECT .+ FROM orders WHERE id").
		WithArgs(o.ID).
		WillReturnRows(orderRow(t, o))

	result, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Nil(t, result.PaymentID)
	require.NotNil(t, result.Sell)
	assert.Equal(t, "FOL-001", result.Sell.FolioNumber)
	assert.Equal(t, int64(2_000_000), result.Sell.Units)
	assert.Nil(t, result.SIP)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM orders WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(orderTestColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ListByPaymentID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	paymentID := uuid.New()
	buy := newTestOrder(&paymentID)
	sip := newTestOrder(&paymentID)
	sip.Kind = domain.OrderKindSIP
	sip.SIP = &domain.SIPDetail{
		StartDate:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		NextRunAt:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		RecurringAmount: 2000,
	}

	sipJSON, err := json.Marshal(sip.SIP)
	require.NoError(t, err)
	rows := orderRow(t, buy).AddRow(
		sip.ID, sip.PaymentID, sip.UserID, sip.GoalID, sip.Kind, sip.Amount, sip.Status, sipJSON, []byte(nil),
		sip.Version, sip.CreatedAt, sip.UpdatedAt,
	)
	mock.ExpectQuery("SELECT .+ FROM orders WHERE payment_id").
		WithArgs(paymentID).
		WillReturnRows(rows)

	result, err := repo.ListByPaymentID(context.Background(), paymentID)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, domain.OrderKindBuy, result[0].Kind)
	require.NotNil(t, result[1].SIP)
	assert.Equal(t, int64(2000), result[1].SIP.RecurringAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder(nil)
	o.Status = domain.OrderStatusPlaced

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET").
		WithArgs(o.Status, []byte(nil), []byte(nil), pgxmock.AnyArg(), o.ID, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Update(context.Background(), dbTx, o)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), o.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Update_VersionConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder(nil)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET").
		WithArgs(o.Status, []byte(nil), []byte(nil), pgxmock.AnyArg(), o.ID, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Update(context.Background(), dbTx, o)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STATE_005", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
