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

func TestSettlementRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := &domain.SettlementRecord{
		ID:               uuid.New(),
		UserID:           42,
		GoalID:           1,
		FundID:           "FUND_A",
		ProviderOrderRef: "ORD-A-1",
		Units:            2_000_000,
		NAV:              25_000_000,
		Amount:           5000,
		SettledAt:        now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO settlement_records").
		WithArgs(
			rec.ID, rec.UserID, rec.GoalID, rec.FundID, rec.ProviderOrderRef,
			rec.Units, rec.NAV, rec.Amount, rec.SettledAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_ExistsByProviderRef(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ORD-A-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByProviderRef(context.Background(), "ORD-A-1")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_ExistsByProviderRef_False(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ORD-UNKNOWN").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByProviderRef(context.Background(), "ORD-UNKNOWN")
	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_SumUnits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)

	// Buys and sells net out; the sum is signed.
	mock.ExpectQuery("SELECT COALESCE.SUM.units., 0. FROM settlement_records").
		WithArgs(int64(42), int64(1), "FUND_A").
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(8_500_000)))

	sum, err := repo.SumUnits(context.Background(), 42, 1, "FUND_A")
	require.NoError(t, err)
	assert.Equal(t, int64(8_500_000), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}
