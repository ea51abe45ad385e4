package service

import (
	"testing"

	"fund-order-platform/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateAmount_RemainderGoesToLastFund(t *testing.T) {
	funds := []domain.BasketFund{
		{FundID: "FUND_A", Percent: 33},
		{FundID: "FUND_B", Percent: 33},
		{FundID: "FUND_C", Percent: 34},
	}

	allocations, err := AllocateAmount(1000, funds)
	require.NoError(t, err)
	require.Len(t, allocations, 3)

	assert.Equal(t, int64(330), allocations[0])
	assert.Equal(t, int64(330), allocations[1])
	assert.Equal(t, int64(340), allocations[2])

	var sum int64
	for _, a := range allocations {
		sum += a
	}
	assert.Equal(t, int64(1000), sum)
}

func TestAllocateAmount_EvenSplit(t *testing.T) {
	funds := []domain.BasketFund{
		{FundID: "FUND_A", Percent: 60},
		{FundID: "FUND_B", Percent: 40},
	}

	allocations, err := AllocateAmount(5000, funds)
	require.NoError(t, err)
	assert.Equal(t, []int64{3000, 2000}, allocations)
}

func TestAllocateAmount_IndivisibleAmount(t *testing.T) {
	funds := []domain.BasketFund{
		{FundID: "FUND_A", Percent: 50},
		{FundID: "FUND_B", Percent: 50},
	}

	allocations, err := AllocateAmount(101, funds)
	require.NoError(t, err)
	assert.Equal(t, int64(50), allocations[0])
	assert.Equal(t, int64(51), allocations[1])
}

func TestAllocateAmount_SingleFundGetsEverything(t *testing.T) {
	funds := []domain.BasketFund{{FundID: "FUND_A", Percent: 100}}

	allocations, err := AllocateAmount(777, funds)
	require.NoError(t, err)
	assert.Equal(t, []int64{777}, allocations)
}

func TestAllocateAmount_RejectsNonPositiveTotal(t *testing.T) {
	funds := []domain.BasketFund{{FundID: "FUND_A", Percent: 100}}

	_, err := AllocateAmount(0, funds)
	assert.Error(t, err)

	_, err = AllocateAmount(-100, funds)
	assert.Error(t, err)
}

func TestAllocateAmount_RejectsEmptyBasket(t *testing.T) {
	_, err := AllocateAmount(1000, nil)
	assert.Error(t, err)
}

func TestAllocateAmount_RejectsPercentagesOverHundred(t *testing.T) {
	funds := []domain.BasketFund{
		{FundID: "FUND_A", Percent: 90},
		{FundID: "FUND_B", Percent: 90},
		{FundID: "FUND_C", Percent: 10},
	}

	_, err := AllocateAmount(1000, funds)
	assert.Error(t, err)
}
