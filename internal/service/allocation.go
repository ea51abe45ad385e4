package service

import (
	"fmt"

	"fund-order-platform/internal/core/domain"
)

// AllocateAmount splits an order amount across basket funds by percentage.
// Each allocation is floored to the minor currency unit and the last fund
// absorbs the rounding remainder, so the allocations always sum to exactly
// the order amount.
func AllocateAmount(total int64, funds []domain.BasketFund) ([]int64, error) {
	if total <= 0 {
		return nil, fmt.Errorf("allocation total must be positive, got %d", total)
	}
	if len(funds) == 0 {
		return nil, fmt.Errorf("allocation requires at least one basket fund")
	}

	allocations := make([]int64, len(funds))
	var sum int64
	for i, f := range funds {
		if f.Percent < 0 {
			return nil, fmt.Errorf("negative allocation percent for fund %s", f.FundID)
		}
		if i == len(funds)-1 {
			break
		}
		allocations[i] = total * f.Percent / 100 // integer division floors
		sum += allocations[i]
	}

	last := total - sum
	if last < 0 {
		return nil, fmt.Errorf("allocation percentages exceed 100 for %d funds", len(funds))
	}
	allocations[len(funds)-1] = last

	return allocations, nil
}
