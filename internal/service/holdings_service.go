package service

import (
	"context"
	"fmt"
	"math/big"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/pkg/apperror"

	"github.com/rs/zerolog"
)

// NavSource exposes the current NAV of a fund, used to convert amount-based
// sell lines to units.
type NavSource interface {
	CurrentNav(ctx context.Context, fundID string) (int64, error)
}

// HoldingsServiceImpl implements ports.HoldingsService over the settlement
// ledger.
type HoldingsServiceImpl struct {
	settlements ports.SettlementRepository
	folios      ports.FolioRepository
	nav         NavSource
	log         zerolog.Logger
}

// NewHoldingsService creates a new HoldingsServiceImpl.
func NewHoldingsService(
	settlements ports.SettlementRepository,
	folios ports.FolioRepository,
	nav NavSource,
	log zerolog.Logger,
) *HoldingsServiceImpl {
	return &HoldingsServiceImpl{
		settlements: settlements,
		folios:      folios,
		nav:         nav,
		log:         log,
	}
}

// AvailableUnits sums the signed unit deltas for a (user, goal, fund) triple.
// Buys contribute positive, sells negative; a net at or below zero means no
// holding.
func (s *HoldingsServiceImpl) AvailableUnits(ctx context.Context, userID, goalID int64, fundID string) (int64, error) {
	units, err := s.settlements.SumUnits(ctx, userID, goalID, fundID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("sum units: %w", err))
	}
	return units, nil
}

// ValidateSellRequest recomputes availability per requested line and resolves
// the settlement folio for each fund.
func (s *HoldingsServiceImpl) ValidateSellRequest(ctx context.Context, userID int64, lines []ports.SellLine) ([]ports.ValidatedSellLine, error) {
	if len(lines) == 0 {
		return nil, apperror.Validation("sell request has no lines")
	}

	validated := make([]ports.ValidatedSellLine, 0, len(lines))
	for _, line := range lines {
		units := line.Units
		if units == 0 {
			if line.Amount <= 0 {
				return nil, apperror.Validation("sell line needs units or a positive amount")
			}
			nav, err := s.nav.CurrentNav(ctx, line.FundID)
			if err != nil {
				return nil, apperror.ErrProviderFailure(fmt.Errorf("fetch nav for %s: %w", line.FundID, err))
			}
			units = unitsForAmount(line.Amount, nav)
		}
		if units <= 0 {
			return nil, apperror.Validation("sell line resolves to zero units")
		}

		available, err := s.AvailableUnits(ctx, userID, line.GoalID, line.FundID)
		if err != nil {
			return nil, err
		}
		if units > available {
			return nil, apperror.ErrInsufficientHoldings(line.FundID)
		}

		folio, err := s.selectFolio(ctx, userID, line.FundID)
		if err != nil {
			return nil, err
		}

		validated = append(validated, ports.ValidatedSellLine{
			SellLine:    line,
			FolioNumber: folio.FolioNumber,
			Units:       units,
		})
	}

	return validated, nil
}

// selectFolio picks exactly one settlement account for the fund owned by the
// acting user.
func (s *HoldingsServiceImpl) selectFolio(ctx context.Context, userID int64, fundID string) (*domain.Folio, error) {
	folios, err := s.folios.ListByFund(ctx, fundID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list folios: %w", err))
	}
	if len(folios) == 0 {
		return nil, apperror.ErrNotFound("folio")
	}
	for i := range folios {
		if folios[i].UserID == userID {
			return &folios[i], nil
		}
	}
	return nil, apperror.ErrNotOwner("folio")
}

// unitsForAmount converts a minor-unit amount to micro-units at the given
// NAV (micro-rupees per unit). Intermediate math uses big.Int since
// amount * 1e10 can exceed int64.
func unitsForAmount(amount, nav int64) int64 {
	if nav <= 0 {
		return 0
	}
	// units_micro = amount_paise * 10^10 / nav_micro
	n := new(big.Int).Mul(big.NewInt(amount), big.NewInt(10_000_000_000))
	n.Div(n, big.NewInt(nav))
	return n.Int64()
}
