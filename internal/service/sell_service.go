package service

import (
	"context"
	"fmt"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SellServiceImpl implements ports.SellService. Sell orders stand alone: they
// are not owned by a Payment and carry their own MFA authorization instead of
// the payment OTP gate.
type SellServiceImpl struct {
	mfa           ports.MfaService
	holdings      ports.HoldingsService
	orders        ports.OrderRepository
	items         ports.OrderItemRepository
	goals         ports.GoalRepository
	beneficiaries ports.BeneficiaryRepository
	provider      ports.ProviderGateway
	scheduler     ports.FulfillmentScheduler
	transactor    ports.DBTransactor
	sched         SchedulingConfig
	log           zerolog.Logger
}

// NewSellService creates a new SellServiceImpl.
func NewSellService(
	mfa ports.MfaService,
	holdings ports.HoldingsService,
	orders ports.OrderRepository,
	items ports.OrderItemRepository,
	goals ports.GoalRepository,
	beneficiaries ports.BeneficiaryRepository,
	provider ports.ProviderGateway,
	scheduler ports.FulfillmentScheduler,
	transactor ports.DBTransactor,
	sched SchedulingConfig,
	log zerolog.Logger,
) *SellServiceImpl {
	return &SellServiceImpl{
		mfa:           mfa,
		holdings:      holdings,
		orders:        orders,
		items:         items,
		goals:         goals,
		beneficiaries: beneficiaries,
		provider:      provider,
		scheduler:     scheduler,
		transactor:    transactor,
		sched:         sched,
		log:           log,
	}
}

// PlaceSellOrder validates the MFA token and the requested units against the
// holdings ledger, submits the redemption to the provider and registers
// reconciliation jobs for each line.
func (s *SellServiceImpl) PlaceSellOrder(ctx context.Context, req ports.SellOrderRequest) ([]domain.Order, error) {
	if err := s.mfa.ValidateToken(ctx, req.MfaToken, domain.ActionSellOrder); err != nil {
		return nil, err
	}

	validated, err := s.holdings.ValidateSellRequest(ctx, req.UserID, req.Lines)
	if err != nil {
		return nil, err
	}

	investorRef, err := s.resolveInvestorRef(ctx, req.UserID, validated[0].GoalID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orders := make([]domain.Order, 0, len(validated))
	items := make([]domain.OrderItem, 0, len(validated))
	details := make([]ports.SellOrderDetail, 0, len(validated))

	for _, line := range validated {
		order := domain.Order{
			ID:     uuid.New(),
			UserID: req.UserID,
			GoalID: line.GoalID,
			Kind:   domain.OrderKindSell,
			Amount: line.Amount,
			Status: domain.OrderStatusNotPlaced,
			Sell: &domain.SellDetail{
				Reason:      req.Reason,
				FolioNumber: line.FolioNumber,
				Units:       line.Units,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		orders = append(orders, order)
		items = append(items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			FundID:    line.FundID,
			Amount:    line.Amount,
			State:     domain.OrderItemPending,
			CreatedAt: now,
		})
		details = append(details, ports.SellOrderDetail{
			FundID:      line.FundID,
			FolioNumber: line.FolioNumber,
			Units:       line.Units,
		})
	}

	result, err := s.provider.PlaceSellOrder(ctx, investorRef, details)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", req.UserID).Msg("provider sell order failed")
		return nil, apperror.ErrProviderFailure(fmt.Errorf("place sell order: %w", err))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	for i := range orders {
		orders[i].Status = domain.OrderStatusPlaced
		if err := s.orders.Create(ctx, dbTx, &orders[i]); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create sell order: %w", err))
		}
	}
	if err := s.items.CreateBatch(ctx, dbTx, items); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create sell order items: %w", err))
	}
	for i := range items {
		ref, ok := result.ItemRefs[items[i].FundID]
		if !ok {
			continue
		}
		if _, err := s.items.SetProviderRefs(ctx, dbTx, items[i].ID, ref, ""); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("set sell item refs: %w", err))
		}
		if err := s.items.UpdateState(ctx, dbTx, items[i].ID, domain.OrderItemSubmitted); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("mark sell item submitted: %w", err))
		}
		items[i].ProviderOrderRef = &ref
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.scheduleJobs(ctx, orders, items, now)

	s.log.Info().
		Int64("user_id", req.UserID).
		Int("lines", len(orders)).
		Msg("sell orders placed")

	return orders, nil
}

func (s *SellServiceImpl) scheduleJobs(ctx context.Context, orders []domain.Order, items []domain.OrderItem, now time.Time) {
	orderByID := make(map[uuid.UUID]*domain.Order, len(orders))
	for i := range orders {
		orderByID[orders[i].ID] = &orders[i]
	}
	var jobs []domain.ReconciliationJob
	for _, item := range items {
		if !item.IsSubmitted() {
			continue
		}
		ref := *item.ProviderOrderRef
		jobs = append(jobs,
			domain.ReconciliationJob{
				ID:          domain.ReconciliationJobID(ref),
				OrderID:     item.OrderID,
				ProviderRef: ref,
				Kind:        domain.JobKindRecurring,
				Interval:    s.sched.PollInterval,
				RunAfter:    now.Add(s.sched.PollInterval),
				Status:      domain.JobStatusActive,
				MaxPolls:    s.sched.MaxPolls,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			domain.ReconciliationJob{
				ID:          domain.ReconciliationJobID(ref) + ":fast",
				OrderID:     item.OrderID,
				ProviderRef: ref,
				Kind:        domain.JobKindOneShot,
				Interval:    s.sched.VerifyDelay,
				RunAfter:    now.Add(s.sched.VerifyDelay),
				Status:      domain.JobStatusActive,
				MaxPolls:    1,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
		)
	}
	s.scheduler.RegisterBatch(ctx, jobs)
}

// resolveInvestorRef walks goal -> beneficiary to find the provider-side
// investor identity of the acting user.
func (s *SellServiceImpl) resolveInvestorRef(ctx context.Context, userID, goalID int64) (string, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("load goal: %w", err))
	}
	if goal == nil {
		return "", apperror.ErrNotFound("goal")
	}
	if goal.UserID != userID {
		return "", apperror.ErrNotOwner("goal")
	}
	beneficiary, err := s.beneficiaries.GetByID(ctx, goal.ChildID)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("load beneficiary: %w", err))
	}
	if beneficiary == nil {
		return "", apperror.ErrNotFound("beneficiary")
	}
	return beneficiary.InvestorRef, nil
}
