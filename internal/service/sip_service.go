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

// SipServiceImpl implements ports.SipService: submission of recurring plans
// once their backing mandate has been authorized by the investor.
type SipServiceImpl struct {
	payments      ports.PaymentRepository
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

// NewSipService creates a new SipServiceImpl.
func NewSipService(
	payments ports.PaymentRepository,
	orders ports.OrderRepository,
	items ports.OrderItemRepository,
	goals ports.GoalRepository,
	beneficiaries ports.BeneficiaryRepository,
	provider ports.ProviderGateway,
	scheduler ports.FulfillmentScheduler,
	transactor ports.DBTransactor,
	sched SchedulingConfig,
	log zerolog.Logger,
) *SipServiceImpl {
	return &SipServiceImpl{
		payments:      payments,
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

// SubmitSipOrders places the recurring plan lines of a payment whose mandate
// has been authorized and confirms them with the provider. The plan leg gets
// its own line items, separate from the lump-sum items the bulk path submits,
// so the two submissions never race for the same rows. The order's mandate
// link is the idempotency anchor: orders already linked are skipped on
// re-invocation.
func (s *SipServiceImpl) SubmitSipOrders(ctx context.Context, paymentID uuid.UUID) error {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load payment: %w", err))
	}
	if payment == nil {
		return apperror.ErrNotFound("payment")
	}
	if !payment.IsVerified() {
		return apperror.ErrPaymentNotVerified()
	}
	if payment.MandateRef == nil {
		return apperror.ErrInvalidState("payment has no authorized mandate")
	}

	orders, err := s.orders.ListByPaymentID(ctx, paymentID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("list orders: %w", err))
	}

	var plans []ports.SipPlanDetail
	planOrder := make(map[string]*domain.Order) // fund ID -> owning order
	planAmount := make(map[string]int64)

	for i := range orders {
		order := &orders[i]
		if order.Kind != domain.OrderKindSIP || order.SIP == nil {
			continue
		}
		if order.SIP.MandateRef != nil {
			// Plan leg already placed by an earlier invocation.
			continue
		}
		goal, err := s.goals.GetByID(ctx, order.GoalID)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("load goal: %w", err))
		}
		if goal == nil {
			return apperror.ErrNotFound("goal")
		}
		allocations, err := AllocateAmount(order.SIP.RecurringAmount, goal.BasketFunds)
		if err != nil {
			return apperror.Validation(err.Error())
		}
		for j, fund := range goal.BasketFunds {
			plans = append(plans, ports.SipPlanDetail{
				FundID:          fund.FundID,
				RecurringAmount: allocations[j],
				StartDate:       order.SIP.StartDate,
				MandateRef:      *payment.MandateRef,
			})
			planOrder[fund.FundID] = order
			planAmount[fund.FundID] = allocations[j]
		}
	}
	if len(plans) == 0 {
		return apperror.ErrInvalidState("no pending sip plans for this payment")
	}

	results, err := s.provider.PlaceSipOrder(ctx, plans)
	if err != nil {
		s.log.Error().Err(err).Str("payment_id", paymentID.String()).Msg("provider sip order failed")
		return apperror.ErrProviderFailure(fmt.Errorf("place sip order: %w", err))
	}

	now := time.Now().UTC()
	var planItems []domain.OrderItem
	var orderRefs []string
	var jobs []domain.ReconciliationJob
	submitted := make(map[uuid.UUID]bool)
	for i := range results {
		res := results[i]
		order, ok := planOrder[res.FundID]
		if !ok {
			continue
		}
		item := domain.OrderItem{
			ID:               uuid.New(),
			OrderID:          order.ID,
			FundID:           res.FundID,
			Amount:           planAmount[res.FundID],
			ProviderOrderRef: &results[i].OrderRef,
			State:            domain.OrderItemSubmitted,
			CreatedAt:        now,
		}
		if res.PaymentRef != "" {
			item.ProviderPaymentRef = &results[i].PaymentRef
		}
		planItems = append(planItems, item)
		orderRefs = append(orderRefs, res.OrderRef)
		submitted[order.ID] = true
		jobs = append(jobs, domain.ReconciliationJob{
			ID:          domain.ReconciliationJobID(res.OrderRef),
			OrderID:     order.ID,
			ProviderRef: res.OrderRef,
			Kind:        domain.JobKindRecurring,
			Interval:    s.sched.PollInterval,
			RunAfter:    now.Add(s.sched.PollInterval),
			Status:      domain.JobStatusActive,
			MaxPolls:    s.sched.MaxPolls,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if len(planItems) == 0 {
		return apperror.ErrProviderFailure(fmt.Errorf("sip submission returned no usable references"))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.items.CreateBatch(ctx, dbTx, planItems); err != nil {
		return apperror.InternalError(fmt.Errorf("create sip plan items: %w", err))
	}

	// Only orders whose plans were actually placed in this call move forward;
	// a partial provider response leaves the rest eligible for a retry.
	for i := range orders {
		order := &orders[i]
		if !submitted[order.ID] {
			continue
		}
		if order.CanTransition(domain.OrderStatusPlaced) {
			order.Status = domain.OrderStatusPlaced
		}
		order.SIP.MandateRef = payment.MandateRef
		order.SIP.NextRunAt = order.SIP.NextRunAt.AddDate(0, 1, 0)
		if err := s.orders.Update(ctx, dbTx, order); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-submission confirmation and consent are best-effort provider calls.
	if err := s.provider.ConfirmOrder(ctx, orderRefs); err != nil {
		s.log.Warn().Err(err).Str("payment_id", paymentID.String()).Msg("sip order confirmation failed")
	}
	if beneficiary, err := s.beneficiaries.GetByID(ctx, payment.ChildID); err == nil && beneficiary != nil && beneficiary.Phone != nil {
		for _, ref := range orderRefs {
			if err := s.provider.UpdateConsent(ctx, ref, *beneficiary.Phone, "APPROVED"); err != nil {
				s.log.Warn().Err(err).Str("order_ref", ref).Msg("sip consent update failed")
			}
		}
	}

	s.scheduler.RegisterBatch(ctx, jobs)

	s.log.Info().
		Str("payment_id", paymentID.String()).
		Int("plans", len(plans)).
		Msg("sip orders submitted")
	return nil
}

// RefreshMandateURL asks the provider to re-issue the confirmation URL of the
// payment's mandate and stores it, so the client can send the investor back
// through the authorization flow.
func (s *SipServiceImpl) RefreshMandateURL(ctx context.Context, paymentID uuid.UUID) (string, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("load payment: %w", err))
	}
	if payment == nil {
		return "", apperror.ErrNotFound("payment")
	}
	if payment.MandateRef == nil {
		return "", apperror.ErrInvalidState("payment has no mandate to authorize")
	}

	mandate, err := s.provider.AuthorizeMandate(ctx, *payment.MandateRef)
	if err != nil {
		s.log.Error().Err(err).Str("payment_id", paymentID.String()).Msg("provider authorize mandate failed")
		return "", apperror.ErrProviderFailure(fmt.Errorf("authorize mandate: %w", err))
	}
	payment.MandateURL = &mandate.RedirectURL

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.payments.Update(ctx, dbTx, payment); err != nil {
		return "", err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return "", apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("payment_id", paymentID.String()).Msg("mandate confirmation url refreshed")
	return mandate.RedirectURL, nil
}
