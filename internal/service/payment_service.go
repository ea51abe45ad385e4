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

// SchedulingConfig carries the reconciliation cadence handed to the
// fulfillment scheduler when orders are submitted.
type SchedulingConfig struct {
	PollInterval time.Duration
	VerifyDelay  time.Duration
	MaxPolls     int
}

// PaymentServiceImpl implements ports.PaymentService. It is one of exactly
// two writers of the Payment/Order aggregates; the other is the reconciler.
type PaymentServiceImpl struct {
	payments      ports.PaymentRepository
	orders        ports.OrderRepository
	items         ports.OrderItemRepository
	goals         ports.GoalRepository
	beneficiaries ports.BeneficiaryRepository
	provider      ports.ProviderGateway
	scheduler     ports.FulfillmentScheduler
	transactor    ports.DBTransactor
	callbackURL   string
	sched         SchedulingConfig
	log           zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	payments ports.PaymentRepository,
	orders ports.OrderRepository,
	items ports.OrderItemRepository,
	goals ports.GoalRepository,
	beneficiaries ports.BeneficiaryRepository,
	provider ports.ProviderGateway,
	scheduler ports.FulfillmentScheduler,
	transactor ports.DBTransactor,
	callbackURL string,
	sched SchedulingConfig,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		payments:      payments,
		orders:        orders,
		items:         items,
		goals:         goals,
		beneficiaries: beneficiaries,
		provider:      provider,
		scheduler:     scheduler,
		transactor:    transactor,
		callbackURL:   callbackURL,
		sched:         sched,
		log:           log,
	}
}

// CreatePaymentWithOrders assembles a Payment aggregate with its Orders and
// per-fund OrderItems, then requests the provider authorization code scoped
// to the distinct funds involved. The provider call happens before the
// persistence commit, so a provider failure aborts creation entirely.
func (s *PaymentServiceImpl) CreatePaymentWithOrders(ctx context.Context, req ports.CreatePaymentRequest) (*domain.Payment, error) {
	if len(req.Orders) == 0 {
		return nil, apperror.Validation("payment requires at least one order")
	}

	beneficiary, err := s.beneficiaries.GetByID(ctx, req.ChildID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load beneficiary: %w", err))
	}
	if beneficiary == nil {
		return nil, apperror.ErrNotFound("beneficiary")
	}

	eligible, err := s.goals.ListEligibleByChild(ctx, req.UserID, req.ChildID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list eligible goals: %w", err))
	}
	if len(eligible) == 0 {
		return nil, apperror.ErrNoEligibleGoals()
	}
	goalsByID := make(map[int64]*domain.Goal, len(eligible))
	for i := range eligible {
		goalsByID[eligible[i].ID] = &eligible[i]
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:                 uuid.New(),
		UserID:             req.UserID,
		ChildID:            req.ChildID,
		InvestorRef:        beneficiary.InvestorRef,
		Method:             req.Method,
		VerificationStatus: domain.VerificationPending,
		Status:             domain.PaymentStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var orders []*domain.Order
	var allItems []domain.OrderItem
	fundSet := make(map[string]struct{})

	for _, spec := range req.Orders {
		if spec.Amount <= 0 {
			return nil, apperror.ErrInvalidAmount()
		}
		goal, ok := goalsByID[spec.GoalID]
		if !ok {
			return nil, apperror.ErrNotFound("goal")
		}

		order := &domain.Order{
			ID:        uuid.New(),
			PaymentID: &payment.ID,
			UserID:    req.UserID,
			GoalID:    spec.GoalID,
			Kind:      spec.Kind,
			Amount:    spec.Amount,
			Status:    domain.OrderStatusNotPlaced,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if spec.Kind == domain.OrderKindSIP {
			order.SIP = &domain.SIPDetail{
				StartDate:       spec.StartDate,
				NextRunAt:       spec.StartDate,
				RecurringAmount: spec.RecurringAmount,
			}
		}

		allocations, err := AllocateAmount(spec.Amount, goal.BasketFunds)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
		for i, fund := range goal.BasketFunds {
			allItems = append(allItems, domain.OrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				FundID:    fund.FundID,
				Amount:    allocations[i],
				State:     domain.OrderItemPending,
				CreatedAt: now,
			})
			fundSet[fund.FundID] = struct{}{}
		}

		orders = append(orders, order)
	}

	fundIDs := make([]string, 0, len(fundSet))
	for id := range fundSet {
		fundIDs = append(fundIDs, id)
	}

	otpRef, err := s.provider.SendOtp(ctx, ports.OtpScope{
		InvestorRef: beneficiary.InvestorRef,
		FundIDs:     fundIDs,
	})
	if err != nil {
		s.log.Error().Err(err).Str("investor_ref", beneficiary.InvestorRef).Msg("provider send otp failed")
		return nil, apperror.ErrProviderFailure(fmt.Errorf("send otp: %w", err))
	}
	payment.ProviderOtpRef = &otpRef

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.payments.Create(ctx, dbTx, payment); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create payment: %w", err))
	}
	for _, order := range orders {
		if err := s.orders.Create(ctx, dbTx, order); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create order: %w", err))
		}
	}
	if err := s.items.CreateBatch(ctx, dbTx, allItems); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create order items: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Int64("user_id", req.UserID).
		Int("orders", len(orders)).
		Int("funds", len(fundIDs)).
		Msg("payment created with orders")

	return payment, nil
}

// Verify validates the OTP code against the stored authorization reference.
// On success the Payment becomes VERIFIED; SIP orders with a recurring amount
// additionally get a provider mandate sized to the summed SIP amount.
func (s *PaymentServiceImpl) Verify(ctx context.Context, paymentID uuid.UUID, code string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load payment: %w", err))
	}
	if payment == nil {
		return nil, apperror.ErrNotFound("payment")
	}
	if payment.IsVerified() {
		return nil, apperror.ErrInvalidState("payment is already verified")
	}
	if payment.ProviderOtpRef == nil {
		return nil, apperror.ErrInvalidState("payment has no authorization reference")
	}

	ok, err := s.provider.VerifyOtp(ctx, *payment.ProviderOtpRef, code)
	if err != nil {
		s.log.Error().Err(err).Str("payment_id", paymentID.String()).Msg("provider verify otp failed")
		return nil, apperror.ErrProviderFailure(fmt.Errorf("verify otp: %w", err))
	}
	if !ok {
		return nil, apperror.ErrInvalidOtp()
	}

	payment.VerificationStatus = domain.VerificationVerified

	// A mandate backs the recurring leg; its limit is the summed SIP amount.
	sipTotal, err := s.sumRecurringAmounts(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if sipTotal > 0 {
		beneficiary, err := s.beneficiaries.GetByID(ctx, payment.ChildID)
		if err != nil || beneficiary == nil {
			return nil, apperror.InternalError(fmt.Errorf("load beneficiary for mandate: %w", err))
		}
		mandate, err := s.provider.CreateMandate(ctx, ports.MandateRequest{
			InvestorRef: payment.InvestorRef,
			BankRef:     beneficiary.BankRef,
			MandateType: string(payment.Method),
			AuthLimit:   sipTotal,
		})
		if err != nil {
			s.log.Error().Err(err).Str("payment_id", paymentID.String()).Msg("provider create mandate failed")
			return nil, apperror.ErrProviderFailure(fmt.Errorf("create mandate: %w", err))
		}
		payment.MandateRef = &mandate.MandateRef
		payment.MandateURL = &mandate.RedirectURL
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.payments.Update(ctx, dbTx, payment); err != nil {
		return nil, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("payment_id", paymentID.String()).Msg("payment verified")
	return payment, nil
}

// Initiate submits the bulk order and starts the bank-transfer leg. Both
// sub-steps are idempotent with respect to already-set provider references,
// so a partial failure is recovered by calling Initiate again.
func (s *PaymentServiceImpl) Initiate(ctx context.Context, paymentID uuid.UUID, clientIP string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load payment: %w", err))
	}
	if payment == nil {
		return nil, apperror.ErrNotFound("payment")
	}
	if !payment.IsVerified() {
		return nil, apperror.ErrPaymentNotVerified()
	}
	if payment.IsTerminal() {
		return nil, apperror.ErrInvalidState("payment is already settled")
	}

	beneficiary, err := s.beneficiaries.GetByID(ctx, payment.ChildID)
	if err != nil || beneficiary == nil {
		return nil, apperror.InternalError(fmt.Errorf("load beneficiary: %w", err))
	}

	orders, err := s.orders.ListByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list orders: %w", err))
	}

	var total int64
	itemsByOrder := make(map[uuid.UUID][]domain.OrderItem, len(orders))
	for _, order := range orders {
		total += order.Amount
		items, err := s.items.ListByOrderID(ctx, order.ID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("list order items: %w", err))
		}
		itemsByOrder[order.ID] = items
	}

	// Sub-step 1: bulk order submission, skipped when the reference exists.
	if payment.ProviderOrderRef == nil {
		if err := s.submitBulkOrder(ctx, payment, beneficiary, orders, itemsByOrder, clientIP); err != nil {
			return nil, err
		}
	}

	// Sub-step 2: payment initiation, skipped when the URL exists.
	if payment.PaymentURL == nil {
		result, err := s.provider.CreatePayment(ctx, ports.PaymentInitRequest{
			BankRef:     beneficiary.BankRef,
			Method:      string(payment.Method),
			OrderRefs:   []string{*payment.ProviderOrderRef},
			Amount:      total,
			CallbackURL: s.callbackURL,
		})
		if err != nil {
			s.log.Error().Err(err).Str("payment_id", paymentID.String()).Msg("provider create payment failed")
			return nil, apperror.ErrProviderFailure(fmt.Errorf("create payment: %w", err))
		}
		payment.ProviderPaymentRef = &result.PaymentRef
		payment.PaymentURL = &result.RedirectURL
	}

	payment.Status = domain.PaymentStatusActive

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.payments.Update(ctx, dbTx, payment); err != nil {
		return nil, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.scheduleReconciliation(ctx, orders, itemsByOrder)

	s.log.Info().
		Str("payment_id", paymentID.String()).
		Str("provider_order_ref", *payment.ProviderOrderRef).
		Msg("payment initiated")

	return payment, nil
}

// submitBulkOrder sends all pending buy lines to the provider in one call and
// records the resulting references. Items already carrying a reference are
// never re-submitted.
func (s *PaymentServiceImpl) submitBulkOrder(
	ctx context.Context,
	payment *domain.Payment,
	beneficiary *domain.Beneficiary,
	orders []domain.Order,
	itemsByOrder map[uuid.UUID][]domain.OrderItem,
	clientIP string,
) error {
	var details []ports.ProviderOrderDetail
	var pending []domain.OrderItem
	for _, order := range orders {
		if order.Kind == domain.OrderKindSell {
			continue
		}
		for _, item := range itemsByOrder[order.ID] {
			if item.IsSubmitted() {
				continue
			}
			details = append(details, ports.ProviderOrderDetail{
				FundID: item.FundID,
				Amount: item.Amount,
			})
			pending = append(pending, item)
		}
	}
	if len(details) == 0 {
		return apperror.ErrInvalidState("no submittable order items")
	}

	result, err := s.provider.PlaceBulkOrder(ctx, ports.BulkOrderRequest{
		InvestorRef: payment.InvestorRef,
		AuthRef:     derefOr(payment.ProviderOtpRef, ""),
		InvestorIP:  clientIP,
		Orders:      details,
	})
	if err != nil {
		s.log.Error().Err(err).Str("payment_id", payment.ID.String()).Msg("provider bulk order failed")
		return apperror.ErrProviderFailure(fmt.Errorf("place bulk order: %w", err))
	}

	payment.ProviderOrderRef = &result.BulkOrderRef

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	for _, item := range pending {
		ref, ok := result.ItemRefs[item.FundID]
		if !ok {
			ref = result.BulkOrderRef
		}
		if _, err := s.items.SetProviderRefs(ctx, dbTx, item.ID, ref, ""); err != nil {
			return apperror.InternalError(fmt.Errorf("set item provider refs: %w", err))
		}
		if err := s.items.UpdateState(ctx, dbTx, item.ID, domain.OrderItemSubmitted); err != nil {
			return apperror.InternalError(fmt.Errorf("mark item submitted: %w", err))
		}
	}
	for i := range orders {
		order := &orders[i]
		if order.Kind == domain.OrderKindSell || !order.CanTransition(domain.OrderStatusPlaced) {
			continue
		}
		order.Status = domain.OrderStatusPlaced
		if err := s.orders.Update(ctx, dbTx, order); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// scheduleReconciliation registers polling jobs for every submitted item.
// Registration failures are logged and swallowed: the order placement already
// succeeded and must not be failed retroactively.
func (s *PaymentServiceImpl) scheduleReconciliation(ctx context.Context, orders []domain.Order, itemsByOrder map[uuid.UUID][]domain.OrderItem) {
	var jobs []domain.ReconciliationJob
	now := time.Now().UTC()
	for _, order := range orders {
		items, err := s.items.ListByOrderID(ctx, order.ID)
		if err != nil {
			items = itemsByOrder[order.ID]
		}
		for _, item := range items {
			if !item.IsSubmitted() {
				continue
			}
			ref := *item.ProviderOrderRef
			jobs = append(jobs,
				domain.ReconciliationJob{
					ID:          domain.ReconciliationJobID(ref),
					OrderID:     order.ID,
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
					OrderID:     order.ID,
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
	}
	s.scheduler.RegisterBatch(ctx, jobs)
}

// MarkSuccess transitions every order under the referenced payment to
// COMPLETED. Idempotent: an already-terminal payment is a no-op.
func (s *PaymentServiceImpl) MarkSuccess(ctx context.Context, providerPaymentRef string) error {
	return s.markTerminal(ctx, providerPaymentRef, domain.OrderStatusCompleted, domain.PaymentStatusCompleted)
}

// MarkFailure transitions every order under the referenced payment to FAILED.
// Idempotent: an already-terminal payment is a no-op.
func (s *PaymentServiceImpl) MarkFailure(ctx context.Context, providerPaymentRef string) error {
	return s.markTerminal(ctx, providerPaymentRef, domain.OrderStatusFailed, domain.PaymentStatusFailed)
}

func (s *PaymentServiceImpl) markTerminal(ctx context.Context, providerPaymentRef string, orderStatus domain.OrderStatus, paymentStatus domain.PaymentStatus) error {
	payment, err := s.payments.GetByProviderPaymentRef(ctx, providerPaymentRef)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load payment by provider ref: %w", err))
	}
	if payment == nil {
		return apperror.ErrNotFound("payment")
	}
	if payment.IsTerminal() {
		return nil
	}

	orders, err := s.orders.ListByPaymentID(ctx, payment.ID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("list orders: %w", err))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	for i := range orders {
		order := &orders[i]
		if !order.CanTransition(orderStatus) {
			continue
		}
		order.Status = orderStatus
		if err := s.orders.Update(ctx, dbTx, order); err != nil {
			return err
		}
	}

	payment.Status = paymentStatus
	if err := s.payments.Update(ctx, dbTx, payment); err != nil {
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("status", string(paymentStatus)).
		Msg("payment settled by callback")
	return nil
}

func (s *PaymentServiceImpl) sumRecurringAmounts(ctx context.Context, paymentID uuid.UUID) (int64, error) {
	orders, err := s.orders.ListByPaymentID(ctx, paymentID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("list orders: %w", err))
	}
	var total int64
	for _, order := range orders {
		if order.Kind == domain.OrderKindSIP && order.SIP != nil {
			total += order.SIP.RecurringAmount
		}
	}
	return total, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
