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

// ReconcilerImpl implements ports.Reconciler: the body of a scheduled status
// poll. It is the only writer of settlement records and the second writer of
// Order state besides the orchestrator.
type ReconcilerImpl struct {
	orders      ports.OrderRepository
	items       ports.OrderItemRepository
	settlements ports.SettlementRepository
	goals       ports.GoalRepository
	jobs        ports.JobRepository
	provider    ports.ProviderGateway
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewReconciler creates a new ReconcilerImpl.
func NewReconciler(
	orders ports.OrderRepository,
	items ports.OrderItemRepository,
	settlements ports.SettlementRepository,
	goals ports.GoalRepository,
	jobs ports.JobRepository,
	provider ports.ProviderGateway,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *ReconcilerImpl {
	return &ReconcilerImpl{
		orders:      orders,
		items:       items,
		settlements: settlements,
		goals:       goals,
		jobs:        jobs,
		provider:    provider,
		transactor:  transactor,
		log:         log,
	}
}

// Reconcile polls the provider for the current status of one submitted order
// reference. It returns done=true once the local order is terminal, which
// tells the scheduler to stop rescheduling. Terminal writes are idempotent:
// a settlement record is inserted only if none exists for the reference.
func (r *ReconcilerImpl) Reconcile(ctx context.Context, jobID string, providerRef string) (bool, error) {
	item, err := r.items.GetByProviderRef(ctx, providerRef)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("load order item: %w", err))
	}
	if item == nil {
		// Reference unknown locally; nothing will ever match, stop polling.
		r.finishJob(ctx, jobID)
		return true, nil
	}

	order, err := r.orders.GetByID(ctx, item.OrderID)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("load order: %w", err))
	}
	if order == nil || order.IsTerminal() {
		r.finishJob(ctx, jobID)
		return true, nil
	}

	pollCount, err := r.jobs.IncrementPoll(ctx, jobID)
	if err != nil {
		r.log.Warn().Err(err).Str("job_id", jobID).Msg("poll counter increment failed")
	}

	job, err := r.jobs.Get(ctx, jobID)
	if err != nil {
		r.log.Warn().Err(err).Str("job_id", jobID).Msg("job row lookup failed")
	}

	status, err := r.provider.FetchStatus(ctx, providerRef)
	if err != nil {
		r.log.Warn().Err(err).
			Str("provider_ref", providerRef).
			Int("poll_count", pollCount).
			Msg("provider status fetch failed, retrying next cycle")
		if job != nil && job.PollBudgetExhausted() {
			if failErr := r.forceFail(ctx, jobID, order, item); failErr != nil {
				return false, failErr
			}
			return true, nil
		}
		return false, nil
	}

	// A terminal provider status counts as done only once the local write
	// committed; a failed write leaves the job scheduled for the next cycle.
	switch status.Status {
	case ports.ProviderStatusAllotted:
		if err := r.settle(ctx, jobID, order, item, status); err != nil {
			return false, err
		}
		return true, nil
	case ports.ProviderStatusRejected:
		if err := r.fail(ctx, jobID, order, item); err != nil {
			return false, err
		}
		return true, nil
	default:
		if job != nil && job.PollBudgetExhausted() {
			r.log.Warn().
				Str("provider_ref", providerRef).
				Int("poll_count", pollCount).
				Msg("poll budget exhausted, forcing order FAILED")
			if err := r.forceFail(ctx, jobID, order, item); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	}
}

// settle persists the settlement detail and flips the order COMPLETED. Safe
// under duplicate executions: the settlement insert is guarded by an
// existence check on the provider reference.
func (r *ReconcilerImpl) settle(ctx context.Context, jobID string, order *domain.Order, item *domain.OrderItem, status *ports.OrderStatusResult) error {
	exists, err := r.settlements.ExistsByProviderRef(ctx, *item.ProviderOrderRef)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("check settlement exists: %w", err))
	}

	dbTx, err := r.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if !exists {
		units := status.Units
		if order.Kind == domain.OrderKindSell {
			units = -units
		}
		settledAt := status.SettledAt
		if settledAt.IsZero() {
			settledAt = time.Now().UTC()
		}
		record := &domain.SettlementRecord{
			ID:               uuid.New(),
			UserID:           order.UserID,
			GoalID:           order.GoalID,
			FundID:           item.FundID,
			ProviderOrderRef: *item.ProviderOrderRef,
			Units:            units,
			NAV:              status.NAV,
			Amount:           status.Amount,
			SettledAt:        settledAt,
		}
		if err := r.settlements.Create(ctx, dbTx, record); err != nil {
			return apperror.InternalError(fmt.Errorf("create settlement record: %w", err))
		}
	}

	if err := r.items.UpdateState(ctx, dbTx, item.ID, domain.OrderItemSettled); err != nil {
		return apperror.InternalError(fmt.Errorf("mark item settled: %w", err))
	}

	done, err := r.siblingsTerminal(ctx, order.ID, item.ID)
	if err != nil {
		return err
	}
	if done && order.CanTransition(domain.OrderStatusCompleted) {
		order.Status = domain.OrderStatusCompleted
		if err := r.orders.Update(ctx, dbTx, order); err != nil {
			return err
		}
		// Settlement is the single site advancing the goal's running SIP
		// total, by the recurring commitment that just went live.
		if order.Kind == domain.OrderKindSIP && order.SIP != nil {
			if err := r.goals.AddToSIPTotal(ctx, dbTx, order.GoalID, order.SIP.RecurringAmount); err != nil {
				return apperror.InternalError(fmt.Errorf("update goal sip total: %w", err))
			}
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	r.finishJob(ctx, jobID)
	r.log.Info().
		Str("order_id", order.ID.String()).
		Str("provider_ref", *item.ProviderOrderRef).
		Msg("order settled by reconciliation")
	return nil
}

func (r *ReconcilerImpl) fail(ctx context.Context, jobID string, order *domain.Order, item *domain.OrderItem) error {
	dbTx, err := r.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := r.items.UpdateState(ctx, dbTx, item.ID, domain.OrderItemFailed); err != nil {
		return apperror.InternalError(fmt.Errorf("mark item failed: %w", err))
	}
	if order.CanTransition(domain.OrderStatusFailed) {
		order.Status = domain.OrderStatusFailed
		if err := r.orders.Update(ctx, dbTx, order); err != nil {
			return err
		}
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	r.finishJob(ctx, jobID)
	r.log.Info().
		Str("order_id", order.ID.String()).
		Str("provider_ref", *item.ProviderOrderRef).
		Msg("order failed by reconciliation")
	return nil
}

// forceFail applies the bounded-retry policy: after the poll budget is spent
// the order is failed rather than polled forever.
func (r *ReconcilerImpl) forceFail(ctx context.Context, jobID string, order *domain.Order, item *domain.OrderItem) error {
	return r.fail(ctx, jobID, order, item)
}

// siblingsTerminal reports whether every other item of the order is already
// settled or failed.
func (r *ReconcilerImpl) siblingsTerminal(ctx context.Context, orderID, currentItemID uuid.UUID) (bool, error) {
	items, err := r.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("list sibling items: %w", err))
	}
	for _, it := range items {
		if it.ID == currentItemID {
			continue
		}
		if it.State != domain.OrderItemSettled && it.State != domain.OrderItemFailed {
			return false, nil
		}
	}
	return true, nil
}

func (r *ReconcilerImpl) finishJob(ctx context.Context, jobID string) {
	if err := r.jobs.MarkDone(ctx, jobID); err != nil {
		r.log.Warn().Err(err).Str("job_id", jobID).Msg("failed to mark job done")
	}
}
