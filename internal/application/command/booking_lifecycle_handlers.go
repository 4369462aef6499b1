package command

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/event"
	"party-paradise/internal/domain/repository"
	"party-paradise/internal/infrastructure/bus"
	"party-paradise/internal/infrastructure/gateway"
	"party-paradise/internal/metrics"
	"party-paradise/pkg/errors"
	"party-paradise/pkg/logger"

	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
)

// UpdateSelectionStatusHandler records a vendor's accept/reject
type UpdateSelectionStatusHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewUpdateSelectionStatusHandler creates a new selection status handler
func NewUpdateSelectionStatusHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus) *UpdateSelectionStatusHandler {
	return &UpdateSelectionStatusHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the selection status command
func (h *UpdateSelectionStatusHandler) Handle(ctx context.Context, cmd *UpdateSelectionStatus) (*UpdateSelectionStatusResult, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}
	if cmd.EventID == "" {
		return nil, errors.NewValidationError("event id is required")
	}
	if cmd.Status != aggregate.SelectionAccepted && cmd.Status != aggregate.SelectionRejected {
		return nil, errors.NewValidationError("status must be accepted or rejected")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	eventRepo := uow.EventRepository()
	evt, err := eventRepo.GetByID(ctx, cmd.EventID)
	if err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "event")
	}

	allAccepted, err := evt.RespondToBooking(cmd.VendorID, cmd.Status)
	if err != nil {
		uow.Rollback(ctx)
		if stderrors.Is(err, aggregate.ErrNotSelected) {
			return nil, errors.NewForbiddenError("you are not a selected vendor for this event")
		}
		return nil, domainError(err, "event")
	}

	events := evt.GetUncommittedEvents()
	if err := eventRepo.Save(ctx, evt); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "event")
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish booking events")
	}

	return &UpdateSelectionStatusResult{Event: evt, AllVendorsAccepted: allAccepted}, nil
}

// CancelEventHandler refunds accepted vendors and deletes the event
type CancelEventHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	gateway    gateway.PaymentGateway
}

// NewCancelEventHandler creates a new cancel event handler
func NewCancelEventHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
	paymentGateway gateway.PaymentGateway,
) *CancelEventHandler {
	return &CancelEventHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
		gateway:    paymentGateway,
	}
}

// Handle reverses every settled payment of an accepted vendor, then deletes
// the event. Per-vendor refund failures do not stop the deletion.
func (h *CancelEventHandler) Handle(ctx context.Context, cmd *CancelEvent) (*CancelEventResult, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	evt, err := loadOwnedEvent(ctx, uow.EventRepository(), cmd.EventID, cmd.HostID)
	uow.Close()
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).WithField("event_id", evt.ID())

	outcomes := make([]RefundOutcome, 0, len(evt.AcceptedVendorIDs()))
	for _, vendorID := range evt.AcceptedVendorIDs() {
		outcome := h.refundVendor(ctx, evt, vendorID)
		metrics.Refunds.WithLabelValues(outcome.Status).Inc()

		entry := log.WithFields(logrus.Fields{"vendor_id": vendorID, "status": outcome.Status})
		if outcome.Status == RefundStatusFailed {
			entry.WithField("error", outcome.Error).Warn("refund failed")
		} else {
			entry.Info("refund processed")
		}
		outcomes = append(outcomes, outcome)
	}

	if err := h.deleteEvent(ctx, evt); err != nil {
		return nil, err
	}

	refunded := 0
	for _, o := range outcomes {
		if o.Status == RefundStatusRefunded {
			refunded++
		}
	}

	message := "Event deleted successfully"
	if len(outcomes) > 0 {
		message = fmt.Sprintf("Event deleted successfully. %d of %d accepted vendor(s) refunded", refunded, len(outcomes))
	}

	return &CancelEventResult{
		EventID: evt.ID(),
		Refunds: outcomes,
		Message: message,
	}, nil
}

// refundVendor reverses one vendor's completed payment and ledger credit in
// a single unit of work, then asks the gateway for the refund best-effort
func (h *CancelEventHandler) refundVendor(ctx context.Context, evt *aggregate.Event, vendorID string) RefundOutcome {
	outcome := RefundOutcome{VendorID: vendorID}

	failed := func(err error) RefundOutcome {
		outcome.Status = RefundStatusFailed
		outcome.Error = err.Error()
		return outcome
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return failed(err)
	}

	paymentRepo := uow.PaymentRepository()
	payment, err := paymentRepo.FindCompleted(ctx, evt.ID(), vendorID)
	if err != nil {
		uow.Rollback(ctx)
		if stderrors.Is(err, repository.ErrNotFound) {
			outcome.Status = RefundStatusNoPaymentFound
			return outcome
		}
		return failed(err)
	}

	if err := payment.MarkRefunded("refund_" + shortuuid.New()); err != nil {
		uow.Rollback(ctx)
		return failed(err)
	}

	// a payment never credited to a ledger has nothing to reverse
	earningsRepo := uow.EarningsRepository()
	ledger, err := earningsRepo.GetByVendorID(ctx, vendorID)
	switch {
	case stderrors.Is(err, repository.ErrNotFound):
		ledger = nil
		logger.FromContext(ctx).WithField("vendor_id", vendorID).Warn("no earnings ledger to reverse for refunded payment")
	case err != nil:
		uow.Rollback(ctx)
		return failed(err)
	default:
		description := fmt.Sprintf("Refund for cancelled event %s", evt.Details().Name)
		if err := ledger.ProcessRefund(evt.ID(), payment.ID(), payment.Amount(), description); err != nil {
			uow.Rollback(ctx)
			return failed(err)
		}
	}

	var events []event.DomainEvent
	events = append(events, payment.GetUncommittedEvents()...)
	if err := paymentRepo.Save(ctx, payment); err != nil {
		uow.Rollback(ctx)
		return failed(err)
	}
	if ledger != nil {
		events = append(events, ledger.GetUncommittedEvents()...)
		if err := earningsRepo.Save(ctx, ledger); err != nil {
			uow.Rollback(ctx)
			return failed(err)
		}
	}
	if err := uow.Commit(ctx); err != nil {
		return failed(err)
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish refund events")
	}

	if gatewayRefundID, err := h.gateway.Refund(ctx, payment.OrderID(), payment.Amount(), "event cancelled"); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("payment_id", payment.ID()).Warn("gateway refund failed")
	} else if gatewayRefundID != "" {
		payment.SetRefundID(gatewayRefundID)
		h.saveRefundID(ctx, payment)
	}

	outcome.Status = RefundStatusRefunded
	outcome.PaymentID = payment.ID()
	outcome.Amount = payment.Amount()
	outcome.RefundID = payment.RefundID()
	return outcome
}

func (h *CancelEventHandler) saveRefundID(ctx context.Context, payment *aggregate.Payment) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to record gateway refund id")
		return
	}
	if err := uow.PaymentRepository().Save(ctx, payment); err != nil {
		uow.Rollback(ctx)
		logger.FromContext(ctx).WithError(err).Warn("failed to record gateway refund id")
		return
	}
	if err := uow.Commit(ctx); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to record gateway refund id")
	}
}

func (h *CancelEventHandler) deleteEvent(ctx context.Context, evt *aggregate.Event) error {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}
	if err := uow.EventRepository().Delete(ctx, evt.ID()); err != nil {
		uow.Rollback(ctx)
		return domainError(err, "event")
	}
	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	evt.MarkDeleted()
	if err := h.eventBus.PublishBatch(ctx, evt.GetUncommittedEvents()); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish event deletion")
	}
	evt.MarkEventsAsCommitted()
	return nil
}

// CompleteEventHandler closes a confirmed event and clears vendor funds
type CompleteEventHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewCompleteEventHandler creates a new complete event handler
func NewCompleteEventHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus) *CompleteEventHandler {
	return &CompleteEventHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the complete event command
func (h *CompleteEventHandler) Handle(ctx context.Context, cmd *CompleteEvent) (*CompleteEventResult, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}

	evt, err := mutateEvent(ctx, h.uowFactory, h.eventBus, cmd.EventID, cmd.HostID, func(evt *aggregate.Event) error {
		if err := evt.Complete(); err != nil {
			return errors.NewValidationError(err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	releases := make([]ReleaseOutcome, 0, len(evt.AcceptedVendorIDs()))
	for _, vendorID := range evt.AcceptedVendorIDs() {
		release := h.releaseFunds(ctx, evt.ID(), vendorID)
		if release.Error != "" {
			logger.FromContext(ctx).WithFields(logrus.Fields{
				"event_id":  evt.ID(),
				"vendor_id": vendorID,
				"error":     release.Error,
			}).Warn("funds release failed")
		}
		releases = append(releases, release)
	}

	return &CompleteEventResult{Event: evt, Releases: releases}, nil
}

func (h *CompleteEventHandler) releaseFunds(ctx context.Context, eventID, vendorID string) ReleaseOutcome {
	release := ReleaseOutcome{VendorID: vendorID}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		release.Error = err.Error()
		return release
	}

	payment, err := uow.PaymentRepository().FindCompleted(ctx, eventID, vendorID)
	if err != nil {
		uow.Rollback(ctx)
		if stderrors.Is(err, repository.ErrNotFound) {
			release.Error = "no completed payment found"
		} else {
			release.Error = err.Error()
		}
		return release
	}
	release.Amount = payment.Amount()

	fail := func(err error) ReleaseOutcome {
		uow.Rollback(ctx)
		release.Error = err.Error()
		return release
	}

	earningsRepo := uow.EarningsRepository()
	ledger, err := earningsRepo.GetByVendorID(ctx, vendorID)
	if err != nil {
		return fail(err)
	}
	if err := ledger.MovePendingToAvailable(payment.Amount()); err != nil {
		return fail(err)
	}

	events := ledger.GetUncommittedEvents()
	if err := earningsRepo.Save(ctx, ledger); err != nil {
		return fail(err)
	}
	if err := uow.Commit(ctx); err != nil {
		release.Error = err.Error()
		return release
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish ledger events")
	}
	release.Released = true
	return release
}

// SweepDroppedEventsHandler marks stale, never-accepted events as dropped
type SweepDroppedEventsHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	now        func() time.Time
}

// NewSweepDroppedEventsHandler creates a new sweep handler
func NewSweepDroppedEventsHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus) *SweepDroppedEventsHandler {
	return &SweepDroppedEventsHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
		now:        time.Now,
	}
}

// Handle returns every stale event for hostID (all hosts when empty) and
// persists the ones not yet marked dropped
func (h *SweepDroppedEventsHandler) Handle(ctx context.Context, hostID string) ([]*aggregate.Event, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	now := h.now()
	eventRepo := uow.EventRepository()
	candidates, err := eventRepo.ListDroppable(ctx, hostID, aggregate.StartOfDay(now))
	if err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "events")
	}

	var (
		stale   []*aggregate.Event
		events  []event.DomainEvent
		dropped int
	)
	for _, evt := range candidates {
		if !evt.IsStale(now) {
			continue
		}
		stale = append(stale, evt)
		if !evt.MarkDropped() {
			continue
		}
		dropped++
		events = append(events, evt.GetUncommittedEvents()...)
		if err := eventRepo.Save(ctx, evt); err != nil {
			uow.Rollback(ctx)
			return nil, domainError(err, "event")
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if dropped > 0 {
		metrics.EventsDropped.Add(float64(dropped))
		if err := h.eventBus.PublishBatch(ctx, events); err != nil {
			logger.FromContext(ctx).WithError(err).Warn("failed to publish sweep events")
		}
	}
	return stale, nil
}
