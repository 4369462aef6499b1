package command

import (
	"testing"
	"time"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingFlowPartialAcceptance(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)

	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())
	assert.Equal(t, aggregate.EventStatusSubmitted, evt.Status())
	assert.Equal(t, int64(8000), evt.TotalCost())

	result := f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)
	assert.False(t, result.AllVendorsAccepted)
	assert.Equal(t, aggregate.EventStatusPending, result.Event.Status())

	result = f.respond(t, evt.ID(), b.ID(), aggregate.SelectionRejected)
	assert.False(t, result.AllVendorsAccepted)
	assert.Equal(t, aggregate.EventStatusPending, result.Event.Status())
}

func TestBookingFlowAllAcceptedConfirms(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())

	f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)
	result := f.respond(t, evt.ID(), b.ID(), aggregate.SelectionAccepted)

	assert.True(t, result.AllVendorsAccepted)
	assert.Equal(t, aggregate.EventStatusConfirmed, result.Event.Status())
}

func TestUpdateSelectionStatusRejectsOutsider(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())

	_, err := NewUpdateSelectionStatusHandler(f.factory, f.bus).Handle(f.ctx, &UpdateSelectionStatus{
		EventID:  evt.ID(),
		VendorID: "stranger",
		Status:   aggregate.SelectionAccepted,
	})
	assertAppError(t, err, "FORBIDDEN")

	_, err = NewUpdateSelectionStatusHandler(f.factory, f.bus).Handle(f.ctx, &UpdateSelectionStatus{
		EventID:  evt.ID(),
		VendorID: a.ID(),
		Status:   aggregate.SelectionPending,
	})
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestEditsLockedOnceAVendorAccepts(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())
	f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)

	guests := 50
	_, err := NewUpdateEventHandler(f.factory, f.bus).Handle(f.ctx, &UpdateEvent{
		EventID: evt.ID(),
		HostID:  host.ID(),
		Patch:   aggregate.EventPatch{GuestCount: &guests},
	})
	assertAppError(t, err, "FORBIDDEN")

	_, err = NewSetEventVendorsHandler(f.factory, f.bus).Handle(f.ctx, &SetEventVendors{
		EventID:    evt.ID(),
		HostID:     host.ID(),
		Selections: []aggregate.VendorSelection{{VendorID: b.ID(), ServiceID: "svc-b", Price: 1}},
	})
	assertAppError(t, err, "FORBIDDEN")
}

func TestOnlyOwnerCanModifyEvent(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	other := f.user(t, "other", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())

	name := "Hijacked"
	_, err := NewUpdateEventHandler(f.factory, f.bus).Handle(f.ctx, &UpdateEvent{
		EventID: evt.ID(),
		HostID:  other.ID(),
		Patch:   aggregate.EventPatch{Name: &name},
	})
	assertAppError(t, err, "FORBIDDEN")

	_, err = NewCancelEventHandler(f.factory, f.bus, f.gateway).Handle(f.ctx, &CancelEvent{EventID: evt.ID(), HostID: other.ID()})
	assertAppError(t, err, "FORBIDDEN")
}

func TestCancelEventRefundsAcceptedVendors(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())

	f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)
	f.respond(t, evt.ID(), b.ID(), aggregate.SelectionRejected)
	payment := f.pay(t, evt.ID(), host.ID(), a.ID(), 5000)
	assert.Equal(t, int64(5000), f.ledger(t, a.ID()).PendingAmount())

	result, err := NewCancelEventHandler(f.factory, f.bus, f.gateway).Handle(f.ctx, &CancelEvent{EventID: evt.ID(), HostID: host.ID()})
	require.NoError(t, err)

	require.Len(t, result.Refunds, 1)
	refund := result.Refunds[0]
	assert.Equal(t, a.ID(), refund.VendorID)
	assert.Equal(t, RefundStatusRefunded, refund.Status)
	assert.Equal(t, int64(5000), refund.Amount)
	assert.Equal(t, payment.ID(), refund.PaymentID)

	gatewayRefund, ok := f.gateway.RefundFor(payment.OrderID())
	require.True(t, ok)
	assert.Equal(t, gatewayRefund, refund.RefundID)

	ledger := f.ledger(t, a.ID())
	assert.Equal(t, int64(0), ledger.PendingAmount())
	assert.Equal(t, int64(5000), ledger.RefundedAmount())
	assert.True(t, ledger.Reconciles())
	txns := ledger.Transactions()
	assert.Equal(t, int64(-5000), txns[len(txns)-1].Amount)
	assert.Equal(t, aggregate.TransactionRefund, txns[len(txns)-1].Type)

	stored, err := f.factory.CreateUnitOfWork().PaymentRepository().GetByID(f.ctx, payment.ID())
	require.NoError(t, err)
	assert.Equal(t, aggregate.PaymentStatusRefunded, stored.Status())
	assert.Equal(t, int64(5000), stored.RefundAmount())

	_, err = f.factory.CreateUnitOfWork().EventRepository().GetByID(f.ctx, evt.ID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, f.seen, "EventDeleted")
}

func TestCancelEventWithoutPaymentStillDeletes(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())
	f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)

	result, err := NewCancelEventHandler(f.factory, f.bus, f.gateway).Handle(f.ctx, &CancelEvent{EventID: evt.ID(), HostID: host.ID()})
	require.NoError(t, err)

	require.Len(t, result.Refunds, 1)
	assert.Equal(t, RefundStatusNoPaymentFound, result.Refunds[0].Status)
	_, err = f.factory.CreateUnitOfWork().EventRepository().GetByID(f.ctx, evt.ID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCancelEventSurvivesGatewayRefundFailure(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())
	f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)
	f.pay(t, evt.ID(), host.ID(), a.ID(), 5000)
	f.gateway.FailRefunds = true

	result, err := NewCancelEventHandler(f.factory, f.bus, f.gateway).Handle(f.ctx, &CancelEvent{EventID: evt.ID(), HostID: host.ID()})
	require.NoError(t, err)

	// the ledger reversal is committed even when the provider declines
	assert.Equal(t, RefundStatusRefunded, result.Refunds[0].Status)
	assert.Equal(t, int64(5000), f.ledger(t, a.ID()).RefundedAmount())
}

func TestCancelEventRefundWithoutLedgerLeavesLedgerUntouched(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())
	f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)

	// settled outside the verify flow, so no ledger was ever opened
	payment, err := aggregate.NewPayment(evt.ID(), host.ID(), a.ID(), 5000, "VND", "Gold", "order_manual")
	require.NoError(t, err)
	require.NoError(t, payment.MarkCompleted("pay_manual"))
	require.NoError(t, f.factory.CreateUnitOfWork().PaymentRepository().Save(f.ctx, payment))

	result, err := NewCancelEventHandler(f.factory, f.bus, f.gateway).Handle(f.ctx, &CancelEvent{EventID: evt.ID(), HostID: host.ID()})
	require.NoError(t, err)

	require.Len(t, result.Refunds, 1)
	assert.Equal(t, RefundStatusRefunded, result.Refunds[0].Status)
	assert.Equal(t, int64(5000), result.Refunds[0].Amount)

	_, err = f.factory.CreateUnitOfWork().EarningsRepository().GetByVendorID(f.ctx, a.ID())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stored, err := f.factory.CreateUnitOfWork().PaymentRepository().GetByID(f.ctx, payment.ID())
	require.NoError(t, err)
	assert.Equal(t, aggregate.PaymentStatusRefunded, stored.Status())
}

func TestCompleteEventReleasesFunds(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())
	f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)

	handler := NewCompleteEventHandler(f.factory, f.bus)
	_, err := handler.Handle(f.ctx, &CompleteEvent{EventID: evt.ID(), HostID: host.ID()})
	assertAppError(t, err, "VALIDATION_ERROR")

	f.respond(t, evt.ID(), b.ID(), aggregate.SelectionAccepted)
	f.pay(t, evt.ID(), host.ID(), a.ID(), 5000)

	result, err := handler.Handle(f.ctx, &CompleteEvent{EventID: evt.ID(), HostID: host.ID()})
	require.NoError(t, err)
	assert.Equal(t, aggregate.EventStatusCompleted, result.Event.Status())

	require.Len(t, result.Releases, 2)
	byVendor := map[string]ReleaseOutcome{}
	for _, r := range result.Releases {
		byVendor[r.VendorID] = r
	}
	assert.True(t, byVendor[a.ID()].Released)
	assert.Equal(t, int64(5000), byVendor[a.ID()].Amount)
	assert.False(t, byVendor[b.ID()].Released)
	assert.NotEmpty(t, byVendor[b.ID()].Error)

	ledger := f.ledger(t, a.ID())
	assert.Equal(t, int64(0), ledger.PendingAmount())
	assert.Equal(t, int64(5000), ledger.AvailableBalance())
	assert.Contains(t, f.seen, "FundsReleased")
}

func TestSweepDroppedEvents(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())

	sweeper := NewSweepDroppedEventsHandler(f.factory, f.bus)

	stale, err := sweeper.Handle(f.ctx, host.ID())
	require.NoError(t, err)
	assert.Empty(t, stale)

	sweeper.now = func() time.Time { return time.Now().AddDate(0, 2, 0) }
	stale, err = sweeper.Handle(f.ctx, host.ID())
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, evt.ID(), stale[0].ID())

	stored, err := f.factory.CreateUnitOfWork().EventRepository().GetByID(f.ctx, evt.ID())
	require.NoError(t, err)
	assert.Equal(t, aggregate.EventStatusDropped, stored.Status())

	// already dropped events are still reported
	stale, err = sweeper.Handle(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, stale, 1)
}

func TestSweepIgnoresAcceptedEvents(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())
	f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)

	sweeper := NewSweepDroppedEventsHandler(f.factory, f.bus)
	sweeper.now = func() time.Time { return time.Now().AddDate(0, 2, 0) }

	stale, err := sweeper.Handle(f.ctx, "")
	require.NoError(t, err)
	assert.Empty(t, stale)
}
