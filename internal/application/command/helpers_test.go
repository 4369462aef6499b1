package command

import (
	"context"
	"testing"
	"time"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/event"
	"party-paradise/internal/infrastructure/bus"
	"party-paradise/internal/infrastructure/gateway"
	"party-paradise/internal/infrastructure/memory"
	"party-paradise/pkg/errors"
	"party-paradise/pkg/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signature-secret"

type fixture struct {
	ctx     context.Context
	factory *memory.UnitOfWorkFactory
	bus     *bus.InMemoryEventBus
	gateway *gateway.PaymentMock
	seen    []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:     context.Background(),
		factory: memory.NewUnitOfWorkFactory(memory.NewStore()),
		bus:     bus.NewInMemoryEventBus(),
		gateway: gateway.NewPaymentMock(),
	}
	require.NoError(t, f.bus.Start(f.ctx))
	record := bus.EventHandlerFunc(func(ctx context.Context, e event.DomainEvent) error {
		f.seen = append(f.seen, e.EventType())
		return nil
	})
	for _, name := range []string{"PaymentStatusChanged", "LedgerEntryRecorded", "EventDeleted", "FundsReleased", "UserDeleted"} {
		require.NoError(t, f.bus.Subscribe(name, record))
	}
	return f
}

func (f *fixture) user(t *testing.T, name string, role aggregate.UserRole) *aggregate.User {
	t.Helper()
	u, err := aggregate.NewUser(name, name+"@example.com", "secret1", role, "District 1", "")
	require.NoError(t, err)
	if role == aggregate.RoleVendor {
		require.NoError(t, u.SetVendorProfile(aggregate.VendorProfile{BusinessName: name + " Co", ServiceType: "catering"}))
	}

	uow := f.factory.CreateUnitOfWork()
	defer uow.Close()
	require.NoError(t, uow.Begin(f.ctx))
	require.NoError(t, uow.UserRepository().Save(f.ctx, u))
	require.NoError(t, uow.Commit(f.ctx))
	return u
}

// submittedEvent creates an event for host with vendorA at 5000 and vendorB at 3000
func (f *fixture) submittedEvent(t *testing.T, hostID, vendorA, vendorB string) *aggregate.Event {
	t.Helper()
	evt, err := NewCreateEventHandler(f.factory, f.bus).Handle(f.ctx, &CreateEvent{
		HostID: hostID,
		Details: aggregate.EventDetails{
			Type:       "wedding",
			Name:       "Spring Wedding",
			Date:       time.Now().AddDate(0, 1, 0),
			GuestCount: 100,
		},
	})
	require.NoError(t, err)

	evt, err = NewSetEventVendorsHandler(f.factory, f.bus).Handle(f.ctx, &SetEventVendors{
		EventID: evt.ID(),
		HostID:  hostID,
		Selections: []aggregate.VendorSelection{
			{VendorID: vendorA, ServiceID: "svc-a", PackageName: "Gold", Price: 5000},
			{VendorID: vendorB, ServiceID: "svc-b", PackageName: "Silver", Price: 3000},
		},
	})
	require.NoError(t, err)
	return evt
}

func (f *fixture) respond(t *testing.T, eventID, vendorID string, status aggregate.SelectionStatus) *UpdateSelectionStatusResult {
	t.Helper()
	result, err := NewUpdateSelectionStatusHandler(f.factory, f.bus).Handle(f.ctx, &UpdateSelectionStatus{
		EventID:  eventID,
		VendorID: vendorID,
		Status:   status,
	})
	require.NoError(t, err)
	return result
}

// pay opens an order for vendorID and confirms it with a valid signature
func (f *fixture) pay(t *testing.T, eventID, hostID, vendorID string, amount int64) *aggregate.Payment {
	t.Helper()
	order, err := NewCreatePaymentOrderHandler(f.factory, f.bus, f.gateway, "VND").Handle(f.ctx, &CreatePaymentOrder{
		EventID:  eventID,
		HostID:   hostID,
		VendorID: vendorID,
		Amount:   amount,
	})
	require.NoError(t, err)

	payment, err := NewVerifyPaymentHandler(f.factory, f.bus, testSecret).Handle(f.ctx, &VerifyPayment{
		OrderID:   order.OrderID,
		PaymentID: "pay_" + vendorID,
		Signature: signature.Sign(testSecret, order.OrderID, "pay_"+vendorID),
	})
	require.NoError(t, err)
	return payment
}

func (f *fixture) ledger(t *testing.T, vendorID string) *aggregate.VendorEarnings {
	t.Helper()
	ledger, err := f.factory.CreateUnitOfWork().EarningsRepository().GetByVendorID(f.ctx, vendorID)
	require.NoError(t, err)
	return ledger
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok, "expected application error, got %v", err)
	assert.Equal(t, code, appErr.Code)
}
