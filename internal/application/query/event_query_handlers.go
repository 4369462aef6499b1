package query

import (
	"context"
	stderrors "errors"
	"fmt"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/pkg/errors"

	"github.com/samber/lo"
)

// readError maps repository errors on the read path
func readError(err error, resource string) error {
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NewNotFoundError(resource)
	}
	return errors.NewInternalError(fmt.Sprintf("failed to load %s: %v", resource, err))
}

// GetEventHandler handles get event by ID queries
type GetEventHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewGetEventHandler creates a new get event handler
func NewGetEventHandler(uowFactory repository.UnitOfWorkFactory) *GetEventHandler {
	return &GetEventHandler{uowFactory: uowFactory}
}

// Handle returns the event when the caller is its host, one of its vendors, or an admin
func (h *GetEventHandler) Handle(ctx context.Context, eventID, userID string, role aggregate.UserRole) (*EventView, error) {
	if eventID == "" {
		return nil, errors.NewValidationError("event id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	evt, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return nil, readError(err, "event")
	}
	if role != aggregate.RoleAdmin && !evt.BelongsTo(userID) && !evt.HasVendor(userID) {
		return nil, errors.NewForbiddenError("not authorized to view this event")
	}

	view := NewEventView(evt)
	return &view, nil
}

// ListHostEventsHandler lists a host's events except dropped ones
type ListHostEventsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewListHostEventsHandler creates a new list host events handler
func NewListHostEventsHandler(uowFactory repository.UnitOfWorkFactory) *ListHostEventsHandler {
	return &ListHostEventsHandler{uowFactory: uowFactory}
}

// Handle processes the list host events query
func (h *ListHostEventsHandler) Handle(ctx context.Context, hostID string) ([]EventView, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	events, err := uow.EventRepository().ListByHost(ctx, hostID)
	if err != nil {
		return nil, readError(err, "events")
	}
	events = lo.Reject(events, func(e *aggregate.Event, _ int) bool {
		return e.Status() == aggregate.EventStatusDropped
	})
	return NewEventViews(events), nil
}

// ListVendorBookingsHandler lists events a vendor was selected for
type ListVendorBookingsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewListVendorBookingsHandler creates a new vendor bookings handler
func NewListVendorBookingsHandler(uowFactory repository.UnitOfWorkFactory) *ListVendorBookingsHandler {
	return &ListVendorBookingsHandler{uowFactory: uowFactory}
}

// Handle processes the vendor bookings query
func (h *ListVendorBookingsHandler) Handle(ctx context.Context, vendorID string) ([]BookingView, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	events, err := uow.EventRepository().ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, readError(err, "bookings")
	}

	hostNames := map[string]string{}
	userRepo := uow.UserRepository()
	bookings := make([]BookingView, 0, len(events))
	for _, e := range events {
		name, ok := hostNames[e.HostID()]
		if !ok {
			if host, err := userRepo.GetByID(ctx, e.HostID()); err == nil {
				name = host.Name()
			}
			hostNames[e.HostID()] = name
		}
		bookings = append(bookings, BookingView{
			EventView:    NewEventView(e),
			HostName:     name,
			MySelections: selectionViews(e.SelectionsFor(vendorID)),
		})
	}
	return bookings, nil
}

// ListAllEventsHandler lists every event for admins
type ListAllEventsHandler struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewListAllEventsHandler creates a new list all events handler
func NewListAllEventsHandler(uowFactory repository.UnitOfWorkFactory) *ListAllEventsHandler {
	return &ListAllEventsHandler{uowFactory: uowFactory}
}

// Handle processes the list all events query
func (h *ListAllEventsHandler) Handle(ctx context.Context) ([]EventView, error) {
	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	events, err := uow.EventRepository().ListAll(ctx)
	if err != nil {
		return nil, readError(err, "events")
	}
	return NewEventViews(events), nil
}
