package services

import (
	"context"

	"party-paradise/internal/application/command"
	"party-paradise/internal/application/query"
	"party-paradise/internal/domain/aggregate"
)

// SelectionStatusResult is the response to a vendor accepting or rejecting
type SelectionStatusResult struct {
	Event              query.EventView `json:"event"`
	AllVendorsAccepted bool            `json:"allVendorsAccepted"`
}

// CompleteEventResult is the completed event and the funds released per vendor
type CompleteEventResult struct {
	Event    query.EventView          `json:"event"`
	Releases []command.ReleaseOutcome `json:"releases"`
}

// EventService handles event and booking operations
type EventService struct {
	createEventHandler           *command.CreateEventHandler
	setEventVendorsHandler       *command.SetEventVendorsHandler
	updateEventHandler           *command.UpdateEventHandler
	updateSelectionStatusHandler *command.UpdateSelectionStatusHandler
	cancelEventHandler           *command.CancelEventHandler
	completeEventHandler         *command.CompleteEventHandler
	sweepDroppedEventsHandler    *command.SweepDroppedEventsHandler
	getEventHandler              *query.GetEventHandler
	listHostEventsHandler        *query.ListHostEventsHandler
	listVendorBookingsHandler    *query.ListVendorBookingsHandler
}

// NewEventService creates a new event service
func NewEventService(
	createEventHandler *command.CreateEventHandler,
	setEventVendorsHandler *command.SetEventVendorsHandler,
	updateEventHandler *command.UpdateEventHandler,
	updateSelectionStatusHandler *command.UpdateSelectionStatusHandler,
	cancelEventHandler *command.CancelEventHandler,
	completeEventHandler *command.CompleteEventHandler,
	sweepDroppedEventsHandler *command.SweepDroppedEventsHandler,
	getEventHandler *query.GetEventHandler,
	listHostEventsHandler *query.ListHostEventsHandler,
	listVendorBookingsHandler *query.ListVendorBookingsHandler,
) *EventService {
	return &EventService{
		createEventHandler:           createEventHandler,
		setEventVendorsHandler:       setEventVendorsHandler,
		updateEventHandler:           updateEventHandler,
		updateSelectionStatusHandler: updateSelectionStatusHandler,
		cancelEventHandler:           cancelEventHandler,
		completeEventHandler:         completeEventHandler,
		sweepDroppedEventsHandler:    sweepDroppedEventsHandler,
		getEventHandler:              getEventHandler,
		listHostEventsHandler:        listHostEventsHandler,
		listVendorBookingsHandler:    listVendorBookingsHandler,
	}
}

// CreateEvent creates a draft event
func (s *EventService) CreateEvent(ctx context.Context, cmd *command.CreateEvent) (*query.EventView, error) {
	evt, err := s.createEventHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewEventView(evt)
	return &view, nil
}

// SetVendors replaces the event's vendor selections and submits it
func (s *EventService) SetVendors(ctx context.Context, cmd *command.SetEventVendors) (*query.EventView, error) {
	evt, err := s.setEventVendorsHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewEventView(evt)
	return &view, nil
}

// UpdateEvent applies a partial update
func (s *EventService) UpdateEvent(ctx context.Context, cmd *command.UpdateEvent) (*query.EventView, error) {
	evt, err := s.updateEventHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	view := query.NewEventView(evt)
	return &view, nil
}

// UpdateSelectionStatus records a vendor's answer to a booking
func (s *EventService) UpdateSelectionStatus(ctx context.Context, cmd *command.UpdateSelectionStatus) (*SelectionStatusResult, error) {
	result, err := s.updateSelectionStatusHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &SelectionStatusResult{
		Event:              query.NewEventView(result.Event),
		AllVendorsAccepted: result.AllVendorsAccepted,
	}, nil
}

// DeleteEvent refunds accepted vendors and deletes the event
func (s *EventService) DeleteEvent(ctx context.Context, cmd *command.CancelEvent) (*command.CancelEventResult, error) {
	return s.cancelEventHandler.Handle(ctx, cmd)
}

// CompleteEvent closes a confirmed event and releases vendor funds
func (s *EventService) CompleteEvent(ctx context.Context, cmd *command.CompleteEvent) (*CompleteEventResult, error) {
	result, err := s.completeEventHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &CompleteEventResult{
		Event:    query.NewEventView(result.Event),
		Releases: result.Releases,
	}, nil
}

// DroppedEvents sweeps the host's stale events and returns them
func (s *EventService) DroppedEvents(ctx context.Context, hostID string) ([]query.EventView, error) {
	events, err := s.sweepDroppedEventsHandler.Handle(ctx, hostID)
	if err != nil {
		return nil, err
	}
	return query.NewEventViews(events), nil
}

// GetEvent retrieves an event visible to the caller
func (s *EventService) GetEvent(ctx context.Context, eventID, userID string, role aggregate.UserRole) (*query.EventView, error) {
	return s.getEventHandler.Handle(ctx, eventID, userID, role)
}

// ListHostEvents lists the host's events
func (s *EventService) ListHostEvents(ctx context.Context, hostID string) ([]query.EventView, error) {
	return s.listHostEventsHandler.Handle(ctx, hostID)
}

// ListVendorBookings lists the events a vendor was selected for
func (s *EventService) ListVendorBookings(ctx context.Context, vendorID string) ([]query.BookingView, error) {
	return s.listVendorBookingsHandler.Handle(ctx, vendorID)
}
