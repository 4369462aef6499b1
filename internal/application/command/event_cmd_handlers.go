package command

import (
	"context"
	"fmt"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/internal/infrastructure/bus"
	"party-paradise/pkg/errors"
	"party-paradise/pkg/logger"
)

// CreateEventHandler handles create event commands with Unit of Work
type CreateEventHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewCreateEventHandler creates a new create event handler
func NewCreateEventHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus) *CreateEventHandler {
	return &CreateEventHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the create event command
func (h *CreateEventHandler) Handle(ctx context.Context, cmd *CreateEvent) (*aggregate.Event, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}

	evt, err := aggregate.NewEvent(cmd.HostID, cmd.Details)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	events := evt.GetUncommittedEvents()
	if err := uow.EventRepository().Save(ctx, evt); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "event")
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish domain events")
	}
	return evt, nil
}

// SetEventVendorsHandler submits an event's vendor selections
type SetEventVendorsHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewSetEventVendorsHandler creates a new set vendors handler
func NewSetEventVendorsHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus) *SetEventVendorsHandler {
	return &SetEventVendorsHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the set vendors command
func (h *SetEventVendorsHandler) Handle(ctx context.Context, cmd *SetEventVendors) (*aggregate.Event, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}
	if len(cmd.Selections) == 0 {
		return nil, errors.NewValidationError("at least one vendor selection is required")
	}

	return mutateEvent(ctx, h.uowFactory, h.eventBus, cmd.EventID, cmd.HostID, func(evt *aggregate.Event) error {
		if err := evt.SetVendorSelections(cmd.Selections); err != nil {
			if err == aggregate.ErrSelectionsLocked {
				return errors.NewForbiddenError("cannot change vendors after a vendor has accepted")
			}
			return errors.NewValidationError(err.Error())
		}
		return nil
	})
}

// UpdateEventHandler applies partial updates to an event
type UpdateEventHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewUpdateEventHandler creates a new update event handler
func NewUpdateEventHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus) *UpdateEventHandler {
	return &UpdateEventHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the update event command
func (h *UpdateEventHandler) Handle(ctx context.Context, cmd *UpdateEvent) (*aggregate.Event, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}

	return mutateEvent(ctx, h.uowFactory, h.eventBus, cmd.EventID, cmd.HostID, func(evt *aggregate.Event) error {
		if err := evt.UpdateDetails(cmd.Patch); err != nil {
			if err == aggregate.ErrSelectionsLocked {
				return errors.NewForbiddenError("cannot edit event after vendor acceptance")
			}
			return errors.NewValidationError(err.Error())
		}
		return nil
	})
}

// mutateEvent loads a host-owned event, applies fn and saves it in one unit of work
func mutateEvent(
	ctx context.Context,
	factory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
	eventID, hostID string,
	fn func(*aggregate.Event) error,
) (*aggregate.Event, error) {
	uow := factory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	eventRepo := uow.EventRepository()
	evt, err := loadOwnedEvent(ctx, eventRepo, eventID, hostID)
	if err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	if err := fn(evt); err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	events := evt.GetUncommittedEvents()
	if err := eventRepo.Save(ctx, evt); err != nil {
		uow.Rollback(ctx)
		return nil, domainError(err, "event")
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := eventBus.PublishBatch(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("failed to publish domain events")
	}
	return evt, nil
}
