package command

import (
	"context"
	stderrors "errors"
	"fmt"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	"party-paradise/pkg/errors"
)

// domainError translates repository and aggregate errors into application errors
func domainError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := errors.As(err); ok {
		return appErr
	}

	switch {
	case stderrors.Is(err, repository.ErrNotFound):
		return errors.NewNotFoundError(resource)
	case stderrors.Is(err, repository.ErrDuplicate):
		return errors.NewConflictError(fmt.Sprintf("%s already exists", resource))
	case stderrors.Is(err, aggregate.ErrSelectionsLocked):
		return errors.NewForbiddenError(err.Error())
	case stderrors.Is(err, aggregate.ErrNotSelected):
		return errors.NewForbiddenError(err.Error())
	case stderrors.Is(err, aggregate.ErrInvalidStatus),
		stderrors.Is(err, aggregate.ErrInsufficientBalance),
		stderrors.Is(err, aggregate.ErrInsufficientPending):
		return errors.NewValidationError(err.Error())
	default:
		return errors.NewInternalError(fmt.Sprintf("%s: %v", resource, err))
	}
}

// loadOwnedEvent fetches an event and checks host ownership
func loadOwnedEvent(ctx context.Context, repo repository.EventRepository, eventID, hostID string) (*aggregate.Event, error) {
	if eventID == "" {
		return nil, errors.NewValidationError("event id is required")
	}
	evt, err := repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, domainError(err, "event")
	}
	if !evt.BelongsTo(hostID) {
		return nil, errors.NewForbiddenError("not authorized to modify this event")
	}
	return evt, nil
}
