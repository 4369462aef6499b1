package repository

import (
	"errors"

	"party-paradise/internal/domain/event"
)

var (
	// ErrNotFound is returned by lookups that match nothing
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("duplicate")
)

// AggregateRoot is implemented by aggregates that raise domain events
type AggregateRoot interface {
	GetUncommittedEvents() []event.DomainEvent
	MarkEventsAsCommitted()
}
