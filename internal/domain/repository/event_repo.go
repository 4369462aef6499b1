package repository

import (
	"context"
	"time"

	"party-paradise/internal/domain/aggregate"
)

// EventRepository persists events with their embedded selections
type EventRepository interface {
	Save(ctx context.Context, e *aggregate.Event) error
	GetByID(ctx context.Context, id string) (*aggregate.Event, error)
	Delete(ctx context.Context, id string) error
	ListByHost(ctx context.Context, hostID string) ([]*aggregate.Event, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*aggregate.Event, error)
	ListAll(ctx context.Context) ([]*aggregate.Event, error)
	// ListDroppable returns events dated before the cutoff whose status still
	// allows dropping. An empty hostID matches every host.
	ListDroppable(ctx context.Context, hostID string, before time.Time) ([]*aggregate.Event, error)
}
