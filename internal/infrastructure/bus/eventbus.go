package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"party-paradise/internal/domain/event"
	"party-paradise/internal/metrics"
	"party-paradise/pkg/logger"
)

// AllEvents subscribes a handler to every event type
const AllEvents = "*"

// ErrBusStopped is returned when publishing on a bus that is not running
var ErrBusStopped = errors.New("event bus is not running")

// EventBus defines the contract for event publishing/subscribing
type EventBus interface {
	Publish(ctx context.Context, event event.DomainEvent) error
	PublishBatch(ctx context.Context, events []event.DomainEvent) error
	Subscribe(eventType string, handler EventHandler) error
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles domain events
type EventHandler interface {
	Handle(ctx context.Context, event event.DomainEvent) error
}

// EventHandlerFunc allows functions to implement EventHandler
type EventHandlerFunc func(ctx context.Context, event event.DomainEvent) error

func (f EventHandlerFunc) Handle(ctx context.Context, event event.DomainEvent) error {
	return f(ctx, event)
}

// InMemoryEventBus dispatches events synchronously, in the caller's
// goroutine, to the handlers of the event type and then to wildcard handlers
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
	running  bool
}

func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{handlers: make(map[string][]EventHandler)}
}

func (b *InMemoryEventBus) Publish(ctx context.Context, evt event.DomainEvent) error {
	b.mu.RLock()
	if !b.running {
		b.mu.RUnlock()
		return ErrBusStopped
	}
	handlers := make([]EventHandler, 0, len(b.handlers[evt.EventType()])+len(b.handlers[AllEvents]))
	handlers = append(handlers, b.handlers[evt.EventType()]...)
	handlers = append(handlers, b.handlers[AllEvents]...)
	b.mu.RUnlock()

	metrics.DomainEvents.WithLabelValues(evt.EventType()).Inc()

	var errs []error
	for _, handler := range handlers {
		if err := handler.Handle(ctx, evt); err != nil {
			logger.FromContext(ctx).
				WithError(err).
				WithField("event_type", evt.EventType()).
				Warn("event handler failed")
			errs = append(errs, fmt.Errorf("handler error for %s: %w", evt.EventType(), err))
		}
	}
	return errors.Join(errs...)
}

// PublishBatch publishes events in order; every event is delivered even if
// an earlier handler fails
func (b *InMemoryEventBus) PublishBatch(ctx context.Context, events []event.DomainEvent) error {
	var errs []error
	for _, evt := range events {
		if err := b.Publish(ctx, evt); err != nil {
			if errors.Is(err, ErrBusStopped) {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *InMemoryEventBus) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" || handler == nil {
		return fmt.Errorf("event type and handler are required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.running = true
	return nil
}

// Stop makes later publishes fail with ErrBusStopped; subscriptions are kept
func (b *InMemoryEventBus) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.running = false
	return nil
}
