package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"party-paradise/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventBus_DeliversToTypedAndWildcardHandlers(t *testing.T) {
	b := NewInMemoryEventBus()
	ctx := context.Background()
	require.NoError(t, b.Start(ctx))

	var typed, all []string
	require.NoError(t, b.Subscribe("EventCreated", EventHandlerFunc(func(ctx context.Context, e event.DomainEvent) error {
		typed = append(typed, e.AggregateID())
		return nil
	})))
	require.NoError(t, b.Subscribe(AllEvents, EventHandlerFunc(func(ctx context.Context, e event.DomainEvent) error {
		all = append(all, e.EventType())
		return nil
	})))

	require.NoError(t, b.PublishBatch(ctx, []event.DomainEvent{
		&event.EventCreated{EventID: "e1", Timestamp: time.Now()},
		&event.EventDeleted{EventID: "e1", Timestamp: time.Now()},
	}))

	assert.Equal(t, []string{"e1"}, typed)
	assert.Equal(t, []string{"EventCreated", "EventDeleted"}, all)
}

func TestInMemoryEventBus_HandlerErrorsDoNotStopDelivery(t *testing.T) {
	b := NewInMemoryEventBus()
	ctx := context.Background()
	require.NoError(t, b.Start(ctx))

	delivered := 0
	require.NoError(t, b.Subscribe("EventDeleted", EventHandlerFunc(func(ctx context.Context, e event.DomainEvent) error {
		return errors.New("boom")
	})))
	require.NoError(t, b.Subscribe("EventDeleted", EventHandlerFunc(func(ctx context.Context, e event.DomainEvent) error {
		delivered++
		return nil
	})))

	err := b.PublishBatch(ctx, []event.DomainEvent{
		&event.EventDeleted{EventID: "e1", Timestamp: time.Now()},
		&event.EventDeleted{EventID: "e2", Timestamp: time.Now()},
	})
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 2, delivered)
}

func TestInMemoryEventBus_RejectsPublishWhenStopped(t *testing.T) {
	b := NewInMemoryEventBus()
	ctx := context.Background()

	err := b.Publish(ctx, &event.EventCreated{EventID: "e1", Timestamp: time.Now()})
	assert.ErrorIs(t, err, ErrBusStopped)

	require.NoError(t, b.Start(ctx))
	require.NoError(t, b.Stop())
	err = b.PublishBatch(ctx, []event.DomainEvent{&event.EventCreated{EventID: "e1", Timestamp: time.Now()}})
	assert.ErrorIs(t, err, ErrBusStopped)

	assert.Error(t, b.Subscribe("", nil))
}
