package projection

import (
	"context"
	"testing"
	"time"

	"party-paradise/internal/domain/event"
	"party-paradise/internal/infrastructure/bus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityProjection_RecordsNewestFirst(t *testing.T) {
	b := bus.NewInMemoryEventBus()
	require.NoError(t, b.Start(context.Background()))
	p := NewActivityProjection(2)
	require.NoError(t, p.Register(b))

	ctx := context.Background()
	now := time.Now()
	require.NoError(t, b.PublishBatch(ctx, []event.DomainEvent{
		&event.EventCreated{EventID: "e1", Timestamp: now},
		&event.EventStatusChanged{EventID: "e1", OldStatus: "draft", NewStatus: "submitted", Timestamp: now},
		&event.LedgerEntryRecorded{VendorID: "v1", EntryType: "refund", Amount: -5000, Timestamp: now},
	}))

	recent := p.Recent(10)
	require.Len(t, recent, 2)
	assert.Equal(t, "LedgerEntryRecorded", recent[0].EventType)
	assert.Equal(t, "v1", recent[0].AggregateID)
	assert.Equal(t, "EventStatusChanged", recent[1].EventType)
}

func TestActivityProjection_RecentLimit(t *testing.T) {
	p := NewActivityProjection(0)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Handle(ctx, &event.UserRegistered{UserID: "u", Timestamp: time.Now()}))
	}
	assert.Len(t, p.Recent(1), 1)
	assert.Len(t, p.Recent(0), 3)
}
