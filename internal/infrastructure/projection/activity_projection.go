package projection

import (
	"context"
	"sync"
	"time"

	"party-paradise/internal/domain/event"
	"party-paradise/internal/infrastructure/bus"
	"party-paradise/internal/metrics"
	"party-paradise/pkg/logger"

	"github.com/sirupsen/logrus"
)

const defaultActivityCapacity = 200

// ActivityEntry is one audited domain event
type ActivityEntry struct {
	EventType   string    `json:"eventType"`
	AggregateID string    `json:"aggregateId"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// ActivityProjection keeps the most recent domain events for the admin
// reports and feeds the business counters
type ActivityProjection struct {
	mu       sync.RWMutex
	entries  []ActivityEntry
	capacity int
}

func NewActivityProjection(capacity int) *ActivityProjection {
	if capacity <= 0 {
		capacity = defaultActivityCapacity
	}
	return &ActivityProjection{capacity: capacity}
}

// Register subscribes the projection to every event type
func (p *ActivityProjection) Register(b bus.EventBus) error {
	return b.Subscribe(bus.AllEvents, bus.EventHandlerFunc(p.Handle))
}

// Handle records the event and updates counters
func (p *ActivityProjection) Handle(ctx context.Context, evt event.DomainEvent) error {
	switch e := evt.(type) {
	case *event.EventStatusChanged:
		metrics.EventTransitions.WithLabelValues(e.OldStatus, e.NewStatus).Inc()
	case *event.LedgerEntryRecorded:
		amount := e.Amount
		if amount < 0 {
			amount = -amount
		}
		metrics.LedgerEntries.WithLabelValues(e.EntryType).Inc()
		metrics.LedgerAmount.WithLabelValues(e.EntryType).Add(float64(amount))
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"event_type":   evt.EventType(),
		"aggregate_id": evt.AggregateID(),
	}).Debug("domain event")

	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries = append(p.entries, ActivityEntry{
		EventType:   evt.EventType(),
		AggregateID: evt.AggregateID(),
		OccurredAt:  evt.OccurredAt(),
	})
	if over := len(p.entries) - p.capacity; over > 0 {
		p.entries = append([]ActivityEntry(nil), p.entries[over:]...)
	}
	return nil
}

// Recent returns up to n entries, newest first
func (p *ActivityProjection) Recent(n int) []ActivityEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if n <= 0 || n > len(p.entries) {
		n = len(p.entries)
	}
	out := make([]ActivityEntry, 0, n)
	for i := len(p.entries) - 1; i >= len(p.entries)-n; i-- {
		out = append(out, p.entries[i])
	}
	return out
}
