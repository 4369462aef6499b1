package services

import (
	"context"
	"sync"
	"time"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/pkg/logger"
)

// EventSweeper marks stale events dropped; hostID "" sweeps every host
type EventSweeper interface {
	Handle(ctx context.Context, hostID string) ([]*aggregate.Event, error)
}

// DroppedEventSweeper runs the stale-event sweep on a ticker
type DroppedEventSweeper struct {
	sweeper  EventSweeper
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewDroppedEventSweeper creates a new sweeper
func NewDroppedEventSweeper(sweeper EventSweeper, interval time.Duration) *DroppedEventSweeper {
	return &DroppedEventSweeper{
		sweeper:  sweeper,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start sweeps once immediately, then on every tick until stopped
func (s *DroppedEventSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log := logger.FromContext(ctx).WithField("component", "dropped_event_sweeper")
	log.WithField("interval", s.interval.String()).Info("dropped event sweeper started")

	s.sweep(ctx)
	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			log.Info("dropped event sweeper stopped")
			return
		case <-ctx.Done():
			log.Info("dropped event sweeper stopped (context done)")
			return
		}
	}
}

// Stop stops the background job
func (s *DroppedEventSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

func (s *DroppedEventSweeper) sweep(ctx context.Context) {
	log := logger.FromContext(ctx)
	stale, err := s.sweeper.Handle(ctx, "")
	if err != nil {
		log.WithError(err).Error("failed to sweep dropped events")
		return
	}
	if len(stale) > 0 {
		log.WithField("count", len(stale)).Info("stale events swept")
	}
}
