package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"party-paradise/internal/domain/aggregate"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (c *countingSweeper) Handle(ctx context.Context, hostID string) ([]*aggregate.Event, error) {
	c.calls.Add(1)
	return nil, c.err
}

func TestDroppedEventSweeperRunsUntilStopped(t *testing.T) {
	fake := &countingSweeper{}
	sweeper := NewDroppedEventSweeper(fake, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		sweeper.Start(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool { return fake.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	sweeper.Stop()
	sweeper.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestDroppedEventSweeperStopsOnContextAndSurvivesErrors(t *testing.T) {
	fake := &countingSweeper{err: errors.New("store down")}
	sweeper := NewDroppedEventSweeper(fake, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return fake.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}
