// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package sync2

import (
	"context"
	"sync"
	"time"
)

// Cycle runs a function on an interval and can be paused, resumed and
// triggered from other goroutines while it runs.
type Cycle struct {
	interval time.Duration

	init    sync.Once
	control chan cycleMessage
	stopped chan struct{}
}

type cycleMessage interface{ isCycleMessage() }

type (
	cycleStop    struct{}
	cyclePause   struct{}
	cycleResume  struct{}
	cycleTrigger struct{ done chan struct{} }
)

func (cycleStop) isCycleMessage()    {}
func (cyclePause) isCycleMessage()   {}
func (cycleResume) isCycleMessage()  {}
func (cycleTrigger) isCycleMessage() {}

// NewCycle creates a cycle with the specified interval.
func NewCycle(interval time.Duration) *Cycle {
	cycle := &Cycle{interval: interval}
	cycle.initialize()
	return cycle
}

func (cycle *Cycle) initialize() {
	cycle.init.Do(func() {
		cycle.control = make(chan cycleMessage)
		cycle.stopped = make(chan struct{})
	})
}

// Interval returns the configured interval.
func (cycle *Cycle) Interval() time.Duration { return cycle.interval }

// Run calls fn immediately and then on every tick until the context is
// canceled, Stop is called, or fn returns an error.
func (cycle *Cycle) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	cycle.initialize()
	defer close(cycle.stopped)

	ticker := time.NewTicker(cycle.interval)
	defer func() { ticker.Stop() }()

	if err := fn(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if err := fn(ctx); err != nil {
				return err
			}

		case message := <-cycle.control:
			switch message := message.(type) {
			case cycleStop:
				return nil
			case cyclePause:
				ticker.Stop()
				// drain a tick that may have fired before Stop
				select {
				case <-ticker.C:
				default:
				}
			case cycleResume:
				ticker.Stop()
				ticker = time.NewTicker(cycle.interval)
			case cycleTrigger:
				err := fn(ctx)
				if message.done != nil {
					close(message.done)
				}
				if err != nil {
					return err
				}
			}
		}
	}
}

func (cycle *Cycle) send(message cycleMessage) bool {
	cycle.initialize()
	select {
	case cycle.control <- message:
		return true
	case <-cycle.stopped:
		return false
	}
}

// Stop stops the cycle permanently.
func (cycle *Cycle) Stop() { cycle.send(cycleStop{}) }

// Pause stops ticking until Resume is called. Triggers still run.
func (cycle *Cycle) Pause() { cycle.send(cyclePause{}) }

// Resume restarts the ticker from zero.
func (cycle *Cycle) Resume() { cycle.send(cycleResume{}) }

// Trigger runs fn once more without waiting for it.
func (cycle *Cycle) Trigger() { cycle.send(cycleTrigger{}) }

// TriggerWait runs fn once more and waits until it has finished.
func (cycle *Cycle) TriggerWait() {
	done := make(chan struct{})
	if !cycle.send(cycleTrigger{done: done}) {
		return
	}
	select {
	case <-done:
	case <-cycle.stopped:
	}
}
