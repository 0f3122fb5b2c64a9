// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package sync2_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/errs"

	"storj.io/topology/internal/sync2"
	"storj.io/topology/internal/testcontext"
)

func TestCycle_TriggerWaitAndStop(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	var count int64
	cycle := sync2.NewCycle(time.Hour)
	ctx.Go(func() error {
		return cycle.Run(ctx, func(ctx context.Context) error {
			atomic.AddInt64(&count, 1)
			return nil
		})
	})

	cycle.TriggerWait()
	cycle.TriggerWait()
	require.EqualValues(t, 3, atomic.LoadInt64(&count))

	cycle.Pause()
	cycle.TriggerWait()
	require.EqualValues(t, 4, atomic.LoadInt64(&count))

	cycle.Stop()
	// calls after the loop exited must not block
	cycle.TriggerWait()
	cycle.Stop()
}

func TestCycle_ErrorStopsLoop(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	failure := errs.New("monitor failed")
	cycle := sync2.NewCycle(time.Millisecond)
	err := cycle.Run(ctx, func(ctx context.Context) error {
		return failure
	})
	require.Equal(t, failure, err)
}

func TestCycle_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cycle := sync2.NewCycle(time.Hour)
	err := cycle.Run(ctx, func(ctx context.Context) error { return nil })
	require.Equal(t, context.Canceled, err)
}
