// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package packet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/topology/internal/testcontext"
	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
)

func TestCompletionOrder(t *testing.T) {
	pkt := packet.NewControl(fbe.ControlCodeGetTotalObjects, 3, nil)

	var order []int
	pkt.PushCompletion(func(*packet.Packet) { order = append(order, 1) })
	pkt.PushCompletion(func(*packet.Packet) { order = append(order, 2) })

	require.True(t, pkt.Complete(packet.StatusBusy))
	require.False(t, pkt.Complete(packet.StatusOK))

	assert.Equal(t, []int{2, 1}, order)
	assert.Equal(t, packet.StatusBusy, pkt.Status())
	assert.True(t, pkt.Completed())
}

func TestWait(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	pkt := packet.NewServiceControl(fbe.ControlCodeGetStatistics, nil)
	ctx.Go(func() error {
		time.Sleep(10 * time.Millisecond)
		pkt.Complete(packet.StatusNoObject)
		return nil
	})

	err := pkt.Wait(ctx)
	status, ok := packet.StatusFromError(err)
	require.True(t, ok)
	assert.Equal(t, packet.StatusNoObject, status)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	pending := packet.NewMonitor(1, 0)
	assert.True(t, errors.Is(pending.Wait(canceled), context.Canceled))
}

func TestZeroPacket(t *testing.T) {
	var pkt packet.Packet
	pkt.Complete(packet.StatusOK)
	require.NoError(t, pkt.Wait(context.Background()))
}

func TestStatusError(t *testing.T) {
	base := errors.New("drive missing")
	err := packet.NewStatusError(packet.StatusNoObject, base)

	status, ok := packet.StatusFromError(err)
	require.True(t, ok)
	assert.Equal(t, packet.StatusNoObject, status)
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, "no-object: drive missing", err.Error())

	_, ok = packet.StatusFromError(base)
	assert.False(t, ok)
	assert.NoError(t, packet.StatusOK.Err())
}

func TestAddressAttr(t *testing.T) {
	pkt := packet.NewClassControl(fbe.ControlCodeEnumerateClass, fbe.ClassIDLUN, nil)
	assert.Equal(t, fbe.ObjectIDInvalid, pkt.Address.Object)
	assert.Equal(t, fbe.ClassIDLUN, pkt.Address.Class)

	attr := packet.AttrExternal | packet.AttrDestroyEnabled
	assert.True(t, attr.Has(packet.AttrExternal))
	assert.False(t, attr.Has(packet.AttrExternal|packet.AttrTraversal))
}
