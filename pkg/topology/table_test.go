// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/topology/pkg/fbe"
)

func TestTable(t *testing.T) {
	tab := newTable(4, 1)

	for i := range tab.slots {
		assert.True(t, tab.slots[i].gate.IsSet(), "gate of slot %d starts closed", i)
	}
	_, ok := tab.tryAcquire(1)
	assert.False(t, ok)

	tab.mu.Lock()
	id, ok := tab.allocateLocked()
	require.True(t, ok)
	assert.Equal(t, fbe.ObjectID(1), id)
	assert.Equal(t, SlotReserved, tab.slots[1].load())

	// reserved slots are not routable
	_, ok = tab.ready(1)
	assert.False(t, ok)

	generation := tab.setReadyLocked(1, &handles{classID: fbe.ClassIDLUN})
	tab.mu.Unlock()
	assert.EqualValues(t, 1, generation)

	h, ok := tab.tryAcquire(1)
	require.True(t, ok)
	assert.Equal(t, fbe.ClassIDLUN, h.classID)
	assert.EqualValues(t, 1, tab.slots[1].gate.Count())
	assert.True(t, tab.release(1))
	assert.False(t, tab.release(1))
	assert.Zero(t, tab.slots[1].gate.Count())

	tab.mu.Lock()
	assert.Error(t, tab.reserveLocked(1))
	assert.Error(t, tab.reserveLocked(4))

	tab.slots[2].destroying.Store(true)
	id, ok = tab.allocateLocked()
	require.True(t, ok)
	assert.Equal(t, fbe.ObjectID(3), id, "a slot being destroyed is skipped")

	_, ok = tab.allocateLocked()
	assert.False(t, ok)

	tab.markNotExistLocked(1)
	tab.mu.Unlock()

	assert.True(t, tab.slots[1].gate.IsSet())
	assert.Nil(t, tab.slots[1].handles.Load())
	_, ok = tab.tryAcquire(1)
	assert.False(t, ok)

	var seen []fbe.ObjectID
	tab.each(func(id fbe.ObjectID, _ *handles) bool {
		seen = append(seen, id)
		return true
	})
	assert.Empty(t, seen)

	tab.release(fbe.ObjectIDInvalid)
	assert.Nil(t, tab.slot(fbe.ObjectIDInvalid))
}
