// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package baseobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/topology/pkg/baseobject"
	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
)

func TestLifecycle(t *testing.T) {
	base := baseobject.New(fbe.ClassIDLUN, 7)
	assert.Equal(t, fbe.LifecycleStateSpecialize, base.LifecycleState())

	require.NoError(t, base.SetLifecycleState(fbe.LifecycleStateReady))
	require.NoError(t, base.SetLifecycleState(fbe.LifecycleStateDestroy))
	require.Error(t, base.SetLifecycleState(fbe.LifecycleStateReady))
	require.Error(t, base.SetLifecycleState(fbe.LifecycleStateInvalid))
	assert.Equal(t, fbe.LifecycleStateDestroy, base.LifecycleState())
}

func TestUsurperCounter(t *testing.T) {
	var base baseobject.Base
	base.Init(fbe.ClassIDParity, 1)

	base.IncrementUsurperCounter()
	base.IncrementUsurperCounter()
	base.DecrementUsurperCounter()
	assert.EqualValues(t, 1, base.UsurperCount())
}

func TestControl(t *testing.T) {
	base := baseobject.New(fbe.ClassIDSASPort, 3)

	var state fbe.LifecycleState
	handled, err := base.Control(packet.NewControl(fbe.ControlCodeBaseObjectGetLifecycleState, 3, &state))
	require.True(t, handled)
	require.NoError(t, err)
	assert.Equal(t, fbe.LifecycleStateSpecialize, state)

	ready := fbe.LifecycleStateReady
	_, err = base.Control(packet.NewControl(fbe.ControlCodeBaseObjectSetLifecycleCondition, 3, &ready))
	require.NoError(t, err)
	assert.Equal(t, fbe.LifecycleStateReady, base.LifecycleState())

	var classID fbe.ClassID
	_, err = base.Control(packet.NewControl(fbe.ControlCodeBaseObjectGetClassID, 3, &classID))
	require.NoError(t, err)
	assert.Equal(t, fbe.ClassIDSASPort, classID)

	_, err = base.Control(packet.NewControl(fbe.ControlCodeBaseObjectGetObjectID, 3, &classID))
	require.Error(t, err)
	status, ok := packet.StatusFromError(err)
	require.True(t, ok)
	assert.Equal(t, packet.StatusGenericFailure, status)

	handled, err = base.Control(packet.NewControl(fbe.ControlCodePortGetInfo, 3, nil))
	assert.False(t, handled)
	assert.NoError(t, err)
}
