// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"storj.io/topology/internal/mock"
	"storj.io/topology/internal/testcontext"
	"storj.io/topology/pkg/baseobject"
	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
	"storj.io/topology/pkg/simclass"
	"storj.io/topology/pkg/topology"
)

func TestSendControlPacket(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	classes := sims(t, fbe.ClassIDSASPort)
	service := newService(t, ctx, testConfig(), asClasses(classes)...)

	port := fbe.PortInfo{Role: fbe.PortRoleBE, PortNumber: 3, IOModule: 1, IOPort: 2}
	id := create(t, ctx, service, fbe.ClassIDSASPort, simclass.Parameters{Port: port})
	object, _ := classes[0].Object(id)

	var info fbe.PortInfo
	pkt := packet.NewControl(fbe.ControlCodePortGetInfo, id, &info)
	require.NoError(t, service.SendControlPacket(pkt))

	assert.True(t, pkt.Completed())
	assert.Equal(t, packet.StatusOK, pkt.Status())
	assert.Equal(t, port, info)
	assert.Zero(t, object.UsurperCount())
}

func TestSendControlPacketNoObject(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service := newService(t, ctx, testConfig(), asClasses(sims(t, fbe.ClassIDLUN))...)

	for _, id := range []fbe.ObjectID{0, 31, 32, fbe.ObjectIDInvalid} {
		var state fbe.LifecycleState
		pkt := packet.NewControl(fbe.ControlCodeBaseObjectGetLifecycleState, id, &state)
		err := service.SendControlPacket(pkt)
		assert.True(t, topology.ErrNoObject.Has(err))
		assert.True(t, pkt.Completed())
		assert.Equal(t, packet.StatusNoObject, pkt.Status())
		assert.Equal(t, packet.StatusNoObject, pkt.ControlStatus())
	}
}

func TestSendControlPacketSpecializing(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service := newService(t, ctx, testConfig(), asClasses(sims(t, fbe.ClassIDProvisionDrive))...)

	// object 0 and any other object are rejected alike
	for i := 0; i < 2; i++ {
		id := create(t, ctx, service, fbe.ClassIDProvisionDrive, simclass.Parameters{Specialize: true})
		require.Equal(t, fbe.ObjectID(i), id)

		var state fbe.LifecycleState
		external := packet.NewControl(fbe.ControlCodeBaseObjectGetLifecycleState, id, &state)
		external.Attr = packet.AttrExternal
		err := service.SendControlPacket(external)
		assert.True(t, topology.ErrBusy.Has(err))
		assert.Equal(t, packet.StatusBusy, external.Status())

		internal := packet.NewControl(fbe.ControlCodeBaseObjectGetLifecycleState, id, &state)
		require.NoError(t, service.SendControlPacket(internal))
		assert.Equal(t, fbe.LifecycleStateSpecialize, state)

		// once ready external requests are accepted
		ready := fbe.LifecycleStateReady
		require.NoError(t, service.SendControlPacket(
			packet.NewControl(fbe.ControlCodeBaseObjectSetLifecycleCondition, id, &ready)))

		external = packet.NewControl(fbe.ControlCodeBaseObjectGetLifecycleState, id, &state)
		external.Attr = packet.AttrExternal
		require.NoError(t, service.SendControlPacket(external))
		assert.Equal(t, fbe.LifecycleStateReady, state)
	}
}

func TestSpecializeRejectionLogLevel(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	registry, err := topology.NewRegistry(log, simclass.New(log, fbe.ClassIDProvisionDrive))
	require.NoError(t, err)
	service := topology.New(log, fbe.PackageIDSEP0, registry, testConfig())
	require.NoError(t, service.Init(ctx))

	for i := 0; i < 2; i++ {
		id := create(t, ctx, service, fbe.ClassIDProvisionDrive, simclass.Parameters{Specialize: true})
		require.Equal(t, fbe.ObjectID(i), id)

		var state fbe.LifecycleState
		pkt := packet.NewControl(fbe.ControlCodeBaseObjectGetLifecycleState, id, &state)
		pkt.Attr = packet.AttrExternal
		assert.True(t, topology.ErrBusy.Has(service.SendControlPacket(pkt)))
	}

	rejections := logs.FilterMessage("external request to specializing object").All()
	require.Len(t, rejections, 2)
	assert.Equal(t, zapcore.WarnLevel, rejections[0].Level)
	assert.Equal(t, zapcore.DebugLevel, rejections[1].Level)
}

func TestSendControlPacketDestroyState(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	classes := sims(t, fbe.ClassIDLUN)
	service := newService(t, ctx, testConfig(), asClasses(classes)...)

	id := create(t, ctx, service, fbe.ClassIDLUN, simclass.Parameters{})
	object, _ := classes[0].Object(id)
	require.NoError(t, object.SetLifecycleState(fbe.LifecycleStateDestroy))

	var classID fbe.ClassID
	pkt := packet.NewControl(fbe.ControlCodeBaseObjectGetClassID, id, &classID)
	err := service.SendControlPacket(pkt)
	assert.True(t, topology.ErrNoObject.Has(err))
	assert.Equal(t, packet.StatusNoObject, pkt.Status())

	pkt = packet.NewControl(fbe.ControlCodeBaseObjectGetClassID, id, &classID)
	pkt.Attr = packet.AttrDestroyEnabled
	require.NoError(t, service.SendControlPacket(pkt))
	assert.Equal(t, fbe.ClassIDLUN, classID)

	require.NoError(t, service.DestroyObject(ctx, id))
}

func TestSendControlPacketClassStatus(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	classes := sims(t, fbe.ClassIDLUN)
	service := newService(t, ctx, testConfig(), asClasses(classes)...)
	id := create(t, ctx, service, fbe.ClassIDLUN, simclass.Parameters{})

	// a lun does not answer port queries
	var info fbe.PortInfo
	pkt := packet.NewControl(fbe.ControlCodePortGetInfo, id, &info)
	require.Error(t, service.SendControlPacket(pkt))
	assert.Equal(t, packet.StatusGenericFailure, pkt.Status())
	assert.Equal(t, packet.StatusGenericFailure, pkt.ControlStatus())
}

func TestSendClassCommand(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service := newService(t, ctx, testConfig(), asClasses(sims(t, fbe.ClassIDProvisionDrive))...)
	create(t, ctx, service, fbe.ClassIDProvisionDrive, simclass.Parameters{})
	create(t, ctx, service, fbe.ClassIDProvisionDrive, simclass.Parameters{})

	var total int
	pkt := packet.NewClassControl(fbe.ControlCodeGetTotalObjectsOfClass, fbe.ClassIDProvisionDrive, &total)
	require.NoError(t, service.ControlEntry(ctx, pkt))
	assert.Equal(t, 2, total)
	assert.True(t, pkt.Completed())

	pkt = packet.NewClassControl(fbe.ControlCodeGetTotalObjectsOfClass, fbe.ClassIDMirror, &total)
	err := service.ControlEntry(ctx, pkt)
	assert.True(t, topology.ErrGenericFailure.Has(err))
	assert.Equal(t, packet.StatusGenericFailure, pkt.Status())
}

func TestSendIOPacket(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	classes := sims(t, fbe.ClassIDLUN, fbe.ClassIDVertex)
	service := newService(t, ctx, testConfig(), asClasses(classes)...)

	lun := create(t, ctx, service, fbe.ClassIDLUN, simclass.Parameters{})
	vertex := create(t, ctx, service, fbe.ClassIDVertex, simclass.Parameters{})

	op := packet.IOOperation{LBA: 0x800, Blocks: 8}
	pkt := packet.NewIO(packet.Address{Package: fbe.PackageIDSEP0, Object: lun}, op)
	require.NoError(t, service.SendIOPacket(ctx, pkt))
	assert.Equal(t, packet.StatusOK, pkt.Status())

	// an unset package means the local one
	require.NoError(t, service.SendIOPacket(ctx, packet.NewIO(packet.Address{Object: lun}, op)))

	object, _ := classes[0].Object(lun)
	assert.EqualValues(t, 2, object.IOs())

	pkt = packet.NewIO(packet.Address{Object: vertex}, op)
	assert.True(t, topology.ErrGenericFailure.Has(service.SendIOPacket(ctx, pkt)))
	assert.Equal(t, packet.StatusGenericFailure, pkt.Status())

	for _, id := range []fbe.ObjectID{7, 32} {
		pkt = packet.NewIO(packet.Address{Object: id}, op)
		assert.True(t, topology.ErrNoObject.Has(service.SendIOPacket(ctx, pkt)))
		assert.Equal(t, packet.StatusNoObject, pkt.Status())
	}
}

func TestSendIOPacketForwarding(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service := newService(t, ctx, testConfig())

	pkt := packet.NewIO(packet.Address{Package: fbe.PackageIDESP, Object: 1}, packet.IOOperation{})
	assert.True(t, topology.ErrGenericFailure.Has(service.SendIOPacket(ctx, pkt)))
	assert.Equal(t, packet.StatusGenericFailure, pkt.Status())

	var forwarded []*packet.Packet
	require.NoError(t, service.SetPackageIOEntry(fbe.PackageIDESP, func(_ context.Context, pkt *packet.Packet) error {
		forwarded = append(forwarded, pkt)
		pkt.Complete(packet.StatusOK)
		return nil
	}))

	pkt = packet.NewIO(packet.Address{Package: fbe.PackageIDESP, Object: 1}, packet.IOOperation{})
	require.NoError(t, service.SendIOPacket(ctx, pkt))
	assert.Equal(t, []*packet.Packet{pkt}, forwarded)

	require.NoError(t, service.SetPackageIOEntry(fbe.PackageIDESP, nil))
	pkt = packet.NewIO(packet.Address{Package: fbe.PackageIDESP, Object: 1}, packet.IOOperation{})
	assert.Error(t, service.SendIOPacket(ctx, pkt))
	assert.Len(t, forwarded, 1)

	assert.Error(t, service.SetPackageIOEntry(fbe.PackageIDLast, nil))
	pkt = packet.NewIO(packet.Address{Package: fbe.PackageIDLast}, packet.IOOperation{})
	assert.True(t, topology.ErrGenericFailure.Has(service.SendIOPacket(ctx, pkt)))
}

func TestSendEvent(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	classes := sims(t, fbe.ClassIDProvisionDrive)
	service := newService(t, ctx, testConfig(), asClasses(classes)...)

	id := create(t, ctx, service, fbe.ClassIDProvisionDrive, simclass.Parameters{})
	object, _ := classes[0].Object(id)

	require.NoError(t, service.SendEvent(id, fbe.EventTypePermitRequest, nil))
	require.NoError(t, service.SendEvent(id, fbe.EventTypeDataRequest, "context"))
	assert.Equal(t, []fbe.EventType{fbe.EventTypePermitRequest, fbe.EventTypeDataRequest}, object.Events())

	assert.True(t, topology.ErrNoObject.Has(service.SendEvent(9, fbe.EventTypeDataRequest, nil)))
	assert.True(t, topology.ErrNoObject.Has(service.SendEvent(32, fbe.EventTypeDataRequest, nil)))

	require.NoError(t, object.SetLifecycleState(fbe.LifecycleStateDestroy))
	assert.True(t, topology.ErrNoObject.Has(service.SendEvent(id, fbe.EventTypeDataRequest, nil)))
	assert.Len(t, object.Events(), 2)

	// the reference taken for the dropped event was released
	require.NoError(t, service.DestroyObject(ctx, id))
	assert.True(t, topology.ErrNoObject.Has(service.SendEvent(id, fbe.EventTypeDataRequest, nil)))
}

func TestSendMonitorPacket(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	classes := sims(t, fbe.ClassIDSASEnclosure)
	service := newService(t, ctx, testConfig(), asClasses(classes)...)
	id := create(t, ctx, service, fbe.ClassIDSASEnclosure, simclass.Parameters{})

	assert.True(t, service.HasMonitorEntry(id))
	assert.False(t, service.HasMonitorEntry(id+1))

	pkt := packet.NewMonitor(id, 1)
	require.NoError(t, service.SendMonitorPacket(pkt))
	assert.Equal(t, packet.StatusOK, pkt.Status())
	object, _ := classes[0].Object(id)
	assert.EqualValues(t, 1, object.Monitors())

	pkt = packet.NewMonitor(id+1, 2)
	assert.True(t, topology.ErrNoObject.Has(service.SendMonitorPacket(pkt)))

	for _, invalid := range []fbe.ObjectID{32, fbe.ObjectIDInvalid} {
		pkt = packet.NewMonitor(invalid, 3)
		assert.True(t, topology.ErrGenericFailure.Has(service.SendMonitorPacket(pkt)))
		assert.Equal(t, packet.StatusGenericFailure, pkt.Status())
	}
}

func TestClassWithoutOptionalEntries(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	ctrl := gomock.NewController(t)
	class := mockClass(ctrl, fbe.ClassIDLUN)
	object := &fakeObject{state: fbe.LifecycleStateReady}
	class.EXPECT().CreateObject(gomock.Any(), gomock.Any()).Return(object, nil)
	class.EXPECT().ControlEntry(object, gomock.Any()).DoAndReturn(
		func(_ topology.Object, pkt *packet.Packet) error {
			assert.EqualValues(t, 1, object.usurpers)
			return errors.New("rejected")
		})

	service := newService(t, ctx, testConfig(), class)
	id := create(t, ctx, service, fbe.ClassIDLUN, simclass.Parameters{})

	pkt := packet.NewControl(fbe.ControlCodeBaseObjectGetClassID, id, nil)
	assert.Error(t, service.SendControlPacket(pkt))
	assert.Equal(t, packet.StatusGenericFailure, pkt.Status())
	assert.Zero(t, object.usurpers)

	assert.False(t, service.HasMonitorEntry(id))
	assert.True(t, topology.ErrGenericFailure.Has(service.SendMonitorPacket(packet.NewMonitor(id, 1))))
	assert.True(t, topology.ErrGenericFailure.Has(service.SendEvent(id, fbe.EventTypeDataRequest, nil)))
	assert.True(t, topology.ErrGenericFailure.Has(service.SendIOPacket(ctx, packet.NewIO(packet.Address{Object: id}, packet.IOOperation{}))))
}

func TestClassHandlers(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	ctrl := gomock.NewController(t)
	class := newHandlerClass(ctrl, fbe.ClassIDSASEnclosure)
	object := baseobject.New(fbe.ClassIDSASEnclosure, 0)
	require.NoError(t, object.SetLifecycleState(fbe.LifecycleStateReady))
	class.EXPECT().CreateObject(gomock.Any(), gomock.Any()).Return(object, nil)

	service := newService(t, ctx, testConfig(), class)
	id := create(t, ctx, service, fbe.ClassIDSASEnclosure, simclass.Parameters{})
	assert.True(t, service.HasMonitorEntry(id))

	io := packet.NewIO(packet.Address{Object: id}, packet.IOOperation{})
	class.io.EXPECT().IOEntry(object, io).Return(nil)
	require.NoError(t, service.SendIOPacket(ctx, io))
	assert.Equal(t, packet.StatusOK, io.Status())

	class.event.EXPECT().EventEntry(object, fbe.EventTypePermitRequest, "permit").Return(nil)
	require.NoError(t, service.SendEvent(id, fbe.EventTypePermitRequest, "permit"))

	monitor := packet.NewMonitor(id, 1)
	class.monitor.EXPECT().MonitorEntry(object, monitor).DoAndReturn(
		func(topology.Object, *packet.Packet) error {
			assert.EqualValues(t, 1, object.UsurperCount())
			return nil
		})
	require.NoError(t, service.SendMonitorPacket(monitor))
	assert.Zero(t, object.UsurperCount())

	failing := packet.NewMonitor(id, 2)
	class.monitor.EXPECT().MonitorEntry(object, failing).Return(errors.New("unreachable"))
	assert.Error(t, service.SendMonitorPacket(failing))
	assert.Equal(t, packet.StatusGenericFailure, failing.Status())
	assert.Zero(t, object.UsurperCount())
}

// handlerClass is a mock class that also serves io, event and monitor
// packets.
type handlerClass struct {
	*mock.MockClass
	io      *mock.MockIOHandler
	event   *mock.MockEventHandler
	monitor *mock.MockMonitorHandler
}

func newHandlerClass(ctrl *gomock.Controller, id fbe.ClassID) *handlerClass {
	return &handlerClass{
		MockClass: mockClass(ctrl, id),
		io:        mock.NewMockIOHandler(ctrl),
		event:     mock.NewMockEventHandler(ctrl),
		monitor:   mock.NewMockMonitorHandler(ctrl),
	}
}

func (class *handlerClass) IOEntry(object topology.Object, pkt *packet.Packet) error {
	return class.io.IOEntry(object, pkt)
}

func (class *handlerClass) EventEntry(object topology.Object, event fbe.EventType, eventContext fbe.EventContext) error {
	return class.event.EventEntry(object, event, eventContext)
}

func (class *handlerClass) MonitorEntry(object topology.Object, pkt *packet.Packet) error {
	return class.monitor.MonitorEntry(object, pkt)
}

// fakeObject is an object whose class keeps no state.
type fakeObject struct {
	state    fbe.LifecycleState
	usurpers int64
}

func (object *fakeObject) LifecycleState() fbe.LifecycleState { return object.state }
func (object *fakeObject) IncrementUsurperCounter()           { object.usurpers++ }
func (object *fakeObject) DecrementUsurperCounter()           { object.usurpers-- }
func (object *fakeObject) UsurperCount() int64                { return object.usurpers }
