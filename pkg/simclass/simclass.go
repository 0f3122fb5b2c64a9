// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package simclass implements an in-memory object class. Its objects answer
// the base object, port, physical drive and provisioned drive queries from
// the parameters they were created with.
package simclass

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"storj.io/topology/pkg/baseobject"
	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
	"storj.io/topology/pkg/topology"
)

// Error is the error class for simulated classes.
var Error = errs.Class("simclass")

// Parameters configure a simulated object. They are passed as
// topology.CreateRequest.Parameters.
type Parameters struct {
	// Specialize keeps the object in the specialize state after creation.
	Specialize bool

	Port      fbe.PortInfo
	Location  fbe.DriveLocation
	Provision fbe.ProvisionDriveInfo
	Upstream  fbe.UpstreamObjects
}

// Object is a simulated object.
type Object struct {
	*baseobject.Base
	params Parameters

	mu       sync.Mutex
	events   []fbe.EventType
	ios      uint64
	monitors uint64
}

// Events returns the events delivered to the object.
func (object *Object) Events() []fbe.EventType {
	object.mu.Lock()
	defer object.mu.Unlock()
	return append([]fbe.EventType(nil), object.events...)
}

// IOs returns the number of data path packets the object served.
func (object *Object) IOs() uint64 {
	object.mu.Lock()
	defer object.mu.Unlock()
	return object.ios
}

// Monitors returns the number of monitor packets the object served.
func (object *Object) Monitors() uint64 {
	object.mu.Lock()
	defer object.mu.Unlock()
	return object.monitors
}

// Class is a simulated class.
type Class struct {
	log *zap.Logger
	id  fbe.ClassID

	loaded atomic.Bool

	mu      sync.Mutex
	objects map[fbe.ObjectID]*Object
}

// New creates a simulated class with id.
func New(log *zap.Logger, id fbe.ClassID) *Class {
	return &Class{
		log:     log,
		id:      id,
		objects: map[fbe.ObjectID]*Object{},
	}
}

// ClassID implements topology.Class.
func (class *Class) ClassID() fbe.ClassID { return class.id }

// Load implements topology.Class.
func (class *Class) Load(ctx context.Context) error {
	class.loaded.Store(true)
	class.log.Debug("loaded", zap.Stringer("class", class.id))
	return nil
}

// Unload implements topology.Class.
func (class *Class) Unload(ctx context.Context) error {
	class.mu.Lock()
	remaining := len(class.objects)
	class.mu.Unlock()
	if remaining > 0 {
		return Error.New("%s still has %d objects", class.id, remaining)
	}
	class.loaded.Store(false)
	return nil
}

// Loaded reports whether Load was called without a later Unload.
func (class *Class) Loaded() bool { return class.loaded.Load() }

// CreateObject implements topology.Class.
func (class *Class) CreateObject(ctx context.Context, req *topology.CreateRequest) (topology.Object, error) {
	if !class.loaded.Load() {
		return nil, Error.New("%s is not loaded", class.id)
	}

	var params Parameters
	switch p := req.Parameters.(type) {
	case nil:
	case Parameters:
		params = p
	case *Parameters:
		params = *p
	default:
		return nil, Error.New("unexpected parameters %T", req.Parameters)
	}

	object := &Object{
		Base:   baseobject.New(class.id, req.ObjectID),
		params: params,
	}
	if !params.Specialize {
		if err := object.SetLifecycleState(fbe.LifecycleStateReady); err != nil {
			return nil, err
		}
	}

	class.mu.Lock()
	class.objects[req.ObjectID] = object
	class.mu.Unlock()
	return object, nil
}

// DestroyObject implements topology.Class.
func (class *Class) DestroyObject(ctx context.Context, handle topology.Object) error {
	object, ok := handle.(*Object)
	if !ok {
		return Error.New("foreign object %T", handle)
	}
	if err := object.SetLifecycleState(fbe.LifecycleStateDestroy); err != nil {
		return err
	}

	class.mu.Lock()
	delete(class.objects, object.ObjectID())
	class.mu.Unlock()
	return nil
}

// Object returns the live object with id.
func (class *Class) Object(id fbe.ObjectID) (*Object, bool) {
	class.mu.Lock()
	defer class.mu.Unlock()
	object, ok := class.objects[id]
	return object, ok
}

// Len returns the number of live objects.
func (class *Class) Len() int {
	class.mu.Lock()
	defer class.mu.Unlock()
	return len(class.objects)
}

// ControlEntry implements topology.Class.
func (class *Class) ControlEntry(handle topology.Object, pkt *packet.Packet) error {
	if handle == nil {
		return class.classControl(pkt)
	}
	object, ok := handle.(*Object)
	if !ok {
		return Error.New("foreign object %T", handle)
	}

	if handled, err := object.Control(pkt); handled {
		return err
	}

	switch pkt.Control.Code {
	case fbe.ControlCodePortGetInfo:
		info, ok := pkt.Control.Buffer.(*fbe.PortInfo)
		if !ok || !class.id.IsPort() {
			return unsupported(pkt)
		}
		*info = object.params.Port
		return nil

	case fbe.ControlCodePhysicalDriveGetLocation:
		location, ok := pkt.Control.Buffer.(*fbe.DriveLocation)
		if !ok || !class.id.IsPhysicalDrive() {
			return unsupported(pkt)
		}
		*location = object.params.Location
		return nil

	case fbe.ControlCodeProvisionDriveGetInfo:
		info, ok := pkt.Control.Buffer.(*fbe.ProvisionDriveInfo)
		if !ok || class.id != fbe.ClassIDProvisionDrive {
			return unsupported(pkt)
		}
		*info = object.params.Provision
		return nil

	case fbe.ControlCodeProvisionDriveGetUpstreamObjects:
		upstream, ok := pkt.Control.Buffer.(*fbe.UpstreamObjects)
		if !ok || class.id != fbe.ClassIDProvisionDrive {
			return unsupported(pkt)
		}
		*upstream = object.params.Upstream
		return nil
	}
	return unsupported(pkt)
}

// classControl answers requests addressed to the class itself.
func (class *Class) classControl(pkt *packet.Packet) error {
	switch pkt.Control.Code {
	case fbe.ControlCodeGetTotalObjectsOfClass:
		total, ok := pkt.Control.Buffer.(*int)
		if !ok {
			return unsupported(pkt)
		}
		*total = class.Len()
		return nil
	}
	return unsupported(pkt)
}

// IOEntry implements topology.IOHandler.
func (class *Class) IOEntry(handle topology.Object, pkt *packet.Packet) error {
	object, ok := handle.(*Object)
	if !ok {
		return Error.New("foreign object %T", handle)
	}
	object.mu.Lock()
	object.ios++
	object.mu.Unlock()
	return nil
}

// EventEntry implements topology.EventHandler.
func (class *Class) EventEntry(handle topology.Object, event fbe.EventType, eventContext fbe.EventContext) error {
	object, ok := handle.(*Object)
	if !ok {
		return Error.New("foreign object %T", handle)
	}
	object.mu.Lock()
	object.events = append(object.events, event)
	object.mu.Unlock()
	return nil
}

// MonitorEntry implements topology.MonitorHandler.
func (class *Class) MonitorEntry(handle topology.Object, pkt *packet.Packet) error {
	object, ok := handle.(*Object)
	if !ok {
		return Error.New("foreign object %T", handle)
	}
	object.mu.Lock()
	object.monitors++
	object.mu.Unlock()
	return nil
}

func unsupported(pkt *packet.Packet) error {
	return packet.NewStatusError(packet.StatusGenericFailure,
		Error.New("unsupported request %s with buffer %T", pkt.Control.Code, pkt.Control.Buffer))
}
