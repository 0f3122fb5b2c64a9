// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package baseobject implements the part of an object every class shares:
// identity, lifecycle state and the count of in-flight control requests.
package baseobject

import (
	"sync/atomic"

	"github.com/zeebo/errs"

	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
)

// Error is the error class for base object requests.
var Error = errs.Class("baseobject")

// Base is embedded by concrete objects.
type Base struct {
	classID  fbe.ClassID
	objectID fbe.ObjectID

	state      atomic.Uint32
	usurpers   atomic.Int64
	traceLevel atomic.Uint32
}

// New returns a base in the specialize state.
func New(classID fbe.ClassID, objectID fbe.ObjectID) *Base {
	base := &Base{}
	base.Init(classID, objectID)
	return base
}

// Init resets an embedded base.
func (base *Base) Init(classID fbe.ClassID, objectID fbe.ObjectID) {
	base.classID = classID
	base.objectID = objectID
	base.state.Store(uint32(fbe.LifecycleStateSpecialize))
	base.usurpers.Store(0)
}

// ClassID returns the class the object belongs to.
func (base *Base) ClassID() fbe.ClassID { return base.classID }

// ObjectID returns the id the object was created with.
func (base *Base) ObjectID() fbe.ObjectID { return base.objectID }

// LifecycleState returns the current lifecycle state.
func (base *Base) LifecycleState() fbe.LifecycleState {
	return fbe.LifecycleState(base.state.Load())
}

// SetLifecycleState moves the object to state. The destroy state is
// terminal.
func (base *Base) SetLifecycleState(state fbe.LifecycleState) error {
	if state >= fbe.LifecycleStateInvalid {
		return Error.New("invalid lifecycle state %d", state)
	}
	for {
		current := base.state.Load()
		if fbe.LifecycleState(current) == fbe.LifecycleStateDestroy && state != fbe.LifecycleStateDestroy {
			return Error.New("object %s is being destroyed", base.objectID)
		}
		if base.state.CompareAndSwap(current, uint32(state)) {
			return nil
		}
	}
}

// IncrementUsurperCounter records a control request entering the object.
func (base *Base) IncrementUsurperCounter() { base.usurpers.Add(1) }

// DecrementUsurperCounter records a control request leaving the object.
func (base *Base) DecrementUsurperCounter() { base.usurpers.Add(-1) }

// UsurperCount returns the number of control requests inside the object.
func (base *Base) UsurperCount() int64 { return base.usurpers.Load() }

// TraceLevel returns the per-object trace level.
func (base *Base) TraceLevel() uint32 { return base.traceLevel.Load() }

// Control serves the base object control codes. It reports whether code
// was one of them; when it was, the returned error is the request result.
func (base *Base) Control(pkt *packet.Packet) (handled bool, err error) {
	switch pkt.Control.Code {
	case fbe.ControlCodeBaseObjectGetLifecycleState:
		state, ok := pkt.Control.Buffer.(*fbe.LifecycleState)
		if !ok {
			return true, errBuffer(pkt)
		}
		*state = base.LifecycleState()
		return true, nil

	case fbe.ControlCodeBaseObjectSetLifecycleCondition:
		state, ok := pkt.Control.Buffer.(*fbe.LifecycleState)
		if !ok {
			return true, errBuffer(pkt)
		}
		return true, base.SetLifecycleState(*state)

	case fbe.ControlCodeBaseObjectGetClassID:
		classID, ok := pkt.Control.Buffer.(*fbe.ClassID)
		if !ok {
			return true, errBuffer(pkt)
		}
		*classID = base.classID
		return true, nil

	case fbe.ControlCodeBaseObjectGetObjectID:
		objectID, ok := pkt.Control.Buffer.(*fbe.ObjectID)
		if !ok {
			return true, errBuffer(pkt)
		}
		*objectID = base.objectID
		return true, nil

	case fbe.ControlCodeBaseObjectSetTraceLevel:
		level, ok := pkt.Control.Buffer.(*uint32)
		if !ok {
			return true, errBuffer(pkt)
		}
		base.traceLevel.Store(*level)
		return true, nil
	}
	return false, nil
}

func errBuffer(pkt *packet.Packet) error {
	return packet.NewStatusError(packet.StatusGenericFailure,
		Error.New("%s: unexpected buffer %T", pkt.Control.Code, pkt.Control.Buffer))
}
