// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"context"

	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
)

// Object is the handle a class hands back from CreateObject. The service
// only asks it about its lifecycle and counts control and monitor requests
// inside it. The counter must be safe for concurrent use.
type Object interface {
	LifecycleState() fbe.LifecycleState
	IncrementUsurperCounter()
	DecrementUsurperCounter()
	UsurperCount() int64
}

// CreateRequest describes the object a class is asked to create.
type CreateRequest struct {
	Package    fbe.PackageID
	ClassID    fbe.ClassID
	ObjectID   fbe.ObjectID
	Parameters interface{}
}

// Class is the behavior shared by every object of one class.
//
// ControlEntry finishes the request before returning; the service completes
// the packet with the status of the returned error unless the class already
// completed it. ControlEntry is called with a nil Object for requests
// addressed to the class itself.
type Class interface {
	ClassID() fbe.ClassID
	Load(ctx context.Context) error
	Unload(ctx context.Context) error
	CreateObject(ctx context.Context, req *CreateRequest) (Object, error)
	DestroyObject(ctx context.Context, object Object) error
	ControlEntry(object Object, pkt *packet.Packet) error
}

// IOHandler is implemented by classes that serve data path packets.
type IOHandler interface {
	IOEntry(object Object, pkt *packet.Packet) error
}

// EventHandler is implemented by classes that accept events.
type EventHandler interface {
	EventEntry(object Object, event fbe.EventType, eventContext fbe.EventContext) error
}

// MonitorHandler is implemented by classes that accept monitor packets.
type MonitorHandler interface {
	MonitorEntry(object Object, pkt *packet.Packet) error
}

// classDescriptor caches the optional entry points of a class.
type classDescriptor struct {
	class   Class
	io      IOHandler
	event   EventHandler
	monitor MonitorHandler
}

func newClassDescriptor(class Class) *classDescriptor {
	desc := &classDescriptor{class: class}
	desc.io, _ = class.(IOHandler)
	desc.event, _ = class.(EventHandler)
	desc.monitor, _ = class.(MonitorHandler)
	return desc
}

// Registry is the ordered list of classes a service knows. It is not
// modified after construction so lookups take no lock.
type Registry struct {
	log     *zap.Logger
	classes []*classDescriptor
}

// NewRegistry creates a registry from classes in registration order.
func NewRegistry(log *zap.Logger, classes ...Class) (*Registry, error) {
	registry := &Registry{log: log}
	for _, class := range classes {
		id := class.ClassID()
		if id.IsMarker() {
			return nil, Error.New("class %d is not registrable", uint32(id))
		}
		if registry.lookup(id) != nil {
			return nil, Error.New("class %s registered twice", id)
		}
		registry.classes = append(registry.classes, newClassDescriptor(class))
	}
	return registry, nil
}

// lookup returns the descriptor of id or nil.
func (registry *Registry) lookup(id fbe.ClassID) *classDescriptor {
	for _, desc := range registry.classes {
		if desc.class.ClassID() == id {
			return desc
		}
	}
	return nil
}

// Class returns the registered class with id.
func (registry *Registry) Class(id fbe.ClassID) (Class, bool) {
	desc := registry.lookup(id)
	if desc == nil {
		return nil, false
	}
	return desc.class, true
}

// ClassIDs returns the registered class ids in registration order.
func (registry *Registry) ClassIDs() []fbe.ClassID {
	ids := make([]fbe.ClassID, 0, len(registry.classes))
	for _, desc := range registry.classes {
		ids = append(ids, desc.class.ClassID())
	}
	return ids
}

// LoadAll loads every class in order and stops at the first failure.
func (registry *Registry) LoadAll(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)
	for _, desc := range registry.classes {
		if err := desc.class.Load(ctx); err != nil {
			registry.log.Error("class load failed",
				zap.Stringer("class", desc.class.ClassID()), zap.Error(err))
			return Error.New("load %s: %v", desc.class.ClassID(), err)
		}
	}
	return nil
}

// UnloadAll unloads every class and keeps going past failures.
func (registry *Registry) UnloadAll(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)
	var group errs.Group
	for _, desc := range registry.classes {
		if err := desc.class.Unload(ctx); err != nil {
			registry.log.Error("class unload failed",
				zap.Stringer("class", desc.class.ClassID()), zap.Error(err))
			group.Add(Error.New("unload %s: %v", desc.class.ClassID(), err))
		}
	}
	return group.Err()
}
