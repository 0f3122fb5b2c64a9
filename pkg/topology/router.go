// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"context"

	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
)

// SendControlPacket delivers a control packet to the object it addresses.
// The packet is always completed when SendControlPacket returns.
func (service *Service) SendControlPacket(pkt *packet.Packet) error {
	if err := service.checkInitialized(); err != nil {
		return complete(pkt, err)
	}

	id := pkt.Address.Object
	h, ok := service.table.ready(id)
	if !ok {
		if !service.table.valid(id) {
			service.log.Debug("control packet for invalid object id",
				zap.Stringer("object", id), zap.Stringer("code", pkt.Control.Code))
		}
		return complete(pkt, ErrNoObject.New("object %s is not ready", id))
	}

	object := h.control
	switch object.LifecycleState() {
	case fbe.LifecycleStateDestroy:
		if !pkt.Attr.Has(packet.AttrDestroyEnabled) {
			return complete(pkt, ErrNoObject.New("object %s is being destroyed", id))
		}
	case fbe.LifecycleStateSpecialize:
		if pkt.Attr.Has(packet.AttrExternal) {
			service.logSpecializeRejection(id, pkt.Control.Code)
			return complete(pkt, ErrBusy.New("object %s is specializing", id))
		}
	}

	if !service.usurp(id, h) {
		return complete(pkt, ErrNoObject.New("object %s is not ready", id))
	}
	pkt.PushCompletion(func(*packet.Packet) { object.DecrementUsurperCounter() })

	return complete(pkt, h.desc.class.ControlEntry(object, pkt))
}

// usurp counts a request inside the object of h. The slot is checked again
// after counting so that DestroyObject either sees the count or the request
// sees the slot leave the ready state.
func (service *Service) usurp(id fbe.ObjectID, h *handles) bool {
	h.control.IncrementUsurperCounter()
	if current, ok := service.table.ready(id); !ok || current != h {
		h.control.DecrementUsurperCounter()
		return false
	}
	return true
}

// logSpecializeRejection logs an external request bounced by a specializing
// object. Object id 0 is reported at warning level, every other id at
// debug level.
func (service *Service) logSpecializeRejection(id fbe.ObjectID, code fbe.ControlCode) {
	if id == 0 {
		service.log.Warn("external request to specializing object",
			zap.Stringer("object", id), zap.Stringer("code", code))
		return
	}
	service.log.Debug("external request to specializing object",
		zap.Stringer("object", id), zap.Stringer("code", code))
}

// sendClassCommand delivers a control packet to a class.
func (service *Service) sendClassCommand(pkt *packet.Packet) error {
	desc := service.registry.lookup(pkt.Address.Class)
	if desc == nil {
		service.log.Error("control packet for unknown class",
			zap.Stringer("class", pkt.Address.Class), zap.Stringer("code", pkt.Control.Code))
		return complete(pkt, ErrGenericFailure.New("unknown class %s", pkt.Address.Class))
	}
	return complete(pkt, desc.class.ControlEntry(nil, pkt))
}

// IOEntryFunc delivers a data path packet into another package.
type IOEntryFunc func(ctx context.Context, pkt *packet.Packet) error

// SetPackageIOEntry registers the data path entry of another package.
// A nil fn removes the entry.
func (service *Service) SetPackageIOEntry(packageID fbe.PackageID, fn IOEntryFunc) error {
	if !packageID.Valid() {
		return ErrGenericFailure.New("invalid package %s", packageID)
	}
	if fn == nil {
		service.ios[packageID].Store(nil)
		return nil
	}
	service.ios[packageID].Store(&fn)
	return nil
}

// SendIOPacket delivers a data path packet. Packets addressed to another
// package are forwarded to that package's registered entry.
func (service *Service) SendIOPacket(ctx context.Context, pkt *packet.Packet) error {
	if target := pkt.Address.Package; target != fbe.PackageIDInvalid && target != service.packageID {
		if !target.Valid() {
			return complete(pkt, ErrGenericFailure.New("invalid package %s", target))
		}
		fn := service.ios[target].Load()
		if fn == nil {
			service.log.Error("no io entry for package", zap.Stringer("package", target))
			return complete(pkt, ErrGenericFailure.New("no io entry for package %s", target))
		}
		return (*fn)(ctx, pkt)
	}

	if err := service.checkInitialized(); err != nil {
		return complete(pkt, err)
	}

	id := pkt.Address.Object
	if !service.table.valid(id) {
		return complete(pkt, ErrNoObject.New("object id %s out of range", id))
	}
	h, ok := service.table.tryAcquire(id)
	if !ok {
		return complete(pkt, ErrNoObject.New("object %s is not ready", id))
	}
	defer service.table.release(id)

	if h.io == nil || h.desc.io == nil {
		return complete(pkt, ErrGenericFailure.New("object %s has no io entry", id))
	}
	return complete(pkt, h.desc.io.IOEntry(h.io, pkt))
}

// SendEvent delivers an event to an object of this package. Events for
// objects that are going away are dropped with ErrNoObject.
func (service *Service) SendEvent(id fbe.ObjectID, event fbe.EventType, eventContext fbe.EventContext) error {
	if err := service.checkInitialized(); err != nil {
		return err
	}
	if !service.table.valid(id) {
		return ErrNoObject.New("object id %s out of range", id)
	}

	h, ok := service.table.tryAcquire(id)
	if !ok {
		mon.Meter("events_dropped").Mark(1)
		return ErrNoObject.New("object %s is not accepting events", id)
	}
	defer service.table.release(id)

	if h.control.LifecycleState() == fbe.LifecycleStateDestroy {
		mon.Meter("events_dropped").Mark(1)
		return ErrNoObject.New("object %s is being destroyed", id)
	}
	if h.desc.event == nil {
		return ErrGenericFailure.New("class %s has no event entry", h.classID)
	}
	return h.desc.event.EventEntry(h.control, event, eventContext)
}

// SendMonitorPacket delivers a monitor packet to the object it addresses.
func (service *Service) SendMonitorPacket(pkt *packet.Packet) error {
	if err := service.checkInitialized(); err != nil {
		return complete(pkt, err)
	}

	id := pkt.Address.Object
	if !service.table.valid(id) {
		return complete(pkt, ErrGenericFailure.New("object id %s out of range", id))
	}
	h, ok := service.table.ready(id)
	if !ok {
		return complete(pkt, ErrNoObject.New("object %s is not ready", id))
	}
	if h.desc.monitor == nil {
		return complete(pkt, ErrGenericFailure.New("class %s has no monitor entry", h.classID))
	}
	if !service.usurp(id, h) {
		return complete(pkt, ErrNoObject.New("object %s is not ready", id))
	}
	object := h.control
	pkt.PushCompletion(func(*packet.Packet) { object.DecrementUsurperCounter() })
	return complete(pkt, h.desc.monitor.MonitorEntry(object, pkt))
}

// HasMonitorEntry reports whether id is ready and its class accepts
// monitor packets.
func (service *Service) HasMonitorEntry(id fbe.ObjectID) bool {
	if !service.initialized.Load() {
		return false
	}
	h, ok := service.table.ready(id)
	return ok && h.desc.monitor != nil
}

// Acquire takes a fast path reference to a ready object. Every successful
// Acquire must be paired with Release.
func (service *Service) Acquire(id fbe.ObjectID) (Object, bool) {
	if !service.initialized.Load() {
		return nil, false
	}
	h, ok := service.table.tryAcquire(id)
	if !ok {
		return nil, false
	}
	return h.control, true
}

// Release drops a reference taken by Acquire. A Release without a
// matching Acquire is logged and otherwise ignored.
func (service *Service) Release(id fbe.ObjectID) {
	t := service.table
	if t == nil || !t.release(id) {
		service.log.Error("release without acquire", zap.Stringer("object", id))
	}
}
