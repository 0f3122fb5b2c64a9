// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"sync"
	"sync/atomic"

	"storj.io/topology/internal/sync2"
	"storj.io/topology/pkg/fbe"
)

// SlotStatus is the table's view of an object id.
type SlotStatus uint32

// List of slot statuses. Only SlotReady is routable.
const (
	SlotNotExist = SlotStatus(iota)
	SlotReserved
	SlotExist
	SlotReady
)

// String implements fmt.Stringer.
func (status SlotStatus) String() string {
	switch status {
	case SlotNotExist:
		return "not-exist"
	case SlotReserved:
		return "reserved"
	case SlotExist:
		return "exist"
	case SlotReady:
		return "ready"
	default:
		return "invalid"
	}
}

// handles is published as a whole so readers never see a class id paired
// with another object's handle.
type handles struct {
	classID fbe.ClassID
	desc    *classDescriptor
	control Object
	// io is nil for vertex objects.
	io Object
}

type slot struct {
	status     atomic.Uint32
	handles    atomic.Pointer[handles]
	gate       sync2.Gate
	generation atomic.Uint64
	// destroying keeps the id from being reused until the class destroy
	// callback for the previous object has returned.
	destroying atomic.Bool
}

func (s *slot) load() SlotStatus { return SlotStatus(s.status.Load()) }

// table is the id to object mapping. mu serializes status transitions and
// handle publication; readers use the atomics directly.
type table struct {
	mu       sync.Mutex
	slots    []slot
	reserved fbe.ObjectID
}

func newTable(size int, reserved fbe.ObjectID) *table {
	t := &table{
		slots:    make([]slot, size),
		reserved: reserved,
	}
	for i := range t.slots {
		t.slots[i].gate.Set()
	}
	return t
}

func (t *table) valid(id fbe.ObjectID) bool { return uint64(id) < uint64(len(t.slots)) }

func (t *table) slot(id fbe.ObjectID) *slot {
	if !t.valid(id) {
		return nil
	}
	return &t.slots[id]
}

func (t *table) reusable(s *slot) bool {
	return s.load() == SlotNotExist && !s.destroying.Load()
}

// allocateLocked reserves the first free id at or above the reserved base.
func (t *table) allocateLocked() (fbe.ObjectID, bool) {
	for id := int(t.reserved); id < len(t.slots); id++ {
		s := &t.slots[id]
		if t.reusable(s) {
			s.status.Store(uint32(SlotReserved))
			return fbe.ObjectID(id), true
		}
	}
	return fbe.ObjectIDInvalid, false
}

// reserveLocked reserves a specific id.
func (t *table) reserveLocked(id fbe.ObjectID) error {
	s := t.slot(id)
	if s == nil {
		return ErrGenericFailure.New("object id %s out of range", id)
	}
	if !t.reusable(s) {
		return ErrGenericFailure.New("object %s already exists", id)
	}
	s.status.Store(uint32(SlotReserved))
	return nil
}

// setReadyLocked publishes the handles of a freshly created object and
// opens its gate.
func (t *table) setReadyLocked(id fbe.ObjectID, h *handles) uint64 {
	s := &t.slots[id]
	s.handles.Store(h)
	s.status.Store(uint32(SlotReady))
	generation := s.generation.Add(1)
	s.gate.Clear()
	return generation
}

// markNotExistLocked retracts a slot. The gate is closed first so the fast
// path stops admitting references before routing stops.
func (t *table) markNotExistLocked(id fbe.ObjectID) {
	s := &t.slots[id]
	s.gate.Set()
	s.status.Store(uint32(SlotNotExist))
	s.handles.Store(nil)
}

// ready returns the published handles of a routable id.
func (t *table) ready(id fbe.ObjectID) (*handles, bool) {
	s := t.slot(id)
	if s == nil || s.load() != SlotReady {
		return nil, false
	}
	h := s.handles.Load()
	return h, h != nil
}

// tryAcquire takes a fast path reference. The returned handles stay valid
// for the class until release.
func (t *table) tryAcquire(id fbe.ObjectID) (*handles, bool) {
	s := t.slot(id)
	if s == nil || !s.gate.TryAcquire() {
		return nil, false
	}
	h := s.handles.Load()
	if h == nil {
		s.gate.Release()
		return nil, false
	}
	return h, true
}

// release drops a fast path reference. It reports false for a release
// without a matching acquire.
func (t *table) release(id fbe.ObjectID) bool {
	s := t.slot(id)
	return s != nil && s.gate.Release()
}

// each calls fn for every ready slot in id order until fn returns false.
func (t *table) each(fn func(id fbe.ObjectID, h *handles) bool) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.load() != SlotReady {
			continue
		}
		h := s.handles.Load()
		if h == nil {
			continue
		}
		if !fn(fbe.ObjectID(i), h) {
			return
		}
	}
}
