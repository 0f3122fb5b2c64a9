// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storj.io/topology/internal/sync2"
	"storj.io/topology/pkg/fbe"
)

const (
	quiescePollInterval = time.Millisecond
	quiesceWarnInterval = 5 * time.Second
)

// CreateObject creates an object of req.ClassID. When req.ObjectID is
// fbe.ObjectIDInvalid an id is allocated, otherwise the requested id must
// be free. The class is called without holding the table lock.
func (service *Service) CreateObject(ctx context.Context, req CreateRequest) (_ fbe.ObjectID, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := service.checkInitialized(); err != nil {
		return fbe.ObjectIDInvalid, err
	}
	t := service.table

	t.mu.Lock()
	id := req.ObjectID
	if id == fbe.ObjectIDInvalid {
		var ok bool
		id, ok = t.allocateLocked()
		if !ok {
			t.mu.Unlock()
			service.log.Error("object table exhausted", zap.Stringer("class", req.ClassID))
			return fbe.ObjectIDInvalid, ErrGenericFailure.New("object table exhausted")
		}
	} else if err := t.reserveLocked(id); err != nil {
		t.mu.Unlock()
		service.log.Error("cannot reserve object id",
			zap.Stringer("object", id), zap.Stringer("class", req.ClassID), zap.Error(err))
		return fbe.ObjectIDInvalid, err
	}

	desc := service.registry.lookup(req.ClassID)
	if desc == nil {
		t.markNotExistLocked(id)
		t.mu.Unlock()
		service.log.Error("unknown class", zap.Stringer("class", req.ClassID), zap.Stringer("object", id))
		return fbe.ObjectIDInvalid, ErrGenericFailure.New("unknown class %s", req.ClassID)
	}
	t.mu.Unlock()

	req.ObjectID = id
	req.Package = service.packageID
	object, err := desc.class.CreateObject(ctx, &req)
	if err == nil && object == nil {
		err = ErrGenericFailure.New("class %s returned no object", req.ClassID)
	}

	t.mu.Lock()
	if err != nil {
		t.markNotExistLocked(id)
		t.mu.Unlock()
		service.log.Error("create object failed",
			zap.Stringer("class", req.ClassID), zap.Stringer("object", id), zap.Error(err))
		return fbe.ObjectIDInvalid, err
	}

	h := &handles{classID: req.ClassID, desc: desc, control: object, io: object}
	if req.ClassID == fbe.ClassIDVertex {
		h.io = nil
	}
	generation := t.setReadyLocked(id, h)
	t.mu.Unlock()

	service.created.Add(1)
	mon.Meter("objects_created").Mark(1)
	service.log.Debug("object created",
		zap.Stringer("class", req.ClassID), zap.Stringer("object", id), zap.Uint64("generation", generation))

	service.notify(ctx, Notification{
		Kind:       ObjectCreated,
		ObjectID:   id,
		ClassID:    req.ClassID,
		Generation: generation,
	})
	return id, nil
}

// DestroyObject removes id from the table and calls the class destroy once
// no fast path reference remains. A failing class destroy is retried; when
// every attempt fails an ErrFatal error wrapping the class error is
// returned and the handle is abandoned.
func (service *Service) DestroyObject(ctx context.Context, id fbe.ObjectID) (err error) {
	defer mon.Task()(&ctx)(&err)
	if err := service.checkInitialized(); err != nil {
		return err
	}
	t := service.table

	s := t.slot(id)
	if s == nil {
		service.log.Error("destroy of invalid object id", zap.Stringer("object", id))
		return ErrNoObject.New("object id %s out of range", id)
	}

	t.mu.Lock()
	status := s.load()
	h := s.handles.Load()
	if (status != SlotReady && status != SlotExist) || h == nil {
		t.mu.Unlock()
		service.log.Error("destroy of missing object", zap.Stringer("object", id), zap.Stringer("status", status))
		return ErrNoObject.New("object %s does not exist", id)
	}
	generation := s.generation.Load()
	s.destroying.Store(true)
	t.markNotExistLocked(id)
	t.mu.Unlock()
	defer s.destroying.Store(false)

	service.waitQuiesced(id, s, h)

	err = sync2.Retry(service.config.DestroyRetries, service.config.DestroyRetryDelay,
		func(int) error {
			return h.desc.class.DestroyObject(ctx, h.control)
		},
		func(attempt int, err error) {
			mon.Meter("destroy_retries").Mark(1)
			service.log.Warn("destroy object failed, retrying",
				zap.Stringer("class", h.classID), zap.Stringer("object", id),
				zap.Int("attempt", attempt), zap.Error(err))
		})
	if err != nil {
		service.log.Error("destroy object failed permanently",
			zap.Bool("critical", true),
			zap.Stringer("class", h.classID), zap.Stringer("object", id),
			zap.Int("retries", service.config.DestroyRetries), zap.Error(err))
		service.notify(ctx, Notification{
			Kind:       ObjectDestroyFailed,
			ObjectID:   id,
			ClassID:    h.classID,
			Generation: generation,
			Err:        err.Error(),
		})
		return ErrFatal.Wrap(err)
	}

	service.destroyed.Add(1)
	mon.Meter("objects_destroyed").Mark(1)
	service.log.Debug("object destroyed", zap.Stringer("class", h.classID), zap.Stringer("object", id))

	service.notify(ctx, Notification{
		Kind:       ObjectDestroyed,
		ObjectID:   id,
		ClassID:    h.classID,
		Generation: generation,
	})
	return nil
}

// waitQuiesced blocks until every fast path reference to the slot has been
// released and no control or monitor request is inside the object. The
// gate is closed and the slot is no longer ready, so both counts only go
// down.
func (service *Service) waitQuiesced(id fbe.ObjectID, s *slot, h *handles) {
	quiesced := func() bool {
		return s.gate.Quiesced() && h.control.UsurperCount() == 0
	}
	if quiesced() {
		return
	}
	started := time.Now()
	lastWarn := started
	for !quiesced() {
		if time.Since(lastWarn) >= quiesceWarnInterval {
			lastWarn = time.Now()
			service.log.Warn("object still referenced",
				zap.Stringer("object", id),
				zap.Int64("references", s.gate.Count()),
				zap.Int64("requests", h.control.UsurperCount()),
				zap.Duration("waited", time.Since(started)))
		}
		time.Sleep(quiescePollInterval)
	}
}
