// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package topology keeps the id to object mapping of one package, manages
// object lifecycles and routes control, io, event and monitor requests to
// the class of the target object.
package topology

import (
	"context"
	"sync"
	"sync/atomic"

	monkit "github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
)

var mon = monkit.Package()

// EventRegistrar accepts event forwarding functions for a package.
type EventRegistrar interface {
	RegisterEventFunction(packageID fbe.PackageID, fn fbe.EventFunc) error
	UnregisterEventFunction(packageID fbe.PackageID) error
}

// Service is the topology service of one package.
type Service struct {
	log       *zap.Logger
	config    Config
	packageID fbe.PackageID
	registry  *Registry

	notifier  Notifier
	eventPeer EventRegistrar

	// lifecycle serializes Init and Destroy.
	lifecycle   sync.Mutex
	initialized atomic.Bool
	table       *table

	events [fbe.PackageIDLast]atomic.Pointer[fbe.EventFunc]
	ios    [fbe.PackageIDLast]atomic.Pointer[IOEntryFunc]

	selectOnlyTestSpare     atomic.Bool
	disableSelectUnconsumed atomic.Bool

	created   atomic.Uint64
	destroyed atomic.Uint64
}

// New creates the topology service of packageID. Init must be called
// before the service accepts requests.
func New(log *zap.Logger, packageID fbe.PackageID, registry *Registry, config Config) *Service {
	service := &Service{
		log:       log,
		config:    config,
		packageID: packageID,
		registry:  registry,
	}
	service.selectOnlyTestSpare.Store(config.SelectOnlyTestSpare)
	service.disableSelectUnconsumed.Store(config.DisableSelectUnconsumed)
	return service
}

// SetNotifier sets the receiver of lifecycle notifications. It must be
// called before Init.
func (service *Service) SetNotifier(notifier Notifier) { service.notifier = notifier }

// SetEventPeer sets the topology this package registers its event function
// with during Init. It must be called before Init.
func (service *Service) SetEventPeer(peer EventRegistrar) { service.eventPeer = peer }

// PackageID returns the package the service belongs to.
func (service *Service) PackageID() fbe.PackageID { return service.packageID }

// Registry returns the class registry.
func (service *Service) Registry() *Registry { return service.registry }

// Initialized reports whether Init completed.
func (service *Service) Initialized() bool { return service.initialized.Load() }

// Init allocates the object table and loads every class.
func (service *Service) Init(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)

	service.lifecycle.Lock()
	defer service.lifecycle.Unlock()

	if service.initialized.Load() {
		return Error.New("already initialized")
	}
	if service.config.MaxObjects <= 0 {
		return Error.New("invalid table size %d", service.config.MaxObjects)
	}
	base := service.config.ReservedObjectIDs
	if base == -1 {
		base = int(service.packageID.AllocationBase())
	}
	if base < 0 || base >= service.config.MaxObjects {
		return Error.New("reserved id base %d outside table of %d", base, service.config.MaxObjects)
	}

	service.table = newTable(service.config.MaxObjects, fbe.ObjectID(base))
	for i := range service.events {
		service.events[i].Store(nil)
		service.ios[i].Store(nil)
	}

	if err := service.registry.LoadAll(ctx); err != nil {
		return err
	}

	if service.eventPeer != nil {
		if err := service.eventPeer.RegisterEventFunction(service.packageID, service.SendEvent); err != nil {
			return errs.Combine(Error.Wrap(err), service.registry.UnloadAll(ctx))
		}
	}

	service.initialized.Store(true)
	service.log.Info("initialized",
		zap.Stringer("package", service.packageID),
		zap.Int("objects", service.config.MaxObjects),
		zap.Int("classes", len(service.registry.classes)))
	return nil
}

// Destroy unloads all classes. It refuses while any object is ready.
func (service *Service) Destroy(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)

	service.lifecycle.Lock()
	defer service.lifecycle.Unlock()

	if !service.initialized.Load() {
		return ErrNotInitialized.New("destroy")
	}

	live := 0
	service.table.each(func(fbe.ObjectID, *handles) bool {
		live++
		return true
	})
	if live > 0 {
		service.log.Error("destroy with live objects", zap.Int("objects", live))
		return ErrBusy.New("%d objects are still ready", live)
	}

	var group errs.Group
	if service.eventPeer != nil {
		group.Add(service.eventPeer.UnregisterEventFunction(service.packageID))
	}
	group.Add(service.registry.UnloadAll(ctx))

	service.initialized.Store(false)
	service.log.Info("destroyed", zap.Stringer("package", service.packageID))
	return group.Err()
}

// Statistics returns the lifecycle counters.
func (service *Service) Statistics() Statistics {
	return Statistics{
		Created:   service.created.Load(),
		Destroyed: service.destroyed.Load(),
	}
}

// ValidObjectID reports whether id addresses a slot of the table.
func (service *Service) ValidObjectID(id fbe.ObjectID) bool {
	return service.initialized.Load() && service.table.valid(id)
}

// MaxObjects returns the table size.
func (service *Service) MaxObjects() int { return service.config.MaxObjects }

func (service *Service) checkInitialized() error {
	if !service.initialized.Load() {
		return ErrNotInitialized.New("topology of %s", service.packageID)
	}
	return nil
}
