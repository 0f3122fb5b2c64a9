// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package scheduler periodically sends monitor packets to every ready
// object whose class accepts them.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	monkit "github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storj.io/topology/internal/sync2"
	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
	"storj.io/topology/pkg/topology"
)

var (
	mon = monkit.Package()

	// Error is the error class for the scheduler.
	Error = errs.Class("scheduler")
)

// Config contains configurable values for the monitor scheduler.
type Config struct {
	Interval    time.Duration `help:"how often ready objects receive a monitor packet" default:"1s"`
	Concurrency int           `help:"how many monitor packets are in flight at once" default:"8"`
}

// Topology is the part of the topology service the scheduler uses.
type Topology interface {
	MaxObjects() int
	EnumerateObjects(buffer []fbe.ObjectID) (topology.Enumeration, error)
	HasMonitorEntry(id fbe.ObjectID) bool
	SendMonitorPacket(pkt *packet.Packet) error
}

// Service sends monitor packets on every cycle.
type Service struct {
	log      *zap.Logger
	config   Config
	topology Topology

	Loop *sync2.Cycle

	sequence atomic.Uint64
	buffer   []fbe.ObjectID
}

// New creates a scheduler for topology.
func New(log *zap.Logger, topology Topology, config Config) *Service {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Service{
		log:      log,
		config:   config,
		topology: topology,
		Loop:     sync2.NewCycle(config.Interval),
	}
}

// Run runs the scheduler until ctx is canceled or Close is called.
func (service *Service) Run(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)
	return service.Loop.Run(ctx, service.Tick)
}

// Close stops the scheduler.
func (service *Service) Close() error {
	service.Loop.Stop()
	return nil
}

// Sequence returns the number of completed cycles.
func (service *Service) Sequence() uint64 { return service.sequence.Load() }

// Tick sends one monitor packet to every ready object that accepts one.
// Individual failures are logged and do not stop the scheduler.
func (service *Service) Tick(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)

	if len(service.buffer) != service.topology.MaxObjects() {
		service.buffer = make([]fbe.ObjectID, service.topology.MaxObjects())
	}
	enum, err := service.topology.EnumerateObjects(service.buffer)
	if err != nil {
		return Error.Wrap(err)
	}

	sequence := service.sequence.Load() + 1

	var group errgroup.Group
	group.SetLimit(service.config.Concurrency)
	for _, id := range service.buffer[:enum.Copied] {
		if ctx.Err() != nil {
			break
		}
		if !service.topology.HasMonitorEntry(id) {
			continue
		}
		id := id
		group.Go(func() error {
			pkt := packet.NewMonitor(id, sequence)
			if err := service.topology.SendMonitorPacket(pkt); err != nil {
				mon.Meter("monitor_failures").Mark(1)
				service.log.Debug("monitor packet failed", zap.Stringer("object", id), zap.Error(err))
			}
			return nil
		})
	}
	_ = group.Wait()

	service.sequence.Store(sequence)
	return ctx.Err()
}
