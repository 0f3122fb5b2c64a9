// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package packet contains the request envelope every topology message
// travels in, together with its completion mechanism.
package packet

import (
	"context"
	"sync"

	"storj.io/topology/pkg/fbe"
)

// Attr are the flags a sender sets on a packet.
type Attr uint32

// List of packet attributes.
const (
	// AttrExternal marks a packet that originated outside the stack.
	AttrExternal = Attr(1 << iota)
	// AttrDestroyEnabled allows delivery to an object in the destroy state.
	AttrDestroyEnabled
	// AttrTraversal marks a packet that travels along an edge.
	AttrTraversal
	// AttrMonitor marks a packet built by the monitor scheduler.
	AttrMonitor
)

// Has reports whether all flags in want are set.
func (attr Attr) Has(want Attr) bool { return attr&want == want }

// Address names the recipient of a packet. A packet is addressed to an
// object when Object is valid, otherwise to Class when that is valid.
type Address struct {
	Package fbe.PackageID
	Class   fbe.ClassID
	Object  fbe.ObjectID
}

// ControlOperation is the payload of a control packet.
type ControlOperation struct {
	Code   fbe.ControlCode
	Buffer interface{}
	Status Status
}

// IOOperation is the payload of a data path packet.
type IOOperation struct {
	Opcode uint32
	LBA    uint64
	Blocks uint64
	Data   []byte
}

// MonitorOperation is the payload of a monitor packet.
type MonitorOperation struct {
	Sequence uint64
}

// CompletionFunc is called when a packet completes. Completions run in
// reverse order of registration.
type CompletionFunc func(pkt *Packet)

// Packet is a single request. It is completed exactly once.
type Packet struct {
	Address Address
	Attr    Attr

	Control ControlOperation
	IO      IOOperation
	Monitor MonitorOperation

	mu          sync.Mutex
	status      Status
	completions []CompletionFunc
	completed   bool
	done        chan struct{}
}

// NewControl creates a control packet addressed to an object.
func NewControl(code fbe.ControlCode, objectID fbe.ObjectID, buffer interface{}) *Packet {
	return &Packet{
		Address: Address{Object: objectID, Class: fbe.ClassIDInvalid},
		Control: ControlOperation{Code: code, Buffer: buffer},
		done:    make(chan struct{}),
	}
}

// NewClassControl creates a control packet addressed to a class.
func NewClassControl(code fbe.ControlCode, classID fbe.ClassID, buffer interface{}) *Packet {
	return &Packet{
		Address: Address{Object: fbe.ObjectIDInvalid, Class: classID},
		Control: ControlOperation{Code: code, Buffer: buffer},
		done:    make(chan struct{}),
	}
}

// NewServiceControl creates a control packet addressed to the topology
// service itself.
func NewServiceControl(code fbe.ControlCode, buffer interface{}) *Packet {
	return NewClassControl(code, fbe.ClassIDInvalid, buffer)
}

// NewIO creates a data path packet.
func NewIO(address Address, op IOOperation) *Packet {
	return &Packet{Address: address, IO: op, done: make(chan struct{})}
}

// NewMonitor creates a monitor packet addressed to an object.
func NewMonitor(objectID fbe.ObjectID, sequence uint64) *Packet {
	return &Packet{
		Address: Address{Object: objectID, Class: fbe.ClassIDInvalid},
		Attr:    AttrMonitor,
		Monitor: MonitorOperation{Sequence: sequence},
		done:    make(chan struct{}),
	}
}

func (pkt *Packet) lazyInit() {
	if pkt.done == nil {
		pkt.done = make(chan struct{})
	}
}

// PushCompletion registers fn to run when the packet completes.
func (pkt *Packet) PushCompletion(fn CompletionFunc) {
	pkt.mu.Lock()
	defer pkt.mu.Unlock()
	pkt.lazyInit()
	pkt.completions = append(pkt.completions, fn)
}

// SetStatus sets the transport status without completing the packet.
func (pkt *Packet) SetStatus(status Status) {
	pkt.mu.Lock()
	pkt.status = status
	pkt.mu.Unlock()
}

// Status returns the transport status.
func (pkt *Packet) Status() Status {
	pkt.mu.Lock()
	defer pkt.mu.Unlock()
	return pkt.status
}

// SetControlStatus sets the status of the control operation.
func (pkt *Packet) SetControlStatus(status Status) {
	pkt.mu.Lock()
	pkt.Control.Status = status
	pkt.mu.Unlock()
}

// ControlStatus returns the status of the control operation.
func (pkt *Packet) ControlStatus() Status {
	pkt.mu.Lock()
	defer pkt.mu.Unlock()
	return pkt.Control.Status
}

// Complete sets the status and runs the completion stack. Only the first
// call has an effect; it returns false for every later call.
func (pkt *Packet) Complete(status Status) bool {
	pkt.mu.Lock()
	pkt.lazyInit()
	if pkt.completed {
		pkt.mu.Unlock()
		return false
	}
	pkt.completed = true
	pkt.status = status
	completions := pkt.completions
	pkt.completions = nil
	pkt.mu.Unlock()

	for i := len(completions) - 1; i >= 0; i-- {
		completions[i](pkt)
	}
	close(pkt.done)
	return true
}

// Completed reports whether Complete has been called.
func (pkt *Packet) Completed() bool {
	pkt.mu.Lock()
	defer pkt.mu.Unlock()
	return pkt.completed
}

// Done returns a channel closed after the completion stack has run.
func (pkt *Packet) Done() <-chan struct{} {
	pkt.mu.Lock()
	defer pkt.mu.Unlock()
	pkt.lazyInit()
	return pkt.done
}

// Wait blocks until the packet completes or ctx is done and returns the
// packet status as an error.
func (pkt *Packet) Wait(ctx context.Context) error {
	select {
	case <-pkt.Done():
		return pkt.Status().Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
