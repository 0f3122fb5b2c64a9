// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"github.com/zeebo/errs"

	"storj.io/topology/pkg/packet"
)

var (
	// Error is the default error class for the topology service.
	Error = errs.Class("topology")

	// ErrNoObject is returned when the target cannot be resolved or is
	// going away.
	ErrNoObject = errs.Class("no object")
	// ErrBusy is returned when the target is specializing and the request
	// came from outside the stack.
	ErrBusy = errs.Class("busy")
	// ErrGenericFailure is returned for malformed requests and exhaustion.
	ErrGenericFailure = errs.Class("generic failure")
	// ErrNotInitialized is returned before Init.
	ErrNotInitialized = errs.Class("not initialized")
	// ErrFatal is returned when an object could not be destroyed.
	ErrFatal = errs.Class("fatal")
)

// StatusOf maps err to the status a packet sender observes. A status
// carried by a packet.StatusError anywhere in the chain wins; errors from
// class callbacks without one map to StatusGenericFailure.
func StatusOf(err error) packet.Status {
	if err == nil {
		return packet.StatusOK
	}
	if status, ok := packet.StatusFromError(err); ok {
		return status
	}
	switch {
	case ErrNoObject.Has(err):
		return packet.StatusNoObject
	case ErrBusy.Has(err):
		return packet.StatusBusy
	case ErrNotInitialized.Has(err):
		return packet.StatusNotInitialized
	default:
		return packet.StatusGenericFailure
	}
}

// complete finishes pkt with the status of err and returns err.
func complete(pkt *packet.Packet, err error) error {
	status := StatusOf(err)
	if err != nil && pkt.ControlStatus() == packet.StatusOK {
		pkt.SetControlStatus(status)
	}
	pkt.Complete(status)
	return err
}
