// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package packet

import (
	"errors"
	"fmt"
)

// Status is the completion code a packet carries back to its sender.
type Status uint32

// List of packet statuses.
const (
	StatusOK = Status(iota)
	StatusGenericFailure
	StatusNoObject
	StatusBusy
	StatusNotInitialized
	StatusInsufficientResources
	StatusPending
	StatusCanceled
	StatusTimeout
	StatusInvalid
)

// String implements fmt.Stringer.
func (status Status) String() string {
	switch status {
	case StatusOK:
		return "ok"
	case StatusGenericFailure:
		return "generic-failure"
	case StatusNoObject:
		return "no-object"
	case StatusBusy:
		return "busy"
	case StatusNotInitialized:
		return "not-initialized"
	case StatusInsufficientResources:
		return "insufficient-resources"
	case StatusPending:
		return "pending"
	case StatusCanceled:
		return "canceled"
	case StatusTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("status(%d)", uint32(status))
	}
}

// Err returns nil for StatusOK and a *StatusError otherwise.
func (status Status) Err() error {
	if status == StatusOK {
		return nil
	}
	return &StatusError{Status: status}
}

// StatusError is an error that carries a packet status. Class code returns
// it to choose the status the sender observes.
type StatusError struct {
	Status Status
	Err    error
}

// Error implements error.
func (err *StatusError) Error() string {
	if err.Err == nil {
		return err.Status.String()
	}
	return err.Status.String() + ": " + err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *StatusError) Unwrap() error { return err.Err }

// NewStatusError wraps err with status.
func NewStatusError(status Status, err error) error {
	return &StatusError{Status: status, Err: err}
}

// StatusFromError extracts the packet status carried by err, if any.
func StatusFromError(err error) (Status, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status, true
	}
	return StatusOK, false
}
