// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package fbe holds the identifiers and small contracts shared by the
// topology service, its classes and their callers.
package fbe

import (
	"fmt"

	"github.com/zeebo/errs"
)

// Error is the error class for identifier parsing.
var Error = errs.Class("fbe")

// ObjectID addresses a slot in a package's object table.
type ObjectID uint32

// ObjectIDInvalid marks "no object"; it is never a valid slot index.
const ObjectIDInvalid = ObjectID(0xFFFFFFFF)

// String implements fmt.Stringer.
func (id ObjectID) String() string {
	if id == ObjectIDInvalid {
		return "invalid"
	}
	return fmt.Sprintf("0x%x", uint32(id))
}

// PackageID identifies a partition of the storage stack that owns its
// own topology instance.
type PackageID uint32

// List of packages.
const (
	PackageIDInvalid = PackageID(iota)
	PackageIDPhysical
	PackageIDNEIT
	PackageIDSEP0
	PackageIDESP
	PackageIDKMS
	PackageIDLast
)

var packageNames = map[PackageID]string{
	PackageIDInvalid:  "invalid",
	PackageIDPhysical: "physical",
	PackageIDNEIT:     "neit",
	PackageIDSEP0:     "sep",
	PackageIDESP:      "esp",
	PackageIDKMS:      "kms",
}

// ReservedObjectIDs is the number of low object ids the sep package keeps
// for its system objects.
const ReservedObjectIDs = 0x100

// AllocationBase returns the first object id handed out by the package
// when the caller does not ask for a specific one.
func (id PackageID) AllocationBase() ObjectID {
	if id == PackageIDSEP0 {
		return ReservedObjectIDs
	}
	return 0
}

// Valid returns whether the id names a real package.
func (id PackageID) Valid() bool { return id > PackageIDInvalid && id < PackageIDLast }

// String implements fmt.Stringer.
func (id PackageID) String() string {
	if name, ok := packageNames[id]; ok {
		return name
	}
	return fmt.Sprintf("package(%d)", uint32(id))
}

// ParsePackageID converts a package name back into its id.
func ParsePackageID(name string) (PackageID, error) {
	for id, known := range packageNames {
		if known == name && id.Valid() {
			return id, nil
		}
	}
	return PackageIDInvalid, Error.New("unknown package %q", name)
}

// EventType is the kind of an asynchronous notification delivered to an
// object.
type EventType uint32

// List of event types.
const (
	EventTypeInvalid = EventType(iota)
	EventTypeDataRequest
	EventTypePermitRequest
	EventTypeEdgeStateChange
	EventTypeAttributeChanged
	EventTypeSparingRequest
	EventTypeCopyRequest
	EventTypeAbortCopyRequest
	EventTypeDownloadRequest
	EventTypeLast
)

// EventContext is the opaque payload that travels with an event.
type EventContext interface{}

// EventFunc delivers an event to an object of some package.
type EventFunc func(objectID ObjectID, event EventType, eventContext EventContext) error
