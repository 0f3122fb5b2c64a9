// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package fbe

// MaxSpareObjects bounds the number of candidates a spare selection
// returns.
const MaxSpareObjects = 256

// ProvisionConfigType describes how a provisioned drive is being used.
type ProvisionConfigType uint32

// List of provisioned drive configuration types.
const (
	ProvisionConfigTypeInvalid = ProvisionConfigType(iota)
	ProvisionConfigTypeUnconsumed
	ProvisionConfigTypeTestReservedSpare
	ProvisionConfigTypeRaidMember
	ProvisionConfigTypeExtentPool
	ProvisionConfigTypeUnknown
)

// String implements fmt.Stringer.
func (t ProvisionConfigType) String() string {
	switch t {
	case ProvisionConfigTypeUnconsumed:
		return "unconsumed"
	case ProvisionConfigTypeTestReservedSpare:
		return "test-reserved-spare"
	case ProvisionConfigTypeRaidMember:
		return "raid-member"
	case ProvisionConfigTypeExtentPool:
		return "extent-pool"
	case ProvisionConfigTypeUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// SpareDriveType selects which provisioned drives count as spares.
type SpareDriveType uint32

// List of spare drive types.
const (
	SpareDriveTypeInvalid = SpareDriveType(iota)
	SpareDriveTypeUnconsumed
	SpareDriveTypeTestSpare
)

// String implements fmt.Stringer.
func (t SpareDriveType) String() string {
	switch t {
	case SpareDriveTypeUnconsumed:
		return "unconsumed"
	case SpareDriveTypeTestSpare:
		return "test-spare"
	default:
		return "invalid"
	}
}

// ConfigType returns the provisioned drive configuration a spare of this
// type must carry.
func (t SpareDriveType) ConfigType() (ProvisionConfigType, bool) {
	switch t {
	case SpareDriveTypeUnconsumed:
		return ProvisionConfigTypeUnconsumed, true
	case SpareDriveTypeTestSpare:
		return ProvisionConfigTypeTestReservedSpare, true
	default:
		return ProvisionConfigTypeInvalid, false
	}
}

// ProvisionDriveInfo is what a provisioned drive answers to
// ControlCodeProvisionDriveGetInfo.
type ProvisionDriveInfo struct {
	ConfigType    ProvisionConfigType
	IsSystemDrive bool
	Port          uint32
	Enclosure     uint32
	Slot          uint32
	Capacity      uint64
	DefaultOffset uint64
}

// UpstreamObjects is what a provisioned drive answers to
// ControlCodeProvisionDriveGetUpstreamObjects.
type UpstreamObjects struct {
	Count     int
	ObjectIDs [4]ObjectID
}

// Primary returns the first upstream object or ObjectIDInvalid.
func (upstream UpstreamObjects) Primary() ObjectID {
	if upstream.Count == 0 {
		return ObjectIDInvalid
	}
	return upstream.ObjectIDs[0]
}

// SpareDriveRequest asks a topology service for spare candidates.
type SpareDriveRequest struct {
	DriveType SpareDriveType
}

// SpareDrivePool is the answer to a SpareDriveRequest.
type SpareDrivePool struct {
	Count     int
	ObjectIDs []ObjectID
}

// SparePolicy holds the two switches that govern spare selection.
type SparePolicy struct {
	SelectOnlyTestSpare     bool
	DisableSelectUnconsumed bool
}

// DriveLocation is the physical position of a drive. Physical drives
// answer ControlCodePhysicalDriveGetLocation with it.
type DriveLocation struct {
	Port      uint32
	Enclosure uint32
	Slot      uint32
}

// Location returns where the provisioned drive sits.
func (info ProvisionDriveInfo) Location() DriveLocation {
	return DriveLocation{Port: info.Port, Enclosure: info.Enclosure, Slot: info.Slot}
}
