// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package fbe

import "fmt"

// ControlCode names a control operation. The high byte groups codes by
// the component that serves them.
type ControlCode uint32

// Control code namespaces.
const (
	controlCodeTopology       = ControlCode(0x0100)
	controlCodeBaseObject     = ControlCode(0x0200)
	controlCodePort           = ControlCode(0x0300)
	controlCodeProvisionDrive = ControlCode(0x0400)
	controlCodePhysicalDrive  = ControlCode(0x0500)
)

// Topology service control codes.
const (
	ControlCodeInvalid = ControlCode(0)

	ControlCodeInit = controlCodeTopology + iota
	ControlCodeDestroy
	ControlCodeCreateObject
	ControlCodeDestroyObject
	ControlCodeEnumerateObjects
	ControlCodeEnumerateClass
	ControlCodeEnumeratePorts
	ControlCodeGetTotalObjects
	ControlCodeGetTotalObjectsOfClass
	ControlCodeGetObjectType
	ControlCodeGetObjectClassID
	ControlCodeGetObjectLifecycleState
	ControlCodeGetPhysicalDriveByLocation
	ControlCodeGetProvisionDriveByLocation
	ControlCodeGetPortByLocation
	ControlCodeGetPortByLocationAndRole
	ControlCodeGetPhysicalDriveObjects
	ControlCodeGetBoard
	ControlCodeGetBVDObjectID
	ControlCodeGetObjectIDOfSingletonClass
	ControlCodeRegisterEventFunction
	ControlCodeUnregisterEventFunction
	ControlCodeGetSpareDrivePool
	ControlCodeSetSparePolicy
	ControlCodeGetSparePolicy
	ControlCodeGetStatistics
	ControlCodeCheckObjectExistent
	ControlCodeGetObjectGeneration
)

// Base object control codes, answered by every object.
const (
	ControlCodeBaseObjectGetLifecycleState = controlCodeBaseObject + iota
	ControlCodeBaseObjectSetLifecycleCondition
	ControlCodeBaseObjectGetClassID
	ControlCodeBaseObjectGetObjectID
	ControlCodeBaseObjectSetTraceLevel
)

// Port control codes.
const (
	ControlCodePortGetInfo = controlCodePort + iota
)

// Provisioned drive control codes.
const (
	ControlCodeProvisionDriveGetInfo = controlCodeProvisionDrive + iota
	ControlCodeProvisionDriveGetUpstreamObjects
)

// Physical drive control codes.
const (
	ControlCodePhysicalDriveGetLocation = controlCodePhysicalDrive + iota
)

// String implements fmt.Stringer.
func (code ControlCode) String() string {
	if name, ok := controlCodeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("control(0x%04x)", uint32(code))
}

// IsTopology reports whether the topology service itself serves code.
func (code ControlCode) IsTopology() bool { return code&0xFF00 == controlCodeTopology }

var controlCodeNames = map[ControlCode]string{
	ControlCodeInit:                             "init",
	ControlCodeDestroy:                          "destroy",
	ControlCodeCreateObject:                     "create-object",
	ControlCodeDestroyObject:                    "destroy-object",
	ControlCodeEnumerateObjects:                 "enumerate-objects",
	ControlCodeEnumerateClass:                   "enumerate-class",
	ControlCodeEnumeratePorts:                   "enumerate-ports",
	ControlCodeGetTotalObjects:                  "get-total-objects",
	ControlCodeGetTotalObjectsOfClass:           "get-total-objects-of-class",
	ControlCodeGetObjectType:                    "get-object-type",
	ControlCodeGetObjectClassID:                 "get-object-class-id",
	ControlCodeGetObjectLifecycleState:          "get-object-lifecycle-state",
	ControlCodeGetPhysicalDriveByLocation:       "get-physical-drive-by-location",
	ControlCodeGetProvisionDriveByLocation:      "get-provision-drive-by-location",
	ControlCodeGetPortByLocation:                "get-port-by-location",
	ControlCodeGetPortByLocationAndRole:         "get-port-by-location-and-role",
	ControlCodeGetPhysicalDriveObjects:          "get-physical-drive-objects",
	ControlCodeGetBoard:                         "get-board",
	ControlCodeGetBVDObjectID:                   "get-bvd-object-id",
	ControlCodeGetObjectIDOfSingletonClass:      "get-object-id-of-singleton-class",
	ControlCodeRegisterEventFunction:            "register-event-function",
	ControlCodeUnregisterEventFunction:          "unregister-event-function",
	ControlCodeGetSpareDrivePool:                "get-spare-drive-pool",
	ControlCodeSetSparePolicy:                   "set-spare-policy",
	ControlCodeGetSparePolicy:                   "get-spare-policy",
	ControlCodeGetStatistics:                    "get-statistics",
	ControlCodeCheckObjectExistent:              "check-object-existent",
	ControlCodeGetObjectGeneration:              "get-object-generation",
	ControlCodeBaseObjectGetLifecycleState:      "base-object-get-lifecycle-state",
	ControlCodeBaseObjectSetLifecycleCondition:  "base-object-set-lifecycle-condition",
	ControlCodeBaseObjectGetClassID:             "base-object-get-class-id",
	ControlCodeBaseObjectGetObjectID:            "base-object-get-object-id",
	ControlCodeBaseObjectSetTraceLevel:          "base-object-set-trace-level",
	ControlCodePortGetInfo:                      "port-get-info",
	ControlCodeProvisionDriveGetInfo:            "provision-drive-get-info",
	ControlCodeProvisionDriveGetUpstreamObjects: "provision-drive-get-upstream-objects",
	ControlCodePhysicalDriveGetLocation:         "physical-drive-get-location",
}

// ObjectType is the coarse category a class belongs to.
type ObjectType uint32

// List of object types.
const (
	ObjectTypeInvalid = ObjectType(iota)
	ObjectTypeBoard
	ObjectTypePort
	ObjectTypeEnclosure
	ObjectTypeLCC
	ObjectTypePhysicalDrive
	ObjectTypeLogicalDrive
	ObjectTypeRaidGroup
	ObjectTypeVirtualDrive
	ObjectTypeProvisionedDrive
	ObjectTypeLUN
	ObjectTypeEnvironmentMgmt
	ObjectTypeExtPoolLUN
)

// String implements fmt.Stringer.
func (t ObjectType) String() string {
	switch t {
	case ObjectTypeBoard:
		return "board"
	case ObjectTypePort:
		return "port"
	case ObjectTypeEnclosure:
		return "enclosure"
	case ObjectTypeLCC:
		return "lcc"
	case ObjectTypePhysicalDrive:
		return "physical-drive"
	case ObjectTypeLogicalDrive:
		return "logical-drive"
	case ObjectTypeRaidGroup:
		return "raid-group"
	case ObjectTypeVirtualDrive:
		return "virtual-drive"
	case ObjectTypeProvisionedDrive:
		return "provisioned-drive"
	case ObjectTypeLUN:
		return "lun"
	case ObjectTypeEnvironmentMgmt:
		return "environment-mgmt"
	case ObjectTypeExtPoolLUN:
		return "ext-pool-lun"
	default:
		return "invalid"
	}
}
