// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package fbe

import "fmt"

// ClassID identifies an object class. Related classes are grouped between
// *First and *Last markers; the markers themselves are never registered.
type ClassID uint32

// List of class ids. The order defines the class ranges.
const (
	ClassIDInvalid = ClassID(iota)

	ClassIDBaseObject
	ClassIDBaseDiscovered
	ClassIDBaseDiscovering

	ClassIDBoardFirst
	ClassIDBaseBoard
	ClassIDFleetBoard
	ClassIDBoardLast

	ClassIDPortFirst
	ClassIDSASPort
	ClassIDFCPort
	ClassIDISCSIPort
	ClassIDFCoEPort
	ClassIDPortLast

	ClassIDLCCFirst
	ClassIDSASLCC
	ClassIDLCCLast

	ClassIDEnclosureFirst
	ClassIDSASEnclosure
	ClassIDDPEEnclosure
	ClassIDEnclosureLast

	ClassIDPhysicalDriveFirst
	ClassIDSASPhysicalDrive
	ClassIDSATAPhysicalDrive
	ClassIDPhysicalDriveLast

	ClassIDLogicalDriveFirst
	ClassIDLogicalDrive
	ClassIDLogicalDriveLast

	ClassIDRaidFirst
	ClassIDMirror
	ClassIDStriper
	ClassIDParity
	ClassIDRaidGroup
	ClassIDRaidLast

	ClassIDVirtualDrive
	ClassIDProvisionDrive
	ClassIDLUN
	ClassIDBVDInterface
	ClassIDExtentPool
	ClassIDExtentPoolLUN
	ClassIDExtentPoolMetadataLUN

	ClassIDEnvironmentMgmtFirst
	ClassIDBoardMgmt
	ClassIDEnclosureMgmt
	ClassIDDriveMgmt
	ClassIDPSMgmt
	ClassIDCoolingMgmt
	ClassIDEnvironmentMgmtLast

	ClassIDVertex

	ClassIDLast
)

var classNames = map[ClassID]string{
	ClassIDBaseObject:            "base-object",
	ClassIDBaseDiscovered:        "base-discovered",
	ClassIDBaseDiscovering:       "base-discovering",
	ClassIDBaseBoard:             "base-board",
	ClassIDFleetBoard:            "fleet-board",
	ClassIDSASPort:               "sas-port",
	ClassIDFCPort:                "fc-port",
	ClassIDISCSIPort:             "iscsi-port",
	ClassIDFCoEPort:              "fcoe-port",
	ClassIDSASLCC:                "sas-lcc",
	ClassIDSASEnclosure:          "sas-enclosure",
	ClassIDDPEEnclosure:          "dpe-enclosure",
	ClassIDSASPhysicalDrive:      "sas-physical-drive",
	ClassIDSATAPhysicalDrive:     "sata-physical-drive",
	ClassIDLogicalDrive:          "logical-drive",
	ClassIDMirror:                "mirror",
	ClassIDStriper:               "striper",
	ClassIDParity:                "parity",
	ClassIDRaidGroup:             "raid-group",
	ClassIDVirtualDrive:          "virtual-drive",
	ClassIDProvisionDrive:        "provision-drive",
	ClassIDLUN:                   "lun",
	ClassIDBVDInterface:          "bvd-interface",
	ClassIDExtentPool:            "extent-pool",
	ClassIDExtentPoolLUN:         "extent-pool-lun",
	ClassIDExtentPoolMetadataLUN: "extent-pool-metadata-lun",
	ClassIDBoardMgmt:             "board-mgmt",
	ClassIDEnclosureMgmt:         "enclosure-mgmt",
	ClassIDDriveMgmt:             "drive-mgmt",
	ClassIDPSMgmt:                "ps-mgmt",
	ClassIDCoolingMgmt:           "cooling-mgmt",
	ClassIDVertex:                "vertex",
}

// String implements fmt.Stringer.
func (id ClassID) String() string {
	if name, ok := classNames[id]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", uint32(id))
}

// ParseClassID converts a class name back into its id.
func ParseClassID(name string) (ClassID, error) {
	for id, known := range classNames {
		if known == name {
			return id, nil
		}
	}
	return ClassIDInvalid, Error.New("unknown class %q", name)
}

// between reports whether id lies strictly between first and last.
func (id ClassID) between(first, last ClassID) bool { return id > first && id < last }

// IsBoard reports whether id is a board class.
func (id ClassID) IsBoard() bool { return id.between(ClassIDBoardFirst, ClassIDBoardLast) }

// IsPort reports whether id is a port class.
func (id ClassID) IsPort() bool { return id.between(ClassIDPortFirst, ClassIDPortLast) }

// IsLCC reports whether id is a link control card class.
func (id ClassID) IsLCC() bool { return id.between(ClassIDLCCFirst, ClassIDLCCLast) }

// IsEnclosure reports whether id is an enclosure class.
func (id ClassID) IsEnclosure() bool { return id.between(ClassIDEnclosureFirst, ClassIDEnclosureLast) }

// IsPhysicalDrive reports whether id is a physical drive class.
func (id ClassID) IsPhysicalDrive() bool {
	return id.between(ClassIDPhysicalDriveFirst, ClassIDPhysicalDriveLast)
}

// IsLogicalDrive reports whether id is a logical drive class.
func (id ClassID) IsLogicalDrive() bool {
	return id.between(ClassIDLogicalDriveFirst, ClassIDLogicalDriveLast)
}

// IsRaid reports whether id is one of the RAID classes.
func (id ClassID) IsRaid() bool { return id.between(ClassIDRaidFirst, ClassIDRaidLast) }

// IsEnvironmentMgmt reports whether id is an environment management class.
func (id ClassID) IsEnvironmentMgmt() bool {
	return id.between(ClassIDEnvironmentMgmtFirst, ClassIDEnvironmentMgmtLast)
}

// IsBase reports whether id is one of the classes an object carries while
// it is still specializing.
func (id ClassID) IsBase() bool { return id >= ClassIDBaseObject && id <= ClassIDBaseDiscovering }

// IsMarker reports whether id is a range marker or the invalid id.
func (id ClassID) IsMarker() bool {
	switch id {
	case ClassIDInvalid, ClassIDLast,
		ClassIDBoardFirst, ClassIDBoardLast,
		ClassIDPortFirst, ClassIDPortLast,
		ClassIDLCCFirst, ClassIDLCCLast,
		ClassIDEnclosureFirst, ClassIDEnclosureLast,
		ClassIDPhysicalDriveFirst, ClassIDPhysicalDriveLast,
		ClassIDLogicalDriveFirst, ClassIDLogicalDriveLast,
		ClassIDRaidFirst, ClassIDRaidLast,
		ClassIDEnvironmentMgmtFirst, ClassIDEnvironmentMgmtLast:
		return true
	}
	return id > ClassIDLast
}
