// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"context"

	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
)

// Enumeration reports the result of an enumeration into a caller buffer.
// Found exceeds Copied when the buffer was too small.
type Enumeration struct {
	Copied int
	Found  int
}

// Overflow reports whether some matches did not fit the buffer.
func (enum Enumeration) Overflow() bool { return enum.Found > enum.Copied }

// enumerate fills buffer with the ids accepted by match. Unused entries are
// set to fbe.ObjectIDInvalid and nothing is written past len(buffer).
func (service *Service) enumerate(buffer []fbe.ObjectID, match func(id fbe.ObjectID, h *handles) bool) Enumeration {
	for i := range buffer {
		buffer[i] = fbe.ObjectIDInvalid
	}
	var enum Enumeration
	service.table.each(func(id fbe.ObjectID, h *handles) bool {
		if !match(id, h) {
			return true
		}
		enum.Found++
		if enum.Copied < len(buffer) {
			buffer[enum.Copied] = id
			enum.Copied++
		}
		return true
	})
	return enum
}

// EnumerateObjects copies the ids of all ready objects into buffer.
func (service *Service) EnumerateObjects(buffer []fbe.ObjectID) (Enumeration, error) {
	if err := service.checkInitialized(); err != nil {
		return Enumeration{}, err
	}
	return service.enumerate(buffer, func(fbe.ObjectID, *handles) bool { return true }), nil
}

// matchClass matches classID exactly. fbe.ClassIDPhysicalDriveFirst
// matches every physical drive class.
func matchClass(classID fbe.ClassID) func(fbe.ObjectID, *handles) bool {
	if classID == fbe.ClassIDPhysicalDriveFirst {
		return func(_ fbe.ObjectID, h *handles) bool { return h.classID.IsPhysicalDrive() }
	}
	return func(_ fbe.ObjectID, h *handles) bool { return h.classID == classID }
}

// EnumerateClass copies the ids of all ready objects of classID.
func (service *Service) EnumerateClass(classID fbe.ClassID, buffer []fbe.ObjectID) (Enumeration, error) {
	if err := service.checkInitialized(); err != nil {
		return Enumeration{}, err
	}
	return service.enumerate(buffer, matchClass(classID)), nil
}

// EnumeratePorts copies the ids of all ready ports with role. Ports that
// fail to report their role are skipped.
func (service *Service) EnumeratePorts(ctx context.Context, role fbe.PortRole, buffer []fbe.ObjectID) (_ Enumeration, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := service.checkInitialized(); err != nil {
		return Enumeration{}, err
	}
	return service.enumerate(buffer, func(id fbe.ObjectID, h *handles) bool {
		if !h.classID.IsPort() {
			return false
		}
		info, err := service.portInfo(id)
		return err == nil && info.Role == role
	}), nil
}

// GetPhysicalDriveObjects copies the ids of all ready physical drives.
func (service *Service) GetPhysicalDriveObjects(buffer []fbe.ObjectID) (Enumeration, error) {
	return service.EnumerateClass(fbe.ClassIDPhysicalDriveFirst, buffer)
}

// GetTotalObjects counts ready objects.
func (service *Service) GetTotalObjects() (int, error) {
	if err := service.checkInitialized(); err != nil {
		return 0, err
	}
	total := 0
	service.table.each(func(fbe.ObjectID, *handles) bool {
		total++
		return true
	})
	return total, nil
}

// GetTotalObjectsOfClass counts ready objects of classID. Counting LUNs
// includes extent pool LUNs.
func (service *Service) GetTotalObjectsOfClass(classID fbe.ClassID) (int, error) {
	if err := service.checkInitialized(); err != nil {
		return 0, err
	}
	match := matchClass(classID)
	total := 0
	service.table.each(func(id fbe.ObjectID, h *handles) bool {
		if match(id, h) || (classID == fbe.ClassIDLUN && h.classID == fbe.ClassIDExtentPoolLUN) {
			total++
		}
		return true
	})
	return total, nil
}

// objectType maps a class to its object type. Classes that map to
// ObjectTypeInvalid are known but have no type.
func objectType(classID fbe.ClassID) (fbe.ObjectType, bool) {
	switch {
	case classID.IsBoard():
		return fbe.ObjectTypeBoard, true
	case classID.IsPort():
		return fbe.ObjectTypePort, true
	case classID.IsPhysicalDrive():
		return fbe.ObjectTypePhysicalDrive, true
	case classID.IsEnclosure():
		return fbe.ObjectTypeEnclosure, true
	case classID.IsLCC():
		return fbe.ObjectTypeLCC, true
	case classID.IsLogicalDrive():
		return fbe.ObjectTypeLogicalDrive, true
	case classID.IsRaid(), classID == fbe.ClassIDExtentPool:
		return fbe.ObjectTypeRaidGroup, true
	case classID.IsEnvironmentMgmt():
		return fbe.ObjectTypeEnvironmentMgmt, true
	case classID.IsBase(), classID == fbe.ClassIDBVDInterface:
		return fbe.ObjectTypeInvalid, true
	}
	switch classID {
	case fbe.ClassIDVirtualDrive:
		return fbe.ObjectTypeVirtualDrive, true
	case fbe.ClassIDProvisionDrive:
		return fbe.ObjectTypeProvisionedDrive, true
	case fbe.ClassIDLUN, fbe.ClassIDExtentPoolLUN:
		return fbe.ObjectTypeLUN, true
	case fbe.ClassIDExtentPoolMetadataLUN:
		return fbe.ObjectTypeExtPoolLUN, true
	}
	return fbe.ObjectTypeInvalid, false
}

// GetObjectType returns the coarse type of the object's class.
func (service *Service) GetObjectType(id fbe.ObjectID) (fbe.ObjectType, error) {
	classID, err := service.GetObjectClassID(id)
	if err != nil {
		return fbe.ObjectTypeInvalid, err
	}
	objType, ok := objectType(classID)
	if !ok {
		service.log.Error("object class has no type", zap.Stringer("object", id), zap.Stringer("class", classID))
		return fbe.ObjectTypeInvalid, ErrGenericFailure.New("class %s has no object type", classID)
	}
	return objType, nil
}

// GetObjectClassID returns the class of a ready object.
func (service *Service) GetObjectClassID(id fbe.ObjectID) (fbe.ClassID, error) {
	if err := service.checkInitialized(); err != nil {
		return fbe.ClassIDInvalid, err
	}
	h, ok := service.table.ready(id)
	if !ok {
		return fbe.ClassIDInvalid, ErrNoObject.New("object %s is not ready", id)
	}
	return h.classID, nil
}

// GetObjectLifecycleState returns the lifecycle state the object reports.
func (service *Service) GetObjectLifecycleState(id fbe.ObjectID) (fbe.LifecycleState, error) {
	if err := service.checkInitialized(); err != nil {
		return fbe.LifecycleStateInvalid, err
	}
	h, ok := service.table.ready(id)
	if !ok {
		return fbe.LifecycleStateInvalid, ErrNoObject.New("object %s is not ready", id)
	}
	return h.control.LifecycleState(), nil
}

// ObjectStatus returns the table status of id.
func (service *Service) ObjectStatus(id fbe.ObjectID) (SlotStatus, error) {
	if err := service.checkInitialized(); err != nil {
		return SlotNotExist, err
	}
	s := service.table.slot(id)
	if s == nil {
		return SlotNotExist, ErrNoObject.New("object id %s out of range", id)
	}
	return s.load(), nil
}

// ObjectGeneration returns how many times an object was published at id.
// A caller that remembers the generation together with the id can detect
// that the id was reused by a different object.
func (service *Service) ObjectGeneration(id fbe.ObjectID) (uint64, error) {
	if err := service.checkInitialized(); err != nil {
		return 0, err
	}
	s := service.table.slot(id)
	if s == nil {
		return 0, ErrNoObject.New("object id %s out of range", id)
	}
	return s.generation.Load(), nil
}

// CheckObjectExistent reports whether id holds an object in any state but
// not-exist.
func (service *Service) CheckObjectExistent(id fbe.ObjectID) (bool, error) {
	if err := service.checkInitialized(); err != nil {
		return false, err
	}
	s := service.table.slot(id)
	if s == nil {
		return false, ErrGenericFailure.New("object id %s out of range", id)
	}
	return s.load() != SlotNotExist, nil
}

// first returns the lowest ready id accepted by match.
func (service *Service) first(match func(fbe.ObjectID, *handles) bool) (fbe.ObjectID, bool) {
	found := fbe.ObjectIDInvalid
	service.table.each(func(id fbe.ObjectID, h *handles) bool {
		if match(id, h) {
			found = id
			return false
		}
		return true
	})
	return found, found != fbe.ObjectIDInvalid
}

// GetObjectIDOfSingletonClass returns the first ready object of classID.
func (service *Service) GetObjectIDOfSingletonClass(classID fbe.ClassID) (fbe.ObjectID, error) {
	if err := service.checkInitialized(); err != nil {
		return fbe.ObjectIDInvalid, err
	}
	id, ok := service.first(matchClass(classID))
	if !ok {
		return fbe.ObjectIDInvalid, ErrGenericFailure.New("no object of class %s", classID)
	}
	return id, nil
}

// GetBoard returns the first ready board.
func (service *Service) GetBoard() (fbe.ObjectID, error) {
	if err := service.checkInitialized(); err != nil {
		return fbe.ObjectIDInvalid, err
	}
	id, ok := service.first(func(_ fbe.ObjectID, h *handles) bool { return h.classID.IsBoard() })
	if !ok {
		return fbe.ObjectIDInvalid, ErrNoObject.New("no board")
	}
	return id, nil
}

// GetBVDObjectID returns the block virtual drive interface object.
func (service *Service) GetBVDObjectID() (fbe.ObjectID, error) {
	if err := service.checkInitialized(); err != nil {
		return fbe.ObjectIDInvalid, err
	}
	id, ok := service.first(matchClass(fbe.ClassIDBVDInterface))
	if !ok {
		return fbe.ObjectIDInvalid, ErrNoObject.New("no bvd interface")
	}
	return id, nil
}

// GetPhysicalDriveByLocation returns the physical drive at location.
func (service *Service) GetPhysicalDriveByLocation(ctx context.Context, location fbe.DriveLocation) (_ fbe.ObjectID, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := service.checkInitialized(); err != nil {
		return fbe.ObjectIDInvalid, err
	}
	id, ok := service.first(func(id fbe.ObjectID, h *handles) bool {
		if !h.classID.IsPhysicalDrive() {
			return false
		}
		var got fbe.DriveLocation
		if err := service.queryObject(id, fbe.ControlCodePhysicalDriveGetLocation, &got); err != nil {
			return false
		}
		return got == location
	})
	if !ok {
		return fbe.ObjectIDInvalid, ErrNoObject.New("no physical drive at %d_%d_%d", location.Port, location.Enclosure, location.Slot)
	}
	return id, nil
}

// GetProvisionDriveByLocation returns the provisioned drive at location.
func (service *Service) GetProvisionDriveByLocation(ctx context.Context, location fbe.DriveLocation) (_ fbe.ObjectID, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := service.checkInitialized(); err != nil {
		return fbe.ObjectIDInvalid, err
	}
	id, ok := service.first(func(id fbe.ObjectID, h *handles) bool {
		if h.classID != fbe.ClassIDProvisionDrive {
			return false
		}
		var info fbe.ProvisionDriveInfo
		if err := service.queryObject(id, fbe.ControlCodeProvisionDriveGetInfo, &info); err != nil {
			return false
		}
		return info.Location() == location
	})
	if !ok {
		return fbe.ObjectIDInvalid, ErrNoObject.New("no provisioned drive at %d_%d_%d", location.Port, location.Enclosure, location.Slot)
	}
	return id, nil
}

// GetPortByLocation returns the port with portNumber.
func (service *Service) GetPortByLocation(ctx context.Context, portNumber uint32) (_ fbe.ObjectID, err error) {
	defer mon.Task()(&ctx)(&err)
	return service.findPort(func(info fbe.PortInfo) bool { return info.PortNumber == portNumber })
}

// GetPortByLocationAndRole returns the port with portNumber and role.
func (service *Service) GetPortByLocationAndRole(ctx context.Context, portNumber uint32, role fbe.PortRole) (_ fbe.ObjectID, err error) {
	defer mon.Task()(&ctx)(&err)
	return service.findPort(func(info fbe.PortInfo) bool {
		return info.PortNumber == portNumber && info.Role == role
	})
}

func (service *Service) findPort(match func(fbe.PortInfo) bool) (fbe.ObjectID, error) {
	if err := service.checkInitialized(); err != nil {
		return fbe.ObjectIDInvalid, err
	}
	id, ok := service.first(func(id fbe.ObjectID, h *handles) bool {
		if !h.classID.IsPort() {
			return false
		}
		info, err := service.portInfo(id)
		return err == nil && match(info)
	})
	if !ok {
		return fbe.ObjectIDInvalid, ErrNoObject.New("no matching port")
	}
	return id, nil
}

func (service *Service) portInfo(id fbe.ObjectID) (fbe.PortInfo, error) {
	var info fbe.PortInfo
	err := service.queryObject(id, fbe.ControlCodePortGetInfo, &info)
	return info, err
}

// queryObject sends an internal control request to id and waits for it.
func (service *Service) queryObject(id fbe.ObjectID, code fbe.ControlCode, buffer interface{}) error {
	pkt := packet.NewControl(code, id, buffer)
	pkt.Attr = packet.AttrTraversal
	if err := service.SendControlPacket(pkt); err != nil {
		return err
	}
	if status := pkt.ControlStatus(); status != packet.StatusOK {
		return packet.NewStatusError(status, Error.New("%s to %s", code, id))
	}
	return nil
}
