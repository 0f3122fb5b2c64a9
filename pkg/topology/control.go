// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"context"

	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/packet"
)

// CreateObjectRequest is the buffer of fbe.ControlCodeCreateObject.
// ObjectID is fbe.ObjectIDInvalid to allocate an id and holds the created
// id on return.
type CreateObjectRequest struct {
	ClassID    fbe.ClassID
	ObjectID   fbe.ObjectID
	Parameters interface{}
}

// ObjectRequest is the buffer of requests about a single object.
type ObjectRequest struct {
	ObjectID fbe.ObjectID
}

// EnumerateRequest is the buffer of the enumeration control codes.
// Capacity must equal len(ObjectIDs).
type EnumerateRequest struct {
	ClassID   fbe.ClassID
	Role      fbe.PortRole
	Capacity  int
	ObjectIDs []fbe.ObjectID

	Copied int
	Found  int
}

// TotalObjectsRequest is the buffer of the object counting control codes.
type TotalObjectsRequest struct {
	ClassID fbe.ClassID
	Total   int
}

// ObjectTypeRequest is the buffer of fbe.ControlCodeGetObjectType.
type ObjectTypeRequest struct {
	ObjectID fbe.ObjectID
	Type     fbe.ObjectType
}

// ObjectClassRequest is the buffer of fbe.ControlCodeGetObjectClassID.
type ObjectClassRequest struct {
	ObjectID fbe.ObjectID
	ClassID  fbe.ClassID
}

// LifecycleStateRequest is the buffer of
// fbe.ControlCodeGetObjectLifecycleState.
type LifecycleStateRequest struct {
	ObjectID fbe.ObjectID
	State    fbe.LifecycleState
}

// LocationRequest is the buffer of the by-location drive lookups.
type LocationRequest struct {
	Location fbe.DriveLocation
	ObjectID fbe.ObjectID
}

// PortLocationRequest is the buffer of the port lookups. Role is ignored
// by fbe.ControlCodeGetPortByLocation.
type PortLocationRequest struct {
	PortNumber uint32
	Role       fbe.PortRole
	ObjectID   fbe.ObjectID
}

// SingletonRequest is the buffer of fbe.ControlCodeGetObjectIDOfSingletonClass.
type SingletonRequest struct {
	ClassID  fbe.ClassID
	ObjectID fbe.ObjectID
}

// EventFunctionRequest is the buffer of the event function registration
// control codes.
type EventFunctionRequest struct {
	Package fbe.PackageID
	Fn      fbe.EventFunc
}

// SpareDrivePoolRequest is the buffer of fbe.ControlCodeGetSpareDrivePool.
type SpareDrivePoolRequest struct {
	DriveType fbe.SpareDriveType
	Pool      fbe.SpareDrivePool
}

// ExistentRequest is the buffer of fbe.ControlCodeCheckObjectExistent.
type ExistentRequest struct {
	ObjectID fbe.ObjectID
	Exists   bool
}

// GenerationRequest is the buffer of fbe.ControlCodeGetObjectGeneration.
type GenerationRequest struct {
	ObjectID   fbe.ObjectID
	Generation uint64
}

// ControlEntry is the entry point of control packets sent to the topology
// service. Packets addressed to an object or a class are routed there;
// the rest are served by the service itself. The packet is completed when
// ControlEntry returns.
func (service *Service) ControlEntry(ctx context.Context, pkt *packet.Packet) error {
	if pkt.Control.Code == fbe.ControlCodeInit {
		return complete(pkt, service.Init(ctx))
	}
	if err := service.checkInitialized(); err != nil {
		return complete(pkt, err)
	}

	switch {
	case pkt.Address.Object != fbe.ObjectIDInvalid:
		return service.SendControlPacket(pkt)
	case pkt.Address.Class != fbe.ClassIDInvalid:
		return service.sendClassCommand(pkt)
	}

	return complete(pkt, service.control(ctx, pkt))
}

func (service *Service) control(ctx context.Context, pkt *packet.Packet) error {
	switch pkt.Control.Code {
	case fbe.ControlCodeDestroy:
		return service.Destroy(ctx)

	case fbe.ControlCodeCreateObject:
		req, err := buffer[CreateObjectRequest](pkt)
		if err != nil {
			return err
		}
		req.ObjectID, err = service.CreateObject(ctx, CreateRequest{
			ClassID:    req.ClassID,
			ObjectID:   req.ObjectID,
			Parameters: req.Parameters,
		})
		return err

	case fbe.ControlCodeDestroyObject:
		req, err := buffer[ObjectRequest](pkt)
		if err != nil {
			return err
		}
		return service.DestroyObject(ctx, req.ObjectID)

	case fbe.ControlCodeEnumerateObjects:
		return service.controlEnumerate(pkt, func(req *EnumerateRequest) (Enumeration, error) {
			return service.EnumerateObjects(req.ObjectIDs)
		})

	case fbe.ControlCodeEnumerateClass:
		return service.controlEnumerate(pkt, func(req *EnumerateRequest) (Enumeration, error) {
			return service.EnumerateClass(req.ClassID, req.ObjectIDs)
		})

	case fbe.ControlCodeEnumeratePorts:
		return service.controlEnumerate(pkt, func(req *EnumerateRequest) (Enumeration, error) {
			return service.EnumeratePorts(ctx, req.Role, req.ObjectIDs)
		})

	case fbe.ControlCodeGetPhysicalDriveObjects:
		return service.controlEnumerate(pkt, func(req *EnumerateRequest) (Enumeration, error) {
			return service.GetPhysicalDriveObjects(req.ObjectIDs)
		})

	case fbe.ControlCodeGetTotalObjects:
		req, err := buffer[TotalObjectsRequest](pkt)
		if err != nil {
			return err
		}
		req.Total, err = service.GetTotalObjects()
		return err

	case fbe.ControlCodeGetTotalObjectsOfClass:
		req, err := buffer[TotalObjectsRequest](pkt)
		if err != nil {
			return err
		}
		req.Total, err = service.GetTotalObjectsOfClass(req.ClassID)
		return err

	case fbe.ControlCodeGetObjectType:
		req, err := buffer[ObjectTypeRequest](pkt)
		if err != nil {
			return err
		}
		req.Type, err = service.GetObjectType(req.ObjectID)
		return err

	case fbe.ControlCodeGetObjectClassID:
		req, err := buffer[ObjectClassRequest](pkt)
		if err != nil {
			return err
		}
		req.ClassID, err = service.GetObjectClassID(req.ObjectID)
		return err

	case fbe.ControlCodeGetObjectLifecycleState:
		req, err := buffer[LifecycleStateRequest](pkt)
		if err != nil {
			return err
		}
		req.State, err = service.GetObjectLifecycleState(req.ObjectID)
		return err

	case fbe.ControlCodeGetPhysicalDriveByLocation:
		req, err := buffer[LocationRequest](pkt)
		if err != nil {
			return err
		}
		req.ObjectID, err = service.GetPhysicalDriveByLocation(ctx, req.Location)
		return err

	case fbe.ControlCodeGetProvisionDriveByLocation:
		req, err := buffer[LocationRequest](pkt)
		if err != nil {
			return err
		}
		req.ObjectID, err = service.GetProvisionDriveByLocation(ctx, req.Location)
		return err

	case fbe.ControlCodeGetPortByLocation:
		req, err := buffer[PortLocationRequest](pkt)
		if err != nil {
			return err
		}
		req.ObjectID, err = service.GetPortByLocation(ctx, req.PortNumber)
		return err

	case fbe.ControlCodeGetPortByLocationAndRole:
		req, err := buffer[PortLocationRequest](pkt)
		if err != nil {
			return err
		}
		req.ObjectID, err = service.GetPortByLocationAndRole(ctx, req.PortNumber, req.Role)
		return err

	case fbe.ControlCodeGetBoard:
		req, err := buffer[ObjectRequest](pkt)
		if err != nil {
			return err
		}
		req.ObjectID, err = service.GetBoard()
		return err

	case fbe.ControlCodeGetBVDObjectID:
		req, err := buffer[ObjectRequest](pkt)
		if err != nil {
			return err
		}
		req.ObjectID, err = service.GetBVDObjectID()
		return err

	case fbe.ControlCodeGetObjectIDOfSingletonClass:
		req, err := buffer[SingletonRequest](pkt)
		if err != nil {
			return err
		}
		req.ObjectID, err = service.GetObjectIDOfSingletonClass(req.ClassID)
		return err

	case fbe.ControlCodeRegisterEventFunction:
		req, err := buffer[EventFunctionRequest](pkt)
		if err != nil {
			return err
		}
		return service.RegisterEventFunction(req.Package, req.Fn)

	case fbe.ControlCodeUnregisterEventFunction:
		req, err := buffer[EventFunctionRequest](pkt)
		if err != nil {
			return err
		}
		return service.UnregisterEventFunction(req.Package)

	case fbe.ControlCodeGetSpareDrivePool:
		req, err := buffer[SpareDrivePoolRequest](pkt)
		if err != nil {
			return err
		}
		req.Pool, err = service.GetSpareDrivePool(ctx, req.DriveType)
		return err

	case fbe.ControlCodeSetSparePolicy:
		policy, err := buffer[fbe.SparePolicy](pkt)
		if err != nil {
			return err
		}
		service.SetSparePolicy(*policy)
		return nil

	case fbe.ControlCodeGetSparePolicy:
		policy, err := buffer[fbe.SparePolicy](pkt)
		if err != nil {
			return err
		}
		*policy = service.SparePolicy()
		return nil

	case fbe.ControlCodeGetStatistics:
		stats, err := buffer[Statistics](pkt)
		if err != nil {
			return err
		}
		*stats = service.Statistics()
		return nil

	case fbe.ControlCodeCheckObjectExistent:
		req, err := buffer[ExistentRequest](pkt)
		if err != nil {
			return err
		}
		req.Exists, err = service.CheckObjectExistent(req.ObjectID)
		return err

	case fbe.ControlCodeGetObjectGeneration:
		req, err := buffer[GenerationRequest](pkt)
		if err != nil {
			return err
		}
		req.Generation, err = service.ObjectGeneration(req.ObjectID)
		return err
	}

	service.log.Warn("unknown control code", zap.Stringer("code", pkt.Control.Code))
	return ErrGenericFailure.New("unknown control code %s", pkt.Control.Code)
}

func (service *Service) controlEnumerate(pkt *packet.Packet, fn func(req *EnumerateRequest) (Enumeration, error)) error {
	req, err := buffer[EnumerateRequest](pkt)
	if err != nil {
		return err
	}
	if req.Capacity != len(req.ObjectIDs) {
		service.log.Error("enumeration buffer size mismatch",
			zap.Stringer("code", pkt.Control.Code),
			zap.Int("capacity", req.Capacity),
			zap.Int("buffer", len(req.ObjectIDs)))
		return ErrGenericFailure.New("capacity %d does not match buffer of %d", req.Capacity, len(req.ObjectIDs))
	}
	enum, err := fn(req)
	if err != nil {
		return err
	}
	req.Copied, req.Found = enum.Copied, enum.Found
	return nil
}

// buffer returns the control buffer of pkt as a *T.
func buffer[T any](pkt *packet.Packet) (*T, error) {
	req, ok := pkt.Control.Buffer.(*T)
	if !ok || req == nil {
		return nil, ErrGenericFailure.New("%s: unexpected buffer %T", pkt.Control.Code, pkt.Control.Buffer)
	}
	return req, nil
}
