// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
)

// RegisterEventFunction registers the function that delivers events into
// packageID.
func (service *Service) RegisterEventFunction(packageID fbe.PackageID, fn fbe.EventFunc) error {
	if packageID >= fbe.PackageIDLast {
		return ErrGenericFailure.New("invalid package %s", packageID)
	}
	if fn == nil {
		return ErrGenericFailure.New("nil event function for package %s", packageID)
	}
	service.events[packageID].Store(&fn)
	service.log.Debug("event function registered", zap.Stringer("package", packageID))
	return nil
}

// UnregisterEventFunction removes the event function of packageID.
func (service *Service) UnregisterEventFunction(packageID fbe.PackageID) error {
	if packageID >= fbe.PackageIDLast {
		return ErrGenericFailure.New("invalid package %s", packageID)
	}
	service.events[packageID].Store(nil)
	service.log.Debug("event function unregistered", zap.Stringer("package", packageID))
	return nil
}

// SendEventToOtherPackage delivers an event to an object of packageID
// through its registered event function.
func (service *Service) SendEventToOtherPackage(id fbe.ObjectID, packageID fbe.PackageID, event fbe.EventType, eventContext fbe.EventContext) error {
	if packageID >= fbe.PackageIDLast {
		return ErrGenericFailure.New("invalid package %s", packageID)
	}
	fn := service.events[packageID].Load()
	if fn == nil {
		service.log.Error("no event function for package",
			zap.Stringer("package", packageID), zap.Stringer("object", id))
		return ErrGenericFailure.New("no event function for package %s", packageID)
	}
	return (*fn)(id, event, eventContext)
}
