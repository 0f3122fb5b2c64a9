// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"context"

	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
)

// SparePolicy returns the current spare selection switches.
func (service *Service) SparePolicy() fbe.SparePolicy {
	return fbe.SparePolicy{
		SelectOnlyTestSpare:     service.selectOnlyTestSpare.Load(),
		DisableSelectUnconsumed: service.disableSelectUnconsumed.Load(),
	}
}

// SetSparePolicy replaces the spare selection switches.
func (service *Service) SetSparePolicy(policy fbe.SparePolicy) {
	service.selectOnlyTestSpare.Store(policy.SelectOnlyTestSpare)
	service.disableSelectUnconsumed.Store(policy.DisableSelectUnconsumed)
	service.log.Info("spare policy changed",
		zap.Bool("select_only_test_spare", policy.SelectOnlyTestSpare),
		zap.Bool("disable_select_unconsumed", policy.DisableSelectUnconsumed))
}

// GetSpareDrivePool returns the provisioned drives that may be used as
// spares of driveType. A drive qualifies when its configuration matches and
// no virtual drive sits above it. Drives that fail to answer are skipped.
func (service *Service) GetSpareDrivePool(ctx context.Context, driveType fbe.SpareDriveType) (_ fbe.SpareDrivePool, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := service.checkInitialized(); err != nil {
		return fbe.SpareDrivePool{}, err
	}

	configType, ok := driveType.ConfigType()
	if !ok {
		return fbe.SpareDrivePool{}, ErrGenericFailure.New("invalid spare drive type %d", driveType)
	}

	pool := fbe.SpareDrivePool{ObjectIDs: []fbe.ObjectID{}}
	policy := service.SparePolicy()
	switch driveType {
	case fbe.SpareDriveTypeUnconsumed:
		if policy.DisableSelectUnconsumed {
			service.log.Warn("selecting unconsumed spares is disabled")
			return pool, nil
		}
	case fbe.SpareDriveTypeTestSpare:
		if !policy.SelectOnlyTestSpare {
			service.log.Warn("selecting test spares is not enabled")
			return pool, nil
		}
	}

	service.table.each(func(id fbe.ObjectID, h *handles) bool {
		if h.classID != fbe.ClassIDProvisionDrive {
			return true
		}

		var info fbe.ProvisionDriveInfo
		if err := service.queryObject(id, fbe.ControlCodeProvisionDriveGetInfo, &info); err != nil {
			service.log.Debug("spare candidate skipped", zap.Stringer("object", id), zap.Error(err))
			return true
		}
		if info.ConfigType != configType {
			return true
		}
		if info.IsSystemDrive {
			service.log.Info("system drive is a spare candidate",
				zap.Stringer("object", id),
				zap.Uint32("port", info.Port),
				zap.Uint32("enclosure", info.Enclosure),
				zap.Uint32("slot", info.Slot))
		}

		var upstream fbe.UpstreamObjects
		if err := service.queryObject(id, fbe.ControlCodeProvisionDriveGetUpstreamObjects, &upstream); err != nil {
			service.log.Debug("spare candidate skipped", zap.Stringer("object", id), zap.Error(err))
			return true
		}
		if upstream.Primary() != fbe.ObjectIDInvalid {
			return true
		}

		pool.ObjectIDs = append(pool.ObjectIDs, id)
		pool.Count++
		return pool.Count < fbe.MaxSpareObjects
	})
	return pool, nil
}
