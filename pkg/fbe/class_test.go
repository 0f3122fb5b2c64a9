// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package fbe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/topology/pkg/fbe"
)

func TestClassRanges(t *testing.T) {
	for _, tt := range []struct {
		class fbe.ClassID
		check func(fbe.ClassID) bool
		want  bool
	}{
		{fbe.ClassIDParity, fbe.ClassID.IsRaid, true},
		{fbe.ClassIDMirror, fbe.ClassID.IsRaid, true},
		{fbe.ClassIDRaidFirst, fbe.ClassID.IsRaid, false},
		{fbe.ClassIDRaidLast, fbe.ClassID.IsRaid, false},
		{fbe.ClassIDSATAPhysicalDrive, fbe.ClassID.IsPhysicalDrive, true},
		{fbe.ClassIDProvisionDrive, fbe.ClassID.IsPhysicalDrive, false},
		{fbe.ClassIDFCPort, fbe.ClassID.IsPort, true},
		{fbe.ClassIDFleetBoard, fbe.ClassID.IsBoard, true},
		{fbe.ClassIDCoolingMgmt, fbe.ClassID.IsEnvironmentMgmt, true},
		{fbe.ClassIDBaseDiscovering, fbe.ClassID.IsBase, true},
		{fbe.ClassIDVertex, fbe.ClassID.IsMarker, false},
		{fbe.ClassIDPortLast, fbe.ClassID.IsMarker, true},
	} {
		assert.Equal(t, tt.want, tt.check(tt.class), tt.class.String())
	}
}

func TestParseNames(t *testing.T) {
	class, err := fbe.ParseClassID("provision-drive")
	require.NoError(t, err)
	assert.Equal(t, fbe.ClassIDProvisionDrive, class)

	_, err = fbe.ParseClassID("toaster")
	require.Error(t, err)
	assert.True(t, fbe.Error.Has(err))

	pkg, err := fbe.ParsePackageID("sep")
	require.NoError(t, err)
	assert.Equal(t, fbe.PackageIDSEP0, pkg)

	_, err = fbe.ParsePackageID("invalid")
	require.Error(t, err)
	assert.True(t, fbe.Error.Has(err))
}

func TestAllocationBase(t *testing.T) {
	assert.Equal(t, fbe.ObjectID(fbe.ReservedObjectIDs), fbe.PackageIDSEP0.AllocationBase())
	for _, pkg := range []fbe.PackageID{fbe.PackageIDPhysical, fbe.PackageIDNEIT, fbe.PackageIDESP, fbe.PackageIDKMS} {
		assert.Zero(t, pkg.AllocationBase(), pkg.String())
	}
}

func TestControlCodes(t *testing.T) {
	assert.True(t, fbe.ControlCodeCreateObject.IsTopology())
	assert.False(t, fbe.ControlCodePortGetInfo.IsTopology())
	assert.Equal(t, "enumerate-ports", fbe.ControlCodeEnumeratePorts.String())
	assert.Equal(t, "control(0x9999)", fbe.ControlCode(0x9999).String())
}

func TestSpareTypeConfig(t *testing.T) {
	config, ok := fbe.SpareDriveTypeTestSpare.ConfigType()
	require.True(t, ok)
	assert.Equal(t, fbe.ProvisionConfigTypeTestReservedSpare, config)

	_, ok = fbe.SpareDriveTypeInvalid.ConfigType()
	assert.False(t, ok)

	assert.Equal(t, fbe.ObjectIDInvalid, fbe.UpstreamObjects{}.Primary())
	assert.Equal(t, "invalid", fbe.ObjectIDInvalid.String())
	assert.Equal(t, "0x5", fbe.ObjectID(5).String())
}
