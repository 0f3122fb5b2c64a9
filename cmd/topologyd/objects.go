// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"strconv"
	"strings"

	"github.com/zeebo/errs"

	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/simclass"
)

// ObjectCount is how many objects of a class to create.
type ObjectCount struct {
	Class fbe.ClassID
	Count int
}

// ParseObjects parses a list such as "provision-drive=4,sas-port=2".
// The order of the list is kept and a class may appear only once.
func ParseObjects(s string) ([]ObjectCount, error) {
	var counts []ObjectCount
	seen := map[fbe.ClassID]bool{}

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			value = "1"
		}

		class, err := fbe.ParseClassID(strings.TrimSpace(name))
		if err != nil {
			return nil, errs.Wrap(err)
		}
		if class.IsMarker() {
			return nil, errs.New("class %q is a range marker", name)
		}
		if seen[class] {
			return nil, errs.New("class %q listed twice", name)
		}
		seen[class] = true

		count, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || count < 0 {
			return nil, errs.New("invalid count %q for class %q", value, name)
		}
		counts = append(counts, ObjectCount{Class: class, Count: count})
	}
	return counts, nil
}

// objectParameters returns the parameters of the index-th object of class.
// Drives sit in consecutive slots of enclosure 0 on port 0 and ports
// alternate between the front end and back end roles.
func objectParameters(class fbe.ClassID, index int) simclass.Parameters {
	var params simclass.Parameters
	location := fbe.DriveLocation{Slot: uint32(index)}

	switch {
	case class.IsPort():
		role := fbe.PortRoleFE
		if index%2 == 1 {
			role = fbe.PortRoleBE
		}
		params.Port = fbe.PortInfo{
			Role:       role,
			PortNumber: uint32(index),
			IOModule:   uint32(index / 4),
			IOPort:     uint32(index % 4),
		}
	case class.IsPhysicalDrive():
		params.Location = location
	case class == fbe.ClassIDProvisionDrive:
		params.Location = location
		params.Provision = fbe.ProvisionDriveInfo{
			ConfigType: fbe.ProvisionConfigTypeUnconsumed,
			Port:       location.Port,
			Enclosure:  location.Enclosure,
			Slot:       location.Slot,
			Capacity:   1 << 30,
		}
	}
	return params
}
