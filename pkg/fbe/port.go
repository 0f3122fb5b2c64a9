// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package fbe

// PortRole is the role a port plays on the array.
type PortRole uint32

// List of port roles.
const (
	PortRoleInvalid = PortRole(iota)
	PortRoleFE
	PortRoleBE
	PortRoleUNC
	PortRoleSpecial
)

// String implements fmt.Stringer.
func (role PortRole) String() string {
	switch role {
	case PortRoleFE:
		return "fe"
	case PortRoleBE:
		return "be"
	case PortRoleUNC:
		return "unc"
	case PortRoleSpecial:
		return "special"
	default:
		return "invalid"
	}
}

// PortInfo is what a port object answers to ControlCodePortGetInfo.
type PortInfo struct {
	Role       PortRole
	PortNumber uint32
	IOModule   uint32
	IOPort     uint32
}
