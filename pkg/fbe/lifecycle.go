// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package fbe

// LifecycleState is the state an object reports about itself. It is
// independent from the topology slot status.
type LifecycleState uint32

// List of lifecycle states.
const (
	LifecycleStateSpecialize = LifecycleState(iota)
	LifecycleStateActivate
	LifecycleStateReady
	LifecycleStateHibernate
	LifecycleStateOffline
	LifecycleStateFail
	LifecycleStateDestroy
	LifecycleStateInvalid
)

// String implements fmt.Stringer.
func (state LifecycleState) String() string {
	switch state {
	case LifecycleStateSpecialize:
		return "specialize"
	case LifecycleStateActivate:
		return "activate"
	case LifecycleStateReady:
		return "ready"
	case LifecycleStateHibernate:
		return "hibernate"
	case LifecycleStateOffline:
		return "offline"
	case LifecycleStateFail:
		return "fail"
	case LifecycleStateDestroy:
		return "destroy"
	default:
		return "invalid"
	}
}
