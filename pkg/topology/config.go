// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import "time"

// Config contains configurable values for the topology service.
type Config struct {
	MaxObjects        int           `help:"number of object slots in the table" default:"4096"`
	ReservedObjectIDs int           `help:"first object id handed out when no id is requested, -1 for the package default" default:"-1"`
	DestroyRetries    int           `help:"how many times a failing class destroy is retried" default:"10" hidden:"true"`
	DestroyRetryDelay time.Duration `help:"delay between class destroy retries" default:"200ms" hidden:"true"`

	SelectOnlyTestSpare     bool `help:"only test reserved spares are offered as spare drives" default:"false"`
	DisableSelectUnconsumed bool `help:"unconsumed drives are never offered as spare drives" default:"false"`
}

// DefaultConfig returns the values the service uses when none are bound.
func DefaultConfig() Config {
	return Config{
		MaxObjects:        4096,
		ReservedObjectIDs: -1,
		DestroyRetries:    10,
		DestroyRetryDelay: 200 * time.Millisecond,
	}
}
