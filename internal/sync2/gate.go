// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package sync2

import "sync/atomic"

const (
	gateBit   = 0x10000000
	countMask = 0x0FFFFFFF
)

// Gate combines a single "closed" bit with a count of outstanding
// acquisitions in one atomic word. None of its methods take a lock.
//
// A closed gate rejects new acquisitions; acquisitions that were granted
// before the gate closed remain valid until they are released. The zero
// value is an open gate with no acquisitions.
type Gate struct {
	word atomic.Int64
}

// TryAcquire takes a reference unless the gate is closed.
func (gate *Gate) TryAcquire() bool {
	for {
		word := gate.word.Load()
		if word&gateBit != 0 {
			return false
		}
		if gate.word.CompareAndSwap(word, word+1) {
			return true
		}
	}
}

// Release drops a reference taken by a successful TryAcquire. It returns
// false and leaves the gate untouched when no reference is outstanding.
func (gate *Gate) Release() bool {
	for {
		word := gate.word.Load()
		if word&countMask == 0 {
			return false
		}
		if gate.word.CompareAndSwap(word, word-1) {
			return true
		}
	}
}

// Set closes the gate and returns the number of references that were
// outstanding at that moment.
func (gate *Gate) Set() int64 {
	return gate.word.Or(gateBit) & countMask
}

// Clear opens the gate.
func (gate *Gate) Clear() {
	gate.word.And(^int64(gateBit))
}

// Quiesced closes the gate and reports whether no references remain.
// Once it returns true no TryAcquire can succeed until Clear is called.
func (gate *Gate) Quiesced() bool {
	return gate.Set() == 0
}

// IsSet reports whether the gate is closed.
func (gate *Gate) IsSet() bool {
	return gate.word.Load()&gateBit != 0
}

// Count returns the number of outstanding references.
func (gate *Gate) Count() int64 {
	return gate.word.Load() & countMask
}
