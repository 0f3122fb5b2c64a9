// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package sync2

import "time"

// Retry calls fn once and, while it fails, up to retries more times,
// sleeping delay between attempts. The attempt number passed to fn starts
// at 0. onFailure, when non-nil, is called after every failed attempt that
// will be retried.
//
// Retry blocks the calling goroutine; it is meant for administrative paths.
// It returns nil on the first success and the last error otherwise.
func Retry(retries int, delay time.Duration, fn func(attempt int) error, onFailure func(attempt int, err error)) error {
	err := fn(0)
	for attempt := 1; err != nil && attempt <= retries; attempt++ {
		if onFailure != nil {
			onFailure(attempt, err)
		}
		if delay > 0 {
			time.Sleep(delay)
		}
		err = fn(attempt)
	}
	return err
}

