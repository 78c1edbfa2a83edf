// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package parkinguc

import (
	"errors"
	"time"
)

// Option is a functional option for the parking use case.
type Option func(uc *UseCase) error

// WithClock option configures a parking UseCase instance to read
// entry and exit times from the given clock function instead of
// time.Now. This option may be passed to the New() function; tests
// use it to bill deterministic intervals.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock function is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
