// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Record models one parking session of a vehicle, spanning its entry
// to its exit. A record is opened when a vehicle parks in and closed
// (obtaining an exit time and a payment) when it parks out. Closed
// records are never mutated or deleted again, forming an append-only
// history. At most one open record may exist per spot at any time.
type Record struct {
	ID        uuid.UUID  // unique record identifier
	Plate     string     // plate number, not validated for format
	SpotID    int        // referenced spot; the spot outlives records
	EntryTime time.Time  // when the vehicle entered
	ExitTime  *time.Time // when it exited, nil while still parked
	Payment   *Money     // computed fee, nil until the record closes
}

// Open reports whether this record still represents a parked vehicle,
// that is, whether its exit time is not set yet.
func (r *Record) Open() bool {
	return r.ExitTime == nil
}
