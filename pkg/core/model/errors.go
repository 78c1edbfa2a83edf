// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "errors"

// Domain error values of the allocation engine. These errors describe
// expected business outcomes, not storage failures, so use cases wrap
// them (adding the failed operation and its arguments) and adapters
// may test for them with errors.Is in order to pick a proper
// presentation for each outcome.
var (
	// ErrSpotUnavailable reports a park-in attempt on a spot which is
	// not free, covering the race where two admission requests target
	// the same spot and only one wins.
	ErrSpotUnavailable = errors.New("spot is not free")

	// ErrNoOpenRecord reports a park-out attempt on a spot with no
	// active parking session, e.g., a repeated park-out request.
	ErrNoOpenRecord = errors.New("no open record for spot")

	// ErrDuplicateOpenRecord reports an attempt to open a second
	// record for a spot which already has an open one. With correct
	// spot locking this indicates a registry/ledger desync bug.
	ErrDuplicateOpenRecord = errors.New("open record already exists")

	// ErrInvalidInterval reports an exit time which precedes the entry
	// time, caused by clock skew or corrupted data. Billing refuses to
	// produce a value for such an interval.
	ErrInvalidInterval = errors.New("exit time precedes entry time")
)
