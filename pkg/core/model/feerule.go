// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"time"
)

// FeeRule models the active pricing policy. Exactly one rule, the
// latest inserted one, is active at any time. Updating the pricing
// inserts a new rule rather than rewriting an old one, so already
// closed records keep referring to the prices they were billed with.
type FeeRule struct {
	ID          int       // unique rule identifier
	BasePrice   Money     // price of each started billable hour
	FreeMinutes int       // grace period before billing starts
	DailyCap    Money     // fee ceiling per session, zero disables it
	CreatedAt   time.Time // when this rule became the latest one
}

// Validate returns nil if the rule is acceptable for billing, that is,
// no negative prices, grace period, or cap are configured.
func (r FeeRule) Validate() error {
	switch {
	case r.BasePrice < 0:
		return fmt.Errorf("negative base price: %s", r.BasePrice)
	case r.FreeMinutes < 0:
		return fmt.Errorf("negative free minutes: %d", r.FreeMinutes)
	case r.DailyCap < 0:
		return fmt.Errorf("negative daily cap: %s", r.DailyCap)
	default:
		return nil
	}
}
