// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fee implements the billing policy of the parking engine as a
// pure function from a parking interval and a fee rule to a payment
// amount. It carries no storage or clock dependency, so the same
// computation can be exercised by the allocation use case and verified
// in isolation.
package fee

import (
	"fmt"
	"time"

	"github.com/openlot/parkcore/pkg/core/model"
)

// minutesPerHour and started-unit rounding are the only calendar
// assumptions of the policy; days never matter because the cap applies
// per session.
const minutesPerHour = 60

// Compute derives the parking fee for a session which started at entry
// and finished at exit, priced by the r fee rule.
//
// The elapsed duration is rounded up to whole minutes. Minutes within
// the rule's grace period are free; if the session ends within the
// grace period, the fee is zero. Beyond the grace period, every
// started hour of billable minutes costs the rule's base price. When a
// positive daily cap is configured, it limits the final amount.
//
// An exit time preceding the entry time yields
// model.ErrInvalidInterval (wrapped with both timestamps) and no
// amount; the caller must leave the record unbilled for review instead
// of persisting a negative fee.
func Compute(entry, exit time.Time, r model.FeeRule) (model.Money, error) {
	if exit.Before(entry) {
		return 0, fmt.Errorf(
			"entry=%s exit=%s: %w",
			entry.Format(time.RFC3339), exit.Format(time.RFC3339),
			model.ErrInvalidInterval,
		)
	}
	if err := r.Validate(); err != nil {
		return 0, fmt.Errorf("fee rule: %w", err)
	}
	elapsed := ceilMinutes(exit.Sub(entry))
	billable := elapsed - r.FreeMinutes
	if billable <= 0 {
		return 0, nil
	}
	hours := (billable + minutesPerHour - 1) / minutesPerHour
	amount := r.BasePrice * model.Money(hours)
	if r.DailyCap > 0 && amount > r.DailyCap {
		amount = r.DailyCap
	}
	return amount, nil
}

// ceilMinutes converts d to whole minutes, rounding any fraction up,
// so a vehicle is billed for every started minute.
func ceilMinutes(d time.Duration) int {
	m := d / time.Minute
	if d%time.Minute != 0 {
		m++
	}
	return int(m)
}
