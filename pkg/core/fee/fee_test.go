// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fee_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/openlot/parkcore/pkg/core/fee"
	"github.com/openlot/parkcore/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rule10x30x50 is the demo rule of the billing scenarios: base price
// of 10.00 per started hour, 30 free minutes, and a 50.00 daily cap.
var rule10x30x50 = model.FeeRule{
	ID:          1,
	BasePrice:   1000,
	FreeMinutes: 30,
	DailyCap:    5000,
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 7, hour, minute, 0, 0, time.UTC)
}

func TestComputeScenarios(t *testing.T) {
	for _, tc := range []struct {
		name        string
		entry, exit time.Time
		rule        model.FeeRule
		amount      model.Money
	}{
		{
			name:  "within free window",
			entry: at(9, 0), exit: at(9, 20),
			rule: rule10x30x50, amount: 0,
		},
		{
			name:  "exactly at free window end",
			entry: at(9, 0), exit: at(9, 30),
			rule: rule10x30x50, amount: 0,
		},
		{
			name:  "first started hour",
			entry: at(9, 0), exit: at(9, 45),
			rule: rule10x30x50, amount: 1000,
		},
		{
			name:  "second started hour",
			entry: at(9, 0), exit: at(10, 31),
			rule: rule10x30x50, amount: 2000,
		},
		{
			name:  "capped by daily cap",
			entry: at(9, 0), exit: at(21, 0),
			rule: rule10x30x50, amount: 5000,
		},
		{
			name:  "zero duration",
			entry: at(9, 0), exit: at(9, 0),
			rule: rule10x30x50, amount: 0,
		},
		{
			name:  "no cap configured",
			entry: at(9, 0), exit: at(21, 0),
			rule: model.FeeRule{BasePrice: 1000, FreeMinutes: 30}, amount: 12000,
		},
		{
			name:  "no grace period",
			entry: at(9, 0), exit: at(9, 1),
			rule: model.FeeRule{BasePrice: 250, DailyCap: 5000}, amount: 250,
		},
		{
			name:  "started minute is billed",
			entry: at(9, 0), exit: at(9, 30).Add(30 * time.Second),
			rule: rule10x30x50, amount: 1000,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := fee.Compute(tc.entry, tc.exit, tc.rule)
			require.NoError(t, err)
			assert.Equal(t, tc.amount, amount)
		})
	}
}

func TestComputeInvalidInterval(t *testing.T) {
	amount, err := fee.Compute(at(9, 45), at(9, 0), rule10x30x50)
	require.ErrorIs(t, err, model.ErrInvalidInterval)
	assert.Zero(t, amount)
}

func TestComputeRejectsNegativeRule(t *testing.T) {
	_, err := fee.Compute(at(9, 0), at(10, 0), model.FeeRule{
		BasePrice: -1,
	})
	assert.Error(t, err)
}

// TestComputeMonotonicity checks that for a fixed rule the fee never
// decreases as the parked duration grows, and that a positive daily
// cap is never exceeded.
func TestComputeMonotonicity(t *testing.T) {
	entry := at(8, 0)
	var prev model.Money
	for m := 0; m <= 24*60; m += 7 {
		exit := entry.Add(time.Duration(m) * time.Minute)
		amount, err := fee.Compute(entry, exit, rule10x30x50)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, amount, prev, "minute %d", m)
		assert.LessOrEqual(t, amount, rule10x30x50.DailyCap)
		prev = amount
	}
}

func ExampleCompute() {
	entry := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	exit := time.Date(2025, 3, 7, 9, 45, 0, 0, time.UTC)
	amount, err := fee.Compute(entry, exit, model.FeeRule{
		BasePrice:   1000,
		FreeMinutes: 30,
		DailyCap:    5000,
	})
	fmt.Println(err)
	fmt.Println(amount)
	// Output:
	// <nil>
	// 10.00
}
