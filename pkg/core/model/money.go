// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"log/slog"
)

// Money represents a currency amount as an integral number of cents,
// so billing arithmetic stays exact without floating point rounding.
type Money int64

// String formats the amount with two decimal places, e.g., 12.50 for
// 1250 cents. Negative amounts keep their sign before the digits.
func (m Money) String() string {
	c := int64(m)
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// LogValue implements slog.LogValuer, logging the formatted amount.
func (m Money) LogValue() slog.Value {
	return slog.StringValue(m.String())
}
