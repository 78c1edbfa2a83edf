// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/openlot/parkcore/pkg/core/model"
)

// RulesQueryer provides the fee rule queries.
type RulesQueryer interface {
	// GetLatestRule returns the currently active fee rule, that is,
	// the most recently inserted one. A NotFound wrapped error is
	// returned when no rule was provisioned yet.
	GetLatestRule(ctx context.Context) (*model.FeeRule, error)
}

// RulesConnQueryer is the rules repository view over a connection.
type RulesConnQueryer interface {
	RulesQueryer
}

// RulesTxQueryer is the rules repository view over a transaction.
type RulesTxQueryer interface {
	RulesQueryer

	// InsertRule appends the given rule as the new latest one. Older
	// rules are kept, so closed records stay consistent with the
	// pricing they were billed under.
	InsertRule(ctx context.Context, r model.FeeRule) (*model.FeeRule, error)
}

// Rules binds the fee rule repository queries to a connection or a
// transaction, as obtained from the Pool.
type Rules interface {
	Conn(Conn) RulesConnQueryer
	Tx(Tx) RulesTxQueryer
}
