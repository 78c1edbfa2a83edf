// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ratesuc contains the fee rules use case which reports the
// active pricing rule and installs new ones. Installing a rule never
// rewrites history: the new rule is appended and becomes the latest,
// while sessions which were already billed keep their payments.
package ratesuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openlot/parkcore/pkg/core/cerr"
	"github.com/openlot/parkcore/pkg/core/log"
	"github.com/openlot/parkcore/pkg/core/model"
	"github.com/openlot/parkcore/pkg/core/repo"
)

// UseCase represents the fee rules use case. It holds a database
// connection pool and the rules repository instance.
type UseCase struct {
	pool    repo.Pool
	rulesrp repo.Rules
}

// New instantiates a fee rules use case.
func New(p repo.Pool, r repo.Rules) *UseCase {
	return &UseCase{pool: p, rulesrp: r}
}

// ActiveRule use case returns the currently active fee rule, that is,
// the latest provisioned one.
func (rt *UseCase) ActiveRule(ctx context.Context) (r *model.FeeRule, err error) {
	err = rt.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		r, err = rt.rulesrp.Conn(c).GetLatestRule(ctx)
		return err
	})
	if err != nil {
		r = nil
	}
	return
}

// PutRule use case validates and installs the given rule as the new
// active one. Future park-out operations bill against it; records
// which are already closed are not touched.
func (rt *UseCase) PutRule(ctx context.Context, rule model.FeeRule) (r *model.FeeRule, err error) {
	if err := rule.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = rt.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			r, err = rt.rulesrp.Tx(tx).InsertRule(ctx, rule)
			if err != nil {
				return fmt.Errorf("inserting fee rule: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "fee rule installed",
		slog.Int("rule", r.ID),
		log.Valuer("base_price", r.BasePrice),
		slog.Int("free_minutes", r.FreeMinutes),
		log.Valuer("daily_cap", r.DailyCap),
	)
	return
}
