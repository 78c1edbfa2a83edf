// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema provides the Settler type which creates the parking
// tables and fills them with development or production suitable
// initial data. Spots are provisioned here and only here; the running
// engine never creates or deletes spots.
//
// The partial unique index on open parking records backs the central
// ledger invariant at the storage level: even if a future code path
// bypassed the spot row lock, the database itself would refuse a
// second open record for one spot.
package schema

import (
	"context"
	"fmt"

	"github.com/openlot/parkcore/pkg/adapter/db/postgres/usersrp"
	"github.com/openlot/parkcore/pkg/core/model"
	"github.com/openlot/parkcore/pkg/core/repo"
	"github.com/openlot/parkcore/pkg/core/scram"
)

// scramIters is the PBKDF2 iterations count for seeded passwords, as
// recommended by RFC 7677.
const scramIters = 15000

// ddl contains the idempotent table and index definitions. Statements
// are separated by semicolons and run without arguments, so a single
// Exec call may carry all of them.
const ddl = `
CREATE TABLE IF NOT EXISTS parking_spots (
	spot_id INTEGER PRIMARY KEY,
	spot_number VARCHAR(16) NOT NULL UNIQUE,
	status VARCHAR(16) NOT NULL DEFAULT 'FREE',
	floor INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS parking_records (
	record_id UUID PRIMARY KEY,
	plate_num VARCHAR(32) NOT NULL,
	spot_id INTEGER NOT NULL REFERENCES parking_spots (spot_id),
	entry_time TIMESTAMPTZ NOT NULL,
	exit_time TIMESTAMPTZ,
	payment BIGINT
);
CREATE UNIQUE INDEX IF NOT EXISTS parking_records_open_unique
	ON parking_records (spot_id) WHERE exit_time IS NULL;
CREATE INDEX IF NOT EXISTS parking_records_entry_time
	ON parking_records (entry_time DESC);
CREATE TABLE IF NOT EXISTS fee_rules (
	rule_id SERIAL PRIMARY KEY,
	base_price BIGINT NOT NULL,
	free_minutes INTEGER NOT NULL,
	daily_cap BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS admin_users (
	user_id SERIAL PRIMARY KEY,
	username VARCHAR(64) NOT NULL UNIQUE,
	pass_hash TEXT NOT NULL
);
`

// Settler creates the parking schema and its initial data. Each
// instance wraps a single transaction of the target database; the
// caller commits that transaction to finalize the initialization.
type Settler struct {
	tx     repo.Tx
	hasher scram.Hasher
}

// New creates a new Settler instance, wrapping the given tx database
// transaction. The hasher is used for seeding admin user passwords.
func New(tx repo.Tx, h scram.Hasher) *Settler {
	return &Settler{tx: tx, hasher: h}
}

// CreateTables creates the parking tables and indexes if they do not
// exist yet. It performs no data changes.
func (s *Settler) CreateTables(ctx context.Context) error {
	if _, err := s.tx.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// InitDev creates the tables and fills them with development suitable
// data: twelve free spots on two floors, the demo fee rule (10.00
// base price, 30 free minutes, 50.00 daily cap), and an admin user
// with the admin password.
func (s *Settler) InitDev(ctx context.Context) error {
	if err := s.CreateTables(ctx); err != nil {
		return err
	}
	for i := 1; i <= 12; i++ {
		floor := (i - 1) / 6
		number := fmt.Sprintf("%c-%02d", 'A'+floor, (i-1)%6+1)
		if err := s.seedSpot(ctx, i, number, floor); err != nil {
			return err
		}
	}
	if err := s.seedRule(ctx, model.FeeRule{
		BasePrice:   1000,
		FreeMinutes: 30,
		DailyCap:    5000,
	}); err != nil {
		return err
	}
	return s.seedUser(ctx, "admin", "admin")
}

// InitProd creates the tables and fills them with production suitable
// data: the given number of free spots with P-prefixed numbers, a
// conservative initial fee rule, and an admin user with the given
// password. Operators are expected to adjust the rule through the API
// afterwards.
func (s *Settler) InitProd(ctx context.Context, spots int, adminPass string) error {
	if spots <= 0 {
		return fmt.Errorf("non-positive spots count: %d", spots)
	}
	if err := s.CreateTables(ctx); err != nil {
		return err
	}
	for i := 1; i <= spots; i++ {
		number := fmt.Sprintf("P-%03d", i)
		if err := s.seedSpot(ctx, i, number, 0); err != nil {
			return err
		}
	}
	if err := s.seedRule(ctx, model.FeeRule{
		BasePrice:   1000,
		FreeMinutes: 15,
		DailyCap:    10000,
	}); err != nil {
		return err
	}
	return s.seedUser(ctx, "admin", adminPass)
}

func (s *Settler) seedSpot(ctx context.Context, id int, number string, floor int) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO parking_spots (spot_id, spot_number, status, floor)
		VALUES ($1, $2, 'FREE', $3)
		ON CONFLICT (spot_id) DO NOTHING`,
		id, number, floor,
	)
	if err != nil {
		return fmt.Errorf("seeding spot %d: %w", id, err)
	}
	return nil
}

func (s *Settler) seedRule(ctx context.Context, r model.FeeRule) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO fee_rules (base_price, free_minutes, daily_cap)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (SELECT 1 FROM fee_rules)`,
		int64(r.BasePrice), r.FreeMinutes, int64(r.DailyCap),
	)
	if err != nil {
		return fmt.Errorf("seeding fee rule: %w", err)
	}
	return nil
}

func (s *Settler) seedUser(ctx context.Context, username, pass string) error {
	hash, err := s.hasher.Hash(pass, "", scramIters)
	if err != nil {
		return fmt.Errorf("hashing password of %q: %w", username, err)
	}
	err = usersrp.New().Tx(s.tx).UpsertUser(ctx, model.AdminUser{
		Username: username,
		PassHash: hash,
	})
	if err != nil {
		return fmt.Errorf("seeding user %q: %w", username, err)
	}
	return nil
}
