// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema provides database schema verification logic which can
// be used for testing purposes. It checks that the settled tables and
// the open-record partial unique index are in place and that the
// development or production suitable initial data rows are present.
// Only presence of the expected items and not the absence of extra
// data rows will be checked.
package schema

import (
	"context"
	"testing"

	"github.com/openlot/parkcore/pkg/core/repo"
	"github.com/stretchr/testify/assert"
)

// Verifier wraps a database connection in order to verify the settled
// database schema and its initial data.
type Verifier struct {
	c repo.Conn // database connection which is used for testing
}

// New instantiates a Verifier struct, wrapping the `c` database
// connection. Since Verifier fields are not exported, the New function
// is required for its initialization.
func New(c repo.Conn) *Verifier {
	return &Verifier{c}
}

// VerifySchema ensures that the expected tables and the partial unique
// index, which backs the one-open-record-per-spot invariant, exist.
// This process failures are reported using the `t` testing argument.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	for _, table := range []string{
		"parking_spots", "parking_records", "fee_rules", "admin_users",
	} {
		n := v.countRows(ctx, t, `SELECT COUNT(*) FROM
information_schema.tables
WHERE table_schema='public' AND table_name=$1`, table)
		assert.Equal(t, int64(1), n, "missing table %q", table)
	}
	n := v.countRows(ctx, t, `SELECT COUNT(*) FROM pg_indexes
WHERE schemaname='public' AND indexname=$1`,
		"parking_records_open_unique")
	assert.Equal(t, int64(1), n, "missing open-record unique index")
}

// VerifyDevData checks for presence of the development suitable initial
// data and marks possible issues using the `t` testing argument.
// Presence of extra rows is acceptable.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	n := v.countRows(ctx, t, `SELECT COUNT(*) FROM parking_spots`)
	assert.Equal(t, int64(12), n, "expecting the dev two-floor lot")
	v.verifyCommonData(ctx, t)
}

// VerifyProdData checks for presence of the production suitable initial
// data and marks possible issues using the `t` testing argument.
// Presence of extra rows is acceptable.
func (v *Verifier) VerifyProdData(
	ctx context.Context, t *testing.T, spots int,
) {
	n := v.countRows(ctx, t, `SELECT COUNT(*) FROM parking_spots`)
	assert.Equal(t, int64(spots), n)
	v.verifyCommonData(ctx, t)
}

func (v *Verifier) verifyCommonData(ctx context.Context, t *testing.T) {
	n := v.countRows(ctx, t, `SELECT COUNT(*) FROM fee_rules`)
	assert.Positive(t, n, "expecting a seeded fee rule")
	n = v.countRows(ctx, t, `SELECT COUNT(*) FROM admin_users
WHERE username='admin'`)
	assert.Equal(t, int64(1), n, "expecting the admin operator")
}

func (v *Verifier) countRows(
	ctx context.Context, t *testing.T, query string, args ...any,
) (n int64) {
	rows, err := v.c.Query(ctx, query, args...)
	if !assert.NoError(t, err, "querying %q", query) {
		return -1
	}
	defer rows.Close()
	if !assert.True(t, rows.Next(), "expecting one counting row") {
		return -1
	}
	if !assert.NoError(t, rows.Scan(&n)) {
		return -1
	}
	return n
}
