// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/openlot/parkcore/pkg/core/model"
)

// RecordsQueryer provides the read-only parking record queries.
type RecordsQueryer interface {
	// GetOpenRecord finds the unique open record of the given spot.
	// It returns nil without an error when the spot has no open
	// record, so "not parked" stays a normal typed outcome.
	GetOpenRecord(ctx context.Context, spotID int) (*model.Record, error)

	// ListRecords returns the whole parking history ordered by entry
	// time descending, for audit views.
	ListRecords(ctx context.Context) ([]model.Record, error)
}

// RecordsConnQueryer is the records repository view over a connection.
type RecordsConnQueryer interface {
	RecordsQueryer
}

// RecordsTxQueryer is the records repository view over a transaction.
// The ledger is append-and-close only; no operation updates a closed
// record or deletes anything.
type RecordsTxQueryer interface {
	RecordsQueryer

	// OpenRecord appends a new open record for the given spot and
	// plate. If an open record already exists for the spot, it fails
	// with a Conflict wrapping model.ErrDuplicateOpenRecord; given a
	// correctly locked spot this is a defensive check only.
	OpenRecord(
		ctx context.Context, spotID int, plate string, entry time.Time,
	) (*model.Record, error)

	// CloseRecord closes the unique open record of the given spot,
	// setting its exit time and payment in one statement. It fails
	// with a NotFound wrapping model.ErrNoOpenRecord when the spot
	// has no open record.
	CloseRecord(
		ctx context.Context, spotID int,
		exit time.Time, payment model.Money,
	) (*model.Record, error)
}

// Records binds the records repository queries to a connection or a
// transaction, as obtained from the Pool.
type Records interface {
	Conn(Conn) RecordsConnQueryer
	Tx(Tx) RecordsTxQueryer
}
