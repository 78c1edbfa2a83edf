// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/openlot/parkcore/pkg/core/model"
)

// SpotsQueryer provides the read-only spot queries which are safe on
// a plain connection as well as within a transaction.
type SpotsQueryer interface {
	// GetSpot loads one spot by its identifier, returning a NotFound
	// wrapped error if no such spot exists.
	GetSpot(ctx context.Context, spotID int) (*model.Spot, error)

	// ListSpots returns all spots in a stable order by spot id.
	ListSpots(ctx context.Context) ([]model.Spot, error)

	// ListWithOpenRecords joins every spot with its open record (if
	// any) in one consistent read, ordered by spot id. A spot is
	// paired with a record exactly when its status is occupied.
	ListWithOpenRecords(ctx context.Context) ([]model.SpotOccupancy, error)
}

// SpotsConnQueryer is the spots repository view over a connection.
type SpotsConnQueryer interface {
	SpotsQueryer
}

// SpotsTxQueryer is the spots repository view over a transaction. The
// locking and mutating operations are only reachable here, so spot
// status can never change outside a transaction boundary.
type SpotsTxQueryer interface {
	SpotsQueryer

	// LockSpot reads one spot with an exclusive row lock, blocking
	// concurrent LockSpot callers on the same spot until this
	// transaction commits or rolls back. It returns a NotFound
	// wrapped error if no such spot exists.
	LockSpot(ctx context.Context, spotID int) (*model.Spot, error)

	// SetStatus unconditionally moves the spot to the given status.
	// It is idempotent; setting an already-free spot free is a no-op.
	SetStatus(ctx context.Context, spotID int, s model.SpotStatus) error
}

// Spots binds the spots repository queries to a connection or a
// transaction, as obtained from the Pool.
type Spots interface {
	Conn(Conn) SpotsConnQueryer
	Tx(Tx) SpotsTxQueryer
}
