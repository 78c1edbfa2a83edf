// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package parkinguc contains the parking use case: the transactional
// allocation engine which admits and releases vehicles against the
// fixed set of spots, and the read-only occupancy queries consumed by
// the presentation layer.
//
// Both park-in and park-out mutate the spots table and the records
// ledger inside one transaction, keeping the central invariant that a
// spot is occupied if and only if an open record references it. The
// exclusive row lock taken on the spot is the sole synchronization
// point; competing requests on the same spot block on that lock and
// re-evaluate the status once the winner resolves.
package parkinguc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openlot/parkcore/pkg/core/cerr"
	"github.com/openlot/parkcore/pkg/core/fee"
	"github.com/openlot/parkcore/pkg/core/log"
	"github.com/openlot/parkcore/pkg/core/model"
	"github.com/openlot/parkcore/pkg/core/repo"
)

// UseCase represents the parking use case. It holds a database
// connection pool and the spots, records, and fee rules repository
// instances (to be guided with the DB pool connections/transactions).
type UseCase struct {
	pool      repo.Pool
	spotsrp   repo.Spots
	recordsrp repo.Records
	rulesrp   repo.Rules

	now func() time.Time
}

// New instantiates a parking use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, s repo.Spots, r repo.Records, f repo.Rules,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, spotsrp: s, recordsrp: r, rulesrp: f}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// ParkIn use case admits the vehicle with the given plate number into
// the spotID spot. The spot row is locked exclusively before its
// status is checked, so out of any number of concurrent admissions
// targeting one spot exactly one may proceed; the others fail with a
// conflict error wrapping model.ErrSpotUnavailable after the winning
// transaction resolves. On success the status change and the freshly
// opened record commit together; any mid-way failure rolls both back.
func (pk *UseCase) ParkIn(ctx context.Context, spotID int, plate string) error {
	if plate == "" {
		return cerr.BadRequest(errors.New("plate number is empty"))
	}
	err := pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			spots := pk.spotsrp.Tx(tx)
			s, err := spots.LockSpot(ctx, spotID)
			if err != nil {
				return fmt.Errorf("locking spot %d: %w", spotID, err)
			}
			if s.Status != model.SpotStatusFree {
				return cerr.Conflict(fmt.Errorf(
					"spot %d is %s: %w",
					spotID, s.Status, model.ErrSpotUnavailable,
				))
			}
			r, err := pk.recordsrp.Tx(tx).OpenRecord(
				ctx, spotID, plate, pk.now(),
			)
			if err != nil {
				return fmt.Errorf("opening record: %w", err)
			}
			err = spots.SetStatus(ctx, spotID, model.SpotStatusOccupied)
			if err != nil {
				return fmt.Errorf("occupying spot %d: %w", spotID, err)
			}
			log.Info(ctx, "vehicle parked in",
				log.Spot(spotID), log.Record(r.ID),
				log.Valuer("status", model.SpotStatusOccupied),
			)
			return nil
		})
	})
	if err != nil && errors.Is(err, model.ErrDuplicateOpenRecord) {
		// a free spot with an open record means the registry and the
		// ledger went out of sync; the transaction is rolled back and
		// the inconsistency is kept visible for review
		log.Error(ctx, "registry/ledger desync detected",
			log.Spot(spotID), log.Err("err", err),
		)
	}
	return err
}

// ParkOut use case releases the vehicle which is parked in the spotID
// spot, closing its open record with the current time and a payment
// computed by the fee policy against the active fee rule. The computed
// fee is returned. If no open record exists (a repeated park-out or a
// never-occupied spot), it fails with a not-found error wrapping
// model.ErrNoOpenRecord and the spot state is left untouched.
func (pk *UseCase) ParkOut(ctx context.Context, spotID int) (payment model.Money, err error) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			spots := pk.spotsrp.Tx(tx)
			// the same row lock which park-in takes, so a release
			// serializes with a concurrent admission of this spot
			if _, err := spots.LockSpot(ctx, spotID); err != nil {
				return fmt.Errorf("locking spot %d: %w", spotID, err)
			}
			records := pk.recordsrp.Tx(tx)
			open, err := records.GetOpenRecord(ctx, spotID)
			if err != nil {
				return fmt.Errorf("querying open record: %w", err)
			}
			if open == nil {
				return cerr.NotFound(fmt.Errorf(
					"parking out of spot %d: %w",
					spotID, model.ErrNoOpenRecord,
				))
			}
			rule, err := pk.rulesrp.Tx(tx).GetLatestRule(ctx)
			if err != nil {
				return fmt.Errorf("loading active fee rule: %w", err)
			}
			exit := pk.now()
			payment, err = fee.Compute(open.EntryTime, exit, *rule)
			if err != nil {
				if errors.Is(err, model.ErrInvalidInterval) {
					// leave the record open for review instead of
					// persisting a negative fee
					return cerr.Unprocessable(err)
				}
				return fmt.Errorf("computing fee: %w", err)
			}
			r, err := records.CloseRecord(ctx, spotID, exit, payment)
			if err != nil {
				return fmt.Errorf("closing record: %w", err)
			}
			err = spots.SetStatus(ctx, spotID, model.SpotStatusFree)
			if err != nil {
				return fmt.Errorf("freeing spot %d: %w", spotID, err)
			}
			log.Info(ctx, "vehicle parked out",
				log.Spot(spotID), log.Record(r.ID),
				log.Valuer("payment", payment),
			)
			return nil
		})
	})
	if err != nil {
		payment = 0
	}
	return
}

// ListSpots use case returns every spot joined with its open record,
// if any, ordered by spot id. The join runs as a single consistent
// read, so a dashboard never observes an occupied spot without its
// record or a free spot with one, not even transiently.
func (pk *UseCase) ListSpots(ctx context.Context) (view []model.SpotOccupancy, err error) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		view, err = pk.spotsrp.Conn(c).ListWithOpenRecords(ctx)
		return err
	})
	if err != nil {
		view = nil
	}
	return
}

// ListRecords use case returns the full parking history ordered by
// entry time descending, for the audit table.
func (pk *UseCase) ListRecords(ctx context.Context) (records []model.Record, err error) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		records, err = pk.recordsrp.Conn(c).ListRecords(ctx)
		return err
	})
	if err != nil {
		records = nil
	}
	return
}

// ActiveRecord use case returns the open record of the given spot, or
// nil when the spot holds no parked vehicle; absence is a normal typed
// outcome, not an error.
func (pk *UseCase) ActiveRecord(ctx context.Context, spotID int) (r *model.Record, err error) {
	err = pk.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		r, err = pk.recordsrp.Conn(c).GetOpenRecord(ctx, spotID)
		return err
	})
	if err != nil {
		r = nil
	}
	return
}
