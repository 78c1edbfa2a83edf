// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package parkinguc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openlot/parkcore/internal/test/dbcontainer"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/recordsrp"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/rulesrp"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/schema"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/spotsrp"
	"github.com/openlot/parkcore/pkg/adapter/hash/scram"
	"github.com/openlot/parkcore/pkg/core/cerr"
	"github.com/openlot/parkcore/pkg/core/model"
	"github.com/openlot/parkcore/pkg/core/repo"
	"github.com/openlot/parkcore/pkg/core/usecase/parkinguc"
	"github.com/stretchr/testify/suite"
)

// BillingTestSuite drives the parking use case directly with an
// injected clock, so deterministic intervals can be billed against
// the seeded fee rule (base 10.00, 30 free minutes, cap 50.00).
type BillingTestSuite struct {
	suite.Suite

	Ctx     context.Context
	Pool    *postgres.Pool
	Parking *parkinguc.UseCase
	Clock   time.Time
}

func TestBillingTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &BillingTestSuite{Ctx: ctx, Pool: pool})
}

func (bts *BillingTestSuite) SetupSuite() {
	err := bts.Pool.Conn(
		bts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				return schema.New(tx, scram.SHA256()).InitDev(ctx)
			})
		},
	)
	bts.Require().NoError(err, "failed to settle database schema")

	bts.Clock = time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	bts.Parking, err = parkinguc.New(
		bts.Pool,
		spotsrp.New(), recordsrp.New(), rulesrp.New(),
		parkinguc.WithClock(func() time.Time { return bts.Clock }),
	)
	bts.Require().NoError(err, "failed to create parking use case")
}

// stay parks a vehicle in the given spot, advances the clock by the
// given duration, and parks it out again, returning the billed fee.
func (bts *BillingTestSuite) stay(
	spotID int, d time.Duration,
) (model.Money, error) {
	err := bts.Parking.ParkIn(bts.Ctx, spotID, "BILL-01")
	bts.Require().NoError(err, "park-in failed")
	bts.Clock = bts.Clock.Add(d)
	return bts.Parking.ParkOut(bts.Ctx, spotID)
}

func (bts *BillingTestSuite) TestWithinFreeMinutes() {
	payment, err := bts.stay(1, 20*time.Minute)
	bts.Require().NoError(err)
	bts.Equal(model.Money(0), payment)
}

func (bts *BillingTestSuite) TestOneStartedHour() {
	payment, err := bts.stay(2, 45*time.Minute)
	bts.Require().NoError(err)
	bts.Equal(model.Money(1000), payment)
}

func (bts *BillingTestSuite) TestSecondStartedHour() {
	payment, err := bts.stay(3, 95*time.Minute)
	bts.Require().NoError(err)
	bts.Equal(model.Money(2000), payment)
}

func (bts *BillingTestSuite) TestDailyCap() {
	payment, err := bts.stay(4, 72*time.Hour)
	bts.Require().NoError(err)
	bts.Equal(model.Money(5000), payment, "cap must bound the fee")
}

func (bts *BillingTestSuite) TestBackwardsClock() {
	err := bts.Parking.ParkIn(bts.Ctx, 5, "BILL-02")
	bts.Require().NoError(err)
	bts.Clock = bts.Clock.Add(-time.Hour)
	_, err = bts.Parking.ParkOut(bts.Ctx, 5)
	bts.Require().Error(err, "billing must refuse a negative interval")
	bts.True(
		errors.Is(err, model.ErrInvalidInterval),
		"unexpected error: %v", err,
	)
	var ce *cerr.Error
	if bts.True(errors.As(err, &ce)) {
		bts.Equal(422, ce.HTTPStatusCode)
	}

	// the open record must survive the refused park-out
	bts.Clock = bts.Clock.Add(90 * time.Minute)
	payment, err := bts.Parking.ParkOut(bts.Ctx, 5)
	bts.Require().NoError(err)
	bts.Equal(model.Money(0), payment)
}
