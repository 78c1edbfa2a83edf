// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/openlot/parkcore/internal/test/dbcontainer"
	tstschema "github.com/openlot/parkcore/internal/test/schema"
	"github.com/openlot/parkcore/pkg/adapter/config"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/spotsrp"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/usersrp"
	"github.com/openlot/parkcore/pkg/adapter/hash/scram"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/routes"
	"github.com/openlot/parkcore/pkg/core/cerr"
	"github.com/openlot/parkcore/pkg/core/model"
	"github.com/openlot/parkcore/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Pg    *sqltestutil.PostgresContainer
	Pool  *postgres.Pool
	Cfg   *config.Config
	Gin   *gin.Engine
	Token string
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	igts.Cfg = &config.Config{}
	igts.Cfg.Auth.Secret = "integration-test-secret"
	err := igts.Cfg.ValidateAndNormalize()
	igts.Require().NoError(err, "failed to normalize test configs")

	err = igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				s := igts.Cfg.Database.NewSchemaSettler(tx)
				return s.InitDev(ctx)
			})
		},
	)
	igts.Require().NoError(err, "failed to settle database schema")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Gin, igts.Pool, igts.Cfg)
	igts.Require().NoError(err, "failed to register Gin routes")

	igts.Token = igts.login("admin", "admin", 200)
}

// login posts the given credentials and returns the session token of
// a successful login, or the error detail otherwise.
func (igts *IntegrationGinTestSuite) login(
	username, pass string, expectedCode int,
) string {
	w := httptest.NewRecorder()
	body := fmt.Sprintf(
		`{"username":%q,"pass":%q}`, username, pass,
	)
	req, err := http.NewRequest(
		http.MethodPost,
		"/api/parkweb/v1/login",
		strings.NewReader(body),
	)
	igts.Require().NoError(err, "cannot create POST request")
	req.Header.Add("Content-Type", "application/json")
	igts.Gin.ServeHTTP(w, req)
	igts.Require().Equal(expectedCode, w.Code, "unexpected login code")

	res := &struct {
		Token  string
		Detail string
	}{}
	err = json.Unmarshal(w.Body.Bytes(), res)
	igts.Require().NoError(err, "login response is not json")
	if expectedCode == 200 {
		igts.Require().NotEmpty(res.Token, "missing session token")
		return res.Token
	}
	return res.Detail
}

func (igts *IntegrationGinTestSuite) send(
	method, path string, body io.Reader, res any,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, "/api/parkweb/v1/"+path, body)
	igts.Require().NoError(err, "cannot create %s request", method)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	req.Header.Add("Authorization", "Bearer "+igts.Token)
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		err = json.Unmarshal(w.Body.Bytes(), res)
		igts.NoError(err, "body is not json: %s", w.Body.String())
	}
	return w
}

func (igts *IntegrationGinTestSuite) listSpots() []model.SpotOccupancy {
	var view []model.SpotOccupancy
	w := igts.send(http.MethodGet, "spots", nil, &view)
	igts.Require().Equal(200, w.Code)
	return view
}

// requireConsistent asserts the registry/ledger invariant over the
// occupancy view: a spot is occupied exactly when it has an open
// record and that record points back at the same spot.
func (igts *IntegrationGinTestSuite) requireConsistent(
	view []model.SpotOccupancy,
) {
	for _, so := range view {
		if so.Spot.Status == model.SpotStatusOccupied {
			if igts.NotNil(so.Open, "occupied spot %d has no open record", so.Spot.ID) {
				igts.Equal(so.Spot.ID, so.Open.SpotID)
				igts.Nil(so.Open.ExitTime, "open record has an exit time")
			}
		} else {
			igts.Nil(so.Open, "free spot %d has an open record", so.Spot.ID)
		}
	}
}

func (igts *IntegrationGinTestSuite) TestSchemaAndSeed() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			v := tstschema.New(c)
			v.VerifySchema(ctx, igts.T())
			v.VerifyDevData(ctx, igts.T())
			return nil
		},
	)
	igts.NoError(err)
}

func (igts *IntegrationGinTestSuite) TestLoginRejectsBadCredentials() {
	detail := igts.login("admin", "wrong-pass", 401)
	igts.Equal("invalid username or password", detail)
	detail = igts.login("nobody", "admin", 401)
	igts.Equal("invalid username or password", detail)
}

func (igts *IntegrationGinTestSuite) TestGuardedRoutesRequireToken() {
	for _, path := range []string{"spots", "records", "rates"} {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(
			http.MethodGet, "/api/parkweb/v1/"+path, nil,
		)
		igts.Require().NoError(err)
		igts.Gin.ServeHTTP(w, req)
		igts.Equal(401, w.Code, "GET %s must require a token", path)

		w = httptest.NewRecorder()
		req.Header.Set("Authorization", "Bearer not-a-token")
		igts.Gin.ServeHTTP(w, req)
		igts.Equal(401, w.Code, "GET %s must reject bad tokens", path)
	}
}

func (igts *IntegrationGinTestSuite) TestListSpots() {
	view := igts.listSpots()
	igts.Len(view, 12, "expecting the dev two-floor lot")
	igts.requireConsistent(view)
}

func (igts *IntegrationGinTestSuite) TestSpotRegistryQueries() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			spots := spotsrp.New().Conn(c)
			all, err := spots.ListSpots(ctx)
			igts.Require().NoError(err)
			igts.Require().Len(all, 12)
			for i := 1; i < len(all); i++ {
				igts.Less(
					all[i-1].ID, all[i].ID,
					"spots must be listed by ascending id",
				)
			}

			s, err := spots.GetSpot(ctx, 1)
			igts.Require().NoError(err)
			igts.Equal("A-01", s.Number)
			igts.Equal(0, s.Floor)

			_, err = spots.GetSpot(ctx, 999)
			var ce *cerr.Error
			igts.Require().ErrorAs(
				err, &ce, "unknown spot must be a typed error",
			)
			igts.Equal(404, ce.HTTPStatusCode)
			return nil
		},
	)
	igts.NoError(err)
}

func (igts *IntegrationGinTestSuite) TestUnknownSpot() {
	res := &struct{ Detail string }{}
	w := igts.send(
		http.MethodPatch, "spots/999?op=park-in&plate=GG-777", nil, res,
	)
	igts.Equal(404, w.Code, "park-in must reject unknown spots")
	igts.NotEmpty(res.Detail)

	w = igts.send(http.MethodPatch, "spots/999?op=park-out", nil, nil)
	igts.Equal(404, w.Code, "park-out must reject unknown spots")
}

// TestAdminPasswordReseed replaces the admin password hash through the
// users repository, the same operation the provisioning commands seed
// admins with, and checks that logins follow the stored hash.
func (igts *IntegrationGinTestSuite) TestAdminPasswordReseed() {
	upsert := func(pass string) {
		hash, err := scram.SHA256().Hash(pass, "", 4096)
		igts.Require().NoError(err, "cannot hash %q", pass)
		err = igts.Pool.Conn(
			igts.Ctx, func(ctx context.Context, c repo.Conn) error {
				return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
					return usersrp.New().Tx(tx).UpsertUser(
						ctx, model.AdminUser{
							Username: "admin",
							PassHash: hash,
						},
					)
				})
			},
		)
		igts.Require().NoError(err, "cannot upsert the admin user")
	}

	upsert("rotated-pass")
	igts.login("admin", "rotated-pass", 200)
	igts.login("admin", "admin", 401)

	upsert("admin")
	igts.login("admin", "admin", 200)
}

func (igts *IntegrationGinTestSuite) TestParkInAndOut() {
	const spot = "1"
	rec := &model.Record{}
	w := igts.send(
		http.MethodPatch,
		"spots/"+spot+"?op=park-in&plate=AB-123", nil, rec,
	)
	igts.Require().Equal(200, w.Code, "park-in: %s", w.Body.String())
	igts.Equal("AB-123", rec.Plate)
	igts.Equal(1, rec.SpotID)
	igts.Nil(rec.ExitTime, "fresh record must be open")

	view := igts.listSpots()
	igts.requireConsistent(view)
	var so *model.SpotOccupancy
	for i := range view {
		if view[i].Spot.ID == 1 {
			so = &view[i]
		}
	}
	igts.Require().NotNil(so, "spot 1 is missing from the view")
	igts.Equal(model.SpotStatusOccupied, so.Spot.Status)

	res := &struct {
		Payment model.Money
	}{Payment: -1}
	w = igts.send(http.MethodPatch, "spots/"+spot+"?op=park-out", nil, res)
	igts.Require().Equal(200, w.Code, "park-out: %s", w.Body.String())
	igts.Equal(
		model.Money(0), res.Payment,
		"a stay within the free minutes must be free",
	)
	igts.requireConsistent(igts.listSpots())
}

func (igts *IntegrationGinTestSuite) TestParkInOccupiedSpot() {
	w := igts.send(
		http.MethodPatch, "spots/2?op=park-in&plate=CC-111", nil, nil,
	)
	igts.Require().Equal(200, w.Code)

	res := &struct{ Detail string }{}
	w = igts.send(
		http.MethodPatch, "spots/2?op=park-in&plate=DD-222", nil, res,
	)
	igts.Equal(409, w.Code, "parking twice must conflict")
	igts.Contains(res.Detail, "not free")

	// the loser must not have disturbed the original record
	rec, err := igts.activeRecord(2)
	igts.Require().NoError(err)
	if igts.NotNil(rec, "original record must stay open") {
		igts.Equal("CC-111", rec.Plate)
	}
	w = igts.send(http.MethodPatch, "spots/2?op=park-out", nil, nil)
	igts.Require().Equal(200, w.Code)
}

// activeRecord reads the open record of a spot directly from the
// database, bypassing the REST layer.
func (igts *IntegrationGinTestSuite) activeRecord(spotID int) (
	rec *model.Record, err error,
) {
	err = igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			rows, err := c.Query(ctx, `SELECT plate_num FROM
parking_records WHERE spot_id=$1 AND exit_time IS NULL`, spotID)
			if err != nil {
				return err
			}
			defer rows.Close()
			if !rows.Next() {
				return rows.Err()
			}
			rec = &model.Record{SpotID: spotID}
			return rows.Scan(&rec.Plate)
		},
	)
	return
}

func (igts *IntegrationGinTestSuite) TestDoubleParkOut() {
	w := igts.send(
		http.MethodPatch, "spots/3?op=park-in&plate=EE-333", nil, nil,
	)
	igts.Require().Equal(200, w.Code)
	w = igts.send(http.MethodPatch, "spots/3?op=park-out", nil, nil)
	igts.Require().Equal(200, w.Code)

	res := &struct{ Detail string }{}
	w = igts.send(http.MethodPatch, "spots/3?op=park-out", nil, res)
	igts.Equal(404, w.Code, "second park-out must find no open record")
	igts.Contains(res.Detail, "no open record")

	view := igts.listSpots()
	for _, so := range view {
		if so.Spot.ID == 3 {
			igts.Equal(model.SpotStatusFree, so.Spot.Status)
		}
	}
}

func (igts *IntegrationGinTestSuite) TestConcurrentParkIn() {
	const workers = 8
	codes := make([]int, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			req, err := http.NewRequest(
				http.MethodPatch,
				fmt.Sprintf(
					"/api/parkweb/v1/spots/4?op=park-in&plate=ZZ-%03d", i,
				),
				nil,
			)
			if err != nil {
				return
			}
			req.Header.Add("Authorization", "Bearer "+igts.Token)
			igts.Gin.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, code := range codes {
		switch code {
		case 200:
			won++
		case 409:
			lost++
		}
	}
	igts.Equal(1, won, "exactly one worker must win the spot")
	igts.Equal(workers-1, lost, "all losers must observe a conflict")
	igts.requireConsistent(igts.listSpots())
}

func (igts *IntegrationGinTestSuite) TestRecordsHistory() {
	w := igts.send(
		http.MethodPatch, "spots/5?op=park-in&plate=FF-555", nil, nil,
	)
	igts.Require().Equal(200, w.Code)
	w = igts.send(http.MethodPatch, "spots/5?op=park-out", nil, nil)
	igts.Require().Equal(200, w.Code)

	var records []model.Record
	w = igts.send(http.MethodGet, "records", nil, &records)
	igts.Require().Equal(200, w.Code)
	igts.Require().NotEmpty(records)
	for i := 1; i < len(records); i++ {
		igts.False(
			records[i-1].EntryTime.Before(records[i].EntryTime),
			"records must be sorted by entry time, most recent first",
		)
	}
	var closed *model.Record
	for i := range records {
		if records[i].SpotID == 5 && records[i].ExitTime != nil {
			closed = &records[i]
			break
		}
	}
	if igts.NotNil(closed, "closed record of spot 5 is missing") {
		igts.Equal("FF-555", closed.Plate)
		if igts.NotNil(closed.Payment, "closed record has no payment") {
			igts.Equal(model.Money(0), *closed.Payment)
		}
	}
}

func (igts *IntegrationGinTestSuite) TestRates() {
	rule := &model.FeeRule{}
	w := igts.send(http.MethodGet, "rates", nil, rule)
	igts.Require().Equal(200, w.Code)
	igts.Equal(model.Money(1000), rule.BasePrice, "dev seeded base price")
	igts.Equal(30, rule.FreeMinutes)

	res := &model.FeeRule{}
	w = igts.send(
		http.MethodPut, "rates",
		strings.NewReader(
			`{"base_price":1500,"free_minutes":10,"daily_cap":9000}`,
		),
		res,
	)
	igts.Require().Equal(200, w.Code, "put rates: %s", w.Body.String())
	igts.Greater(res.ID, rule.ID, "new rule must supersede the old one")
	igts.Equal(model.Money(1500), res.BasePrice)

	active := &model.FeeRule{}
	w = igts.send(http.MethodGet, "rates", nil, active)
	igts.Require().Equal(200, w.Code)
	igts.Equal(res.ID, active.ID, "latest rule must be the active one")
}

func (igts *IntegrationGinTestSuite) TestBadRequest() {
	for _, tc := range []struct {
		name   string
		method string
		path   string
		body   io.Reader
	}{
		{
			name:   "no op",
			method: http.MethodPatch,
			path:   "spots/6",
		},
		{
			name:   "invalid op",
			method: http.MethodPatch,
			path:   "spots/6?op=reserve",
		},
		{
			name:   "park-in without plate",
			method: http.MethodPatch,
			path:   "spots/6?op=park-in",
		},
		{
			name:   "park-out with plate",
			method: http.MethodPatch,
			path:   "spots/6?op=park-out&plate=AA-000",
		},
		{
			name:   "non-numeric spot id",
			method: http.MethodPatch,
			path:   "spots/lobby?op=park-in&plate=AA-000",
		},
		{
			name:   "zero base price rule",
			method: http.MethodPut,
			path:   "rates",
			body:   strings.NewReader(`{"base_price":0}`),
		},
	} {
		igts.Run(tc.name, func() {
			w := igts.send(tc.method, tc.path, tc.body, nil)
			igts.Equal(400, w.Code, "body: %s", w.Body.String())
		})
	}
}
