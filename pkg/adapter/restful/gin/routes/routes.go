// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/openlot/parkcore/pkg/adapter/config"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/recordsrp"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/rulesrp"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/spotsrp"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/usersrp"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/authrs"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/middleware"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/ratesrs"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/recordsrs"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/spotsrs"
	"github.com/openlot/parkcore/pkg/core/repo"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like parkinguc and each repository package is named like spotsrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like spotsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// All routes but the login one are guarded by the session token
// middleware. Possible errors will be returned after possible
// wrapping. Actual instantiation of use case objects are delegated
// to the c Config instance.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	spotsRepo := spotsrp.New()
	recordsRepo := recordsrp.New()
	rulesRepo := rulesrp.New()
	usersRepo := usersrp.New()

	parkingUseCase, err := c.NewParkingUseCase(
		p, spotsRepo, recordsRepo, rulesRepo,
	)
	if err != nil {
		return fmt.Errorf("creating parking use case: %w", err)
	}
	ratesUseCase := c.NewRatesUseCase(p, rulesRepo)
	authUseCase, err := c.NewAuthUseCase(p, usersRepo)
	if err != nil {
		return fmt.Errorf("creating auth use case: %w", err)
	}

	r := e.Group("/api/parkweb/v1")
	authrs.Register(r, authUseCase)

	guarded := r.Group("", middleware.Auth(authUseCase))
	spotsrs.Register(guarded, parkingUseCase)
	recordsrs.Register(guarded, parkingUseCase)
	ratesrs.Register(guarded, ratesUseCase)
	return nil
}
