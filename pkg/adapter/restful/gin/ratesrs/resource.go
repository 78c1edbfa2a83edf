// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ratesrs realizes the fee rules resource, allowing the rates
// fetching and replacement REST APIs to be accepted and delegated to
// the rates use case properly.
package ratesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/serdser"
	"github.com/openlot/parkcore/pkg/core/usecase/ratesuc"
)

type resource struct {
	rates *ratesuc.UseCase
}

// Register instantiates a resource adapting the rates use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/parkweb/v1/rates
//     in order to fetch the currently active fee rule.
//  2. PUT request to /api/parkweb/v1/rates
//     in order to install a new fee rule as the active one.
func Register(r *gin.RouterGroup, rates *ratesuc.UseCase) {
	rs := &resource{rates: rates}
	r.GET("rates", rs.FetchRule)
	r.PUT("rates", rs.UpdateRule)
}

func (rs *resource) FetchRule(c *gin.Context) {
	r, err := rs.rates.ActiveRule(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (rs *resource) UpdateRule(c *gin.Context) {
	rule, ok := rs.DserUpdateRuleReq(c)
	if !ok {
		return
	}
	r, err := rs.rates.PutRule(c, rule)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
