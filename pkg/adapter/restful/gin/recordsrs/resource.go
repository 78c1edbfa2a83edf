// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package recordsrs realizes the parking records resource, exposing
// the audit history of the parking ledger as a read-only REST API.
package recordsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/serdser"
	"github.com/openlot/parkcore/pkg/core/usecase/parkinguc"
)

type resource struct {
	parking *parkinguc.UseCase
}

// Register instantiates a resource adapting the parking use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/parkweb/v1/records
//     in order to list all parking records, most recent entry first.
func Register(r *gin.RouterGroup, parking *parkinguc.UseCase) {
	rs := &resource{parking: parking}
	r.GET("records", rs.ListRecords)
}

func (rs *resource) ListRecords(c *gin.Context) {
	records, err := rs.parking.ListRecords(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
