// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package spotsrs realizes the parking spots resource, allowing the
// occupancy view and the spot manipulation REST APIs to be accepted
// and delegated to the parking use cases respectively.
package spotsrs

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
//  1. GET request to /api/parkweb/v1/spots
//     in order to list all spots with their open records, if any.
//  2. PATCH request to /api/parkweb/v1/spots/:sid
//     in order to park a vehicle in a spot or take it out.
func Register(r *gin.RouterGroup, parking *parkinguc.UseCase) {
	rs := &resource{parking: parking}
	r.GET("spots", rs.ListSpots)
	r.PATCH("spots/:sid", rs.UpdateSpot)
}

func (rs *resource) ListSpots(c *gin.Context) {
	view, err := rs.parking.ListSpots(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (rs *resource) UpdateSpot(c *gin.Context) {
	req := rs.DserUpdateSpotReq(c)
	if req == nil {
		return
	}
	switch req.Op {
	case "park-in":
		if err := rs.parking.ParkIn(c, req.SpotID, req.Plate); err != nil {
			serdser.SerErr(c, err)
			return
		}
		r, err := rs.parking.ActiveRecord(c, req.SpotID)
		if err != nil {
			serdser.SerErr(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	case "park-out":
		payment, err := rs.parking.ParkOut(c, req.SpotID)
		if err != nil {
			serdser.SerErr(c, err)
			return
		}
		c.JSON(http.StatusOK, parkOutResp{Payment: payment})
	default:
		panic("unexpected op:" + req.Op)
	}
}
