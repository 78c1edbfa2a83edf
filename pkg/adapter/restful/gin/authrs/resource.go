// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authrs realizes the authentication resource, allowing the
// login REST API to be accepted and delegated to the authentication
// use case.
package authrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/serdser"
	"github.com/openlot/parkcore/pkg/core/usecase/authuc"
)

type resource struct {
	auth *authuc.UseCase
}

// Register instantiates a resource adapting the authentication use
// case instance with the relevant REST APIs including:
//  1. POST request to /api/parkweb/v1/login
//     in order to authenticate an operator and obtain a session token.
func Register(r *gin.RouterGroup, auth *authuc.UseCase) {
	rs := &resource{auth: auth}
	r.POST("login", rs.Login)
}

func (rs *resource) Login(c *gin.Context) {
	req := rs.DserLoginReq(c)
	if req == nil {
		return
	}
	token, err := rs.auth.Login(c, req.Username, req.Pass)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResp{Token: token})
}
