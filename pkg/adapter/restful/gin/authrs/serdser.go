// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/serdser"
)

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Pass     string `json:"pass" binding:"required"`
}

type loginResp struct {
	Token string `json:"token"`
}

func (rs *resource) DserLoginReq(c *gin.Context) *loginReq {
	req := &loginReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}
