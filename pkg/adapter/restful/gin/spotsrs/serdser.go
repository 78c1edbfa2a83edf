// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package spotsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/serdser"
	"github.com/openlot/parkcore/pkg/core/model"
)

type rawSpotPath struct {
	SpotID int `uri:"sid" binding:"required,min=1"`
}

type rawSpotUpdateReq struct {
	Op    string `form:"op" binding:"required,oneof=park-in park-out"`
	Plate string `form:"plate" binding:"omitempty,min=2,max=16"`
}

type spotUpdateReq struct {
	SpotID int
	Op     string
	Plate  string
}

// parkOutResp carries the computed parking fee of a closed record,
// in cents.
type parkOutResp struct {
	Payment model.Money `json:"payment"`
}

func (rs *resource) DserUpdateSpotReq(c *gin.Context) *spotUpdateReq {
	path := &rawSpotPath{}
	if ok := serdser.BindUri(c, path); !ok {
		return nil
	}
	req := &rawSpotUpdateReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	var errs map[string][]string
	defer func() {
		if errs != nil {
			c.JSON(http.StatusBadRequest, errs)
		}
	}()
	switch req.Op {
	case "park-in":
		serdser.Assert(&errs, req.Plate != "", "plate", "The op=park-in requires plate.")
	case "park-out":
		serdser.Assert(&errs, req.Plate == "", "plate", "The op=park-out does not need plate.")
	default:
		panic("unknown op")
	}
	if errs == nil {
		return &spotUpdateReq{
			SpotID: path.SpotID,
			Op:     req.Op,
			Plate:  req.Plate,
		}
	}
	return nil
}
