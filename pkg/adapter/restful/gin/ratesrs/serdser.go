// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ratesrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/serdser"
	"github.com/openlot/parkcore/pkg/core/model"
)

// rawRuleUpdateReq carries the monetary amounts in cents, matching
// the model.Money unit.
type rawRuleUpdateReq struct {
	BasePrice   int64 `json:"base_price" binding:"required,min=1"`
	FreeMinutes int   `json:"free_minutes" binding:"min=0"`
	DailyCap    int64 `json:"daily_cap" binding:"min=0"`
}

func (rs *resource) DserUpdateRuleReq(
	c *gin.Context,
) (model.FeeRule, bool) {
	req := &rawRuleUpdateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return model.FeeRule{}, false
	}
	return model.FeeRule{
		BasePrice:   model.Money(req.BasePrice),
		FreeMinutes: req.FreeMinutes,
		DailyCap:    model.Money(req.DailyCap),
	}, true
}
