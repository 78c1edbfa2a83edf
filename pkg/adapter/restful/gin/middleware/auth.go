// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package middleware contains the gin middlewares which guard the
// resource packages, currently only the session token authentication.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin/serdser"
	"github.com/openlot/parkcore/pkg/core/usecase/authuc"
)

// UsernameKey is the context key which holds the authenticated
// username after a successful Auth middleware pass.
const UsernameKey = "username"

// Auth returns a middleware which requires a bearer session token,
// as issued by the authentication use case Login operation, in the
// Authorization header. Requests with a missing or invalid token are
// aborted with a 401 response. The authenticated username is stored
// in the request context under the UsernameKey key.
func Auth(auth *authuc.UseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(h, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "missing bearer token",
			})
			return
		}
		username, err := auth.Authenticate(token)
		if err != nil {
			serdser.SerErr(c, err)
			c.Abort()
			return
		}
		c.Set(UsernameKey, username)
		c.Next()
	}
}
