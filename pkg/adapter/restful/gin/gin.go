// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic/gin package, hiding it behind a
// facade, so the rest of the project may depend on this package and
// ignore the exact serving framework. Middlewares are replaced by
// slog-based alternatives, keeping all logs on the same structured
// logging pipeline.
package gin

import (
	"log/slog"

	ginslogger "github.com/FabienMht/ginslog/logger"
	ginsrecovery "github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
)

// HandlerFunc is an alias for the gin.HandlerFunc type.
type HandlerFunc = gin.HandlerFunc

// Engine is an alias for the gin.Engine type.
type Engine = gin.Engine

// New instantiates an Engine with the given middlewares.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which logs served requests using the
// default slog logger.
func Logger() HandlerFunc {
	return ginslogger.New(slog.Default())
}

// Recovery returns a middleware which recovers panicking handlers,
// logging the panic value using the default slog logger and replying
// with a 500 status code.
func Recovery() HandlerFunc {
	return ginsrecovery.New(slog.Default())
}
