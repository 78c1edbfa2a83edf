// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/openlot/parkcore/pkg/core/model"
)

// UsersQueryer provides the admin user queries.
type UsersQueryer interface {
	// GetUserByUsername loads one admin user by its unique login name,
	// returning a NotFound wrapped error if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*model.AdminUser, error)
}

// UsersConnQueryer is the users repository view over a connection.
type UsersConnQueryer interface {
	UsersQueryer
}

// UsersTxQueryer is the users repository view over a transaction.
type UsersTxQueryer interface {
	UsersQueryer

	// UpsertUser creates the given user or replaces the password hash
	// of an existing user with the same username. It is used by the
	// database provisioning commands.
	UpsertUser(ctx context.Context, u model.AdminUser) error
}

// Users binds the admin users repository queries to a connection or a
// transaction, as obtained from the Pool.
type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
