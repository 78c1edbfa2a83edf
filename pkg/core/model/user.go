// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// AdminUser models a dashboard operator account. The stored password
// hash follows the standard SCRAM hash string format, so plaintext
// passwords never reach the database. Credential verification is the
// only hard requirement here; account management stays out of the
// allocation engine.
type AdminUser struct {
	ID       int    // unique user identifier
	Username string // unique login name
	PassHash string // SCRAM-SHA-256 hash string of the password
}
