// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo exports the storage contracts which the core layer
// consumes: a connections pool, connections, transactions, and one
// repository interface per entity. The allocation engine only relies
// on these interfaces; concrete PostgreSQL implementations live in the
// adapter layer.
package repo

// Tx represents a database transaction.
// It is unsafe to be used concurrently. A transaction may be used
// in order to execute one or more SQL statements one at a time.
// For statement execution methods, see the Queryer interface.
// All statements which are in a single transaction observe the
// ACID properties. A READ-COMMITTED transaction with support for
// exclusive row locks is expected from a PostgreSQL DBMS server,
// which is the isolation level that the park-in/park-out locking
// discipline is designed against. For details, read
// https://www.postgresql.org/docs/current/transaction-iso.html#XACT-READ-COMMITTED
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
