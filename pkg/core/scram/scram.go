// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interfaces for Salted Challenge
// Response Authentication Mechanism (SCRAM) hashing. For the
// corresponding implementation, check the adapter layer.
//
// Admin user passwords are stored as SCRAM hash strings, so plaintext
// passwords neither reach the database nor its logs. The login use
// case only needs two operations from the mechanism: producing a hash
// string for provisioning an account and verifying a presented
// password against a stored hash string. A full client/server SCRAM
// conversation (as defined by RFC 5802 and RFC 7677) is not required
// because the dashboard presents the password itself over the API and
// the server-side verification recomputes the stored key from the
// salt and iteration count which are embedded in the hash string.
// If other hashing schemes were desired some day, a more abstract
// interface should be defined here and SCRAM details would stay in
// the adapter layer.
package scram

// Hasher represents the expectations from a SCRAM hasher
// implementation which for a specific underlying hash function
// computes a storable hash string for a password.
type Hasher interface {
	// Hash computes a hash string following the standard scram hash
	// format, so it can be stored and used later for authentication.
	//
	// The pass argument must be non-empty. The salt must contain a
	// base64 encoding of the desired salt bytes, otherwise, if an
	// empty value is passed, a random salt will be generated and used
	// instead. The iters must be at least equal to 4096; RFC 7677
	// recommends 15000 or more.
	//
	// In absence of errors, a hashed string will be returned which
	// conforms to the following format.
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)
}

// Verifier represents the expectations from a SCRAM verification
// implementation which checks a presented password against a stored
// hash string.
type Verifier interface {
	// Verify recomputes the stored key for the presented pass using
	// the salt and iteration count embedded in the stored hash string
	// and compares them in constant time. It returns true if and only
	// if the password matches. Malformed hash strings are reported as
	// errors, not as a mismatch, because they indicate a provisioning
	// bug rather than a wrong password.
	Verify(pass, hash string) (bool, error)
}
