// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import (
	"errors"
	"fmt"
	"log/slog"
)

// SpotStatus specifies the occupancy status enum of a parking spot.
// Although this enum is numeric, it is (de)serialized as a string for
// readability in the adapter layer and in the database, matching the
// FREE/OCCUPIED/RESERVED vocabulary of the spots table.
type SpotStatus int

// Valid values for the SpotStatus enum.
const (
	SpotStatusInvalid SpotStatus = iota // zero value is invalid

	SpotStatusFree     // spot has no parked vehicle
	SpotStatusOccupied // spot holds a vehicle with an open record
	SpotStatusReserved // reserved for a future reservation workflow
)

// ErrUnknownSpotStatus indicates that a given string may not be parsed
// as a valid/known spot status. This error encodes a description err
// string and does not communicate the invalid status string itself
// because the caller of Parse already knows about it. The caller
// should wrap the obtained error and add the function name and
// arguments (or alternative information which makes the error complete
// in its new context), so it can be returned.
var ErrUnknownSpotStatus = errors.New("unknown spot status")

// SpotStatusError indicates an invalid spot status. This error
// contains the invalid status as an integer, so functions which find
// out about an invalid status value during their execution (and not by
// their arguments) can report it completely.
type SpotStatusError int

// Error implements the error interface, returning a string
// representation of the SpotStatusError.
func (e SpotStatusError) Error() string {
	return fmt.Sprintf("invalid spot status: %d", e)
}

// Validate returns nil if SpotStatus value is valid. For invalid
// values, an instance of the SpotStatusError will be returned.
// The SpotStatusReserved value is valid for parsing and display
// purposes although the allocation engine never produces it.
func (s SpotStatus) Validate() error {
	switch s {
	case SpotStatusFree, SpotStatusOccupied, SpotStatusReserved:
		return nil
	default:
		return SpotStatusError(s)
	}
}

// String converts the SpotStatus enum to its string form as it is
// stored in the database and serialized for web clients.
// Invalid status causes a panic.
func (s SpotStatus) String() string {
	switch s {
	case SpotStatusFree:
		return "FREE"
	case SpotStatusOccupied:
		return "OCCUPIED"
	case SpotStatusReserved:
		return "RESERVED"
	default:
		panic(SpotStatusError(s))
	}
}

// ParseSpotStatus parses the given string and returns a SpotStatus,
// helping to deserialize it when reading a database row or a REST API
// request. For invalid strings, SpotStatusInvalid and
// ErrUnknownSpotStatus will be returned.
func ParseSpotStatus(s string) (SpotStatus, error) {
	switch s {
	case "FREE":
		return SpotStatusFree, nil
	case "OCCUPIED":
		return SpotStatusOccupied, nil
	case "RESERVED":
		return SpotStatusReserved, nil
	default:
		return SpotStatusInvalid, ErrUnknownSpotStatus
	}
}

// LogValue implements slog.LogValuer. Invalid values are logged with
// their numeric form instead of panicking like String does.
func (s SpotStatus) LogValue() slog.Value {
	if err := s.Validate(); err != nil {
		return slog.StringValue(err.Error())
	}
	return slog.StringValue(s.String())
}

// MarshalText implements encoding.TextMarshaler, so a SpotStatus can
// be serialized in JSON responses as its string form.
func (s SpotStatus) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the
// same strings which are produced by the String method.
func (s *SpotStatus) UnmarshalText(data []byte) error {
	ss, err := ParseSpotStatus(string(data))
	if err != nil {
		return err
	}
	*s = ss
	return nil
}

// Spot models a single physical parking space. Spots are provisioned
// when the database schema is initialized and are never deleted during
// normal operation. Only the parking use case may change their status
// and it must do so in the same transaction which opens or closes the
// corresponding parking record.
type Spot struct {
	ID     int        // unique spot identifier
	Number string     // unique display number of the spot
	Status SpotStatus // current occupancy status
	Floor  int        // floor/zone attribute, zero if unused
}

// SpotOccupancy pairs a spot with its open parking record, if any.
// The Open field is nil exactly when the spot status is not occupied;
// both values are read in a single consistent query, so a dashboard
// never observes an occupied spot without its record or vice versa.
type SpotOccupancy struct {
	Spot Spot    // the spot itself
	Open *Record // open record of the parked vehicle, or nil
}
