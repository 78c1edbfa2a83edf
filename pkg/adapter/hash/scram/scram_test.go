// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/openlot/parkcore/pkg/adapter/hash/scram"
)

type MechanismTestSuite struct {
	suite.Suite

	m *scram.Mechanism
}

func TestMechanismTestSuite(t *testing.T) {
	suite.Run(t, &MechanismTestSuite{m: scram.SHA256()})
}

func (s *MechanismTestSuite) TestHashVerifyRoundTrip() {
	h, err := s.m.Hash("s3cr3t", "", 4096)
	s.Require().NoError(err, "hashing password")
	s.Require().Contains(h, "SCRAM-SHA-256$4096:")

	ok, err := s.m.Verify("s3cr3t", h)
	s.Require().NoError(err, "verifying matching password")
	s.True(ok, "matching password must verify")

	ok, err = s.m.Verify("s3cr3t!", h)
	s.Require().NoError(err, "verifying mismatching password")
	s.False(ok, "mismatching password must not verify")
}

func (s *MechanismTestSuite) TestHashIsDeterministicWithFixedSalt() {
	const salt = "c2FsdC1ieXRlcy1oZXJlLi4u"
	h1, err := s.m.Hash("pass", salt, 4096)
	s.Require().NoError(err)
	h2, err := s.m.Hash("pass", salt, 4096)
	s.Require().NoError(err)
	s.Equal(h1, h2, "fixed salt must produce a fixed hash")
}

func (s *MechanismTestSuite) TestHashRejectsWeakParams() {
	_, err := s.m.Hash("", "", 4096)
	s.Error(err, "empty password must be rejected")
	_, err = s.m.Hash("pass", "", 4095)
	s.Error(err, "iterations below 4096 must be rejected")
}

func (s *MechanismTestSuite) TestVerifyReportsMalformedHash() {
	for _, h := range []string{
		"",
		"SCRAM-SHA-1$4096:c2FsdA==$a2V5:a2V5",
		"SCRAM-SHA-256$4096:c2FsdA==$bm8tc2VydmVyLWtleQ==",
		"SCRAM-SHA-256$many:c2FsdA==$a2V5:a2V5",
		"SCRAM-SHA-256$4096:c2FsdA==$!!!:a2V5",
	} {
		_, err := s.m.Verify("pass", h)
		s.Error(err, "hash %q must be reported as malformed", h)
	}
}
