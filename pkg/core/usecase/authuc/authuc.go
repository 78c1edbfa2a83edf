// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authuc contains the authentication use case which checks a
// dashboard operator's credentials against the admin users store and
// issues a signed session token. There is no hard parking logic here;
// the package only exists so the presentation layer never touches the
// users table or the password hashing mechanism directly.
package authuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openlot/parkcore/pkg/core/cerr"
	"github.com/openlot/parkcore/pkg/core/log"
	"github.com/openlot/parkcore/pkg/core/repo"
	"github.com/openlot/parkcore/pkg/core/scram"
)

// ErrBadCredentials reports an unknown username or a wrong password.
// Both cases map to the same error, so login responses do not disclose
// which usernames exist.
var ErrBadCredentials = errors.New("invalid username or password")

// UseCase represents the authentication use case. It holds a database
// connection pool, the admin users repository, the SCRAM password
// verifier, and the token signing configuration.
type UseCase struct {
	pool     repo.Pool
	usersrp  repo.Users
	verifier scram.Verifier

	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// New instantiates an authentication use case with the given signing
// secret and token lifetime.
func New(
	p repo.Pool, u repo.Users, v scram.Verifier,
	secret []byte, tokenTTL time.Duration,
	opts ...Option,
) (*UseCase, error) {
	switch {
	case len(secret) == 0:
		return nil, errors.New("empty token signing secret")
	case tokenTTL <= 0:
		return nil, fmt.Errorf("non-positive token TTL: %v", tokenTTL)
	}
	uc := &UseCase{
		pool: p, usersrp: u, verifier: v,
		secret: secret, tokenTTL: tokenTTL,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Login use case verifies the presented credentials and returns a
// signed HS256 token which authorizes the dashboard session. Unknown
// usernames and wrong passwords both fail with an authentication
// error wrapping ErrBadCredentials.
func (au *UseCase) Login(ctx context.Context, username, pass string) (token string, err error) {
	err = au.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		u, err := au.usersrp.Conn(c).GetUserByUsername(ctx, username)
		if err != nil {
			var ce *cerr.Error
			if errors.As(err, &ce) {
				return cerr.Authentication(ErrBadCredentials)
			}
			return fmt.Errorf("querying user %q: %w", username, err)
		}
		ok, err := au.verifier.Verify(pass, u.PassHash)
		if err != nil {
			return fmt.Errorf("verifying password: %w", err)
		}
		if !ok {
			return cerr.Authentication(ErrBadCredentials)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	now := au.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(au.tokenTTL)),
	})
	token, err = t.SignedString(au.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	log.Info(ctx, "operator logged in", slog.String("user", username))
	return token, nil
}

// Authenticate parses and validates a session token, returning the
// username it was issued for. Expired or tampered tokens fail with an
// authentication error.
func (au *UseCase) Authenticate(tokenStr string) (username string, err error) {
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(
		tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", t.Header["alg"],
				)
			}
			return au.secret, nil
		},
		jwt.WithTimeFunc(au.now),
	)
	if err != nil {
		return "", cerr.Authentication(fmt.Errorf("parsing token: %w", err))
	}
	return claims.Subject, nil
}
