// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the parkweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations should be passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so they may be accumulated and validated in another
// (possibly non-exported) config struct (or directly in the relevant
// end-component such as a UseCase instance).
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openlot/parkcore/pkg/adapter/config/settings"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/schema"
	"github.com/openlot/parkcore/pkg/adapter/hash/scram"
	"github.com/openlot/parkcore/pkg/adapter/restful/gin"
	"github.com/openlot/parkcore/pkg/core/repo"
	scrami "github.com/openlot/parkcore/pkg/core/scram"
	"github.com/openlot/parkcore/pkg/core/usecase/authuc"
	"github.com/openlot/parkcore/pkg/core/usecase/parkinguc"
	"github.com/openlot/parkcore/pkg/core/usecase/ratesuc"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration file format can be kept intact while
// other layers change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Auth     Auth     // Admin sessions configuration settings
}

// Load function loads, validates, and normalizes the configuration
// file at the given path and returns its settings as an instance of
// the Config struct. Extra items in the file will be ignored and
// missing items will take their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Auth.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating auth settings: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf(
			"%#v.ConnectionPool: %w", c.Database, err,
		)
	}
	return p, nil
}

// NewParkingUseCase instantiates a new parking use case based on the
// settings in the `c` struct.
func (c *Config) NewParkingUseCase(
	p repo.Pool, s repo.Spots, r repo.Records, f repo.Rules,
) (*parkinguc.UseCase, error) {
	return parkinguc.New(p, s, r, f)
}

// NewRatesUseCase instantiates a new rates use case.
func (c *Config) NewRatesUseCase(
	p repo.Pool, f repo.Rules,
) *ratesuc.UseCase {
	return ratesuc.New(p, f)
}

// NewAuthUseCase instantiates a new authentication use case based on
// the settings in the `c` struct. The passwords verifier mechanism is
// taken from the database settings because the seeded password hashes
// follow the `c.Database.AuthMethod` format.
func (c *Config) NewAuthUseCase(
	p repo.Pool, u repo.Users,
) (*authuc.UseCase, error) {
	return c.Auth.NewUseCase(p, u, c.Database.Verifier())
}

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like parkcore
	User    string // database connection role name
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// AuthMethod specifies the admin passwords hashing method name.
	// This method indicates how passwords are hashed by the schema
	// settler before being stored in the database, and so how the
	// login passwords must be verified.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	AuthMethod string `yaml:"auth-method,omitempty"`

	// mechanism is instantiated based on the AuthMethod and is used
	// by the NewSchemaSettler and Verifier methods.
	mechanism *scram.Mechanism `yaml:"-"`
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It can also modify settings in
// order to normalize them or replace some zero values with their
// expected default values (if any). So, it takes a pointer receiver
// instead of a non-reference receiver (in contrast to other methods).
func (d *Database) ValidateAndNormalize() error {
	switch am := d.AuthMethod; am {
	case "scram-sha-1":
		d.mechanism = scram.SHA1()
	case "":
		d.AuthMethod = "scram-sha-256"
		fallthrough
	case "scram-sha-256":
		d.mechanism = scram.SHA256()
	default:
		return fmt.Errorf(
			"unsupported passwords hashing method: %q", am,
		)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
// The .pgpass file in the d.PassDir folder is checked which should
// conform with the pgpass format with lines like this:
//
//	host:port:dbname:user:password
//
// If a database connection could be established, created pool and nil
// error will be returned.
func (d Database) ConnectionPool(ctx context.Context) (
	repo.Pool, error,
) {
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the host,
// port, user name, database name, and password value. These items are
// directly taken from the `d` settings, but the password value which
// is read from the given `path` file. Returned URL has the postgresql
// scheme. The `path` file may contain empty or `#`-commented lines in
// addition to the password specifying lines which should conform with
// the pgpass files format with lines like this:
//
//	host:port:dbname:user:password
//
// If the `path` file could be read and a password for the configured
// `d.User` could be identified, a URL and a nil error will be
// returned. Otherwise, returned string will be empty and error will
// describe the wrapped error condition.
func (d Database) ConnectionURL(path string) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	prfx := fmt.Sprintf(
		"%s:%d:%s:%s:", d.Host, d.Port, d.Name, d.User,
	)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ConnectionInfo returns the host, port, and database name of the
// connection information which are kept in this Database instance.
func (d Database) ConnectionInfo() (dbName, host string, port int) {
	return d.Name, d.Host, d.Port
}

// NewSchemaSettler instantiates a schema settler wrapping the given
// transaction, so the database tables may be created and initialized
// with the development or production suitable data.
//
// The expected passwords hashing format must be configured in the
// `d.AuthMethod` field. Also, ValidateAndNormalize method is expected
// to be called beforehand, so it can create a hasher instance based
// on it. That hasher will be included in the returned settler, so it
// may hash the seeded admin passwords properly.
func (d Database) NewSchemaSettler(tx repo.Tx) *schema.Settler {
	return schema.New(tx, d.mechanism)
}

// Verifier returns the passwords verification mechanism matching the
// `d.AuthMethod` hashing method. The ValidateAndNormalize method is
// expected to be called beforehand.
func (d Database) Verifier() scrami.Verifier {
	return d.mechanism
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized, replacing missing items with their
// default values during the normalization.
type Gin struct {
	Logger   *bool // Whether to register the logging middleware
	Recovery *bool // Whether to register the recovery middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Auth contains the admin authentication configuration settings.
// The token TTL fields are defined as pointers, so it is possible to
// detect if they are or are not initialized. A missing TTL takes the
// DefaultTokenTTL value during the normalization.
type Auth struct {
	// Secret is the HMAC signing secret of the session tokens.
	// It must be non-empty. All tokens are invalidated whenever this
	// secret is changed.
	Secret string

	// TokenTTL indicates how long an issued session token stays
	// acceptable.
	TokenTTL *settings.Duration `yaml:"token-ttl"`
	// MinTokenTTL is the inclusive minimum acceptable value for the
	// TokenTTL setting.
	// A missing value indicates that there is no lower bound.
	MinTokenTTL *settings.Duration `yaml:"token-ttl-minimum"`
	// MaxTokenTTL is the inclusive maximum acceptable value for the
	// TokenTTL setting.
	// A missing value indicates that there is no upper bound.
	MaxTokenTTL *settings.Duration `yaml:"token-ttl-maximum"`
}

// DefaultTokenTTL is used for the Auth.TokenTTL setting when the
// configuration file leaves it uninitialized.
const DefaultTokenTTL = 24 * time.Hour

// ValidateAndNormalize validates the auth settings, replacing a
// missing TokenTTL with the DefaultTokenTTL value and adjusting an
// out-of-range TokenTTL by its nearest boundary value.
func (a *Auth) ValidateAndNormalize() error {
	if a.Secret == "" {
		return fmt.Errorf("auth secret must be non-empty")
	}
	if a.TokenTTL == nil {
		d := settings.Duration(DefaultTokenTTL)
		a.TokenTTL = &d
	}
	if err := settings.VerifyRange(
		&a.TokenTTL, a.MinTokenTTL, a.MaxTokenTTL,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(token-ttl=%v, minb=%v, maxb=%v): %w",
			err.Value, a.MinTokenTTL, a.MaxTokenTTL, err,
		)
	}
	return nil
}

// NewUseCase instantiates a new authentication use case based on the
// settings in the `a` struct.
func (a Auth) NewUseCase(
	p repo.Pool, u repo.Users, v scrami.Verifier,
) (*authuc.UseCase, error) {
	return authuc.New(
		p, u, v, []byte(a.Secret), time.Duration(*a.TokenTTL),
	)
}
