// Package postgres implements the core repo storage contracts on top
// of a PostgreSQL DBMS server using the GORM framework. The Pool,
// Conn, and Tx types realize the repo.Pool, repo.Conn, and repo.Tx
// interfaces; entity repositories live in the sub-packages which are
// named like spotsrp.
package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/openlot/parkcore/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool wraps a *gorm.DB instance and its underlying connections pool.
// It is opened once at process start by the owning command and closed
// at shutdown; no global connection state exists elsewhere.
type Pool struct {
	*gorm.DB
}

// NewPool connects to the PostgreSQL server at the given url and
// verifies the connection before returning, so configuration mistakes
// surface at startup instead of at the first request.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	gdb = gdb.Session(&gorm.Session{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: false,
				Colorful:                  true,
				// Set to false in order to log with replaced vars
				ParameterizedQueries: true,
			}),
	})
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

type ConnHandler = repo.ConnHandler

// NoOpConnHandler acquires and releases a connection without running
// anything on it; NewPool uses it as a connectivity probe.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a single connection from the pool and runs f with it.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Close closes the underlying connections pool.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
