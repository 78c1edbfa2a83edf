// Package usersrp implements the admin users repository over
// PostgreSQL.
package usersrp

import (
	"context"

	"github.com/openlot/parkcore/pkg/adapter/db/postgres"
	"github.com/openlot/parkcore/pkg/core/model"
	"github.com/openlot/parkcore/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) GetUserByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	return GetUserByUsername(ctx, cq.Conn, username)
}

type txQueryer struct {
	*postgres.Tx
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) GetUserByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	return GetUserByUsername(ctx, tq.Tx, username)
}

func (tq txQueryer) UpsertUser(ctx context.Context, u model.AdminUser) error {
	return UpsertUser(ctx, tq.Tx, u)
}
