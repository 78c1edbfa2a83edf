// Package rulesrp implements the fee rules repository over PostgreSQL.
package rulesrp

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

func (rules *Repo) Conn(c repo.Conn) repo.RulesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) GetLatestRule(ctx context.Context) (*model.FeeRule, error) {
	return GetLatestRule(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

func (rules *Repo) Tx(tx repo.Tx) repo.RulesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) GetLatestRule(ctx context.Context) (*model.FeeRule, error) {
	return GetLatestRule(ctx, tq.Tx)
}

func (tq txQueryer) InsertRule(ctx context.Context, r model.FeeRule) (*model.FeeRule, error) {
	return InsertRule(ctx, tq.Tx, r)
}
