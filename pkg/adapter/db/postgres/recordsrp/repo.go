// Package recordsrp implements the parking records ledger over
// PostgreSQL. Records are appended on park-in and closed on park-out;
// nothing here updates a closed record or deletes anything.
package recordsrp

import (
	"context"
	"time"

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

func (records *Repo) Conn(c repo.Conn) repo.RecordsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) GetOpenRecord(ctx context.Context, spotID int) (*model.Record, error) {
	return GetOpenRecord(ctx, cq.Conn, spotID)
}

func (cq connQueryer) ListRecords(ctx context.Context) ([]model.Record, error) {
	return ListRecords(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

func (records *Repo) Tx(tx repo.Tx) repo.RecordsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) GetOpenRecord(ctx context.Context, spotID int) (*model.Record, error) {
	return GetOpenRecord(ctx, tq.Tx, spotID)
}

func (tq txQueryer) ListRecords(ctx context.Context) ([]model.Record, error) {
	return ListRecords(ctx, tq.Tx)
}

func (tq txQueryer) OpenRecord(
	ctx context.Context, spotID int, plate string, entry time.Time,
) (*model.Record, error) {
	return OpenRecord(ctx, tq.Tx, spotID, plate, entry)
}

func (tq txQueryer) CloseRecord(
	ctx context.Context, spotID int, exit time.Time, payment model.Money,
) (*model.Record, error) {
	return CloseRecord(ctx, tq.Tx, spotID, exit, payment)
}
