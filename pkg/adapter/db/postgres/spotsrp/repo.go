// Package spotsrp implements the spots repository over PostgreSQL,
// including the exclusive-lock read which serializes park-in and
// park-out requests targeting one spot.
package spotsrp

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

func (spots *Repo) Conn(c repo.Conn) repo.SpotsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) GetSpot(ctx context.Context, spotID int) (*model.Spot, error) {
	return GetSpot(ctx, cq.Conn, spotID)
}

func (cq connQueryer) ListSpots(ctx context.Context) ([]model.Spot, error) {
	return ListSpots(ctx, cq.Conn)
}

func (cq connQueryer) ListWithOpenRecords(ctx context.Context) ([]model.SpotOccupancy, error) {
	return ListWithOpenRecords(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

func (spots *Repo) Tx(tx repo.Tx) repo.SpotsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) GetSpot(ctx context.Context, spotID int) (*model.Spot, error) {
	return GetSpot(ctx, tq.Tx, spotID)
}

func (tq txQueryer) ListSpots(ctx context.Context) ([]model.Spot, error) {
	return ListSpots(ctx, tq.Tx)
}

func (tq txQueryer) ListWithOpenRecords(ctx context.Context) ([]model.SpotOccupancy, error) {
	return ListWithOpenRecords(ctx, tq.Tx)
}

func (tq txQueryer) LockSpot(ctx context.Context, spotID int) (*model.Spot, error) {
	return LockSpot(ctx, tq.Tx, spotID)
}

func (tq txQueryer) SetStatus(ctx context.Context, spotID int, s model.SpotStatus) error {
	return SetStatus(ctx, tq.Tx, spotID, s)
}
