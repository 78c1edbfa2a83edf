package spotsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres"
	"github.com/openlot/parkcore/pkg/core/cerr"
	"github.com/openlot/parkcore/pkg/core/model"
	"gorm.io/gorm/clause"
)

// gSpot maps the parking_spots table. The status column keeps the
// FREE/OCCUPIED/RESERVED strings of the model.SpotStatus enum.
type gSpot struct {
	SID    int    `gorm:"primaryKey;column:spot_id"`
	Number string `gorm:"column:spot_number"`
	Status string
	Floor  int
}

func (gs *gSpot) TableName() string {
	return "parking_spots"
}

func (gs *gSpot) Model() (*model.Spot, error) {
	st, err := model.ParseSpotStatus(gs.Status)
	if err != nil {
		return nil, fmt.Errorf("spot %d status %q: %w", gs.SID, gs.Status, err)
	}
	return &model.Spot{
		ID:     gs.SID,
		Number: gs.Number,
		Status: st,
		Floor:  gs.Floor,
	}, nil
}

func GetSpot[Q postgres.Queryer](ctx context.Context, q Q, spotID int) (*model.Spot, error) {
	gdb := q.GORM(ctx)
	var gs []gSpot
	gdb.Where("spot_id=?", spotID).Find(&gs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gs[0].Model()
}

func ListSpots[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Spot, error) {
	gdb := q.GORM(ctx)
	var gs []gSpot
	gdb.Order("spot_id").Find(&gs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	spots := make([]model.Spot, 0, len(gs))
	for i := range gs {
		s, err := gs[i].Model()
		if err != nil {
			return nil, err
		}
		spots = append(spots, *s)
	}
	return spots, nil
}

// LockSpot reads one spot row with SELECT ... FOR UPDATE semantics.
// It may only be instantiated with a *postgres.Tx queryer because a
// row lock outside a transaction would be released immediately.
func LockSpot(ctx context.Context, q *postgres.Tx, spotID int) (*model.Spot, error) {
	gdb := q.GORM(ctx)
	var gs []gSpot
	gdb.Clauses(clause.Locking{Strength: "UPDATE"}).Where(
		"spot_id=?", spotID,
	).Find(&gs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gs[0].Model()
}

// SetStatus moves the spot to the given status unconditionally; the
// caller is responsible for holding the row lock and having checked
// the current status first.
func SetStatus(ctx context.Context, q *postgres.Tx, spotID int, s model.SpotStatus) error {
	if err := s.Validate(); err != nil {
		return err
	}
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gSpot{}).Where("spot_id=?", spotID).Update(
		"status", s.String(),
	)
	if err := tt.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := tt.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}

// occupancyRow holds one row of the spots-with-open-records join. The
// record columns are nullable because free spots join with nothing.
type occupancyRow struct {
	SID       int        `gorm:"column:spot_id"`
	Number    string     `gorm:"column:spot_number"`
	Status    string     `gorm:"column:status"`
	Floor     int        `gorm:"column:floor"`
	RID       *string    `gorm:"column:record_id"`
	PlateNum  *string    `gorm:"column:plate_num"`
	EntryTime *time.Time `gorm:"column:entry_time"`
}

// ListWithOpenRecords joins every spot with its open record in one
// statement, which makes the read snapshot-consistent: both sides of
// the occupancy invariant come from the same query.
func ListWithOpenRecords[Q postgres.Queryer](ctx context.Context, q Q) ([]model.SpotOccupancy, error) {
	gdb := q.GORM(ctx)
	var rows []occupancyRow
	gdb.Raw(`SELECT s.spot_id, s.spot_number, s.status, s.floor,
		r.record_id, r.plate_num, r.entry_time
		FROM parking_spots s
		LEFT JOIN parking_records r
		ON s.spot_id = r.spot_id AND r.exit_time IS NULL
		ORDER BY s.spot_id`).Scan(&rows)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	view := make([]model.SpotOccupancy, 0, len(rows))
	for i := range rows {
		so, err := rows[i].model()
		if err != nil {
			return nil, err
		}
		view = append(view, *so)
	}
	return view, nil
}

func (row *occupancyRow) model() (*model.SpotOccupancy, error) {
	st, err := model.ParseSpotStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf(
			"spot %d status %q: %w", row.SID, row.Status, err,
		)
	}
	so := &model.SpotOccupancy{
		Spot: model.Spot{
			ID:     row.SID,
			Number: row.Number,
			Status: st,
			Floor:  row.Floor,
		},
	}
	if row.RID == nil {
		return so, nil
	}
	rid, err := uuid.Parse(*row.RID)
	if err != nil {
		return nil, fmt.Errorf("record id %q: %w", *row.RID, err)
	}
	so.Open = &model.Record{
		ID:        rid,
		Plate:     *row.PlateNum,
		SpotID:    row.SID,
		EntryTime: *row.EntryTime,
	}
	return so, nil
}
