package recordsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres"
	"github.com/openlot/parkcore/pkg/core/cerr"
	"github.com/openlot/parkcore/pkg/core/model"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the SQLSTATE which the partial unique index on
// open records raises when a second open record is inserted for one
// spot. See the schema package for the index definition.
const uniqueViolation = "23505"

// gRecord maps the parking_records table. Payment is kept as integral
// cents, matching model.Money.
type gRecord struct {
	RID       uuid.UUID  `gorm:"primaryKey;type:uuid;column:record_id"`
	PlateNum  string     `gorm:"column:plate_num"`
	SpotID    int        `gorm:"column:spot_id"`
	EntryTime time.Time  `gorm:"column:entry_time"`
	ExitTime  *time.Time `gorm:"column:exit_time"`
	Payment   *int64     `gorm:"column:payment"`
}

func (gr *gRecord) TableName() string {
	return "parking_records"
}

func (gr *gRecord) Model() *model.Record {
	r := &model.Record{
		ID:        gr.RID,
		Plate:     gr.PlateNum,
		SpotID:    gr.SpotID,
		EntryTime: gr.EntryTime,
		ExitTime:  gr.ExitTime,
	}
	if gr.Payment != nil {
		p := model.Money(*gr.Payment)
		r.Payment = &p
	}
	return r
}

// OpenRecord appends a new open record for the given spot. The partial
// unique index turns a double-open race into a unique violation which
// is reported as a conflict wrapping model.ErrDuplicateOpenRecord; it
// is a defensive check only because callers hold the spot row lock.
func OpenRecord(
	ctx context.Context, q *postgres.Tx,
	spotID int, plate string, entry time.Time,
) (*model.Record, error) {
	gdb := q.GORM(ctx)
	gr := &gRecord{
		RID:       uuid.New(),
		PlateNum:  plate,
		SpotID:    spotID,
		EntryTime: entry,
	}
	if err := gdb.Create(gr).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolation {
			return nil, cerr.Conflict(fmt.Errorf(
				"spot %d: %w", spotID, model.ErrDuplicateOpenRecord,
			))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.Model(), nil
}

// CloseRecord sets the exit time and payment of the unique open record
// of the given spot in one statement, so a record can never be closed
// without its payment or vice versa.
func CloseRecord(
	ctx context.Context, q *postgres.Tx,
	spotID int, exit time.Time, payment model.Money,
) (*model.Record, error) {
	gdb := q.GORM(ctx)
	var gr []gRecord
	gdb.Model(&gr).Clauses(clause.Returning{}).Where(
		"spot_id=? AND exit_time IS NULL", spotID,
	).Updates(map[string]any{
		"exit_time": exit,
		"payment":   int64(payment),
	})
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gr); n != 1 {
		if n == 0 {
			return nil, cerr.NotFound(fmt.Errorf(
				"spot %d: %w", spotID, model.ErrNoOpenRecord,
			))
		}
		return nil, fmt.Errorf("expected one open record, but got %d", n)
	}
	return gr[0].Model(), nil
}

func GetOpenRecord[Q postgres.Queryer](ctx context.Context, q Q, spotID int) (*model.Record, error) {
	gdb := q.GORM(ctx)
	var gr []gRecord
	gdb.Where("spot_id=? AND exit_time IS NULL", spotID).Find(&gr)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	switch n := len(gr); n {
	case 0:
		return nil, nil
	case 1:
		return gr[0].Model(), nil
	default:
		return nil, fmt.Errorf(
			"spot %d has %d open records: %w",
			spotID, n, model.ErrDuplicateOpenRecord,
		)
	}
}

func ListRecords[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Record, error) {
	gdb := q.GORM(ctx)
	var gr []gRecord
	gdb.Order("entry_time DESC").Find(&gr)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	records := make([]model.Record, 0, len(gr))
	for i := range gr {
		records = append(records, *gr[i].Model())
	}
	return records, nil
}
