package rulesrp

import (
	"context"
	"fmt"
	"time"

	"github.com/openlot/parkcore/pkg/adapter/db/postgres"
	"github.com/openlot/parkcore/pkg/core/cerr"
	"github.com/openlot/parkcore/pkg/core/model"
	"gorm.io/gorm/clause"
)

// gRule maps the fee_rules table. Prices are integral cents.
type gRule struct {
	RID         int       `gorm:"primaryKey;autoIncrement;column:rule_id"`
	BasePrice   int64     `gorm:"column:base_price"`
	FreeMinutes int       `gorm:"column:free_minutes"`
	DailyCap    int64     `gorm:"column:daily_cap"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (gr *gRule) TableName() string {
	return "fee_rules"
}

func (gr *gRule) Model() *model.FeeRule {
	return &model.FeeRule{
		ID:          gr.RID,
		BasePrice:   model.Money(gr.BasePrice),
		FreeMinutes: gr.FreeMinutes,
		DailyCap:    model.Money(gr.DailyCap),
		CreatedAt:   gr.CreatedAt,
	}
}

// GetLatestRule returns the most recently inserted rule, which is the
// active one. Older rules stay in place for audit purposes only.
func GetLatestRule[Q postgres.Queryer](ctx context.Context, q Q) (*model.FeeRule, error) {
	gdb := q.GORM(ctx)
	var gr []gRule
	gdb.Order("rule_id DESC").Limit(1).Find(&gr)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gr); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gr[0].Model(), nil
}

func InsertRule(ctx context.Context, q *postgres.Tx, r model.FeeRule) (*model.FeeRule, error) {
	gdb := q.GORM(ctx)
	gr := &gRule{
		BasePrice:   int64(r.BasePrice),
		FreeMinutes: r.FreeMinutes,
		DailyCap:    int64(r.DailyCap),
	}
	if err := gdb.Clauses(clause.Returning{}).Create(gr).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.Model(), nil
}
