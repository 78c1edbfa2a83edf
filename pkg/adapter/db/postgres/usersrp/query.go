package usersrp

import (
	"context"
	"fmt"

	"github.com/openlot/parkcore/pkg/adapter/db/postgres"
	"github.com/openlot/parkcore/pkg/core/cerr"
	"github.com/openlot/parkcore/pkg/core/model"
	"gorm.io/gorm/clause"
)

// gUser maps the admin_users table. The pass_hash column stores a
// SCRAM hash string, never a plaintext password.
type gUser struct {
	UID      int    `gorm:"primaryKey;autoIncrement;column:user_id"`
	Username string `gorm:"column:username"`
	PassHash string `gorm:"column:pass_hash"`
}

func (gu *gUser) TableName() string {
	return "admin_users"
}

func (gu *gUser) Model() *model.AdminUser {
	return &model.AdminUser{
		ID:       gu.UID,
		Username: gu.Username,
		PassHash: gu.PassHash,
	}
}

func GetUserByUsername[Q postgres.Queryer](ctx context.Context, q Q, username string) (*model.AdminUser, error) {
	gdb := q.GORM(ctx)
	var gu []gUser
	gdb.Where("username=?", username).Find(&gu)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gu); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gu[0].Model(), nil
}

// UpsertUser creates the user or refreshes the password hash of an
// existing user with the same username; provisioning commands call it
// repeatedly without caring which case applies.
func UpsertUser(ctx context.Context, q *postgres.Tx, u model.AdminUser) error {
	gdb := q.GORM(ctx)
	gu := &gUser{
		Username: u.Username,
		PassHash: u.PassHash,
	}
	err := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"pass_hash"}),
	}).Create(gu).Error
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}
