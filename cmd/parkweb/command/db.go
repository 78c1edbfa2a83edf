// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/openlot/parkcore/pkg/adapter/config"
	"github.com/openlot/parkcore/pkg/adapter/db/postgres/schema"
	"github.com/openlot/parkcore/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used. Both actions create the tables
which are missing and seed the initial rows idempotently, so they may
be repeated on an existing installation without destroying its data.`,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data.
The database connection information are read from the config file.
A small two-floor lot is provisioned with a default fee rule and an
admin/admin operator account, suitable for local development only.`,
	RunE: initDev,
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data.
The database connection information are read from the config file.
The number of provisioned spots is taken from the --spots flag and the
admin operator password must be provided by the --admin-pass flag, so
no default credentials end up in a production database.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

var (
	initProdSpots     int
	initProdAdminPass string
)

func initDev(_ *cobra.Command, _ []string) error {
	return settleSchema(func(
		ctx context.Context, s *schema.Settler,
	) error {
		return s.InitDev(ctx)
	})
}

func initProd(_ *cobra.Command, _ []string) error {
	if initProdAdminPass == "" {
		return fmt.Errorf("the --admin-pass flag must be provided")
	}
	return settleSchema(func(
		ctx context.Context, s *schema.Settler,
	) error {
		return s.InitProd(ctx, initProdSpots, initProdAdminPass)
	})
}

// settleSchema connects to the configured database and runs the given
// seeding function on a fresh schema settler. All changes are applied
// in one transaction.
func settleSchema(
	seed func(ctx context.Context, s *schema.Settler) error,
) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	return p.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		return cn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			s := c.Database.NewSchemaSettler(tx)
			if err := seed(ctx, s); err != nil {
				return fmt.Errorf("seeding initial data: %w", err)
			}
			return nil
		})
	})
}

func init() {
	initProdCmd.Flags().IntVar(
		&initProdSpots, "spots", 40, "number of provisioned spots",
	)
	initProdCmd.Flags().StringVar(
		&initProdAdminPass, "admin-pass", "",
		"password of the seeded admin operator",
	)
	dbCmd.AddCommand(initDevCmd, initProdCmd)
	rootCmd.AddCommand(dbCmd)
}
