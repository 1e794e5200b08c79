package main

import (
	"gamerental/config"
	"gamerental/db"

	"github.com/spf13/cobra"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.Open(dbOptions(cfg))
			if err != nil {
				return err
			}
			defer db.Close(conn)
			return db.Migrate(conn)
		},
	}
}

func dbOptions(cfg *config.Config) db.Options {
	return db.Options{
		DSN:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	}
}
