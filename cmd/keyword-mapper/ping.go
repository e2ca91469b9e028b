package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyword-mapper/internal/config"
	"github.com/keyword-mapper/internal/db"
	import_pkg "github.com/keyword-mapper/internal/import"
	"github.com/keyword-mapper/internal/logger"
)

// createPingCmd creates a command to test database connectivity
func createPingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Test the crawl database and count its rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := a.cfg.Source
			if src.Type == config.SourceCSV {
				src.Type = config.SourcePostgres
			}

			conn, err := db.Open(cmd.Context(), db.SourceConfig{Driver: src.Type, DSN: src.DSN})
			if err != nil {
				a.log.Error("Database connection failed", logger.Error(err))
				return err
			}
			defer conn.Close()
			fmt.Fprintln(a.stdout, "Database connection successful!")

			table, err := import_pkg.NewSQLImporter(conn, src.Table).Table(cmd.Context())
			if err != nil {
				return err
			}
			count, err := conn.CountRows(cmd.Context(), table)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Crawl rows in %s: %d\n", table, count)
			return nil
		},
	}
	cmd.Flags().String("source", config.SourcePostgres, "database type: sqlite or postgres")
	cmd.Flags().String("dsn", "", "database path (sqlite) or connection string (postgres)")
	cmd.Flags().String("table", "", "crawl table, defaults to the first table")
	return cmd
}
