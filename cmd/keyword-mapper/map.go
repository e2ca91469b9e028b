package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/keyword-mapper/internal/config"
	"github.com/keyword-mapper/internal/db"
	import_pkg "github.com/keyword-mapper/internal/import"
	"github.com/keyword-mapper/internal/logger"
	"github.com/keyword-mapper/internal/match"
	"github.com/keyword-mapper/internal/report"
)

// createMapCmd creates the map subcommand
func createMapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map keywords to pages and write the result CSV",
		Long: `Loads the keyword list and the crawled pages, picks the best page for every
keyword, writes the result CSV and prints a summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMap(cmd.Context())
		},
	}

	cmd.Flags().String("keywords-file", "keywords.txt", "path to keywords file")
	cmd.Flags().String("screaming-frog-file", "internal_all.csv", "path to Screaming Frog export")
	cmd.Flags().String("output-file", "keyword_mappings_final.csv", "output CSV file")
	cmd.Flags().Int("workers", 1, "keywords scored in parallel")
	cmd.Flags().Bool("trace-scores", false, "log every non-zero score at debug level")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
	cmd.Flags().String("source", config.SourceCSV, "record source: csv, sqlite or postgres")
	cmd.Flags().String("dsn", "", "database path (sqlite) or connection string (postgres)")
	cmd.Flags().String("table", "", "crawl table, defaults to the first table of a sqlite database")

	return cmd
}

func (a *app) runMap(ctx context.Context) error {
	cfg := a.cfg

	keywords, err := import_pkg.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		a.log.Error("Error loading keywords", logger.Error(err))
		return err
	}
	a.log.Info(fmt.Sprintf("Loaded %d keywords from %s", len(keywords), cfg.KeywordsFile))

	source, closeSource, err := a.recordSource(ctx)
	if err != nil {
		a.log.Error("Error opening record source", logger.Error(err))
		return err
	}
	defer closeSource()

	records, err := source.LoadRecords(ctx)
	if err != nil {
		a.log.Error("Error loading site data", logger.Error(err))
		return err
	}
	a.log.Info(fmt.Sprintf("Loaded %d URLs from %s", len(records), source.Describe()))

	var progress io.Writer
	if cfg.Progress {
		progress = a.stderr
	}
	mapper := match.NewMapper(match.MapperConfig{
		Log:         a.log,
		Workers:     cfg.Match.Workers,
		Progress:    progress,
		TraceScores: cfg.Match.TraceScores,
	})

	store, err := mapper.Run(ctx, keywords, records)
	if err != nil {
		return err
	}

	if err := report.WriteCSV(cfg.OutputFile, store); err != nil {
		a.log.Error("Error saving results", logger.Error(err))
		return err
	}
	a.log.Info("Results saved to " + cfg.OutputFile)

	report.RenderSummary(a.stdout, report.Summarize(store))
	return nil
}

// recordSource picks the CSV export or a database table.
func (a *app) recordSource(ctx context.Context) (import_pkg.RecordSource, func(), error) {
	src := a.cfg.Source
	if src.Type == "" || src.Type == config.SourceCSV {
		return import_pkg.CSVSource{Path: a.cfg.SiteExportFile}, func() {}, nil
	}

	conn, err := db.Open(ctx, db.SourceConfig{Driver: src.Type, DSN: src.DSN})
	if err != nil {
		return nil, nil, err
	}
	closeConn := func() {
		if err := conn.Close(); err != nil {
			a.log.Warn("Database close error", logger.Error(err))
		}
	}
	return import_pkg.NewSQLImporter(conn, src.Table), closeConn, nil
}
