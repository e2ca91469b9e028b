package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/keyword-mapper/internal/config"
	"github.com/keyword-mapper/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// flagBindings maps config keys to the command-line flags that override them.
var flagBindings = map[string]string{
	"log.level":          "log-level",
	"log.file":           "log-file",
	"keywords_file":      "keywords-file",
	"site_export_file":   "screaming-frog-file",
	"output_file":        "output-file",
	"results_file":       "results",
	"match.workers":      "workers",
	"match.trace_scores": "trace-scores",
	"source.type":        "source",
	"source.dsn":         "dsn",
	"source.table":       "table",
	"server.host":        "host",
	"server.port":        "port",
}

// app carries the state shared by every subcommand once the root has run.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     logger.Logger
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	if err := execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr, log: logger.NewNop()}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if a.cfg == nil {
			fmt.Fprintln(stderr, "Error:", err)
		} else {
			a.log.Error("Script failed", logger.Error(err))
		}
	}
	_ = a.log.Sync()
	return err
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keyword-mapper",
		Short:         "Map SEO keywords to the best matching page of a crawled site",
		Long:          `Scores every keyword against the pages of a Screaming Frog export and assigns each keyword the page whose title, headings, URL and meta tags match it best.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./keyword-mapper.yaml)")
	rootCmd.PersistentFlags().String("log-level", "INFO", "logging level (DEBUG, INFO, WARNING, ERROR)")
	rootCmd.PersistentFlags().String("log-file", "keyword_mapper.log", "log file path, empty to disable")

	rootCmd.AddCommand(createMapCmd(a))
	rootCmd.AddCommand(createSummaryCmd(a))
	rootCmd.AddCommand(createServeCmd(a))
	rootCmd.AddCommand(createPingCmd(a))
	rootCmd.AddCommand(createVersionCmd(a))

	return rootCmd
}

// setup loads .env files and configuration, then builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(a.cfgFile, cmd.Flags(), flagBindings)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("no-progress"); f != nil && f.Changed && f.Value.String() == "true" {
		cfg.Progress = false
	}

	cfg.Log.Output = a.stdout
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	return nil
}

func createVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "keyword-mapper %s\n", version)
		},
	}
}
