package main

import (
	"github.com/spf13/cobra"

	"github.com/keyword-mapper/internal/logger"
	"github.com/keyword-mapper/internal/report"
)

func createSummaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary of an existing result CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := report.ReadCSV(a.cfg.ResultsFile)
			if err != nil {
				a.log.Error("Error reading results", logger.Error(err))
				return err
			}
			report.RenderSummary(a.stdout, report.Summarize(store))
			return nil
		},
	}
	cmd.Flags().String("results", "keyword_mappings_final.csv", "result CSV written by map")
	return cmd
}
