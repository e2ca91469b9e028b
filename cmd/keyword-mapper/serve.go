package main

import (
	"github.com/spf13/cobra"

	"github.com/keyword-mapper/internal/web"
)

func createServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a result CSV as a read-only JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := web.DefaultConfig()
			cfg.ResultsFile = a.cfg.ResultsFile
			cfg.Server.Host = a.cfg.Server.Host
			cfg.Server.Port = a.cfg.Server.Port

			server, err := web.NewServer(cfg, a.log)
			if err != nil {
				return err
			}
			return server.Start(cmd.Context())
		},
	}
	cmd.Flags().String("results", "keyword_mappings_final.csv", "result CSV written by map")
	cmd.Flags().String("host", "127.0.0.1", "listen host")
	cmd.Flags().Int("port", 8080, "listen port")
	return cmd
}
