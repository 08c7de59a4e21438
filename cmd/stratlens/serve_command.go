package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stratlens/stratlens/internal/config"
	"github.com/stratlens/stratlens/internal/server"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			var runner server.Runner
			a, err := buildAnalyzer(cfg)
			switch {
			case err == nil:
				runner = a
			case isCredentialError(err):
				// Serve anyway: the analyze endpoint reports the
				// configuration-error state instead of crashing the process.
				slog.Warn("starting in configuration-error state", "error", err)
			default:
				return err
			}

			slog.Info("starting stratlens server", "host", cfg.Server.Host, "port", cfg.Server.Port)
			return server.New(*cfg, runner).Run()
		},
	}
}
