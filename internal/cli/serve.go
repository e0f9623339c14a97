package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/agrimitra/agrimitra/internal/server"
)

func serveCmd() *cobra.Command {
	var logLevel string
	var port int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web forms and the JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(logLevel)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Port = port
			}

			srv, err := server.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := srv.Run(cmd.Context()); err != nil {
				log.Error().Err(err).Msg("server stopped")
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}

	c.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	c.Flags().IntVarP(&port, "port", "p", 0, "Override the configured port")
	return c
}
