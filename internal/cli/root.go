// Package cli implements the agrimitra command.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agrimitra/agrimitra/internal/config"
	"github.com/agrimitra/agrimitra/internal/logging"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "agrimitra",
		Short:        "AgriMitra farming assistant",
		SilenceUsage: true,
	}
	cmd.AddCommand(serveCmd(), flowsCmd(), runCmd())
	return cmd
}

// loadConfig reads configuration and sets up logging from it.
func loadConfig(logLevel string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.Setup(cfg.LogLevel, cfg.Environment)
	return cfg, nil
}
