package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agrimitra/agrimitra/internal/flow"
	"github.com/agrimitra/agrimitra/internal/server"
)

func runCmd() *cobra.Command {
	var input string
	var logLevel string

	c := &cobra.Command{
		Use:   "run <flow>",
		Short: "Run one flow on a JSON input and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(logLevel)
			if err != nil {
				return err
			}

			raw, err := readInput(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}

			registry, err := server.NewRegistry(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			res, err := registry.Run(cmd.Context(), args[0], raw)
			if err != nil {
				for _, fe := range flow.FieldErrors(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), fe.Error())
				}
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res.Output)
		},
	}

	c.Flags().StringVarP(&input, "input", "i", "-", "JSON input file, or - for stdin")
	c.Flags().StringVar(&logLevel, "log-level", "warn", "Log level")
	return c
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
