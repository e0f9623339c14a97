package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agrimitra/agrimitra/internal/flow"
	"github.com/agrimitra/agrimitra/internal/models"
)

func flowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flows",
		Short: "List the available flows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printFlows(cmd.OutOrStdout(), flow.Default(&flow.Env{}).Info())
		},
	}
}

func printFlows(w io.Writer, flows []models.FlowInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tMODEL\tDESCRIPTION")
	for _, f := range flows {
		model := "yes"
		if !f.RequiresLLM {
			model = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name, f.Type, model, f.Description)
	}
	return tw.Flush()
}
