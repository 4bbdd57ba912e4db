package cmd

import (
	"github.com/shelfsort/bookident/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Identification accuracy evaluation tools",
		Long: `Evaluation tools for measuring book identification accuracy.

Runs the identification pipeline over a ground-truth dataset of cover
images and compares the results field by field.`,
	}

	// Add eval subcommands
	cmd.AddCommand(evalcmd.NewRunCmd())

	return cmd
}
