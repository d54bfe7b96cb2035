package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradejournal version %s\n", version)
		},
	}
}
