package cli

import (
	"fmt"

	"github.com/demonsh/shed/internal/version"
	"github.com/spf13/cobra"
)

// newCmdVersion creates the "version" subcommand.
func newCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of shed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
