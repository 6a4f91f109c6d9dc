package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/demonsh/shed/internal/config"
	"github.com/spf13/cobra"
)

// newCmdInit creates the "init" subcommand.
func newCmdInit() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write default shed settings (shed.yaml)",
		Long: `Writes a shed.yaml with default settings into the target directory.

The command is safe to re-run: it refuses to overwrite an existing file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := dir
			if target == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("getting working directory: %w", err)
				}
				target = wd
			}

			path, err := config.Write(config.DefaultConfig(), target)
			if err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("settings already initialized: %w", err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Target directory (default: current directory)")

	return cmd
}
