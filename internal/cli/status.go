package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/demonsh/shed/internal/git"
	"github.com/spf13/cobra"
)

// newCmdStatus creates the "status" subcommand.
func newCmdStatus() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show repository revision and working tree state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := dir
			if target == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("getting working directory: %w", err)
				}
				target = wd
			}

			repo, err := git.Open(target)
			if err != nil {
				if errors.Is(err, git.ErrNotRepository) {
					return fmt.Errorf("%s is not inside a git repository", target)
				}
				return err
			}

			rev, err := repo.Revision()
			if err != nil {
				return fmt.Errorf("reading repository state: %w", err)
			}

			branch, err := repo.CurrentBranch()
			if err != nil {
				return fmt.Errorf("reading current branch: %w", err)
			}
			if branch == "" {
				branch = "(detached)"
			}

			state := "clean"
			if rev.Dirty {
				state = "dirty"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "repo:     %s\n", repo.RepoRoot())
			fmt.Fprintf(cmd.OutOrStdout(), "branch:   %s\n", branch)
			fmt.Fprintf(cmd.OutOrStdout(), "revision: %s\n", rev.Short)
			fmt.Fprintf(cmd.OutOrStdout(), "tree:     %s\n", state)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Repository path (default: current directory)")

	return cmd
}
