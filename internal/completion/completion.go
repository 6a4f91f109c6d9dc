// Package completion renders shell completion scripts from a cobra
// command tree.
//
// Rendering is a pure function of (dialect, tree, program name): emitting
// twice into the same directory overwrites the prior file with identical
// content. The tree is validated before anything is written — a broken
// completion script is worse than a missing one.
package completion

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrInvalidDescription is returned when the command tree is malformed.
var ErrInvalidDescription = errors.New("invalid command description")

// Dialect identifies a supported shell dialect.
type Dialect int

const (
	Bash Dialect = iota
	Zsh
	PowerShell
)

// Dialects returns all supported dialects in emission order.
func Dialects() []Dialect {
	return []Dialect{Bash, Zsh, PowerShell}
}

// String returns the dialect's shell name.
func (d Dialect) String() string {
	switch d {
	case Bash:
		return "bash"
	case Zsh:
		return "zsh"
	case PowerShell:
		return "powershell"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// FileName returns the conventional completion file name for a program.
func (d Dialect) FileName(name string) string {
	switch d {
	case Bash:
		return name + ".bash"
	case Zsh:
		return "_" + name
	case PowerShell:
		return "_" + name + ".ps1"
	default:
		return name
	}
}

// Emit validates the command tree and writes the dialect's completion
// script for it into outDir, returning the written file's path.
func Emit(dialect Dialect, root *cobra.Command, name, outDir string) (string, error) {
	if root == nil {
		return "", fmt.Errorf("%w: nil command tree", ErrInvalidDescription)
	}
	if err := Validate(root); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, dialect.FileName(name))

	var err error
	switch dialect {
	case Bash:
		err = root.GenBashCompletionFileV2(path, true)
	case Zsh:
		err = root.GenZshCompletionFile(path)
	case PowerShell:
		err = root.GenPowerShellCompletionFileWithDesc(path)
	default:
		return "", fmt.Errorf("unsupported dialect %s", dialect)
	}
	if err != nil {
		return "", fmt.Errorf("generating %s completions: %w", dialect, err)
	}

	return path, nil
}

// Validate walks the command tree and reports malformations that would
// produce broken completion scripts: empty command names, duplicate
// subcommand names, and duplicate flag shorthands. Shorthand conflicts
// between a command and its ancestors' persistent flags are not caught by
// pflag at registration time, only at parse time, so the tree is checked
// here before any script is written.
func Validate(root *cobra.Command) error {
	if root == nil {
		return fmt.Errorf("%w: nil command tree", ErrInvalidDescription)
	}
	return validate(root, map[string]string{})
}

func validate(cmd *cobra.Command, inherited map[string]string) error {
	if strings.TrimSpace(cmd.Name()) == "" {
		return fmt.Errorf("%w: command with empty name", ErrInvalidDescription)
	}

	shorthands := make(map[string]string, len(inherited))
	for k, v := range inherited {
		shorthands[k] = v
	}

	var verr error
	record := func(f *pflag.Flag) {
		if verr != nil || f.Shorthand == "" {
			return
		}
		if prev, ok := shorthands[f.Shorthand]; ok && prev != f.Name {
			verr = fmt.Errorf("%w: duplicate shorthand -%s on %q (--%s and --%s)",
				ErrInvalidDescription, f.Shorthand, cmd.CommandPath(), prev, f.Name)
			return
		}
		shorthands[f.Shorthand] = f.Name
	}
	cmd.Flags().VisitAll(record)
	cmd.PersistentFlags().VisitAll(record)
	if verr != nil {
		return verr
	}

	seen := make(map[string]bool, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		if seen[sub.Name()] {
			return fmt.Errorf("%w: duplicate subcommand %q under %q",
				ErrInvalidDescription, sub.Name(), cmd.CommandPath())
		}
		seen[sub.Name()] = true
	}

	// Only persistent flags propagate to children.
	childInherited := make(map[string]string, len(inherited))
	for k, v := range inherited {
		childInherited[k] = v
	}
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Shorthand != "" {
			childInherited[f.Shorthand] = f.Name
		}
	})

	for _, sub := range cmd.Commands() {
		if err := validate(sub, childInherited); err != nil {
			return err
		}
	}

	return nil
}
