// Package cli builds the shed command tree.
//
// New is a pure constructor: it performs no I/O and always returns the
// same tree shape. The tree has two consumers — the shed binary executes
// it, and the build generator walks it to render completion scripts — so
// construction must stay deterministic and side-effect free.
package cli

import (
	"os"

	"github.com/demonsh/shed/internal/config"
	"github.com/demonsh/shed/internal/logger"
	"github.com/demonsh/shed/internal/version"
	"github.com/spf13/cobra"
)

// New creates the root command for the shed CLI.
func New() *cobra.Command {
	var (
		configDir string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "shed",
		Short: "A self-hosted toolbox for project scaffolding and artifact handling",
		Long: `Shed keeps small project chores in one place: scaffolding settings,
inspecting repository state, and packing build artifacts for transfer.

Quick start:
  shed init      # Write default settings (shed.yaml) in the current directory
  shed status    # Show repository revision and working tree state
  shed pack      # Bundle a directory into a tar.gz archive`,
		SilenceUsage: true,
		Version:      version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initializeLogger(configDir, debug)

			logger.Debug().
				Str("version", version.Version).
				Bool("debug", debug).
				Msg("shed starting")

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configDir, "config", "c", "", "Directory containing shed.yaml (default: current directory)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "Enable debug logging")

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(newCmdInit())
	cmd.AddCommand(newCmdStatus())
	cmd.AddCommand(newCmdPack())
	cmd.AddCommand(newCmdUnpack())
	cmd.AddCommand(newCmdVersion())

	return cmd
}

// initializeLogger sets up the logger from settings, falling back to
// console-only logging on any error.
func initializeLogger(configDir string, debug bool) {
	dir := configDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			logger.Init(debug)
			logger.Warn().Err(err).Msg("file logging unavailable: failed to get working directory")
			return
		}
		dir = wd
	}

	cfg, err := config.NewLoader(dir).Load()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to load settings")
		return
	}

	logCfg := &logger.LoggingConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		MaxBackups: cfg.Logging.MaxBackups,
	}

	if err := logger.InitWithFile(debug || cfg.LogLevel == "debug", cfg.LogsDir, logCfg); err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to initialize file writer")
	}
}
