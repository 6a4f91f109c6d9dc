// build-gen is shed's pre-build generator. It resolves the version key
// from package metadata plus the git revision, publishes it to the build
// system as DEMON_VERSION, and on release builds renders bash, zsh and
// powershell completion scripts into the build output directory.
//
// It is invoked by the Makefile before compiling cmd/shed:
//
//	PKG_VERSION=1.2.3 PROFILE=release OUT_DIR=dist/completions build-gen
//
// Directives for the build system are written to stdout; see
// internal/buildgen.Directives for the protocol.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/demonsh/shed/internal/buildgen"
	"github.com/demonsh/shed/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("build-gen", pflag.ContinueOnError)

	var flagDebug bool
	flags.BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n\n%s", filepath.Base(args[0]), flags.FlagUsages())
	}

	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	logger.Init(flagDebug)

	env, err := buildgen.LoadEnvironment()
	if err != nil {
		return err
	}

	return buildgen.Run(env, os.Stdout)
}
