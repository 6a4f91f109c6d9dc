// Package buildgen drives shed's pre-build generation: resolving the
// version key and, on release builds, emitting shell completion scripts.
//
// The pipeline is one-shot and sequential: resolve the version, publish it
// as a build constant, then (release only) render bash, zsh and powershell
// completions from the CLI description into the build output directory.
package buildgen

import (
	"errors"
	"fmt"
	"io"

	"github.com/demonsh/shed/internal/cli"
	"github.com/demonsh/shed/internal/completion"
	"github.com/demonsh/shed/internal/logger"
	"github.com/demonsh/shed/internal/version"
)

// VersionKey is the build constant name published for the compiled program.
const VersionKey = "DEMON_VERSION"

// releaseProfile is the build profile that enables completion generation.
const releaseProfile = "release"

// triggerFile is the generator's own rebuild trigger.
const triggerFile = "cmd/build-gen/main.go"

var (
	// ErrVersionResolution indicates the declared version could not be
	// read from the build environment.
	ErrVersionResolution = errors.New("version resolution failed")

	// ErrEnvironment indicates a required build environment variable is
	// absent.
	ErrEnvironment = errors.New("incomplete build environment")

	// ErrEmission indicates a completion script could not be rendered or
	// written.
	ErrEmission = errors.New("completion emission failed")
)

// Run executes the generation pipeline against env, emitting build-system
// directives to out. Exactly one version key is published per run; on
// release builds the three completion scripts are written to env.OutDir,
// aborting on the first emission failure.
func Run(env *Environment, out io.Writer) error {
	d := NewDirectives(out)

	// Step 1: version key, always. Repository lookup failures degrade to
	// the declared version inside Resolve; only a missing declared
	// version is fatal.
	if env.PkgVersion == "" {
		return fmt.Errorf("%w: %s is not set", ErrVersionResolution, EnvPkgVersion)
	}

	resolved := version.Resolve(env.PkgVersion, env.WorkDir)
	if err := d.SetEnv(VersionKey, resolved); err != nil {
		return fmt.Errorf("publishing %s: %w", VersionKey, err)
	}

	logger.Debug().
		Str("declared", env.PkgVersion).
		Str("resolved", resolved).
		Msg("version key resolved")

	// Step 2: profile gate.
	if env.Profile == "" {
		return fmt.Errorf("%w: %s is not set", ErrEnvironment, EnvProfile)
	}

	// Step 3: completions, release builds only.
	if env.Profile == releaseProfile {
		if env.OutDir == "" {
			return fmt.Errorf("%w: %s is not set", ErrEnvironment, EnvOutDir)
		}

		root := cli.New()
		for _, dialect := range completion.Dialects() {
			path, err := completion.Emit(dialect, root, root.Name(), env.OutDir)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrEmission, dialect, err)
			}

			logger.Debug().
				Str("dialect", dialect.String()).
				Str("path", path).
				Msg("wrote completion script")
		}
	}

	if err := d.RerunIfChanged(triggerFile); err != nil {
		return fmt.Errorf("declaring rebuild trigger: %w", err)
	}

	return nil
}
