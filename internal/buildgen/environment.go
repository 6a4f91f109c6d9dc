package buildgen

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Environment variable names consumed from the invoking build system.
const (
	// EnvPkgVersion carries the declared package version (semver).
	EnvPkgVersion = "PKG_VERSION"

	// EnvProfile carries the build profile ("release" enables completions).
	EnvProfile = "PROFILE"

	// EnvOutDir carries the build output directory for generated artifacts.
	EnvOutDir = "OUT_DIR"
)

// Environment captures the build-system inputs for one generator run.
type Environment struct {
	// PkgVersion is the declared semantic version from package metadata.
	PkgVersion string

	// Profile is the build profile selected by the build system.
	Profile string

	// OutDir is where completion artifacts are written on release builds.
	OutDir string

	// WorkDir is the build working directory, used for repository lookup.
	WorkDir string
}

// LoadEnvironment reads the build environment from process env vars and
// the current working directory. Missing variables come back as empty
// strings; Run decides which of them are fatal.
func LoadEnvironment() (*Environment, error) {
	v := viper.New()
	v.AutomaticEnv()

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	return &Environment{
		PkgVersion: v.GetString(EnvPkgVersion),
		Profile:    v.GetString(EnvProfile),
		OutDir:     v.GetString(EnvOutDir),
		WorkDir:    wd,
	}, nil
}
