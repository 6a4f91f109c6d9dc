package version

import (
	"fmt"

	"github.com/demonsh/shed/internal/git"
)

// Resolve combines the declared package version with the current VCS
// revision of the repository at or above repoPath.
//
// With a repository present the result is "<declared>-<shorthash>", with a
// "-dirty" suffix when the working tree has uncommitted changes. Any lookup
// failure (no repository, no commits, I/O errors) falls back to declared
// unchanged: version resolution must never fail a build.
func Resolve(declared, repoPath string) string {
	repo, err := git.Open(repoPath)
	if err != nil {
		return declared
	}

	rev, err := repo.Revision()
	if err != nil {
		return declared
	}

	resolved := fmt.Sprintf("%s-%s", declared, rev.Short)
	if rev.Dirty {
		resolved += "-dirty"
	}
	return resolved
}
