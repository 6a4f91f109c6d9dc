// Package git provides read-only Git repository introspection for shed.
//
// This is a leaf package: it imports only stdlib and go-git packages and
// does not import any internal packages. Callers pass paths in; results
// come back as plain values.
package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
)

// ErrNotRepository is returned when the path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// shortHashLen matches git's default abbreviated hash length.
const shortHashLen = 7

// Revision describes the current HEAD of a repository.
type Revision struct {
	// Short is the abbreviated commit hash of HEAD.
	Short string

	// Dirty reports whether the working tree has uncommitted changes.
	Dirty bool
}

// Repo is a thin facade over a go-git repository handle.
type Repo struct {
	repo     *gogit.Repository
	repoRoot string
}

// Open opens the git repository containing the given path.
// It walks up the directory tree to find the repository root.
//
// Returns ErrNotRepository (wrapped) if path is not inside a git repository.
func Open(path string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &Repo{
		repo:     repo,
		repoRoot: wt.Filesystem.Root(),
	}, nil
}

// NewRepoWithRepository creates a Repo from an existing go-git Repository.
// This is primarily used for testing with in-memory repositories.
func NewRepoWithRepository(repo *gogit.Repository, repoRoot string) *Repo {
	return &Repo{
		repo:     repo,
		repoRoot: repoRoot,
	}
}

// RepoRoot returns the root directory of the git repository.
func (r *Repo) RepoRoot() string {
	return r.repoRoot
}

// Revision returns the abbreviated HEAD commit hash and working tree
// cleanliness. Fails if the repository has no commits yet.
func (r *Repo) Revision() (Revision, error) {
	head, err := r.repo.Head()
	if err != nil {
		return Revision{}, fmt.Errorf("getting HEAD: %w", err)
	}

	rev := Revision{Short: head.Hash().String()[:shortHashLen]}

	// Cleanliness is best effort: a bare repository has no worktree
	// and its status is simply not reported as dirty.
	wt, err := r.repo.Worktree()
	if err != nil {
		return rev, nil
	}
	status, err := wt.Status()
	if err != nil {
		return rev, nil
	}
	rev.Dirty = !status.IsClean()

	return rev, nil
}

// CurrentBranch returns the current branch name of the repository.
// Returns empty string and no error for detached HEAD state.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	if head.Name() == plumbing.HEAD {
		return "", nil
	}

	return head.Name().Short(), nil
}
