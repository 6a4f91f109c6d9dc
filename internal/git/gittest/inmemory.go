// Package gittest provides test utilities for the git package.
package gittest

import (
	"testing"
	"time"

	"github.com/demonsh/shed/internal/git"
	"github.com/go-git/go-billy/v6/memfs"
	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/stretchr/testify/require"
)

// InMemoryRepo wraps *git.Repo with test-only accessors.
// The underlying repository uses in-memory storage (memfs).
type InMemoryRepo struct {
	*git.Repo
	repo *gogit.Repository
}

// NewInMemoryRepo creates a Repo backed by in-memory storage, seeded with
// an initial commit so HEAD exists. The repoRoot is a logical path used
// for path construction in tests.
func NewInMemoryRepo(t *testing.T, repoRoot string) *InMemoryRepo {
	t.Helper()

	dotGitFS := memfs.New()
	worktreeFS := memfs.New()

	storer := filesystem.NewStorage(dotGitFS, cache.NewObjectLRUDefault())

	repo, err := gogit.Init(storer, gogit.WithWorkTree(worktreeFS))
	require.NoError(t, err, "failed to init in-memory repo")

	wt, err := repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	readme, err := worktreeFS.Create("README.md")
	require.NoError(t, err, "failed to create README")
	_, err = readme.Write([]byte("# Test Repository\n"))
	require.NoError(t, err, "failed to write README")
	require.NoError(t, readme.Close(), "failed to close README")

	_, err = wt.Add("README.md")
	require.NoError(t, err, "failed to add README")

	_, err = wt.Commit("Initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err, "failed to create initial commit")

	return &InMemoryRepo{
		Repo: git.NewRepoWithRepository(repo, repoRoot),
		repo: repo,
	}
}

// Repository returns the underlying go-git Repository for test assertions.
func (m *InMemoryRepo) Repository() *gogit.Repository {
	return m.repo
}

// WriteWorktreeFile writes a file into the in-memory worktree without
// committing it, making the tree dirty.
func (m *InMemoryRepo) WriteWorktreeFile(t *testing.T, name, content string) {
	t.Helper()

	wt, err := m.repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	f, err := wt.Filesystem.Create(name)
	require.NoError(t, err, "failed to create %s", name)
	_, err = f.Write([]byte(content))
	require.NoError(t, err, "failed to write %s", name)
	require.NoError(t, f.Close(), "failed to close %s", name)
}
