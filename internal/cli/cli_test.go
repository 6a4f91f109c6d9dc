package cli

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/demonsh/shed/internal/config"
	"github.com/demonsh/shed/internal/version"
	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the shed root command with the given args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := New()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(), New()

	require.Equal(t, a.Name(), b.Name())
	require.Len(t, b.Commands(), len(a.Commands()))
	for i, sub := range a.Commands() {
		assert.Equal(t, sub.Use, b.Commands()[i].Use)
		assert.Equal(t, sub.Short, b.Commands()[i].Short)
	}
}

func TestNewCommandSurface(t *testing.T) {
	cmd := New()

	assert.Equal(t, "shed", cmd.Name())

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"init", "status", "pack", "unpack", "version"})

	assert.NotNil(t, cmd.PersistentFlags().ShorthandLookup("c"))
	assert.NotNil(t, cmd.PersistentFlags().ShorthandLookup("D"))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version.Version)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.ConfigFileName)

	_, err = os.Stat(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)

	// Second run refuses to overwrite
	_, err = execute(t, "init", "--dir", dir)
	require.Error(t, err)
}

func TestStatusCommand(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# repo\n"), 0o644))
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)

	out, err := execute(t, "status", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "revision:")
	assert.Contains(t, out, "tree:     clean")
}

func TestStatusCommandOutsideRepository(t *testing.T) {
	_, err := execute(t, "status", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not inside a git repository")
}

func TestPackUnpackRoundTrip(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "b.txt"), []byte("beta\n"), 0o644))

	archive := filepath.Join(t.TempDir(), "bundle.tar.gz")
	_, err := execute(t, "pack", src, "--output", archive)
	require.NoError(t, err)

	dest := t.TempDir()
	_, err = execute(t, "unpack", archive, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", string(got))

	got, err = os.ReadFile(filepath.Join(dest, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "beta\n", string(got))
}

func TestUnpackDefaultDestination(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "b.txt"), []byte("beta\n"), 0o644))

	archive := filepath.Join(t.TempDir(), "bundle.tar.gz")
	_, err := execute(t, "pack", src, "--output", archive)
	require.NoError(t, err)

	// No DEST argument: entries land in the current directory.
	work := t.TempDir()
	t.Chdir(work)

	_, err = execute(t, "unpack", archive)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(work, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", string(got))

	got, err = os.ReadFile(filepath.Join(work, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "beta\n", string(got))
}

func TestUnpackRejectsEscapingEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.tar.gz")
	writeArchiveWithEntry(t, archive, "../evil.txt", "gotcha\n")

	err := unpackArchive(archive, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

// writeArchiveWithEntry builds a tar.gz containing a single file entry
// with an arbitrary (possibly malicious) name.
func writeArchiveWithEntry(t *testing.T, path, name, content string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len(content)),
	}))
	_, err = tw.Write([]byte(content))
	require.NoError(t, err)

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func TestPackRejectsNonDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := execute(t, "pack", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestUnpackMissingArchive(t *testing.T) {
	err := unpackArchive(filepath.Join(t.TempDir(), "missing.tar.gz"), t.TempDir())
	require.Error(t, err)
}
