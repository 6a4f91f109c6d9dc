package completion_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/demonsh/shed/internal/completion"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTree builds a small valid command tree for emission tests.
func newTestTree() *cobra.Command {
	root := &cobra.Command{Use: "shed", Short: "test tool"}
	root.PersistentFlags().BoolP("debug", "D", false, "debug logging")

	status := &cobra.Command{Use: "status", Short: "show status"}
	status.Flags().StringP("dir", "d", "", "repository path")

	pack := &cobra.Command{Use: "pack DIR", Short: "pack a directory"}
	pack.Flags().StringP("output", "o", "", "archive path")

	root.AddCommand(status, pack)
	return root
}

func TestDialectFileName(t *testing.T) {
	tests := []struct {
		dialect completion.Dialect
		want    string
	}{
		{completion.Bash, "shed.bash"},
		{completion.Zsh, "_shed"},
		{completion.PowerShell, "_shed.ps1"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.FileName("shed"))
		})
	}
}

func TestDialectsOrder(t *testing.T) {
	assert.Equal(t,
		[]completion.Dialect{completion.Bash, completion.Zsh, completion.PowerShell},
		completion.Dialects())
}

func TestEmitAllDialects(t *testing.T) {
	outDir := t.TempDir()

	for _, d := range completion.Dialects() {
		t.Run(d.String(), func(t *testing.T) {
			path, err := completion.Emit(d, newTestTree(), "shed", outDir)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(outDir, d.FileName("shed")), path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			assert.Contains(t, string(data), "shed")
		})
	}

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestEmitIdempotent(t *testing.T) {
	outDir := t.TempDir()

	path1, err := completion.Emit(completion.Bash, newTestTree(), "shed", outDir)
	require.NoError(t, err)
	first, err := os.ReadFile(path1)
	require.NoError(t, err)

	path2, err := completion.Emit(completion.Bash, newTestTree(), "shed", outDir)
	require.NoError(t, err)
	second, err := os.ReadFile(path2)
	require.NoError(t, err)

	assert.Equal(t, path1, path2)
	assert.Equal(t, first, second, "re-emission should produce byte-identical content")
}

func TestEmitMissingOutputDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")

	_, err := completion.Emit(completion.Bash, newTestTree(), "shed", missing)
	require.Error(t, err)
	assert.False(t, errors.Is(err, completion.ErrInvalidDescription))
}

func TestEmitNilTree(t *testing.T) {
	_, err := completion.Emit(completion.Bash, nil, "shed", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, completion.ErrInvalidDescription))
}

func TestValidateDuplicateShorthandAcrossLevels(t *testing.T) {
	root := &cobra.Command{Use: "shed"}
	root.PersistentFlags().BoolP("debug", "D", false, "debug logging")

	sub := &cobra.Command{Use: "status"}
	sub.Flags().StringP("dir", "D", "", "collides with inherited --debug")
	root.AddCommand(sub)

	err := completion.Validate(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, completion.ErrInvalidDescription))
	assert.Contains(t, err.Error(), "-D")

	_, err = completion.Emit(completion.Zsh, root, "shed", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, completion.ErrInvalidDescription))
}

func TestValidateDuplicateSubcommand(t *testing.T) {
	root := &cobra.Command{Use: "shed"}
	root.AddCommand(&cobra.Command{Use: "status", Run: func(*cobra.Command, []string) {}})
	root.AddCommand(&cobra.Command{Use: "status", Run: func(*cobra.Command, []string) {}})

	err := completion.Validate(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, completion.ErrInvalidDescription))
}

func TestValidateAcceptsValidTree(t *testing.T) {
	require.NoError(t, completion.Validate(newTestTree()))
}
