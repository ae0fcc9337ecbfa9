// pkg/commands/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem in temp directories
// PURPOSE: Test list, status, link and clean over a dotfiles tree

package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotfm/pkg/commands"
	"github.com/arthur-debert/dotfm/pkg/entry"
	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/arthur-debert/dotfm/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDotfiles creates a dotfiles repository and an empty home directory
func setupDotfiles(t *testing.T, files ...string) commands.Options {
	t.Helper()

	tempDir := t.TempDir()
	opts := commands.Options{
		DotfilesRoot: filepath.Join(tempDir, "dotfiles"),
		HomeDir:      filepath.Join(tempDir, "home"),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(opts.DotfilesRoot, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(opts.DotfilesRoot, ".git", "HEAD"), nil, 0644))
	require.NoError(t, os.MkdirAll(opts.HomeDir, 0755))

	for _, f := range files {
		path := filepath.Join(opts.DotfilesRoot, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content of "+f), 0644))
	}
	return opts
}

func TestListFiles(t *testing.T) {
	opts := setupDotfiles(t, ".vimrc", ".must_be_ignored", ".dotfmignore", ".config/git/config")
	require.NoError(t, os.WriteFile(filepath.Join(opts.DotfilesRoot, ".dotfmignore"), []byte(".must_be_ignored\n"), 0644))

	result, err := commands.ListFiles(opts)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(".config", "git", "config"), ".vimrc"}, result.Files)
}

func TestListFiles_EmptyRepository(t *testing.T) {
	opts := setupDotfiles(t)

	result, err := commands.ListFiles(opts)
	require.NoError(t, err)
	assert.Empty(t, result.Files)
}

func TestListFiles_MissingRoot(t *testing.T) {
	opts := commands.Options{
		DotfilesRoot: filepath.Join(t.TempDir(), "missing"),
		HomeDir:      t.TempDir(),
	}

	_, err := commands.ListFiles(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), opts.DotfilesRoot)
}

func TestStatusFiles(t *testing.T) {
	opts := setupDotfiles(t, ".bashrc", ".vimrc", ".zshrc")

	require.NoError(t, os.Symlink(filepath.Join(opts.DotfilesRoot, ".vimrc"), filepath.Join(opts.HomeDir, ".vimrc")))
	require.NoError(t, os.WriteFile(filepath.Join(opts.HomeDir, ".zshrc"), []byte("foreign"), 0644))

	result, err := commands.StatusFiles(opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	assert.Equal(t, commands.FileStatus{
		Source: ".bashrc",
		Target: filepath.Join(opts.HomeDir, ".bashrc"),
		Linked: false,
		State:  entry.StateMissing,
	}, result.Files[0])
	assert.Equal(t, commands.FileStatus{
		Source: ".vimrc",
		Target: filepath.Join(opts.HomeDir, ".vimrc"),
		Linked: true,
		State:  entry.StateLinked,
	}, result.Files[1])
	assert.Equal(t, entry.StateConflict, result.Files[2].State)
	assert.False(t, result.Files[2].Linked)

	assert.Equal(t, 1, result.LinkedCount())
}

func TestLinkFiles(t *testing.T) {
	opts := setupDotfiles(t, ".vimrc", ".config/nvim/init.lua")

	result, err := commands.LinkFiles(commands.LinkFilesOptions{Options: opts})
	require.NoError(t, err)
	require.Len(t, result.Changes, 2)
	assert.Equal(t, 2, result.Count(entry.StateMissing))

	for _, rel := range []string{".vimrc", filepath.Join(".config", "nvim", "init.lua")} {
		dest, err := os.Readlink(filepath.Join(opts.HomeDir, rel))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(opts.DotfilesRoot, rel), dest)
	}

	status, err := commands.StatusFiles(opts)
	require.NoError(t, err)
	assert.Equal(t, 2, status.LinkedCount())
}

func TestLinkFiles_Idempotent(t *testing.T) {
	opts := setupDotfiles(t, ".vimrc")

	_, err := commands.LinkFiles(commands.LinkFilesOptions{Options: opts})
	require.NoError(t, err)

	result, err := commands.LinkFiles(commands.LinkFilesOptions{Options: opts})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count(entry.StateLinked))
	assert.Equal(t, 0, result.Count(entry.StateMissing))
}

func TestLinkFiles_DryRun(t *testing.T) {
	opts := setupDotfiles(t, ".vimrc")

	result, err := commands.LinkFiles(commands.LinkFilesOptions{Options: opts, DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	require.Len(t, result.Changes, 1)

	_, err = os.Lstat(filepath.Join(opts.HomeDir, ".vimrc"))
	assert.True(t, os.IsNotExist(err))
}

func TestLinkFiles_StopsAtFirstError(t *testing.T) {
	opts := setupDotfiles(t, "a", "b", "c")
	require.NoError(t, os.MkdirAll(filepath.Join(opts.HomeDir, "b"), 0755))

	result, err := commands.LinkFiles(commands.LinkFilesOptions{Options: opts})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
	assert.Contains(t, err.Error(), filepath.Join(opts.HomeDir, "b"))

	require.NotNil(t, result)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, filepath.Join(opts.HomeDir, "a"), result.Changes[0].Target)

	_, err = os.Lstat(filepath.Join(opts.HomeDir, "c"))
	assert.True(t, os.IsNotExist(err), "entries after the failure are not processed")
}

func TestCleanFiles(t *testing.T) {
	opts := setupDotfiles(t, ".vimrc", ".tmux.conf")

	_, err := commands.LinkFiles(commands.LinkFilesOptions{Options: opts})
	require.NoError(t, err)

	result, err := commands.CleanFiles(commands.CleanFilesOptions{Options: opts})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count(entry.StateLinked))

	for _, rel := range []string{".vimrc", ".tmux.conf"} {
		_, err := os.Lstat(filepath.Join(opts.HomeDir, rel))
		assert.True(t, os.IsNotExist(err))

		content, err := os.ReadFile(filepath.Join(opts.DotfilesRoot, rel))
		require.NoError(t, err)
		assert.Equal(t, "content of "+rel, string(content))
	}

	// Cleaning again finds nothing to remove and still succeeds
	result, err = commands.CleanFiles(commands.CleanFilesOptions{Options: opts})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count(entry.StateMissing))
}

func TestCleanFiles_DryRun(t *testing.T) {
	opts := setupDotfiles(t, ".vimrc")
	_, err := commands.LinkFiles(commands.LinkFilesOptions{Options: opts})
	require.NoError(t, err)

	_, err = commands.CleanFiles(commands.CleanFilesOptions{Options: opts, DryRun: true})
	require.NoError(t, err)

	dest, err := os.Readlink(filepath.Join(opts.HomeDir, ".vimrc"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.DotfilesRoot, ".vimrc"), dest)
}

func TestCleanFiles_StopsAtFirstError(t *testing.T) {
	opts := setupDotfiles(t, "a", "b")
	require.NoError(t, os.MkdirAll(filepath.Join(opts.HomeDir, "a", "inner"), 0755))

	result, err := commands.CleanFiles(commands.CleanFilesOptions{Options: opts})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unlink "+filepath.Join(opts.HomeDir, "a"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkRemove))
	assert.Empty(t, result.Changes)
}

func TestLinkAndClean_MemoryFS(t *testing.T) {
	mem := testutil.NewMemoryFS().
		Build(t, "/dotfiles", testutil.Tree{
			".git/HEAD":       "",
			".vimrc":          "",
			".local/bin/tool": "",
			".zshrc":          "",
		}).
		Build(t, "/home/me", testutil.Tree{".zshrc": "hand written"})

	opts := commands.Options{
		DotfilesRoot: "/dotfiles",
		HomeDir:      "/home/me",
		ExtraIgnores: []string{".local/"},
		FS:           mem,
	}

	linked, err := commands.LinkFiles(commands.LinkFilesOptions{Options: opts})
	require.NoError(t, err)
	assert.Equal(t, 1, linked.Count(entry.StateMissing))
	assert.Equal(t, 1, linked.Count(entry.StateConflict))
	mem.AssertLinked(t, "/home/me/.vimrc", "/dotfiles/.vimrc")
	mem.AssertMissing(t, "/home/me/.local")

	content, err := mem.ReadFile("/home/me/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, "hand written", string(content), "link never overwrites")

	status, err := commands.StatusFiles(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, status.LinkedCount())

	cleaned, err := commands.CleanFiles(commands.CleanFilesOptions{Options: opts})
	require.NoError(t, err)
	assert.Equal(t, 1, cleaned.Count(entry.StateLinked))
	assert.Equal(t, 1, cleaned.Count(entry.StateConflict))
	mem.AssertMissing(t, "/home/me/.vimrc")
	mem.AssertMissing(t, "/home/me/.zshrc")
}
