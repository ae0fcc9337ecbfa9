// pkg/entry/entry_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem in temp directories, MemoryFS
// PURPOSE: Test link state queries and idempotent link/unlink

package entry_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotfm/pkg/entry"
	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/arthur-debert/dotfm/pkg/filesystem"
	"github.com/arthur-debert/dotfm/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEntry creates a dotfiles root holding relPath and an empty home
func setupEntry(t *testing.T, relPath string) (entry.Entry, string, string) {
	t.Helper()

	tempDir := t.TempDir()
	dotfiles := filepath.Join(tempDir, "dotfiles")
	home := filepath.Join(tempDir, "home")

	source := filepath.Join(dotfiles, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(source), 0755))
	require.NoError(t, os.WriteFile(source, []byte("set number\n"), 0644))
	require.NoError(t, os.MkdirAll(home, 0755))

	return entry.New(filesystem.NewOS(), dotfiles, home, relPath), dotfiles, home
}

func TestNew(t *testing.T) {
	e := entry.New(filesystem.NewOS(), "/dotfiles", "/home/me", ".config/nvim/init.lua")

	assert.Equal(t, ".config/nvim/init.lua", e.RelativePath())
	assert.Equal(t, "/dotfiles/.config/nvim/init.lua", e.Source())
	assert.Equal(t, "/home/me/.config/nvim/init.lua", e.Target())
	assert.Equal(t, "/home/me/.config/nvim/init.lua", e.DisplayTarget())
	assert.Equal(t, ".config/nvim/init.lua", e.String())
}

func TestIsLinked(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, e entry.Entry)
		want  bool
		state entry.State
	}{
		{
			name:  "missing_target",
			setup: func(t *testing.T, e entry.Entry) {},
			want:  false,
			state: entry.StateMissing,
		},
		{
			name: "link_to_source",
			setup: func(t *testing.T, e entry.Entry) {
				require.NoError(t, os.Symlink(e.Source(), e.Target()))
			},
			want:  true,
			state: entry.StateLinked,
		},
		{
			name: "link_elsewhere",
			setup: func(t *testing.T, e entry.Entry) {
				other := filepath.Join(t.TempDir(), "other")
				require.NoError(t, os.WriteFile(other, nil, 0644))
				require.NoError(t, os.Symlink(other, e.Target()))
			},
			want:  false,
			state: entry.StateConflict,
		},
		{
			name: "broken_link",
			setup: func(t *testing.T, e entry.Entry) {
				require.NoError(t, os.Symlink(filepath.Join(t.TempDir(), "gone"), e.Target()))
			},
			want:  false,
			state: entry.StateConflict,
		},
		{
			name: "regular_file",
			setup: func(t *testing.T, e entry.Entry) {
				require.NoError(t, os.WriteFile(e.Target(), []byte("foreign"), 0644))
			},
			want:  false,
			state: entry.StateConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := setupEntry(t, ".vimrc")
			tt.setup(t, e)

			assert.Equal(t, tt.want, e.IsLinked())
			assert.Equal(t, tt.state, e.State())
		})
	}
}

func TestLink_CreatesParentDirectories(t *testing.T) {
	e, _, home := setupEntry(t, ".config/git/config")

	require.NoError(t, e.Link())

	dest, err := os.Readlink(filepath.Join(home, ".config", "git", "config"))
	require.NoError(t, err)
	assert.Equal(t, e.Source(), dest)
	assert.True(t, e.IsLinked())
}

func TestLink_Idempotent(t *testing.T) {
	e, _, _ := setupEntry(t, ".vimrc")

	require.NoError(t, e.Link())
	require.NoError(t, e.Link())

	dest, err := os.Readlink(e.Target())
	require.NoError(t, err)
	assert.Equal(t, e.Source(), dest)
}

func TestLink_LeavesForeignFileInPlace(t *testing.T) {
	e, _, _ := setupEntry(t, ".vimrc")
	require.NoError(t, os.WriteFile(e.Target(), []byte("foreign"), 0644))

	require.NoError(t, e.Link())

	content, err := os.ReadFile(e.Target())
	require.NoError(t, err)
	assert.Equal(t, "foreign", string(content))
	assert.False(t, e.IsLinked())
}

func TestLink_TargetIsDirectory(t *testing.T) {
	e, _, _ := setupEntry(t, ".vimrc")
	require.NoError(t, os.MkdirAll(e.Target(), 0755))

	err := e.Link()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
	assert.Contains(t, err.Error(), e.Target())
	assert.Contains(t, err.Error(), e.Source())
}

func TestLink_ParentIsFile(t *testing.T) {
	e, _, home := setupEntry(t, ".config/git/config")
	require.NoError(t, os.WriteFile(filepath.Join(home, ".config"), nil, 0644))

	err := e.Link()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
	assert.Contains(t, err.Error(), filepath.Join(home, ".config", "git"))
}

func TestUnlink_MissingTarget(t *testing.T) {
	e, _, _ := setupEntry(t, ".vimrc")

	assert.NoError(t, e.Unlink())
	assert.NoError(t, e.Unlink())
}

func TestUnlink_RemovesWhateverIsThere(t *testing.T) {
	e, _, _ := setupEntry(t, ".vimrc")
	require.NoError(t, os.WriteFile(e.Target(), []byte("foreign"), 0644))

	require.NoError(t, e.Unlink())

	_, err := os.Lstat(e.Target())
	assert.True(t, os.IsNotExist(err))
}

func TestUnlink_NonEmptyDirectory(t *testing.T) {
	e, _, _ := setupEntry(t, ".vimrc")
	require.NoError(t, os.MkdirAll(filepath.Join(e.Target(), "inner"), 0755))

	err := e.Unlink()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkRemove))
	assert.Contains(t, err.Error(), e.Target())
}

func TestRoundTrip_KeepsSource(t *testing.T) {
	e, _, _ := setupEntry(t, ".vimrc")

	require.NoError(t, e.Link())
	assert.True(t, e.IsLinked())

	require.NoError(t, e.Unlink())
	assert.False(t, e.IsLinked())

	content, err := os.ReadFile(e.Source())
	require.NoError(t, err)
	assert.Equal(t, "set number\n", string(content))
}

func TestLink_MemoryFS(t *testing.T) {
	const (
		source = "/dotfiles/.config/git/config"
		target = "/home/me/.config/git/config"
	)

	tests := []struct {
		name      string
		home      testutil.Tree
		wantErr   errors.ErrorCode
		wantState entry.State
	}{
		{
			name:      "missing_target",
			home:      testutil.Tree{},
			wantState: entry.StateLinked,
		},
		{
			name:      "already_linked",
			home:      testutil.Tree{".config/git/config": testutil.SymlinkPrefix + source},
			wantState: entry.StateLinked,
		},
		{
			name:      "foreign_symlink",
			home:      testutil.Tree{".config/git/config": testutil.SymlinkPrefix + "/elsewhere"},
			wantState: entry.StateConflict,
		},
		{
			name:      "foreign_file",
			home:      testutil.Tree{".config/git/config": "mine"},
			wantState: entry.StateConflict,
		},
		{
			name:      "directory_target",
			home:      testutil.Tree{".config/git/config/": ""},
			wantErr:   errors.ErrSymlinkCreate,
			wantState: entry.StateConflict,
		},
		{
			name:      "parent_is_file",
			home:      testutil.Tree{".config/git": "file"},
			wantErr:   errors.ErrDirCreate,
			wantState: entry.StateMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := testutil.NewMemoryFS().
				Build(t, "/dotfiles", testutil.Tree{".config/git/config": "[user]"}).
				Build(t, "/home/me", tt.home)
			e := entry.New(mem, "/dotfiles", "/home/me", ".config/git/config")

			err := e.Link()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, e.State())
			if tt.wantState == entry.StateLinked {
				mem.AssertLinked(t, target, source)
			}
		})
	}
}

func TestLink_MemoryFS_SymlinkFailure(t *testing.T) {
	mem := testutil.NewMemoryFS().
		Build(t, "/dotfiles", testutil.Tree{".vimrc": ""}).
		FailOn("symlink", "/home/me/.vimrc", fs.ErrPermission)
	e := entry.New(mem, "/dotfiles", "/home/me", ".vimrc")

	err := e.Link()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, "/dotfiles/.vimrc", details["source"])
	assert.Equal(t, "/home/me/.vimrc", details["target"])
}

func TestUnlink_MemoryFS(t *testing.T) {
	mem := testutil.NewMemoryFS().Build(t, "/", testutil.Tree{
		"dotfiles/.vimrc": "",
		"dotfiles/.zshrc": "",
		"home/me/.vimrc":  testutil.SymlinkPrefix + "/dotfiles/.vimrc",
		"home/me/.zshrc":  testutil.SymlinkPrefix + "/dotfiles/.zshrc",
	}).FailOn("remove", "/home/me/.zshrc", fs.ErrPermission)

	vimrc := entry.New(mem, "/dotfiles", "/home/me", ".vimrc")
	require.NoError(t, vimrc.Unlink())
	mem.AssertMissing(t, "/home/me/.vimrc")
	require.NoError(t, vimrc.Unlink(), "second unlink is a no-op")

	zshrc := entry.New(mem, "/dotfiles", "/home/me", ".zshrc")
	err := zshrc.Unlink()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkRemove))
	assert.Equal(t, entry.StateLinked, zshrc.State())
}
