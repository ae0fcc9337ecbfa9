package testutil

import (
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// SymlinkPrefix marks Tree values that are symlinks
const SymlinkPrefix = "-> "

// Tree describes files to create: a path ending in "/" is a directory, a
// value starting with SymlinkPrefix is a symlink to the rest of the value,
// anything else is file content.
type Tree map[string]string

// Build creates tree below root, adding parent directories as needed
func (m *MemoryFS) Build(t *testing.T, root string, tree Tree) *MemoryFS {
	t.Helper()
	for rel, content := range tree {
		p := path.Join(root, rel)
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, m.MkdirAll(p, 0755))
			continue
		}
		require.NoError(t, m.MkdirAll(path.Dir(p), 0755))
		if target, ok := strings.CutPrefix(content, SymlinkPrefix); ok {
			require.NoError(t, m.Symlink(target, p))
			continue
		}
		require.NoError(t, m.WriteFile(p, []byte(content), 0644))
	}
	return m
}

// AssertLinked checks that link is a symlink pointing at target
func (m *MemoryFS) AssertLinked(t *testing.T, link, target string) {
	t.Helper()
	got, err := m.Readlink(link)
	require.NoError(t, err, "%s is not a symlink", link)
	require.Equal(t, target, got, "%s points elsewhere", link)
}

// AssertMissing checks that nothing exists at name
func (m *MemoryFS) AssertMissing(t *testing.T, name string) {
	t.Helper()
	_, err := m.Lstat(name)
	require.Error(t, err, "%s should not exist", name)
}
