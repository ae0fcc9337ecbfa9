package testutil

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/arthur-debert/dotfm/pkg/types"
)

// maxLinkHops bounds symlink resolution so cycles terminate
const maxLinkHops = 40

type nodeKind int

const (
	kindDir nodeKind = iota
	kindFile
	kindSymlink
)

type memNode struct {
	kind    nodeKind
	perm    fs.FileMode
	data    []byte
	target  string
	modTime time.Time
}

func (n *memNode) mode() fs.FileMode {
	switch n.kind {
	case kindDir:
		return fs.ModeDir | n.perm
	case kindSymlink:
		return fs.ModeSymlink | 0777
	}
	return n.perm
}

// MemoryFS is a types.FS kept entirely in memory. Paths are absolute and
// slash separated; relative paths are taken from the root.
type MemoryFS struct {
	mu     sync.RWMutex
	nodes  map[string]*memNode
	faults map[string]error
}

var _ types.FS = (*MemoryFS)(nil)

// NewMemoryFS returns a filesystem holding only the root directory
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		nodes: map[string]*memNode{
			"/": {kind: kindDir, perm: 0755, modTime: time.Now()},
		},
		faults: make(map[string]error),
	}
}

func clean(name string) string {
	return path.Clean("/" + name)
}

func faultKey(op, name string) string {
	return op + " " + clean(name)
}

// FailOn makes operation op ("stat", "lstat", "readfile", "writefile",
// "mkdirall", "readdir", "symlink", "readlink" or "remove") on name return
// err.
func (m *MemoryFS) FailOn(op, name string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[faultKey(op, name)] = err
	return m
}

func (m *MemoryFS) fault(op, name string) error {
	if err, ok := m.faults[faultKey(op, name)]; ok {
		return &fs.PathError{Op: op, Path: name, Err: err}
	}
	return nil
}

// resolve follows symlinks in the final component of name
func (m *MemoryFS) resolve(name string) (string, *memNode, error) {
	p := clean(name)
	for hops := 0; hops < maxLinkHops; hops++ {
		n, ok := m.nodes[p]
		if !ok {
			return p, nil, fs.ErrNotExist
		}
		if n.kind != kindSymlink {
			return p, n, nil
		}
		if path.IsAbs(n.target) {
			p = clean(n.target)
		} else {
			p = clean(path.Join(path.Dir(p), n.target))
		}
	}
	return p, nil, syscall.ELOOP
}

// parentDir checks that the parent of p exists and is a directory
func (m *MemoryFS) parentDir(p string) error {
	_, parent, err := m.resolve(path.Dir(p))
	if err != nil {
		return err
	}
	if parent.kind != kindDir {
		return syscall.ENOTDIR
	}
	return nil
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fault("stat", name); err != nil {
		return nil, err
	}
	_, n, err := m.resolve(name)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	return &memInfo{name: path.Base(clean(name)), node: n}, nil
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fault("lstat", name); err != nil {
		return nil, err
	}
	p := clean(name)
	n, ok := m.nodes[p]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	return &memInfo{name: path.Base(p), node: n}, nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fault("readfile", name); err != nil {
		return nil, err
	}
	_, n, err := m.resolve(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if n.kind == kindDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: syscall.EISDIR}
	}
	return append([]byte(nil), n.data...), nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault("writefile", name); err != nil {
		return err
	}
	p, n, err := m.resolve(name)
	if err == nil {
		if n.kind == kindDir {
			return &fs.PathError{Op: "open", Path: name, Err: syscall.EISDIR}
		}
		n.data = append([]byte(nil), data...)
		n.modTime = time.Now()
		return nil
	}
	if err := m.parentDir(p); err != nil {
		return &fs.PathError{Op: "open", Path: name, Err: err}
	}
	m.nodes[p] = &memNode{kind: kindFile, perm: perm.Perm(), data: append([]byte(nil), data...), modTime: time.Now()}
	return nil
}

func (m *MemoryFS) MkdirAll(name string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault("mkdirall", name); err != nil {
		return err
	}

	current := "/"
	for _, part := range strings.Split(clean(name), "/") {
		if part == "" {
			continue
		}
		current = path.Join(current, part)
		if _, n, err := m.resolve(current); err == nil {
			if n.kind != kindDir {
				return &fs.PathError{Op: "mkdir", Path: current, Err: syscall.ENOTDIR}
			}
			continue
		}
		if _, ok := m.nodes[current]; ok {
			// dangling symlink
			return &fs.PathError{Op: "mkdir", Path: current, Err: fs.ErrExist}
		}
		m.nodes[current] = &memNode{kind: kindDir, perm: perm.Perm(), modTime: time.Now()}
	}
	return nil
}

// ReadDir lists the children of name sorted by file name
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fault("readdir", name); err != nil {
		return nil, err
	}
	dir, n, err := m.resolve(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if n.kind != kindDir {
		return nil, &fs.PathError{Op: "readdirent", Path: name, Err: syscall.ENOTDIR}
	}

	var entries []fs.DirEntry
	for p, child := range m.nodes {
		if p != "/" && path.Dir(p) == dir {
			entries = append(entries, fs.FileInfoToDirEntry(&memInfo{name: path.Base(p), node: child}))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Symlink creates newname pointing at oldname without checking oldname
func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault("symlink", newname); err != nil {
		return err
	}
	p := clean(newname)
	if _, ok := m.nodes[p]; ok {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrExist}
	}
	if err := m.parentDir(p); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	m.nodes[p] = &memNode{kind: kindSymlink, target: oldname, modTime: time.Now()}
	return nil
}

func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fault("readlink", name); err != nil {
		return "", err
	}
	n, ok := m.nodes[clean(name)]
	if !ok {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrNotExist}
	}
	if n.kind != kindSymlink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: syscall.EINVAL}
	}
	return n.target, nil
}

// Remove deletes a file, a symlink or an empty directory
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault("remove", name); err != nil {
		return err
	}
	p := clean(name)
	n, ok := m.nodes[p]
	if !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	if n.kind == kindDir {
		for other := range m.nodes {
			if other != p && path.Dir(other) == p {
				return &fs.PathError{Op: "remove", Path: name, Err: syscall.ENOTEMPTY}
			}
		}
	}
	delete(m.nodes, p)
	return nil
}

type memInfo struct {
	name string
	node *memNode
}

func (i *memInfo) Name() string       { return i.name }
func (i *memInfo) Size() int64        { return int64(len(i.node.data)) }
func (i *memInfo) Mode() fs.FileMode  { return i.node.mode() }
func (i *memInfo) ModTime() time.Time { return i.node.modTime }
func (i *memInfo) IsDir() bool        { return i.node.kind == kindDir }
func (i *memInfo) Sys() interface{}   { return nil }
