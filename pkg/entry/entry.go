// Package entry models one managed file: the pair formed by its location in
// the dotfiles repository and the location of its link in the home
// directory.
//
// An Entry holds copies of every path it needs and never caches filesystem
// state; each query re-reads the filesystem.
package entry

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/arthur-debert/dotfm/pkg/logging"
	"github.com/arthur-debert/dotfm/pkg/types"
)

// State describes what currently occupies an entry's target path
type State string

const (
	// StateLinked means the target is a symlink pointing at the source
	StateLinked State = "linked"
	// StateMissing means nothing exists at the target path
	StateMissing State = "missing"
	// StateConflict means something else occupies the target path
	StateConflict State = "conflict"
)

// Entry pairs a managed file with the link that mirrors it
type Entry struct {
	fs           types.FS
	relativePath string
	source       string
	target       string
}

// New builds the entry for relativePath between sourceRoot and destRoot
func New(filesystem types.FS, sourceRoot, destRoot, relativePath string) Entry {
	return Entry{
		fs:           filesystem,
		relativePath: relativePath,
		source:       filepath.Join(sourceRoot, relativePath),
		target:       filepath.Join(destRoot, relativePath),
	}
}

// RelativePath returns the path relative to the dotfiles root
func (e Entry) RelativePath() string {
	return e.relativePath
}

// Source returns the absolute path of the managed file
func (e Entry) Source() string {
	return e.source
}

// Target returns the absolute path of the link
func (e Entry) Target() string {
	return e.target
}

// String returns the relative path, which is what listings display
func (e Entry) String() string {
	return e.relativePath
}

// DisplayTarget returns the target path for display
func (e Entry) DisplayTarget() string {
	return e.target
}

// IsLinked reports whether the target is a symlink whose contents equal the
// source path. Missing targets, broken links and links pointing elsewhere
// are all simply not linked.
func (e Entry) IsLinked() bool {
	dest, err := e.fs.Readlink(e.target)
	if err != nil {
		return false
	}
	return dest == e.source
}

// State classifies the target path
func (e Entry) State() State {
	if e.IsLinked() {
		return StateLinked
	}
	if _, err := e.fs.Lstat(e.target); err != nil {
		return StateMissing
	}
	return StateConflict
}

// Link creates the target's parent directories and a symlink at the target
// pointing at the source. An existing target is left untouched and is not an
// error, unless it is a directory.
func (e Entry) Link() error {
	logger := logging.GetLogger("entry")

	dir := filepath.Dir(e.target)
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}

	err := e.fs.Symlink(e.source, e.target)
	if err == nil {
		logger.Debug().Str("source", e.source).Str("target", e.target).Msg("Created symlink")
		return nil
	}
	if !stderrors.Is(err, fs.ErrExist) {
		return e.linkError(err)
	}

	info, statErr := e.fs.Lstat(e.target)
	if statErr == nil && info.IsDir() {
		return e.linkError(err)
	}
	if !e.IsLinked() {
		logger.Warn().Str("target", e.target).Msg("Target already exists and is not managed, leaving it in place")
	} else {
		logger.Trace().Str("target", e.target).Msg("Already linked")
	}
	return nil
}

func (e Entry) linkError(err error) error {
	return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s to %s", e.target, e.source).
		WithDetail("source", e.source).
		WithDetail("target", e.target)
}

// Unlink removes whatever sits at the target path. A missing target is not
// an error. The target is not checked against the source first: callers only
// reach entries produced by a walk of the dotfiles root.
func (e Entry) Unlink() error {
	err := e.fs.Remove(e.target)
	if err == nil {
		logger := logging.GetLogger("entry")
		logger.Debug().Str("target", e.target).Msg("Removed link")
		return nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errors.Wrapf(err, errors.ErrSymlinkRemove, "failed to unlink %s", e.target).
		WithDetail("target", e.target)
}
