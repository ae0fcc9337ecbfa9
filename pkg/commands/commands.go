// Package commands implements the operations behind the dotfm subcommands
// that drive the traversal-and-linking engine: list, status, link and clean.
//
// Each operation builds a fresh walker over the dotfiles root, iterates the
// managed files and acts on every entry. Link and Clean stop at the first
// error; Status only fails when the walk itself fails.
package commands

import (
	"github.com/arthur-debert/dotfm/pkg/filesystem"
	"github.com/arthur-debert/dotfm/pkg/types"
	"github.com/arthur-debert/dotfm/pkg/walk"
)

// Options are shared by every command
type Options struct {
	// DotfilesRoot is the repository holding the managed files.
	DotfilesRoot string
	// HomeDir is the directory receiving the links.
	HomeDir string
	// IgnoreFile overrides the per-directory ignore file name.
	IgnoreFile string
	// ExtraIgnores are root-level patterns from configuration.
	ExtraIgnores []string
	// FS defaults to the OS filesystem.
	FS types.FS
}

func (o Options) filesystem() types.FS {
	if o.FS != nil {
		return o.FS
	}
	return filesystem.NewOS()
}

// newWalker builds a walker for a single traversal
func newWalker(opts Options) (*walk.Walker, error) {
	return walk.New(opts.filesystem(), opts.DotfilesRoot, opts.HomeDir,
		walk.WithIgnoreFileName(opts.IgnoreFile),
		walk.WithExtraIgnores(opts.ExtraIgnores),
	)
}
