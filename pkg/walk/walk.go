// Package walk enumerates the managed files of a dotfiles repository.
//
// The walk is depth-first with siblings sorted by name, so entries come out
// in ascending path order and repeated walks of an unchanged tree yield the
// same sequence. Directories are descended into but never yielded, symlinks
// and other non-regular files are skipped.
//
// Exclusions, from strongest to weakest:
//
//   - the .git directory and the ignore file at the root, always;
//   - ignore files found in any directory, using gitignore syntax and
//     applying to that directory and its descendants, deeper files taking
//     precedence over shallower ones. Within one directory .dotfmignore (or
//     the configured name) beats .ignore, which beats .gitignore;
//     .gitignore is only read when the root sits inside a git repository;
//   - extra root-level patterns supplied by configuration;
//   - .git/info/exclude at the root, for git repositories.
//
// Hidden files are managed like any other file.
package walk

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/arthur-debert/dotfm/pkg/entry"
	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/arthur-debert/dotfm/pkg/logging"
	"github.com/arthur-debert/dotfm/pkg/types"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/rs/zerolog"
)

const (
	// DefaultIgnoreFile is the name of the per-directory ignore file
	DefaultIgnoreFile = ".dotfmignore"

	// GitDir is the version-control metadata directory excluded at the root
	GitDir = ".git"

	// GitIgnoreFile is honoured when the root is inside a git repository
	GitIgnoreFile = ".gitignore"

	// GenericIgnoreFile is honoured everywhere, below the dotfm ignore file
	GenericIgnoreFile = ".ignore"

	commentPrefix = "#"
)

// Option configures a Walker
type Option func(*Walker)

// WithIgnoreFileName overrides the name of the per-directory ignore file
func WithIgnoreFileName(name string) Option {
	return func(w *Walker) {
		if name != "" {
			w.ignoreFile = name
		}
	}
}

// WithExtraIgnores adds root-level patterns evaluated before any ignore file
func WithExtraIgnores(patterns []string) Option {
	return func(w *Walker) {
		w.extraIgnores = append(w.extraIgnores, patterns...)
	}
}

// frame is one directory being listed
type frame struct {
	segments []string
	matcher  gitignore.Matcher
	patterns []gitignore.Pattern
	children []fs.DirEntry
	next     int
}

// Walker yields the managed files under a dotfiles root as link entries.
// It is used like bufio.Scanner:
//
//	for w.Next() {
//		e := w.Entry()
//	}
//	if err := w.Err(); err != nil { ... }
//
// A Walker is single use; build a new one for every traversal.
type Walker struct {
	fs           types.FS
	sourceRoot   string
	destRoot     string
	ignoreFile   string
	extraIgnores []string

	gitRepo bool
	logger  zerolog.Logger
	started bool
	stack   []*frame
	current entry.Entry
	err     error
}

// New creates a Walker over sourceRoot producing entries targeting destRoot.
// sourceRoot must be an existing directory.
func New(filesystem types.FS, sourceRoot, destRoot string, opts ...Option) (*Walker, error) {
	info, err := filesystem.Stat(sourceRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "failed to read dotfiles root %s", sourceRoot).
			WithDetail("path", sourceRoot)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotADirectory, "dotfiles root %s is not a directory", sourceRoot).
			WithDetail("path", sourceRoot)
	}

	w := &Walker{
		fs:         filesystem,
		sourceRoot: sourceRoot,
		destRoot:   destRoot,
		ignoreFile: DefaultIgnoreFile,
		logger:     logging.GetLogger("walk"),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.gitRepo = insideGitRepo(filesystem, sourceRoot)
	return w, nil
}

// insideGitRepo reports whether dir or one of its ancestors holds a .git entry
func insideGitRepo(filesystem types.FS, dir string) bool {
	dir = filepath.Clean(dir)
	for {
		if _, err := filesystem.Stat(filepath.Join(dir, GitDir)); err == nil {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// Next advances to the next managed file. It returns false when the walk is
// over or has failed; check Err to tell them apart.
func (w *Walker) Next() bool {
	if w.err != nil {
		return false
	}
	if !w.started {
		w.started = true
		root, err := w.openDir(nil, w.rootPatterns())
		if err != nil {
			w.err = err
			return false
		}
		w.stack = append(w.stack, root)
	}

	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		if top.next >= len(top.children) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		child := top.children[top.next]
		top.next++

		segments := make([]string, len(top.segments)+1)
		copy(segments, top.segments)
		segments[len(top.segments)] = child.Name()
		relPath := filepath.Join(segments...)

		if w.isBuiltinExcluded(segments) {
			w.logger.Trace().Str("path", relPath).Msg("Skipping built-in exclusion")
			continue
		}
		if child.Type()&fs.ModeSymlink != 0 {
			w.logger.Trace().Str("path", relPath).Msg("Skipping symlink")
			continue
		}
		isDir := child.IsDir()
		if top.matcher.Match(segments, isDir) {
			w.logger.Trace().Str("path", relPath).Bool("dir", isDir).Msg("Skipping ignored path")
			continue
		}
		if isDir {
			sub, err := w.openDir(segments, top.patterns)
			if err != nil {
				w.err = err
				w.stack = nil
				return false
			}
			w.stack = append(w.stack, sub)
			continue
		}
		if !child.Type().IsRegular() {
			w.logger.Trace().Str("path", relPath).Msg("Skipping non-regular file")
			continue
		}

		w.current = entry.New(w.fs, w.sourceRoot, w.destRoot, relPath)
		return true
	}
	return false
}

// Entry returns the entry produced by the last successful call to Next
func (w *Walker) Entry() entry.Entry {
	return w.current
}

// Err returns the error that stopped the walk, if any
func (w *Walker) Err() error {
	return w.err
}

// All drains the walker, stopping at the first error
func (w *Walker) All() ([]entry.Entry, error) {
	var entries []entry.Entry
	for w.Next() {
		entries = append(entries, w.Entry())
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (w *Walker) isBuiltinExcluded(segments []string) bool {
	if len(segments) != 1 {
		return false
	}
	return segments[0] == GitDir || segments[0] == w.ignoreFile
}

func (w *Walker) rootPatterns() []gitignore.Pattern {
	var patterns []gitignore.Pattern
	if w.gitRepo {
		patterns = append(patterns, w.readExcludeFile()...)
	}
	for _, line := range w.extraIgnores {
		if p := parseLine(line, nil); p != nil {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// openDir lists the directory at segments and stacks its ignore file on top
// of the inherited patterns
func (w *Walker) openDir(segments []string, inherited []gitignore.Pattern) (*frame, error) {
	dir := filepath.Join(append([]string{w.sourceRoot}, segments...)...)

	children, err := w.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrWalk, "failed to read directory %s", dir).
			WithDetail("path", dir)
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name() < children[j].Name()
	})

	var own []gitignore.Pattern
	for _, name := range w.ignoreFileNames() {
		patterns, err := w.readIgnoreFile(filepath.Join(dir, name), segments)
		if err != nil {
			return nil, err
		}
		own = append(own, patterns...)
	}

	patterns := make([]gitignore.Pattern, 0, len(inherited)+len(own))
	patterns = append(patterns, inherited...)
	patterns = append(patterns, own...)

	return &frame{
		segments: segments,
		matcher:  gitignore.NewMatcher(patterns),
		patterns: patterns,
		children: children,
	}, nil
}

// ignoreFileNames lists the per-directory ignore files from weakest to
// strongest. Later patterns win in a gitignore matcher.
func (w *Walker) ignoreFileNames() []string {
	var names []string
	if w.gitRepo && w.ignoreFile != GitIgnoreFile {
		names = append(names, GitIgnoreFile)
	}
	if w.ignoreFile != GenericIgnoreFile {
		names = append(names, GenericIgnoreFile)
	}
	return append(names, w.ignoreFile)
}

// readExcludeFile loads .git/info/exclude as root-scoped patterns. An
// unreadable exclude file is skipped, as git does.
func (w *Walker) readExcludeFile() []gitignore.Pattern {
	path := filepath.Join(w.sourceRoot, GitDir, "info", "exclude")
	data, err := w.fs.ReadFile(path)
	if err != nil {
		if !isAbsent(err) {
			w.logger.Debug().Err(err).Str("path", path).Msg("Skipping unreadable exclude file")
		}
		return nil
	}
	return parseLines(string(data), nil)
}

func (w *Walker) readIgnoreFile(path string, segments []string) ([]gitignore.Pattern, error) {
	data, err := w.fs.ReadFile(path)
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIgnoreRead, "failed to read ignore file %s", path).
			WithDetail("path", path)
	}

	patterns := parseLines(string(data), segments)
	w.logger.Debug().Str("path", path).Int("patterns", len(patterns)).Msg("Loaded ignore file")
	return patterns, nil
}

func isAbsent(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) ||
		stderrors.Is(err, syscall.ENOTDIR) ||
		stderrors.Is(err, syscall.EISDIR)
}

func parseLines(data string, domain []string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(data, "\n") {
		if p := parseLine(line, domain); p != nil {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// parseLine turns one ignore-file line into a pattern scoped to domain.
// Blank lines and comments yield nil.
func parseLine(line string, domain []string) gitignore.Pattern {
	line = strings.TrimSuffix(line, "\r")
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
		return nil
	}
	return gitignore.ParsePattern(line, domain)
}
