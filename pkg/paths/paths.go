package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/arthur-debert/dotfm/pkg/types"
)

var _ types.Pather = (*Paths)(nil)

// Environment variable names
const (
	// EnvDotfmPath is the primary environment variable for the dotfiles location
	EnvDotfmPath = "DOTFM_PATH"

	// EnvDotfilesRoot is honoured as a fallback, matching other dotfiles tools
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// DefaultDotfilesDir is the default directory name for dotfiles
	DefaultDotfilesDir = "dotfiles"

	// DotfmDirName is the directory name for dotfm-specific files
	DotfmDirName = "dotfm"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"
)

// Options are the externally supplied locations, any of which may be empty
type Options struct {
	// DotfilesRoot comes from the command line and wins over everything.
	DotfilesRoot string
	// ConfiguredRoot comes from the configuration file.
	ConfiguredRoot string
	// HomeDir overrides the home directory.
	HomeDir string
}

// Paths holds resolved dotfm locations
type Paths struct {
	dotfilesRoot string
	homeDir      string
}

// New resolves the dotfiles root and home directory
func New(opts Options) (*Paths, error) {
	home, err := resolveHome(opts.HomeDir)
	if err != nil {
		return nil, err
	}

	root := firstNonEmpty(
		opts.DotfilesRoot,
		os.Getenv(EnvDotfmPath),
		os.Getenv(EnvDotfilesRoot),
		opts.ConfiguredRoot,
	)
	if root == "" {
		root = filepath.Join(home, DefaultDotfilesDir)
	}

	absRoot, err := filepath.Abs(ExpandHome(root))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for dotfiles root %s", root)
	}

	return &Paths{dotfilesRoot: absRoot, homeDir: home}, nil
}

// DotfilesRoot returns the root directory for dotfiles
func (p *Paths) DotfilesRoot() string {
	return p.dotfilesRoot
}

// HomeDir returns the directory links are created in
func (p *Paths) HomeDir() string {
	return p.homeDir
}

// ConfigDir returns the XDG config directory for dotfm
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, DotfmDirName)
}

// ConfigFilePath returns the location of the user configuration file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

func resolveHome(explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(ExpandHome(explicit))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for home %s", explicit)
		}
		return abs, nil
	}
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return home, nil
}

// GetHomeDirectory returns $HOME, falling back to os.UserHomeDir
func GetHomeDirectory() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNotFound, "failed to determine home directory")
	}
	return home, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
