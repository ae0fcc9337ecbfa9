// Package paths resolves the two directories dotfm works between: the
// dotfiles root holding the managed files and the home directory receiving
// the links. It also locates dotfm's own XDG directories.
//
// # Dotfiles root
//
// Resolved in order:
//
//   - an explicit path (the --path flag)
//   - DOTFM_PATH, then DOTFILES_ROOT
//   - the configured path (dotfiles.path in config.toml)
//   - ~/dotfiles
//
// # Home directory
//
// An explicit or configured home wins, otherwise $HOME, otherwise
// os.UserHomeDir.
//
// Every returned path is absolute with a leading ~ expanded.
package paths
