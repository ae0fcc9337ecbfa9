// Package testutil provides test infrastructure shared by dotfm packages.
//
// MemoryFS is an in-memory types.FS with symlink support and per-operation
// error injection. It lets walk, entry and command tests describe a whole
// dotfiles repository and home directory inline without touching disk.
package testutil
