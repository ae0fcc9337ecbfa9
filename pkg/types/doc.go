// Package types defines the interfaces shared across dotfm packages:
// the filesystem abstraction used by the walker and link entries, and the
// path provider used by commands.
package types
