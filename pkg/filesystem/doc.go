// Package filesystem provides filesystem implementations for dotfm.
//
// This package contains the OS-backed implementation of the types.FS
// interface used by the walker, link entries and commands.
package filesystem
