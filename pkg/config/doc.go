// Package config handles configuration management for dotfm.
// It loads, in increasing precedence, the embedded defaults, the user's
// TOML file and DOTFM_ environment variables.
package config
