package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "DOTFM_"

// Config is the effective dotfm configuration
type Config struct {
	Dotfiles DotfilesConfig `koanf:"dotfiles" toml:"dotfiles"`
	Ignore   IgnoreConfig   `koanf:"ignore" toml:"ignore"`
	Git      GitConfig      `koanf:"git" toml:"git"`
}

// DotfilesConfig locates the repository and the link destination
type DotfilesConfig struct {
	Path string `koanf:"path" toml:"path"`
	Home string `koanf:"home" toml:"home"`
}

// IgnoreConfig controls which files the walk excludes
type IgnoreConfig struct {
	File     string   `koanf:"file" toml:"file"`
	Patterns []string `koanf:"patterns" toml:"patterns"`
}

// GitConfig drives clone and sync
type GitConfig struct {
	Host   string `koanf:"host" toml:"host"`
	Remote string `koanf:"remote" toml:"remote"`
	Branch string `koanf:"branch" toml:"branch"`
}

// Load reads the embedded defaults, then configFile when it exists, then
// DOTFM_ environment variables. DOTFM_GIT_BRANCH sets git.branch.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configFile).
					WithDetail("path", configFile)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", configFile).
				WithDetail("path", configFile)
		}
	}

	// 3. Env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// Dump renders cfg as TOML
func Dump(cfg *Config) (string, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return string(data), nil
}
