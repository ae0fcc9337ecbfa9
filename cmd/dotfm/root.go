package dotfm

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotfm/pkg/commands"
	"github.com/arthur-debert/dotfm/pkg/config"
	"github.com/arthur-debert/dotfm/pkg/output"
	"github.com/arthur-debert/dotfm/pkg/paths"
	"github.com/arthur-debert/dotfm/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions hold the persistent flags of the root command
type globalOptions struct {
	verbosity  int
	path       string
	configFile string
}

// environment is everything a subcommand needs to run
type environment struct {
	config *config.Config
	paths  types.Pather
}

// load reads the configuration and resolves the dotfiles locations
func (g *globalOptions) load() (*environment, error) {
	configFile := g.configFile
	if configFile == "" {
		configFile = paths.ConfigFilePath()
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	p, err := paths.New(paths.Options{
		DotfilesRoot:   g.path,
		ConfiguredRoot: cfg.Dotfiles.Path,
		HomeDir:        cfg.Dotfiles.Home,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	log.Debug().
		Str("dotfiles_root", p.DotfilesRoot()).
		Str("home", p.HomeDir()).
		Str("config", configFile).
		Msg("Environment loaded")

	return &environment{config: cfg, paths: p}, nil
}

// commandOptions builds the options shared by the walking commands
func (e *environment) commandOptions() commands.Options {
	return commands.Options{
		DotfilesRoot: e.paths.DotfilesRoot(),
		HomeDir:      e.paths.HomeDir(),
		IgnoreFile:   e.config.Ignore.File,
		ExtraIgnores: e.config.Ignore.Patterns,
	}
}

// newRenderer resolves the --format flag against the command's output
func newRenderer(cmd *cobra.Command, format string) (*output.Renderer, error) {
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	w := cmd.OutOrStdout()
	if file, ok := w.(*os.File); ok {
		f = output.Resolve(f, file)
	}
	return output.NewRenderer(w, f), nil
}

// isHumanFormat reports whether summaries should accompany the output
func isHumanFormat(r *output.Renderer) bool {
	return r.Format() == output.FormatText || r.Format() == output.FormatTerminal
}

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
