package dotfm

import (
	"fmt"

	"github.com/arthur-debert/dotfm/internal/version"
	"github.com/arthur-debert/dotfm/pkg/commands"
	"github.com/arthur-debert/dotfm/pkg/config"
	"github.com/arthur-debert/dotfm/pkg/editor"
	"github.com/arthur-debert/dotfm/pkg/entry"
	"github.com/arthur-debert/dotfm/pkg/git"
	"github.com/arthur-debert/dotfm/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotfm",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&g.path, "path", "p", "", MsgFlagPath)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "repo", Title: "REPOSITORY:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetHelpCommandGroupID("misc")
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newLinkCmd(g))
	rootCmd.AddCommand(newCleanCmd(g))
	rootCmd.AddCommand(newCloneCmd(g))
	rootCmd.AddCommand(newGitCmd(g))
	rootCmd.AddCommand(newEditCmd(g))
	rootCmd.AddCommand(newCommitCmd(g))
	rootCmd.AddCommand(newSyncCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newListCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.load()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, format)
			if err != nil {
				return err
			}

			result, err := commands.ListFiles(env.commandOptions())
			if err != nil {
				return fmt.Errorf(MsgErrListFiles, err)
			}
			return renderer.RenderList(result)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	return cmd
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.load()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, format)
			if err != nil {
				return err
			}

			result, err := commands.StatusFiles(env.commandOptions())
			if err != nil {
				return fmt.Errorf(MsgErrStatus, err)
			}
			return renderer.RenderStatus(result)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	return cmd
}

func newLinkCmd(g *globalOptions) *cobra.Command {
	var (
		format string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.load()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, format)
			if err != nil {
				return err
			}

			log.Info().
				Str("dotfiles_root", env.paths.DotfilesRoot()).
				Bool("dry_run", dryRun).
				Msg("Linking dotfiles")

			result, runErr := commands.LinkFiles(commands.LinkFilesOptions{
				Options: env.commandOptions(),
				DryRun:  dryRun,
			})
			if result != nil {
				if err := renderer.RenderChanges(result, MsgVerbLink, entry.StateMissing); err != nil {
					return err
				}
			}
			if runErr != nil {
				return fmt.Errorf(MsgErrLinkFiles, runErr)
			}

			if isHumanFormat(renderer) {
				out := cmd.OutOrStdout()
				if n := result.Count(entry.StateMissing); n == 0 {
					printf(out, "%s\n", MsgNothingToLink)
				} else if !dryRun {
					printf(out, MsgLinkSummary, n)
				}
				if dryRun {
					printf(out, "%s\n", MsgDryRunNotice)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newCleanCmd(g *globalOptions) *cobra.Command {
	var (
		format string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "clean",
		Short:   MsgCleanShort,
		Long:    MsgCleanLong,
		Example: MsgCleanExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.load()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, format)
			if err != nil {
				return err
			}

			log.Info().
				Str("dotfiles_root", env.paths.DotfilesRoot()).
				Bool("dry_run", dryRun).
				Msg("Cleaning links")

			result, runErr := commands.CleanFiles(commands.CleanFilesOptions{
				Options: env.commandOptions(),
				DryRun:  dryRun,
			})
			if result != nil {
				if err := renderer.RenderChanges(result, MsgVerbUnlink, entry.StateLinked, entry.StateConflict); err != nil {
					return err
				}
			}
			if runErr != nil {
				return fmt.Errorf(MsgErrCleanFiles, runErr)
			}

			if isHumanFormat(renderer) {
				out := cmd.OutOrStdout()
				if n := result.Count(entry.StateLinked) + result.Count(entry.StateConflict); n == 0 {
					printf(out, "%s\n", MsgNothingToClean)
				} else if !dryRun {
					printf(out, MsgCleanSummary, n)
				}
				if dryRun {
					printf(out, "%s\n", MsgDryRunNotice)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newCloneCmd(g *globalOptions) *cobra.Command {
	var shallow bool

	cmd := &cobra.Command{
		Use:     "clone [user] [repo]",
		Short:   MsgCloneShort,
		Long:    MsgCloneLong,
		GroupID: "repo",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.load()
			if err != nil {
				return err
			}

			opts := git.CloneOptions{
				Host:     env.config.Git.Host,
				Repo:     git.DefaultRepo,
				Path:     env.paths.DotfilesRoot(),
				Shallow:  shallow,
				Progress: cmd.ErrOrStderr(),
			}
			if len(args) > 0 {
				opts.User = args[0]
			} else {
				opts.User = git.DefaultUser(cmd.Context())
			}
			if len(args) > 1 {
				opts.Repo = args[1]
			}

			if err := git.Clone(cmd.Context(), opts); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), MsgCloned, opts.RemoteURL(), opts.Path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&shallow, "shallow", "s", false, MsgFlagShallow)
	return cmd
}

// repoRunner builds a git runner inside the dotfiles repository wired to
// the command's streams
func repoRunner(cmd *cobra.Command, env *environment) *git.Runner {
	return &git.Runner{
		Dir:    env.paths.DotfilesRoot(),
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
}

func newGitCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "git <args...>",
		Short:   MsgGitShort,
		Long:    MsgGitLong,
		GroupID: "repo",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.load()
			if err != nil {
				return err
			}
			return repoRunner(cmd, env).Run(cmd.Context(), args...)
		},
	}
	// Flags after the git subcommand belong to git.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newEditCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "edit <file>",
		Short:   MsgEditShort,
		GroupID: "repo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.load()
			if err != nil {
				return err
			}

			e, err := editor.FromEnv()
			if err != nil {
				return err
			}
			e.Stdin = cmd.InOrStdin()
			e.Stdout = cmd.OutOrStdout()
			e.Stderr = cmd.ErrOrStderr()
			return e.Open(cmd.Context(), env.paths.DotfilesRoot(), args[0])
		},
	}
}

func newCommitCmd(g *globalOptions) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:     "commit",
		Short:   MsgCommitShort,
		GroupID: "repo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.load()
			if err != nil {
				return err
			}
			return git.Commit(cmd.Context(), repoRunner(cmd, env), message)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", MsgFlagMessage)
	return cmd
}

func newSyncCmd(g *globalOptions) *cobra.Command {
	var remote, branch string

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		GroupID: "repo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.load()
			if err != nil {
				return err
			}

			opts := git.SyncOptions{Remote: env.config.Git.Remote, Branch: env.config.Git.Branch}
			if remote != "" {
				opts.Remote = remote
			}
			if branch != "" {
				opts.Branch = branch
			}
			return git.Sync(cmd.Context(), repoRunner(cmd, env), opts)
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", MsgFlagRemote)
	cmd.Flags().StringVar(&branch, "branch", "", MsgFlagBranch)
	return cmd
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				printf(cmd.OutOrStdout(), "%s", config.DefaultContent())
				return nil
			}

			env, err := g.load()
			if err != nil {
				return err
			}
			dump, err := config.Dump(env.config)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s", dump)
			return nil
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
