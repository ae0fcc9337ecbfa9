package dotfm

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Manage dotfiles as symbolic links into your home directory"
	MsgListShort       = "List managed files"
	MsgStatusShort     = "Show link status of managed files"
	MsgLinkShort       = "Link managed files into the destination directory"
	MsgCleanShort      = "Remove links to managed files"
	MsgCloneShort      = "Clone your dotfiles repository"
	MsgGitShort        = "Run a git command in the dotfiles repository"
	MsgEditShort       = "Edit a file of the dotfiles repository"
	MsgCommitShort     = "Stage all changes and commit them"
	MsgSyncShort       = "Sync local and remote dotfiles"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNothingToLink  = "Nothing to link."
	MsgNothingToClean = "Nothing to clean."
	MsgLinkSummary    = "%d file(s) linked.\n"
	MsgCleanSummary   = "%d destination(s) removed.\n"
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgCloned         = "Cloned %s into %s\n"
	MsgVersionFormat  = "dotfm version %s\n  commit: %s\n  built:  %s\n"
	MsgVerbLink       = "link"
	MsgVerbUnlink     = "unlink"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrListFiles  = "failed to list files: %w"
	MsgErrStatus     = "failed to get status: %w"
	MsgErrLinkFiles  = "failed to link files: %w"
	MsgErrCleanFiles = "failed to clean files: %w"
	MsgErrNoCommand  = "no command specified"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagPath     = "Path of the dotfiles repository (default $DOTFM_PATH or ~/dotfiles)"
	MsgFlagConfig   = "Configuration file (default $XDG_CONFIG_HOME/dotfm/config.toml)"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagFormat   = "Output format: auto, terminal, text, json, yaml"
	MsgFlagShallow  = "Clone only the latest commit"
	MsgFlagMessage  = "Commit message (opens the editor when omitted)"
	MsgFlagRemote   = "Remote to sync with (default from git.remote)"
	MsgFlagBranch   = "Branch to sync (default from git.branch)"
	MsgFlagDefaults = "Print the built-in defaults, comments included"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/clean-long.txt
	msgCleanLongRaw string
	MsgCleanLong    = strings.TrimSpace(msgCleanLongRaw)

	//go:embed msgs/clean-example.txt
	msgCleanExampleRaw string
	MsgCleanExample    = strings.TrimRight(msgCleanExampleRaw, "\n")

	//go:embed msgs/clone-long.txt
	msgCloneLongRaw string
	MsgCloneLong    = strings.TrimSpace(msgCloneLongRaw)

	//go:embed msgs/git-long.txt
	msgGitLongRaw string
	MsgGitLong    = strings.TrimSpace(msgGitLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
