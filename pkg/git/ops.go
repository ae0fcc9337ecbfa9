package git

import (
	"context"
	"os"
	"strings"

	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/arthur-debert/dotfm/pkg/logging"
	gogit "github.com/go-git/go-git/v5"
)

// Commit stages every change in the repository and commits it. An empty
// message opens the user's commit editor.
func Commit(ctx context.Context, r *Runner, message string) error {
	if err := r.Run(ctx, "add", "-A"); err != nil {
		return err
	}
	args := []string{"commit"}
	if message != "" {
		args = append(args, "-m", message)
	}
	return r.Run(ctx, args...)
}

// HasLocalChanges reports whether tracked files differ from HEAD, staged or
// not. Untracked files do not count since git stash leaves them alone.
func HasLocalChanges(dir string) (bool, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrGitCommand, "failed to open repository %s", dir)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrGitCommand, "failed to open worktree %s", dir)
	}
	status, err := wt.Status()
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrGitCommand, "failed to read status of %s", dir)
	}

	for _, s := range status {
		if s.Staging != gogit.Unmodified && s.Staging != gogit.Untracked {
			return true, nil
		}
		if s.Worktree != gogit.Unmodified && s.Worktree != gogit.Untracked {
			return true, nil
		}
	}
	return false, nil
}

// SyncOptions selects the branch and remote to synchronise with
type SyncOptions struct {
	Remote string
	Branch string
}

// Sync rebases the local branch on the remote and pushes it. Local changes
// are stashed for the duration and restored afterwards.
func Sync(ctx context.Context, r *Runner, opts SyncOptions) error {
	logger := logging.GetLogger("git")

	dirty, err := HasLocalChanges(r.Dir)
	if err != nil {
		return err
	}
	if dirty {
		logger.Info().Str("dir", r.Dir).Msg("Stashing local changes")
		if err := r.Run(ctx, "stash"); err != nil {
			return err
		}
	}

	steps := [][]string{
		{"checkout", opts.Branch},
		{"pull", "--rebase", opts.Remote, opts.Branch},
		{"push", opts.Remote, opts.Branch},
	}
	for _, args := range steps {
		if err := r.Run(ctx, args...); err != nil {
			return err
		}
	}

	if dirty {
		logger.Info().Str("dir", r.Dir).Msg("Restoring local changes")
		return r.Run(ctx, "stash", "pop")
	}
	return nil
}

// DefaultUser guesses the account owning the dotfiles repository: git's
// user.name, then $USER, then empty.
func DefaultUser(ctx context.Context) string {
	r := &Runner{}
	if out, err := r.Output(ctx, "config", "user.name"); err == nil {
		if name := strings.TrimSpace(out); name != "" {
			return name
		}
	}
	return os.Getenv("USER")
}
