package git

import (
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/arthur-debert/dotfm/pkg/logging"
	gogit "github.com/go-git/go-git/v5"
)

// DefaultRepo is the repository name cloned when none is given
const DefaultRepo = "dotfiles"

// CloneOptions describes which repository to clone and where
type CloneOptions struct {
	// URL wins over Host/User/Repo when set.
	URL  string
	Host string
	User string
	Repo string
	// Path is the destination directory.
	Path string
	// Shallow clones only the latest commit.
	Shallow bool
	// Progress receives remote progress messages; may be nil.
	Progress io.Writer
}

// RemoteURL returns the SSH URL for the options' host, user and repo
func (o CloneOptions) RemoteURL() string {
	if o.URL != "" {
		return o.URL
	}
	host := o.Host
	if host == "" {
		host = "github.com"
	}
	repo := o.Repo
	if repo == "" {
		repo = DefaultRepo
	}
	return fmt.Sprintf("git@%s:%s/%s", host, o.User, repo)
}

// Clone clones the dotfiles repository into opts.Path
func Clone(ctx context.Context, opts CloneOptions) error {
	url := opts.RemoteURL()
	logger := logging.GetLogger("git")
	logger.Info().
		Str("url", url).
		Str("path", opts.Path).
		Bool("shallow", opts.Shallow).
		Msg("Cloning repository")

	cloneOpts := &gogit.CloneOptions{
		URL:      url,
		Progress: opts.Progress,
	}
	if opts.Shallow {
		cloneOpts.Depth = 1
	}

	if _, err := gogit.PlainCloneContext(ctx, opts.Path, false, cloneOpts); err != nil {
		return errors.Wrapf(err, errors.ErrGitClone, "failed to clone %s into %s", url, opts.Path).
			WithDetail("url", url).
			WithDetail("path", opts.Path)
	}
	return nil
}
