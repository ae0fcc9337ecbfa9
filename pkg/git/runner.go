package git

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/arthur-debert/dotfm/pkg/logging"
)

// Binary is the git executable looked up on PATH
const Binary = "git"

// Runner executes the git binary inside a repository directory
type Runner struct {
	// Dir is the working directory of every invocation.
	Dir string
	// Env is appended to the process environment.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a Runner for dir wired to the process stdio
func NewRunner(dir string) *Runner {
	return &Runner{
		Dir:    dir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *Runner) command(ctx context.Context, args []string) *exec.Cmd {
	logging.LogCommand(Binary, args, r.Dir)
	cmd := exec.CommandContext(ctx, Binary, args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

// Run executes git with args, streaming through the runner's stdio
func (r *Runner) Run(ctx context.Context, args ...string) error {
	cmd := r.command(ctx, args)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrGitCommand, "git %s failed in %s", strings.Join(args, " "), r.Dir).
			WithDetail("dir", r.Dir)
	}
	return nil
}

// Output executes git with args and returns its standard output
func (r *Runner) Output(ctx context.Context, args ...string) (string, error) {
	cmd := r.command(ctx, args)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, errors.ErrGitCommand, "git %s failed in %s: %s",
			strings.Join(args, " "), r.Dir, strings.TrimSpace(stderr.String())).
			WithDetail("dir", r.Dir)
	}
	return stdout.String(), nil
}
