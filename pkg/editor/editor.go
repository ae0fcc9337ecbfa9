// Package editor opens files from the dotfiles repository in the user's
// editor.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotfm/pkg/errors"
	"github.com/arthur-debert/dotfm/pkg/logging"
)

// EnvEditor names the variable holding the editor command
const EnvEditor = "EDITOR"

// Editor runs an editor command inside a directory
type Editor struct {
	// Command is the editor invocation, possibly with arguments.
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// FromEnv builds an Editor from $EDITOR, attached to the process stdio
func FromEnv() (*Editor, error) {
	command := strings.TrimSpace(os.Getenv(EnvEditor))
	if command == "" {
		return nil, errors.New(errors.ErrEditor, "failed to fetch $EDITOR")
	}
	return &Editor{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// Open edits filename, resolved relative to dir, and waits for the editor
// to exit.
func (e *Editor) Open(ctx context.Context, dir, filename string) error {
	fields := strings.Fields(e.Command)
	if len(fields) == 0 {
		return errors.New(errors.ErrEditor, "no editor command configured")
	}
	args := append(fields[1:], filename)

	logging.LogCommand(fields[0], args, dir)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrEditor, "editor %q failed on %s", e.Command, filename).
			WithDetail("dir", dir)
	}
	return nil
}

// Edit opens filename from dir in $EDITOR
func Edit(ctx context.Context, dir, filename string) error {
	e, err := FromEnv()
	if err != nil {
		return err
	}
	return e.Open(ctx, dir, filename)
}
