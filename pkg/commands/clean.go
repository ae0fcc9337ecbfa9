package commands

import (
	"fmt"

	"github.com/arthur-debert/dotfm/pkg/logging"
)

// CleanFilesOptions configures CleanFiles
type CleanFilesOptions struct {
	Options
	// DryRun reports what would be removed without touching the filesystem.
	DryRun bool
}

// CleanFiles removes the target of every managed file. Whatever occupies a
// target path is removed, link or not. It stops at the first failing entry
// and returns the partial result with an error naming the target.
func CleanFiles(opts CleanFilesOptions) (*Result, error) {
	logger := logging.GetLogger("commands.clean")
	defer logging.LogOperationStart(logger, "clean")()

	w, err := newWalker(opts.Options)
	if err != nil {
		return nil, err
	}

	result := &Result{DryRun: opts.DryRun}
	for w.Next() {
		e := w.Entry()
		change := Change{Source: e.Source(), Target: e.Target(), Before: e.State()}
		if !opts.DryRun {
			if err := e.Unlink(); err != nil {
				logger.Error().Err(err).Str("target", e.Target()).Msg("Unlink failed")
				return result, fmt.Errorf("failed to unlink %s: %w", e.DisplayTarget(), err)
			}
		}
		result.Changes = append(result.Changes, change)
	}
	if err := w.Err(); err != nil {
		return result, err
	}

	logger.Info().
		Int("files", len(result.Changes)).
		Bool("dryRun", opts.DryRun).
		Msg("Clean finished")
	return result, nil
}
