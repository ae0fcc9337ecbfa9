package commands

import (
	"github.com/arthur-debert/dotfm/pkg/entry"
	"github.com/arthur-debert/dotfm/pkg/logging"
)

// LinkFilesOptions configures LinkFiles
type LinkFilesOptions struct {
	Options
	// DryRun reports what would change without touching the filesystem.
	DryRun bool
}

// Change records an entry visited by LinkFiles or CleanFiles together with
// the state its target was in beforehand
type Change struct {
	Source string      `json:"source" yaml:"source"`
	Target string      `json:"target" yaml:"target"`
	Before entry.State `json:"before" yaml:"before"`
}

// Result lists the entries a command acted on, in walk order
type Result struct {
	Changes []Change `json:"changes" yaml:"changes"`
	DryRun  bool     `json:"dryRun" yaml:"dryRun"`
}

// Count returns how many entries started in the given state
func (r *Result) Count(state entry.State) int {
	n := 0
	for _, c := range r.Changes {
		if c.Before == state {
			n++
		}
	}
	return n
}

// LinkFiles links every managed file into the home directory. It stops at
// the first failing entry; links created before the failure are kept. The
// partial result is returned alongside the error.
func LinkFiles(opts LinkFilesOptions) (*Result, error) {
	logger := logging.GetLogger("commands.link")
	defer logging.LogOperationStart(logger, "link")()

	w, err := newWalker(opts.Options)
	if err != nil {
		return nil, err
	}

	result := &Result{DryRun: opts.DryRun}
	for w.Next() {
		e := w.Entry()
		change := Change{Source: e.Source(), Target: e.Target(), Before: e.State()}
		if !opts.DryRun {
			if err := e.Link(); err != nil {
				logger.Error().Err(err).Str("target", e.Target()).Msg("Link failed")
				return result, err
			}
		}
		result.Changes = append(result.Changes, change)
	}
	if err := w.Err(); err != nil {
		return result, err
	}

	logger.Info().
		Int("files", len(result.Changes)).
		Int("created", result.Count(entry.StateMissing)).
		Bool("dryRun", opts.DryRun).
		Msg("Link finished")
	return result, nil
}
