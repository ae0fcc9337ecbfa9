package commands

import (
	"github.com/arthur-debert/dotfm/pkg/entry"
	"github.com/arthur-debert/dotfm/pkg/logging"
)

// FileStatus is one row of the status listing
type FileStatus struct {
	Source string      `json:"source" yaml:"source"`
	Target string      `json:"target" yaml:"target"`
	Linked bool        `json:"linked" yaml:"linked"`
	State  entry.State `json:"state" yaml:"state"`
}

// StatusResult holds one row per managed file, in walk order
type StatusResult struct {
	Files []FileStatus `json:"files" yaml:"files"`
}

// LinkedCount returns how many files are currently linked
func (r *StatusResult) LinkedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Linked {
			n++
		}
	}
	return n
}

// StatusFiles reports the link state of every managed file. Individual
// entries never fail; only traversal errors are returned.
func StatusFiles(opts Options) (*StatusResult, error) {
	logger := logging.GetLogger("commands.status")
	defer logging.LogOperationStart(logger, "status")()

	w, err := newWalker(opts)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{Files: []FileStatus{}}
	for w.Next() {
		e := w.Entry()
		state := e.State()
		result.Files = append(result.Files, FileStatus{
			Source: e.RelativePath(),
			Target: e.DisplayTarget(),
			Linked: state == entry.StateLinked,
			State:  state,
		})
	}
	if err := w.Err(); err != nil {
		return nil, err
	}

	logger.Info().
		Int("files", len(result.Files)).
		Int("linked", result.LinkedCount()).
		Msg("Collected status")
	return result, nil
}
