package commands

import (
	"github.com/arthur-debert/dotfm/pkg/logging"
)

// ListFilesResult holds the managed files in walk order
type ListFilesResult struct {
	Files []string `json:"files" yaml:"files"`
}

// ListFiles returns the relative path of every managed file
func ListFiles(opts Options) (*ListFilesResult, error) {
	logger := logging.GetLogger("commands.list")
	defer logging.LogOperationStart(logger, "list")()

	w, err := newWalker(opts)
	if err != nil {
		return nil, err
	}

	result := &ListFilesResult{Files: []string{}}
	for w.Next() {
		result.Files = append(result.Files, w.Entry().RelativePath())
	}
	if err := w.Err(); err != nil {
		return nil, err
	}

	logger.Info().Int("files", len(result.Files)).Msg("Listed managed files")
	return result, nil
}
