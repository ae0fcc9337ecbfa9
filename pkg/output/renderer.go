// Package output renders command results for the terminal, for pipes and
// for machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/arthur-debert/dotfm/pkg/commands"
	"github.com/arthur-debert/dotfm/pkg/entry"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Status column values
const (
	StatusLinked    = "linked"
	StatusNotLinked = "not linked"
)

var statusHeader = []string{"SOURCE", "DESTINATION", "STATUS"}

// Renderer writes results in a single format
type Renderer struct {
	w      io.Writer
	format Format
}

// NewRenderer creates a Renderer. FormatAuto must be resolved by the caller
// (see Resolve) and is treated as FormatText here.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Renderer{w: w, format: format}
}

// Format returns the format the renderer writes
func (r *Renderer) Format() Format {
	return r.format
}

// RenderStatus writes the status table
func (r *Renderer) RenderStatus(result *commands.StatusResult) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(result)
	case FormatYAML:
		return r.renderYAML(result)
	}

	rows := make([][]string, 0, len(result.Files)+1)
	rows = append(rows, statusHeader)
	for _, f := range result.Files {
		rows = append(rows, []string{f.Source, f.Target, statusLabel(f.Linked)})
	}

	if r.format == FormatTerminal {
		for i, f := range result.Files {
			rows[i+1][2] = stateStyle(f.State).Sprint(rows[i+1][2])
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
		if err != nil {
			return fmt.Errorf("failed to render status table: %w", err)
		}
		_, err = fmt.Fprintln(r.w, table)
		return err
	}
	return r.renderColumns(rows)
}

// RenderList writes one managed file per line
func (r *Renderer) RenderList(result *commands.ListFilesResult) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(result)
	case FormatYAML:
		return r.renderYAML(result)
	}
	for _, f := range result.Files {
		if _, err := fmt.Fprintln(r.w, f); err != nil {
			return err
		}
	}
	return nil
}

// RenderChanges writes one line per entry a link or clean run acted on:
// those whose prior state is one of actionable. verb names the action.
func (r *Renderer) RenderChanges(result *commands.Result, verb string, actionable ...entry.State) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(result)
	case FormatYAML:
		return r.renderYAML(result)
	}

	prefix := ""
	if result.DryRun {
		prefix = "(dry run) "
	}
	for _, c := range result.Changes {
		if !slices.Contains(actionable, c.Before) {
			continue
		}
		line := fmt.Sprintf("%s%s %s -> %s", prefix, verb, c.Target, c.Source)
		if r.format == FormatTerminal {
			line = pterm.FgGreen.Sprint(line)
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderColumns(rows [][]string) error {
	tw := tabwriter.NewWriter(r.w, 0, 8, 2, ' ', 0)
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", row[0], row[1], row[2]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (r *Renderer) renderJSON(v interface{}) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (r *Renderer) renderYAML(v interface{}) error {
	encoder := yaml.NewEncoder(r.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func statusLabel(linked bool) string {
	if linked {
		return StatusLinked
	}
	return StatusNotLinked
}

// stateStyle returns the pterm style for a link state
func stateStyle(state entry.State) *pterm.Style {
	switch state {
	case entry.StateLinked:
		return pterm.NewStyle(pterm.FgGreen)
	case entry.StateConflict:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgYellow)
	}
}
