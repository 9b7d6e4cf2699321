// Package ui renders pipeline results in the supported output formats:
// styled terminal tables, plain text, JSON, YAML, TOML, CSV and markdown.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/ui/csv"
	"github.com/arthur-debert/bioreport/pkg/ui/display"
	"github.com/arthur-debert/bioreport/pkg/ui/markdown"
	"github.com/arthur-debert/bioreport/pkg/ui/structured"
	"github.com/arthur-debert/bioreport/pkg/ui/terminal"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderReports renders classified files
	RenderReports(list display.ReportList) error

	// RenderScan renders a directory scan
	RenderScan(res display.ScanResult) error

	// RenderParse renders aggregated summaries
	RenderParse(res display.ParseResult) error

	// RenderRules renders a rule set
	RenderRules(list display.RuleList) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	file, isFile := output.(*os.File)

	switch format {
	case FormatAuto:
		if isFile {
			return NewRenderer(DetectFormat(file), output)
		}
		// If not a file, default to terminal format
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return terminal.New(output, false), nil
	case FormatText:
		return terminal.New(output, true), nil
	case FormatJSON:
		return structured.New(output, structured.JSON), nil
	case FormatYAML:
		return structured.New(output, structured.YAML), nil
	case FormatTOML:
		return structured.New(output, structured.TOML), nil
	case FormatCSV:
		return csv.New(output), nil
	case FormatMarkdown:
		styled := isFile && IsTerminal(file) && os.Getenv("NO_COLOR") == ""
		return markdown.New(output, styled), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
