// Package markdown renders results as GitHub flavored markdown tables.
// On a terminal the document is styled with glamour.
package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/bioreport/pkg/ui/display"
	"github.com/charmbracelet/glamour"
)

// Renderer writes markdown documents
type Renderer struct {
	output io.Writer
	styled bool
	// Style is a glamour style name or path, "auto" detects the terminal theme
	Style string
}

// New creates a markdown renderer
func New(output io.Writer, styled bool) *Renderer {
	return &Renderer{output: output, styled: styled, Style: "auto"}
}

// RenderReports renders classified files as a table
func (r *Renderer) RenderReports(list display.ReportList) error {
	var b strings.Builder
	writeReports(&b, list.Reports)
	writeFailures(&b, list.Failures)
	return r.write(b.String())
}

// RenderScan renders a scan as a heading, a table and its totals
func (r *Renderer) RenderScan(res display.ScanResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Scan of `%s`\n\n", res.Root)
	writeReports(&b, res.Reports)
	writeFailures(&b, res.Failures)
	fmt.Fprintf(&b, "%d files, %d reports, %d unclassified, %d failed\n",
		res.Total, len(res.Reports), res.Unclassified, len(res.Failures))
	return r.write(b.String())
}

// RenderParse renders one section per module, one row per summary
func (r *Renderer) RenderParse(res display.ParseResult) error {
	var b strings.Builder
	for _, t := range res.Tables {
		fmt.Fprintf(&b, "## %s\n\n", t.Module)
		writeTable(&b, append([]string{"name"}, t.Columns...), prefixRows(t.Names, t.Rows))
	}
	writeFailures(&b, res.Failures)
	return r.write(b.String())
}

// RenderRules renders the rule set as a table
func (r *Renderer) RenderRules(list display.RuleList) error {
	rows := make([][]string, len(list.Rules))
	for i, rule := range list.Rules {
		rows[i] = []string{rule.Key, rule.Module, rule.Submodule, code(rule.Glob), code(rule.NameRegex), code(rule.ContentRegex)}
	}
	var b strings.Builder
	writeTable(&b, []string{"key", "module", "submodule", "glob", "name regex", "content regex"}, rows)
	return r.write(b.String())
}

// RenderError renders an error in bold
func (r *Renderer) RenderError(err error) error {
	return r.write(fmt.Sprintf("**Error:** %s\n", escape(err.Error())))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(msg + "\n")
}

func (r *Renderer) write(doc string) error {
	if r.styled {
		doc = r.render(doc)
	}
	_, err := io.WriteString(r.output, doc)
	return err
}

// render styles doc with glamour, returning it unchanged on failure
func (r *Renderer) render(doc string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	options = append(options, glamour.WithWordWrap(0))

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return doc
	}
	rendered, err := renderer.Render(doc)
	if err != nil {
		return doc
	}
	return rendered
}

func writeReports(b *strings.Builder, reports []display.Report) {
	rows := make([][]string, len(reports))
	for i, rep := range reports {
		rows[i] = []string{code(rep.Path), rep.Module}
	}
	writeTable(b, []string{"file", "module"}, rows)
}

func writeFailures(b *strings.Builder, failures []display.Failure) {
	if len(failures) == 0 {
		return
	}
	b.WriteString("### Failures\n\n")
	for _, f := range failures {
		fmt.Fprintf(b, "- %s: %s\n", code(f.Path), escape(f.Error))
	}
	b.WriteString("\n")
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	writeRow(b, headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(b, sep)
	for _, row := range rows {
		writeRow(b, row)
	}
	b.WriteString("\n")
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(escape(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func prefixRows(names []string, rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string{names[i]}, row...)
	}
	return out
}

// escape keeps a cell on one line and its pipes literal
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", "<br>")
}

func code(s string) string {
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}
