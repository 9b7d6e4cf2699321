// Package terminal provides table output for interactive terminals, either
// styled with colors or as plain ASCII text.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/bioreport/pkg/ui/display"
	"github.com/arthur-debert/bioreport/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Renderer writes tables drawn with lipgloss
type Renderer struct {
	output io.Writer
	plain  bool
}

// New creates a terminal renderer. A plain renderer uses ASCII borders and
// no styling.
func New(output io.Writer, plain bool) *Renderer {
	return &Renderer{output: output, plain: plain}
}

// RenderReports renders one row per classified file followed by failures
func (r *Renderer) RenderReports(list display.ReportList) error {
	if len(list.Reports) > 0 {
		if err := r.println(r.reportTable(list.Reports)); err != nil {
			return err
		}
	}
	if err := r.renderFailures(list.Failures); err != nil {
		return err
	}
	return r.println(r.style("Muted", fmt.Sprintf("%d reports, %d failed", len(list.Reports), len(list.Failures))))
}

// RenderScan renders the classified files of a scan and its totals
func (r *Renderer) RenderScan(res display.ScanResult) error {
	if err := r.println(r.style("Header", "Scanned "+res.Root)); err != nil {
		return err
	}
	if len(res.Reports) > 0 {
		if err := r.println(r.reportTable(res.Reports)); err != nil {
			return err
		}
	}
	if err := r.renderFailures(res.Failures); err != nil {
		return err
	}
	totals := fmt.Sprintf("%d files, %d reports, %d unclassified, %d failed",
		res.Total, len(res.Reports), res.Unclassified, len(res.Failures))
	return r.println(r.style("Muted", totals))
}

// RenderParse renders each module table transposed: one row per summary
// key and one column per report.
func (r *Renderer) RenderParse(res display.ParseResult) error {
	for _, t := range res.Tables {
		if err := r.println(r.style("Header", t.Module)); err != nil {
			return err
		}
		rows := make([][]string, len(t.Columns))
		for c, key := range t.Columns {
			row := make([]string, 0, len(t.Names)+1)
			row = append(row, key)
			for i := range t.Names {
				row = append(row, t.Rows[i][c])
			}
			rows[c] = row
		}
		headers := append([]string{"key"}, t.Names...)
		if err := r.println(r.table(headers, rows, nil)); err != nil {
			return err
		}
	}
	return r.renderFailures(res.Failures)
}

// RenderRules renders the rule set, one row per rule
func (r *Renderer) RenderRules(list display.RuleList) error {
	rows := make([][]string, len(list.Rules))
	for i, rule := range list.Rules {
		rows[i] = []string{rule.Key, rule.Module, rule.Submodule, rule.Glob, rule.NameRegex, rule.ContentRegex}
	}
	headers := []string{"Key", "Module", "Submodule", "Glob", "Name regex", "Content regex"}
	moduleCol := func(row, col int) string {
		if col == 1 {
			return "Module"
		}
		return ""
	}
	return r.println(r.table(headers, rows, moduleCol))
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	return r.println(r.style("Error", "Error: ") + err.Error())
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(msg)
}

func (r *Renderer) reportTable(reports []display.Report) string {
	rows := make([][]string, len(reports))
	for i, rep := range reports {
		rows[i] = []string{rep.Path, rep.Module}
	}
	cellStyle := func(row, col int) string {
		switch {
		case col == 0:
			return "FilePath"
		case rows[row][1] == "-":
			return "Unclassified"
		default:
			return "Module"
		}
	}
	return r.table([]string{"File", "Module"}, rows, cellStyle)
}

func (r *Renderer) renderFailures(failures []display.Failure) error {
	for _, f := range failures {
		line := fmt.Sprintf("%s %s: %s", r.style("Error", "x"), f.Path, f.Error)
		if err := r.println(line); err != nil {
			return err
		}
	}
	return nil
}

// table draws headers and rows. cellStyle names the style of a body cell,
// "" for the default cell style.
func (r *Renderer) table(headers []string, rows [][]string, cellStyle func(row, col int) string) string {
	t := table.New().Headers(headers...).Rows(rows...)
	if r.plain {
		return t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				return lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			}).
			String()
	}
	return t.Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Get("Muted")).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Get("TableHeader")
			}
			base := styles.Get("Cell")
			if cellStyle == nil {
				return base
			}
			if name := cellStyle(row, col); name != "" {
				return base.Inherit(styles.Get(name))
			}
			return base
		}).
		String()
}

func (r *Renderer) style(name, s string) string {
	if r.plain {
		return s
	}
	return styles.Get(name).Render(s)
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, strings.TrimRight(s, "\n"))
	return err
}
