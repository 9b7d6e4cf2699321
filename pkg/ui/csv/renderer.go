// Package csv renders tables as comma separated values. Each table is a
// block with its own header row; blocks are separated by an empty line.
package csv

import (
	"encoding/csv"
	"io"

	"github.com/arthur-debert/bioreport/pkg/ui/display"
)

// Renderer writes CSV records
type Renderer struct {
	output io.Writer
}

// New creates a new CSV renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderReports writes one row per file, failures carry an error column
func (r *Renderer) RenderReports(list display.ReportList) error {
	return r.write(reportRows(list.Reports, list.Failures))
}

// RenderScan writes the scanned files like RenderReports
func (r *Renderer) RenderScan(res display.ScanResult) error {
	return r.write(reportRows(res.Reports, res.Failures))
}

// RenderParse writes one block per module table, one row per summary
func (r *Renderer) RenderParse(res display.ParseResult) error {
	var records [][]string
	for i, t := range res.Tables {
		if i > 0 {
			records = append(records, nil)
		}
		header := append([]string{"module", "name"}, t.Columns...)
		records = append(records, header)
		for j, row := range t.Rows {
			records = append(records, append([]string{t.Module, t.Names[j]}, row...))
		}
	}
	if len(res.Failures) > 0 {
		if len(records) > 0 {
			records = append(records, nil)
		}
		records = append(records, []string{"path", "error"})
		for _, f := range res.Failures {
			records = append(records, []string{f.Path, f.Error})
		}
	}
	return r.write(records)
}

// RenderRules writes one row per rule
func (r *Renderer) RenderRules(list display.RuleList) error {
	records := [][]string{{"key", "module", "submodule", "pattern_glob", "pattern_regex", "content_regex"}}
	for _, rule := range list.Rules {
		records = append(records, []string{rule.Key, rule.Module, rule.Submodule, rule.Glob, rule.NameRegex, rule.ContentRegex})
	}
	return r.write(records)
}

// RenderError writes a single error record
func (r *Renderer) RenderError(err error) error {
	return r.write([][]string{{"error"}, {err.Error()}})
}

// RenderMessage writes a single message record
func (r *Renderer) RenderMessage(msg string) error {
	return r.write([][]string{{"message"}, {msg}})
}

func reportRows(reports []display.Report, failures []display.Failure) [][]string {
	records := [][]string{{"path", "module", "error"}}
	for _, rep := range reports {
		records = append(records, []string{rep.Path, rep.Module, ""})
	}
	for _, f := range failures {
		records = append(records, []string{f.Path, "", f.Error})
	}
	return records
}

// write flushes records; a nil record becomes an empty line
func (r *Renderer) write(records [][]string) error {
	w := csv.NewWriter(r.output)
	for _, rec := range records {
		if rec == nil {
			w.Flush()
			if _, err := io.WriteString(r.output, "\n"); err != nil {
				return err
			}
			continue
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
