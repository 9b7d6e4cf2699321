// Package display converts pipeline results into plain view models shared
// by every output format.
package display

import (
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/rules"
	"github.com/arthur-debert/bioreport/pkg/scan"
	"github.com/arthur-debert/bioreport/pkg/summary"
)

// Report is one classified file
type Report struct {
	Path   string `json:"path" yaml:"path" toml:"path"`
	Module string `json:"module" yaml:"module" toml:"module"`
}

// Failure is a file that could not be processed
type Failure struct {
	Path  string `json:"path" yaml:"path" toml:"path"`
	Error string `json:"error" yaml:"error" toml:"error"`
}

// ReportList is the result of classifying a set of files
type ReportList struct {
	Reports  []Report  `json:"reports" yaml:"reports" toml:"reports"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty" toml:"failures,omitempty"`
}

// ScanResult is the result of a directory scan
type ScanResult struct {
	Root         string    `json:"root" yaml:"root" toml:"root"`
	Total        int       `json:"total" yaml:"total" toml:"total"`
	Unclassified int       `json:"unclassified" yaml:"unclassified" toml:"unclassified"`
	Reports      []Report  `json:"reports" yaml:"reports" toml:"reports"`
	Failures     []Failure `json:"failures,omitempty" yaml:"failures,omitempty" toml:"failures,omitempty"`
}

// Table is the aggregated summaries of one module
type Table struct {
	Module  string              `json:"module" yaml:"module" toml:"module"`
	Columns []string            `json:"columns" yaml:"columns" toml:"columns"`
	Names   []string            `json:"names" yaml:"names" toml:"names"`
	Rows    [][]string          `json:"-" yaml:"-" toml:"-"`
	Records []map[string]string `json:"rows" yaml:"rows" toml:"rows"`
}

// ParseResult is a set of module tables plus the files that failed
type ParseResult struct {
	Tables   []Table   `json:"tables" yaml:"tables" toml:"tables"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty" toml:"failures,omitempty"`
}

// Rule is one report pattern
type Rule struct {
	Key          string `json:"key" yaml:"key" toml:"key"`
	Module       string `json:"module" yaml:"module" toml:"module"`
	Submodule    string `json:"submodule,omitempty" yaml:"submodule,omitempty" toml:"submodule,omitempty"`
	Glob         string `json:"pattern_glob,omitempty" yaml:"pattern_glob,omitempty" toml:"pattern_glob,omitempty"`
	NameRegex    string `json:"pattern_regex,omitempty" yaml:"pattern_regex,omitempty" toml:"pattern_regex,omitempty"`
	ContentRegex string `json:"content_regex,omitempty" yaml:"content_regex,omitempty" toml:"content_regex,omitempty"`
}

// RuleList is a rule set and the modules it declares
type RuleList struct {
	Rules   []Rule              `json:"rules" yaml:"rules" toml:"rules"`
	Modules map[string][]string `json:"modules" yaml:"modules" toml:"modules"`
}

// ModuleLabel renders a module tuple for display, "-" when unclassified
func ModuleLabel(m report.Module) string {
	if m.IsEmpty() {
		return "-"
	}
	return m.Key()
}

// FromReports converts classified reports and failures
func FromReports(reports []report.Report, failures []scan.Failure) ReportList {
	return ReportList{Reports: convertReports(reports), Failures: FromFailures(failures)}
}

// FromScan converts a scan result
func FromScan(res *scan.Result) ScanResult {
	return ScanResult{
		Root:         res.Root,
		Total:        res.Total,
		Unclassified: res.Unclassified,
		Reports:      convertReports(res.Reports),
		Failures:     FromFailures(res.Failures),
	}
}

// FromTables converts aggregated tables and failures
func FromTables(tables []*summary.Table, failures []scan.Failure) ParseResult {
	out := ParseResult{Tables: make([]Table, len(tables)), Failures: FromFailures(failures)}
	for i, t := range tables {
		out.Tables[i] = Table{
			Module:  t.Module.Key(),
			Columns: t.Columns,
			Names:   t.Names(),
			Rows:    t.Rows(),
			Records: records(t),
		}
	}
	return out
}

// FromRules converts a rule set
func FromRules(rs *rules.RuleSet) RuleList {
	out := RuleList{Modules: make(map[string][]string)}
	for _, r := range rs.Rules() {
		out.Rules = append(out.Rules, Rule{
			Key:          r.Key,
			Module:       r.Module,
			Submodule:    r.Submodule,
			Glob:         deref(r.Pattern.Glob),
			NameRegex:    deref(r.Pattern.NameRegex),
			ContentRegex: deref(r.Pattern.ContentRegex),
		})
	}
	mods := rs.Modules()
	for _, m := range mods.Modules() {
		subs, _ := mods.Submodules(m)
		out.Modules[m] = subs
	}
	return out
}

// FromFailures converts per-file failures
func FromFailures(failures []scan.Failure) []Failure {
	if len(failures) == 0 {
		return nil
	}
	out := make([]Failure, len(failures))
	for i, f := range failures {
		out[i] = Failure{Path: f.Path, Error: f.Err.Error()}
	}
	return out
}

func convertReports(reports []report.Report) []Report {
	out := make([]Report, len(reports))
	for i, r := range reports {
		out[i] = Report{Path: r.Path, Module: ModuleLabel(r.Module)}
	}
	return out
}

// records returns one map per row with the summary name under "name"
func records(t *summary.Table) []map[string]string {
	recs := t.Records()
	for i, name := range t.Names() {
		recs[i]["name"] = name
	}
	return recs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
