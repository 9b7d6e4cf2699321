package core

import (
	"context"
	"sort"

	"github.com/arthur-debert/bioreport/pkg/classifier"
	"github.com/arthur-debert/bioreport/pkg/config"
	"github.com/arthur-debert/bioreport/pkg/dispatcher"
	"github.com/arthur-debert/bioreport/pkg/logging"
	"github.com/arthur-debert/bioreport/pkg/parsers"
	"github.com/arthur-debert/bioreport/pkg/parsers/bismark"
	"github.com/arthur-debert/bioreport/pkg/parsers/bowtie2"
	"github.com/arthur-debert/bioreport/pkg/parsers/fastp"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/rules"
	"github.com/arthur-debert/bioreport/pkg/scan"
	"github.com/arthur-debert/bioreport/pkg/summary"
)

// Engine bundles the components of one pipeline run
type Engine struct {
	Config     *config.Config
	Rules      *rules.RuleSet
	Parsers    *parsers.Registry
	Classifier *classifier.Classifier
	Dispatcher *dispatcher.Dispatcher
}

// DefaultParsers returns a frozen registry with the bundled parsers
func DefaultParsers() *parsers.Registry {
	reg, err := parsers.NewRegistry(
		fastp.NewParser(),
		bowtie2.NewParser(),
		bismark.NewParser(),
	)
	if err != nil {
		panic(err)
	}
	reg.Freeze()
	return reg
}

// New loads the report patterns named by cfg and builds an engine with the
// bundled parsers
func New(cfg *config.Config) (*Engine, error) {
	done := logging.LogOperationStart(logging.GetLogger("core"), "engine setup")
	defer done()

	rs, err := cfg.RuleSet()
	if err != nil {
		return nil, err
	}
	return NewWithRules(cfg, rs, DefaultParsers())
}

// NewWithRules builds an engine from an explicit rule set and parser
// registry. The registry must cover every module of the rule set.
func NewWithRules(cfg *config.Config, rs *rules.RuleSet, reg *parsers.Registry) (*Engine, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := reg.Validate(rs.Modules()); err != nil {
		return nil, err
	}

	c := classifier.New(rs)
	logger := logging.GetLogger("core")
	logger.Debug().
		Strs("modules", rs.Modules().Modules()).
		Strs("parsers", reg.Names()).
		Msg("Engine ready")

	return &Engine{
		Config:     cfg,
		Rules:      rs,
		Parsers:    reg,
		Classifier: c,
		Dispatcher: dispatcher.New(c, reg),
	}, nil
}

// Scan classifies every file below root using the configured scan settings
func (e *Engine) Scan(ctx context.Context, root string, progress func(done, total int)) (*scan.Result, error) {
	return scan.Dir(ctx, e.Classifier, root, scan.Options{
		Workers:    e.Config.Scan.Workers,
		FailFast:   e.Config.Scan.FailFast,
		SkipHidden: e.Config.Scan.SkipHidden,
		Progress:   progress,
	})
}

// ClassifyFiles classifies each path. Failures are sorted by path and do
// not stop the remaining files.
func (e *Engine) ClassifyFiles(paths []string) ([]report.Report, []scan.Failure) {
	reports, errs := e.Classifier.ClassifyAll(paths)
	failures := make([]scan.Failure, 0, len(errs))
	for path, err := range errs {
		failures = append(failures, scan.Failure{Path: path, Err: err})
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	return reports, failures
}

// ParseResult holds the summaries extracted from a set of files
type ParseResult struct {
	Summaries []*summary.Summary
	Failures  []scan.Failure
}

// ParseFiles classifies and parses each path. A failure of one file does
// not stop the others. opts.Name only applies when a single path is given.
func (e *Engine) ParseFiles(paths []string, opts dispatcher.ParseOptions) *ParseResult {
	result := &ParseResult{}
	if len(paths) > 1 {
		opts.Name = ""
	}
	for _, path := range paths {
		r, err := e.Classifier.Classify(path)
		if err == nil {
			var s *summary.Summary
			s, err = e.Dispatcher.Parse(r, opts)
			if err == nil {
				result.Summaries = append(result.Summaries, s)
				continue
			}
		}
		failedPath := r.Path
		if failedPath == "" {
			failedPath = path
		}
		result.Failures = append(result.Failures, scan.Failure{Path: failedPath, Err: err})
	}
	return result
}

// ParseReports parses already classified reports, for example the result
// of a scan
func (e *Engine) ParseReports(reports []report.Report, opts dispatcher.ParseOptions) *ParseResult {
	result := &ParseResult{}
	for _, r := range reports {
		s, err := e.Dispatcher.Parse(r, opts)
		if err != nil {
			result.Failures = append(result.Failures, scan.Failure{Path: r.Path, Err: err})
			continue
		}
		result.Summaries = append(result.Summaries, s)
	}
	return result
}

// Aggregate groups summaries by module and concatenates each group into a
// table, in order of first appearance
func Aggregate(sums []*summary.Summary, join summary.Join) ([]*summary.Table, error) {
	var order []string
	groups := make(map[string][]*summary.Summary)
	for _, s := range sums {
		key := s.Module.Key()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
	}

	tables := make([]*summary.Table, 0, len(order))
	for _, key := range order {
		t, err := summary.Concat(groups[key], join)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// Stale returns the reports whose stored module no longer matches the
// engine's rule set
func (e *Engine) Stale(reports []report.Report) ([]report.Report, []scan.Failure) {
	var stale []report.Report
	var failures []scan.Failure
	for _, r := range reports {
		ok, err := e.Classifier.IsConsistent(r)
		if err != nil {
			failures = append(failures, scan.Failure{Path: r.Path, Err: err})
			continue
		}
		if !ok {
			stale = append(stale, r)
		}
	}
	return stale, failures
}
