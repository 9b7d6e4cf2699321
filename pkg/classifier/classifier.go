// Package classifier assigns report files to at most one module and
// submodule by evaluating every rule of a rule set.
package classifier

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/logging"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/rules"
	"github.com/rs/zerolog"
)

// Classifier evaluates a rule set against files. It holds no mutable state
// and may be shared by concurrent callers.
type Classifier struct {
	rules  *rules.RuleSet
	logger zerolog.Logger
}

// New creates a classifier for rs
func New(rs *rules.RuleSet) *Classifier {
	return &Classifier{
		rules:  rs,
		logger: logging.GetLogger("classifier"),
	}
}

// Rules returns the rule set the classifier evaluates
func (c *Classifier) Rules() *rules.RuleSet {
	return c.rules
}

// Classify determines which module path belongs to.
//
// Paths that do not name an existing regular file yield an unclassified
// report without evaluating any rule. A file no rule matches is also
// unclassified. A file matched by several rules is an ErrAmbiguousMatch.
func (c *Classifier) Classify(path string) (report.Report, error) {
	r, err := report.New(path)
	if err != nil {
		return report.Report{}, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve path %s", path)
	}

	info, err := os.Stat(r.Path)
	if err != nil || !info.Mode().IsRegular() {
		c.logger.Trace().Str("path", r.Path).Msg("Not a regular file, skipping rules")
		return r, nil
	}

	file := rules.NewFile(r.Path)
	var matched []*rules.Rule
	for _, rule := range c.rules.Rules() {
		ok, err := rule.Matches(file)
		if err != nil {
			return r, errors.Wrapf(err, errors.GetErrorCode(err), "failed to classify %s", r.Path)
		}
		if ok {
			matched = append(matched, rule)
		}
	}

	switch len(matched) {
	case 0:
		c.logger.Trace().Str("path", r.Path).Msg("No report pattern matched")
		return r, nil
	case 1:
		c.logger.Debug().
			Str("path", r.Path).
			Str("key", matched[0].Key).
			Msg("File matched report pattern")
		return r.WithModule(matched[0].ModuleTuple()), nil
	default:
		keys := make([]string, len(matched))
		for i, rule := range matched {
			keys[i] = rule.Key
		}
		return r, errors.Newf(errors.ErrAmbiguousMatch,
			"too many types of report matched: %s -> %v; check the report patterns", r.Path, keys).
			WithDetail("path", r.Path).
			WithDetail("keys", keys)
	}
}

// IsConsistent reports whether r's stored module equals a fresh classification
func (c *Classifier) IsConsistent(r report.Report) (bool, error) {
	fresh, err := c.Classify(r.Path)
	if err != nil {
		return false, err
	}
	return fresh.Module.Equal(r.Module), nil
}

// Refresh returns a copy of r with its module replaced by a fresh
// classification. r itself is not modified.
func (c *Classifier) Refresh(r report.Report) (report.Report, error) {
	fresh, err := c.Classify(r.Path)
	if err != nil {
		return r, err
	}
	return r.WithModule(fresh.Module), nil
}

// ClassifyAll classifies each path independently. Failures are returned per
// path and do not stop the remaining classifications.
func (c *Classifier) ClassifyAll(paths []string) ([]report.Report, map[string]error) {
	reports := make([]report.Report, 0, len(paths))
	failures := make(map[string]error)
	for _, path := range paths {
		r, err := c.Classify(path)
		if err != nil {
			abs, _ := filepath.Abs(path)
			failures[abs] = err
			continue
		}
		reports = append(reports, r)
	}
	return reports, failures
}
