package rules

import (
	"strings"
	"time"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/dlclark/regexp2"
)

// Predicate kinds, named after the rule file fields
const (
	KindGlob         = "pattern_glob"
	KindNameRegex    = "pattern_regex"
	KindContentRegex = "content_regex"
)

// MatchTimeout bounds a single regex evaluation
const MatchTimeout = 2 * time.Second

type globPredicate struct {
	pattern string
}

func newGlobPredicate(key, pattern string) (*globPredicate, error) {
	if pattern == "" {
		return nil, emptyPatternError(key, KindGlob)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf(errors.ErrConfigInvalid, "rule %q has invalid %s: %q", key, KindGlob, pattern).
			WithDetail("key", key)
	}
	return &globPredicate{pattern: pattern}, nil
}

func (p *globPredicate) Kind() string { return KindGlob }

// Match tests whether the file is among the glob's matches in its own
// directory. The candidate is known to exist in that directory, so matching
// the pattern against its base name gives the same answer as listing the
// directory and looking the file up.
func (p *globPredicate) Match(f *File) (bool, error) {
	return doublestar.Match(p.pattern, f.Name)
}

type nameRegexPredicate struct {
	re *regexp2.Regexp
}

func newNameRegexPredicate(key, pattern string) (*nameRegexPredicate, error) {
	if pattern == "" {
		return nil, emptyPatternError(key, KindNameRegex)
	}
	re, err := compileAnchored(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "rule %q has invalid %s", key, KindNameRegex)
	}
	return &nameRegexPredicate{re: re}, nil
}

func (p *nameRegexPredicate) Kind() string { return KindNameRegex }

func (p *nameRegexPredicate) Match(f *File) (bool, error) {
	return p.re.MatchString(f.Name)
}

type contentRegexPredicate struct {
	lines []*regexp2.Regexp
}

func newContentRegexPredicate(key, template string) (*contentRegexPredicate, error) {
	templateLines := SplitTemplate(template)
	if len(templateLines) == 0 {
		return nil, emptyPatternError(key, KindContentRegex)
	}

	lines := make([]*regexp2.Regexp, 0, len(templateLines))
	for i, line := range templateLines {
		re, err := compileAnchored(line)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid,
				"rule %q has invalid %s at line %d", key, KindContentRegex, i+1)
		}
		lines = append(lines, re)
	}
	return &contentRegexPredicate{lines: lines}, nil
}

func (p *contentRegexPredicate) Kind() string { return KindContentRegex }

// Match reads exactly as many lines as the template has. A shorter file
// fails the predicate.
func (p *contentRegexPredicate) Match(f *File) (bool, error) {
	fileLines, err := f.Lines(len(p.lines))
	if err != nil {
		return false, err
	}
	if len(fileLines) < len(p.lines) {
		return false, nil
	}
	for i, re := range p.lines {
		ok, err := re.MatchString(fileLines[i])
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// SplitTemplate splits a content template into its line patterns on "\n",
// "\r\n" or "\r". A single trailing line break does not start an extra
// empty line.
func SplitTemplate(template string) []string {
	template = strings.ReplaceAll(template, "\r\n", "\n")
	template = strings.ReplaceAll(template, "\r", "\n")
	if template == "" {
		return nil
	}
	lines := strings.Split(template, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// compileAnchored compiles pattern so that it only matches at the start of
// the input. The end is left open: rule authors append `$` when they need it.
func compileAnchored(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(`\A(?:`+pattern+`)`, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

func emptyPatternError(key, kind string) error {
	return errors.Newf(errors.ErrConfigInvalid, "rule %q has empty %s", key, kind).
		WithDetail("key", key)
}
