package rules

import (
	"sort"
	"strings"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/report"
)

// Pattern is the raw form of a rule as written in the rule file.
// A nil field is absent and imposes no constraint.
type Pattern struct {
	Glob         *string `toml:"pattern_glob,omitempty"`
	NameRegex    *string `toml:"pattern_regex,omitempty"`
	ContentRegex *string `toml:"content_regex,omitempty"`
}

// Predicate is one condition of a rule evaluated against a candidate file
type Predicate interface {
	// Kind names the predicate in logs, e.g. "pattern_glob"
	Kind() string

	// Match reports whether the file satisfies the predicate
	Match(f *File) (bool, error)
}

// Rule is a compiled rule set entry
type Rule struct {
	Key       string
	Module    string
	Submodule string
	Pattern   Pattern

	predicates []Predicate
}

// NewRule validates key and compiles every present field of p
func NewRule(key string, p Pattern) (*Rule, error) {
	var preds []Predicate

	if p.Glob != nil {
		pred, err := newGlobPredicate(key, *p.Glob)
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}
	if p.NameRegex != nil {
		pred, err := newNameRegexPredicate(key, *p.NameRegex)
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}
	if p.ContentRegex != nil {
		pred, err := newContentRegexPredicate(key, *p.ContentRegex)
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}

	rule, err := NewRuleWithPredicates(key, preds...)
	if err != nil {
		return nil, err
	}
	rule.Pattern = p
	return rule, nil
}

// NewRuleWithPredicates builds a rule from already constructed predicates.
// At least one predicate is required: an empty rule would match every file.
func NewRuleWithPredicates(key string, preds ...Predicate) (*Rule, error) {
	module, submodule, err := SplitKey(key)
	if err != nil {
		return nil, err
	}
	if len(preds) == 0 {
		return nil, errors.Newf(errors.ErrConfigInvalid, "rule %q has no patterns", key).
			WithDetail("key", key)
	}
	return &Rule{
		Key:        key,
		Module:     module,
		Submodule:  submodule,
		predicates: preds,
	}, nil
}

// Predicates returns the compiled predicates in evaluation order
func (r *Rule) Predicates() []Predicate {
	out := make([]Predicate, len(r.predicates))
	copy(out, r.predicates)
	return out
}

// ModuleTuple returns the module tuple a match on this rule yields
func (r *Rule) ModuleTuple() report.Module {
	if r.Submodule == "" {
		return report.Module{r.Module}
	}
	return report.Module{r.Module, r.Submodule}
}

// Matches evaluates all predicates in order, stopping at the first failure
func (r *Rule) Matches(f *File) (bool, error) {
	for _, pred := range r.predicates {
		ok, err := pred.Match(f)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrRuleEval,
				"rule %q failed to evaluate %s", r.Key, pred.Kind())
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// SplitKey splits a rule key into module and optional submodule
func SplitKey(key string) (module, submodule string, err error) {
	parts := strings.Split(key, report.KeySeparator)
	for _, part := range parts {
		if part == "" {
			return "", "", errors.Newf(errors.ErrConfigInvalid, "invalid report pattern key: %q", key).
				WithDetail("key", key)
		}
	}
	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", errors.Newf(errors.ErrConfigInvalid,
			"invalid report pattern key: %q has %d segments, expected 1 or 2", key, len(parts)).
			WithDetail("key", key)
	}
}

// sortedKeys returns the keys of m in lexical order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
