package rules

import (
	"github.com/arthur-debert/bioreport/pkg/errors"
)

// RuleSet is an ordered, immutable collection of rules plus the module
// registry derived from their keys.
type RuleSet struct {
	rules   []*Rule
	byKey   map[string]*Rule
	modules *ModuleRegistry
}

// NewRuleSet builds a rule set from rules in the given order.
// Duplicate keys and bare/submodule collisions are rejected.
func NewRuleSet(rules ...*Rule) (*RuleSet, error) {
	rs := &RuleSet{
		rules:   make([]*Rule, 0, len(rules)),
		byKey:   make(map[string]*Rule, len(rules)),
		modules: newModuleRegistry(),
	}

	for _, rule := range rules {
		if rule == nil {
			return nil, errors.New(errors.ErrInvalidInput, "nil rule")
		}
		if _, exists := rs.byKey[rule.Key]; exists {
			return nil, errors.Newf(errors.ErrConfigInvalid, "duplicate report pattern key: %s", rule.Key).
				WithDetail("key", rule.Key)
		}
		if err := rs.modules.add(rule.Key, rule.Module, rule.Submodule); err != nil {
			return nil, err
		}
		rs.rules = append(rs.rules, rule)
		rs.byKey[rule.Key] = rule
	}

	return rs, nil
}

// Rules returns the rules in evaluation order
func (rs *RuleSet) Rules() []*Rule {
	out := make([]*Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Keys returns the rule keys in evaluation order
func (rs *RuleSet) Keys() []string {
	keys := make([]string, len(rs.rules))
	for i, rule := range rs.rules {
		keys[i] = rule.Key
	}
	return keys
}

// Get returns the rule for key
func (rs *RuleSet) Get(key string) (*Rule, bool) {
	rule, ok := rs.byKey[key]
	return rule, ok
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Modules returns the module registry derived from the rule keys
func (rs *RuleSet) Modules() *ModuleRegistry {
	return rs.modules
}
