package rules

import (
	"slices"

	"github.com/arthur-debert/bioreport/pkg/errors"
)

// ModuleRegistry maps each module to its submodules, derived from rule keys.
// Modules declared with a bare key have no submodules.
type ModuleRegistry struct {
	order      []string
	submodules map[string][]string
}

func newModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{submodules: make(map[string][]string)}
}

// add records one rule key. A module may be declared bare or with
// submodules, never both.
func (m *ModuleRegistry) add(key, module, submodule string) error {
	subs, seen := m.submodules[module]
	switch {
	case !seen:
		m.order = append(m.order, module)
		if submodule == "" {
			m.submodules[module] = []string{}
		} else {
			m.submodules[module] = []string{submodule}
		}
		return nil
	case submodule == "" || len(subs) == 0:
		return errors.Newf(errors.ErrConfigInvalid,
			"conflict of report pattern keys: %s <-> %s", module, key).
			WithDetail("module", module).
			WithDetail("key", key)
	case slices.Contains(subs, submodule):
		return errors.Newf(errors.ErrConfigInvalid, "duplicate report pattern key: %s", key).
			WithDetail("key", key)
	default:
		m.submodules[module] = append(subs, submodule)
		return nil
	}
}

// Modules returns module names in rule set order
func (m *ModuleRegistry) Modules() []string {
	return slices.Clone(m.order)
}

// Submodules returns the submodules of module; ok is false for unknown modules
func (m *ModuleRegistry) Submodules(module string) (subs []string, ok bool) {
	subs, ok = m.submodules[module]
	return slices.Clone(subs), ok
}

// Has reports whether module is declared
func (m *ModuleRegistry) Has(module string) bool {
	_, ok := m.submodules[module]
	return ok
}

// HasSubmodule reports whether module declares submodule
func (m *ModuleRegistry) HasSubmodule(module, submodule string) bool {
	return slices.Contains(m.submodules[module], submodule)
}

// Len returns the number of modules
func (m *ModuleRegistry) Len() int {
	return len(m.order)
}
