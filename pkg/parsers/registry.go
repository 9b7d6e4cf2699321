package parsers

import (
	"slices"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/registry"
	"github.com/arthur-debert/bioreport/pkg/rules"
)

// Registry maps module names to their parsers
type Registry struct {
	parsers *registry.Registry[Parser]
}

// NewRegistry creates a registry holding ps
func NewRegistry(ps ...Parser) (*Registry, error) {
	r := &Registry{parsers: registry.New[Parser]("parser")}
	for _, p := range ps {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds p under its module name
func (r *Registry) Register(p Parser) error {
	return r.parsers.Register(p.Name(), p)
}

// Lookup returns the parser for module. A module without a parser is an
// ErrUnsupportedModule.
func (r *Registry) Lookup(module string) (Parser, error) {
	p, err := r.parsers.Get(module)
	if err != nil {
		unsupported := errors.Newf(errors.ErrUnsupportedModule,
			"no parser is registered for module %q", module).
			WithDetail("module", module)
		unsupported.Wrapped = err
		return nil, unsupported
	}
	return p, nil
}

// Names returns the registered module names, sorted
func (r *Registry) Names() []string {
	return r.parsers.Names()
}

// Freeze rejects further registration
func (r *Registry) Freeze() {
	r.parsers.Freeze()
}

// Validate checks that every module and submodule of mods has a parser
// that accepts it. Drift between the configured rules and the installed
// parsers is an ErrUnsupportedModule or ErrUnsupportedSubmodule.
func (r *Registry) Validate(mods *rules.ModuleRegistry) error {
	for _, module := range mods.Modules() {
		p, err := r.Lookup(module)
		if err != nil {
			return err
		}
		subs, _ := mods.Submodules(module)
		accepted := p.Submodules()
		for _, sub := range subs {
			if !slices.Contains(accepted, sub) {
				return errors.Newf(errors.ErrUnsupportedSubmodule,
					"parser %s does not support submodule %q configured in the report patterns", module, sub).
					WithDetail("module", module).
					WithDetail("submodule", sub)
			}
		}
		if len(subs) == 0 && len(accepted) > 0 {
			return errors.Newf(errors.ErrUnsupportedSubmodule,
				"parser %s expects submodules %v but the report patterns declare it bare", module, accepted).
				WithDetail("module", module)
		}
	}
	return nil
}
