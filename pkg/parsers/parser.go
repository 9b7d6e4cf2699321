package parsers

import (
	"slices"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/summary"
)

// Parser extracts a summary from reports of one module
type Parser interface {
	// Name returns the module name this parser handles
	Name() string

	// Description returns a human-readable description of the parser
	Description() string

	// Submodules returns the submodules accepted by Parse, empty for
	// modules without variants
	Submodules() []string

	// Parse extracts the summary of r. The summary is named after the
	// report's base name.
	Parse(r report.Report) (*summary.Summary, error)
}

// Base carries the module name and submodule set shared by parsers and
// validates incoming module tuples.
type Base struct {
	name       string
	submodules []string
}

// NewBase creates a Base for module name accepting submodules
func NewBase(name string, submodules []string) Base {
	return Base{name: name, submodules: slices.Clone(submodules)}
}

// Name returns the module name
func (b Base) Name() string {
	return b.name
}

// Submodules returns the accepted submodules
func (b Base) Submodules() []string {
	return slices.Clone(b.submodules)
}

// CheckModule verifies that r belongs to this module and, when the module
// has submodules, that it carries exactly one accepted submodule. It
// returns the submodule, "" for bare modules.
func (b Base) CheckModule(r report.Report) (string, error) {
	if r.Module.Name() != b.name {
		return "", errors.Newf(errors.ErrUnsupportedModule,
			"the module of the report is not supported by %s: %s", b.name, r).
			WithDetail("path", r.Path).
			WithDetail("module", r.Module.Name())
	}

	want := 1
	if len(b.submodules) > 0 {
		want = 2
	}
	if len(r.Module) != want {
		return "", errors.Newf(errors.ErrUnsupportedSubmodule,
			"the module of the report is not supported by %s: %s; expected submodules: %v", b.name, r, b.submodules).
			WithDetail("path", r.Path).
			WithDetail("module", b.name)
	}
	if want == 1 {
		return "", nil
	}

	sub := r.Module.Submodule()
	if !slices.Contains(b.submodules, sub) {
		return "", b.UnsupportedSubmodule(r)
	}
	return sub, nil
}

// UnsupportedSubmodule builds the error returned for a submodule a parser
// does not implement
func (b Base) UnsupportedSubmodule(r report.Report) error {
	return errors.Newf(errors.ErrUnsupportedSubmodule,
		"the submodule of the report is not supported by %s: %s; expected submodules: %v", b.name, r, b.submodules).
		WithDetail("path", r.Path).
		WithDetail("module", b.name).
		WithDetail("submodule", r.Module.Submodule())
}

// NewSummary creates an empty summary for r named after its base name
func NewSummary(r report.Report) *summary.Summary {
	return summary.New(r.Module, r.BaseName())
}

// ParseError wraps a read or extraction failure of r
func ParseError(err error, r report.Report) error {
	code := errors.ErrReportParse
	if errors.GetErrorCode(err) != errors.ErrUnknown {
		code = errors.GetErrorCode(err)
	}
	return errors.Wrapf(err, code, "failed to parse %s", r)
}
