// Package report defines the classified file reference passed between the
// classifier and the parser dispatch.
package report

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// KeySeparator joins module and submodule in a rule key, e.g. "fastp-json"
const KeySeparator = "-"

// Module is the classification of a report file: empty when unclassified,
// {module} for modules without variants, {module, submodule} otherwise.
type Module []string

// ParseModule splits a rule key into its module tuple
func ParseModule(key string) Module {
	if key == "" {
		return nil
	}
	return Module(strings.Split(key, KeySeparator))
}

// IsEmpty reports whether the module tuple has no segments
func (m Module) IsEmpty() bool {
	return len(m) == 0
}

// Name returns the first segment, "" when empty
func (m Module) Name() string {
	if len(m) == 0 {
		return ""
	}
	return m[0]
}

// Submodule returns the second segment, "" when absent
func (m Module) Submodule() string {
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// Key joins the segments back into a rule key
func (m Module) Key() string {
	return strings.Join(m, KeySeparator)
}

// Equal compares two module tuples segment by segment
func (m Module) Equal(other Module) bool {
	return slices.Equal(m, other)
}

// String renders the tuple the way it appears in log and error messages
func (m Module) String() string {
	return "(" + strings.Join(m, ", ") + ")"
}

// Report pairs an absolute file path with its classification.
// Reports are values: methods never mutate the receiver.
type Report struct {
	Path   string
	Module Module
}

// New returns an unclassified report for path.
// Relative paths are resolved against the working directory.
func New(path string) (Report, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Report{}, err
	}
	return Report{Path: abs}, nil
}

// WithModule returns a copy of r carrying module m
func (r Report) WithModule(m Module) Report {
	return Report{Path: r.Path, Module: slices.Clone(m)}
}

// IsUnclassified reports whether the module tuple is empty
func (r Report) IsUnclassified() bool {
	return r.Module.IsEmpty()
}

// BaseName returns the file name of the report
func (r Report) BaseName() string {
	return filepath.Base(r.Path)
}

// Equal is structural: same path and same module tuple
func (r Report) Equal(other Report) bool {
	return r.Path == other.Path && r.Module.Equal(other.Module)
}

func (r Report) String() string {
	return fmt.Sprintf("Report(path: %q, type: %q)", r.Path, r.Module.String())
}
