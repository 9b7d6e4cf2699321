// Package dispatcher turns classified reports into named summaries. It
// guards against stale classifications, resolves the module's parser from
// the registry and applies the summary name.
package dispatcher

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/bioreport/pkg/classifier"
	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/logging"
	"github.com/arthur-debert/bioreport/pkg/parsers"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/summary"
)

// ParseOptions controls a single Parse call
type ParseOptions struct {
	// Refresh re-classifies the report against the live rule set first
	Refresh bool

	// Name overrides the summary name; empty means the file's base name
	Name string
}

// Dispatcher routes reports to their format parser
type Dispatcher struct {
	classifier *classifier.Classifier
	parsers    *parsers.Registry
}

// New creates a dispatcher resolving parsers from reg and checking
// reports against c
func New(c *classifier.Classifier, reg *parsers.Registry) *Dispatcher {
	return &Dispatcher{classifier: c, parsers: reg}
}

// Parse extracts the summary of r.
//
// The stored module of r must agree with a fresh classification, otherwise
// the call fails with ErrFormatMismatch. Unclassified reports fail with
// ErrUnclassified and modules without a parser with ErrUnsupportedModule.
func (d *Dispatcher) Parse(r report.Report, opts ParseOptions) (*summary.Summary, error) {
	logger := logging.GetLogger("dispatcher")
	logger.Debug().
		Str("path", r.Path).
		Str("module", r.Module.Key()).
		Bool("refresh", opts.Refresh).
		Str("name", opts.Name).
		Msg("Dispatching report")

	if opts.Refresh {
		refreshed, err := d.classifier.Refresh(r)
		if err != nil {
			return nil, err
		}
		r = refreshed
	} else {
		ok, err := d.classifier.IsConsistent(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Newf(errors.ErrFormatMismatch,
				"the stored type of %s does not match the report patterns; refresh the report", r).
				WithDetail("path", r.Path).
				WithDetail("module", r.Module.Key())
		}
	}

	if r.IsUnclassified() {
		return nil, errors.Newf(errors.ErrUnclassified, "report is not classified: %s", r).
			WithDetail("path", r.Path)
	}

	parser, err := d.parsers.Lookup(r.Module.Name())
	if err != nil {
		return nil, err
	}

	sum, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}

	if opts.Name != "" {
		if err := ValidateName(opts.Name); err != nil {
			return nil, err
		}
		sum.Rename(opts.Name)
	} else {
		sum.Rename(r.BaseName())
	}

	logger.Info().
		Str("path", r.Path).
		Str("module", r.Module.Key()).
		Str("name", sum.Name()).
		Int("fields", sum.Len()).
		Msg("Report parsed")
	return sum, nil
}

// ValidateName accepts names that are not blank and contain no control
// characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Newf(errors.ErrInvalidName, "the name of the report is not supported: %q", name).
			WithDetail("name", name)
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return errors.Newf(errors.ErrInvalidName, "the name of the report contains control characters: %q", name).
			WithDetail("name", name)
	}
	return nil
}
