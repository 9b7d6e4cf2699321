// Package fastp parses fastp quality control reports in their html and
// json renditions.
package fastp

import (
	"os"

	"github.com/arthur-debert/bioreport/pkg/logging"
	"github.com/arthur-debert/bioreport/pkg/parsers"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/summary"
)

// ParserName is the module name of fastp reports
const ParserName = "fastp"

// Submodules implemented by the parser
const (
	SubmoduleHTML = "html"
	SubmoduleJSON = "json"
)

// Parser extracts the summary sections of fastp reports
type Parser struct {
	parsers.Base
}

// NewParser creates a fastp parser
func NewParser() *Parser {
	return &Parser{Base: parsers.NewBase(ParserName, []string{SubmoduleHTML, SubmoduleJSON})}
}

// Description returns a human-readable description of what this parser does
func (p *Parser) Description() string {
	return "fastp html and json quality control reports"
}

// Parse extracts the general, before/after filtering and filtering result
// sections. Keys are prefixed with their section, e.g.
// "before_filtering.total_reads".
func (p *Parser) Parse(r report.Report) (*summary.Summary, error) {
	sub, err := p.CheckModule(r)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("parsers.fastp")
	logger.Debug().Str("path", r.Path).Str("submodule", sub).Msg("Parsing fastp report")

	f, err := os.Open(r.Path)
	if err != nil {
		return nil, parsers.ParseError(err, r)
	}
	defer func() { _ = f.Close() }()

	s := parsers.NewSummary(r)
	switch sub {
	case SubmoduleHTML:
		err = parseHTML(f, s)
	case SubmoduleJSON:
		err = parseJSON(f, s)
	default:
		return nil, p.UnsupportedSubmodule(r)
	}
	if err != nil {
		return nil, parsers.ParseError(err, r)
	}
	return s, nil
}

func sectionKey(section, key string) string {
	return section + "." + key
}
