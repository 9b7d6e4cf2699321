// Package bismark parses Bismark alignment and deduplication reports.
package bismark

import (
	"os"
	"regexp"
	"strings"

	"github.com/arthur-debert/bioreport/pkg/logging"
	"github.com/arthur-debert/bioreport/pkg/parsers"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/rules"
	"github.com/arthur-debert/bioreport/pkg/summary"
)

// ParserName is the module name of Bismark reports
const ParserName = "bismark"

// Submodules implemented by the parser
const (
	SubmoduleAlign       = "align"
	SubmoduleDeduplicate = "deduplicate"
)

// infoLine matches "key: value" lines whose value is a number or a
// percentage, optionally followed by a parenthesised remark
var infoLine = regexp.MustCompile(`^(?P<key>[^:^\n]+):\s*(?P<value>[\d%.]+)\s*(?P<bracket>\(.+\))?\s*$`)

// Parser extracts the numeric fields of Bismark reports
type Parser struct {
	parsers.Base
}

// NewParser creates a Bismark parser
func NewParser() *Parser {
	return &Parser{Base: parsers.NewBase(ParserName, []string{SubmoduleAlign, SubmoduleDeduplicate})}
}

// Description returns a human-readable description of what this parser does
func (p *Parser) Description() string {
	return "Bismark alignment and deduplication reports"
}

// Parse extracts every numeric "key: value" line. Both report kinds share
// this layout. Remarks in parentheses are dropped.
func (p *Parser) Parse(r report.Report) (*summary.Summary, error) {
	sub, err := p.CheckModule(r)
	if err != nil {
		return nil, err
	}
	if sub != SubmoduleAlign && sub != SubmoduleDeduplicate {
		return nil, p.UnsupportedSubmodule(r)
	}

	logger := logging.GetLogger("parsers.bismark")
	logger.Debug().Str("path", r.Path).Str("submodule", sub).Msg("Parsing bismark report")

	f, err := os.Open(r.Path)
	if err != nil {
		return nil, parsers.ParseError(err, r)
	}
	defer func() { _ = f.Close() }()

	lines, err := rules.ReadStrippedLines(f, -1)
	if err != nil {
		return nil, parsers.ParseError(err, r)
	}

	s := parsers.NewSummary(r)
	keyIdx := infoLine.SubexpIndex("key")
	valueIdx := infoLine.SubexpIndex("value")
	for _, line := range lines {
		m := infoLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		s.Set(strings.TrimSpace(m[keyIdx]), m[valueIdx])
	}
	return s, nil
}
