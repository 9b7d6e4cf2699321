// Package bowtie2 parses the alignment summary bowtie2 prints to stderr.
//
// The summary is an indented tree of counts. Header lines end in
// "; of these:" and scope the lines indented below them:
//
//	10000 reads; of these:
//	  10000 (100.00%) were paired; of these:
//	    650 (6.50%) aligned concordantly 0 times
//	    ----
//	    616 pairs aligned 0 times concordantly or discordantly; of these:
//	      1232 mates make up the pairs; of these:
//	        660 (53.57%) aligned 0 times
//	96.70% overall alignment rate
//
// Every count is keyed by its unit and description, e.g.
// "pairs aligned concordantly 0 times", and percentages are stored under
// the same key prefixed with "percent ". The unit is the one the line
// names (reads, pairs or mates), otherwise the one its header implies:
// children of "were paired" count pairs, children of any other header
// count what the header counts.
package bowtie2

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

// ParserName is the module name of bowtie2 summaries
const ParserName = "bowtie2"

// Submodules implemented by the parser
const (
	SubmodulePaired   = "paired"
	SubmoduleUnpaired = "unpaired"
)

const (
	headerSuffix  = "; of these:"
	percentPrefix = "percent "
	defaultUnit   = "reads"
)

var (
	countPattern   = regexp.MustCompile(`^\d+$`)
	percentPattern = regexp.MustCompile(`^\(([\d.]+)%\)$`)
	overallPattern = regexp.MustCompile(`^([\d.]+)% overall alignment rate$`)
	units          = map[string]bool{"reads": true, "pairs": true, "mates": true}
)

// Parser extracts alignment counts from bowtie2 summaries
type Parser struct {
	parsers.Base
}

// NewParser creates a bowtie2 parser
func NewParser() *Parser {
	return &Parser{Base: parsers.NewBase(ParserName, []string{SubmodulePaired, SubmoduleUnpaired})}
}

// Description returns a human-readable description of what this parser does
func (p *Parser) Description() string {
	return "bowtie2 paired and unpaired alignment summaries"
}

// Parse extracts every count of the summary. Paired and unpaired
// summaries share one layout.
func (p *Parser) Parse(r report.Report) (*summary.Summary, error) {
	sub, err := p.CheckModule(r)
	if err != nil {
		return nil, err
	}
	if sub != SubmodulePaired && sub != SubmoduleUnpaired {
		return nil, p.UnsupportedSubmodule(r)
	}

	logger := logging.GetLogger("parsers.bowtie2")
	logger.Debug().Str("path", r.Path).Str("submodule", sub).Msg("Parsing bowtie2 summary")

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
	parseLines(lines, s)
	return s, nil
}

// scope is an open header: lines indented deeper than indent count unit
type scope struct {
	indent int
	unit   string
}

func parseLines(lines []string, s *summary.Summary) {
	logger := logging.GetLogger("parsers.bowtie2")
	var stack []scope

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Trim(line, "-") == "" {
			continue
		}
		if m := overallPattern.FindStringSubmatch(line); m != nil {
			s.Set("overall alignment rate", m[1])
			continue
		}

		indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		unit := defaultUnit
		if len(stack) > 0 {
			unit = stack[len(stack)-1].unit
		}

		header := strings.HasSuffix(line, headerSuffix)
		if header {
			line = strings.TrimSuffix(line, headerSuffix)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || !countPattern.MatchString(fields[0]) {
			logger.Trace().Str("line", line).Msg("Skipping line without a count")
			continue
		}
		value, rest := fields[0], fields[1:]

		var percent string
		if len(rest) > 0 {
			if m := percentPattern.FindStringSubmatch(rest[0]); m != nil {
				percent = m[1]
				rest = rest[1:]
			}
		}
		if len(rest) > 0 && units[rest[0]] {
			unit = rest[0]
			rest = rest[1:]
		}

		key := strings.TrimSpace(unit + " " + strings.Join(rest, " "))
		s.Set(key, value)
		if percent != "" {
			s.Set(percentPrefix+key, percent)
		}

		if header {
			childUnit := unit
			if strings.Join(rest, " ") == "were paired" {
				childUnit = "pairs"
			}
			stack = append(stack, scope{indent: indent, unit: childUnit})
		}
	}
}
