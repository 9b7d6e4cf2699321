package fastp

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/summary"
)

// htmlSections are the ids of the divs holding summary tables, in output order
var htmlSections = []string{
	"general",
	"before_filtering_summary",
	"after_filtering_summary",
	"filtering_result",
}

// parseHTML reads the two-column summary tables of each section.
// Sections missing from the report are skipped.
func parseHTML(r io.Reader, s *summary.Summary) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrReportParse, "invalid html")
	}

	for _, section := range htmlSections {
		var rowErr error
		doc.Find("div#" + section + " table.summary_table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
			cells := row.Find("td")
			if cells.Length() != 2 {
				html, _ := goquery.OuterHtml(row)
				rowErr = errors.Newf(errors.ErrReportParse, "unexpected table row in %s: %s", section, html)
				return false
			}
			key := strings.TrimSuffix(strings.TrimSpace(cells.Eq(0).Text()), ":")
			s.Set(sectionKey(section, key), strings.TrimSpace(cells.Eq(1).Text()))
			return true
		})
		if rowErr != nil {
			return rowErr
		}
	}
	return nil
}
