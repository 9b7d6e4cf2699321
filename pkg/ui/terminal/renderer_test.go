package terminal_test

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/arthur-debert/bioreport/pkg/ui/display"
	"github.com/arthur-debert/bioreport/pkg/ui/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderScanPlain(t *testing.T) {
	buf := &bytes.Buffer{}
	res := display.ScanResult{
		Root:         "/data",
		Total:        4,
		Unclassified: 2,
		Reports:      []display.Report{{Path: "/data/a.json", Module: "fastp-json"}},
		Failures:     []display.Failure{{Path: "/data/b.txt", Error: "ambiguous"}},
	}
	require.NoError(t, terminal.New(buf, true).RenderScan(res))

	out := buf.String()
	assert.Contains(t, out, "Scanned /data")
	assert.Contains(t, out, "/data/a.json")
	assert.Contains(t, out, "fastp-json")
	assert.Contains(t, out, "x /data/b.txt: ambiguous")
	assert.Contains(t, out, "4 files, 1 reports, 2 unclassified, 1 failed")
	assert.Contains(t, out, "+")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderParseIsTransposed(t *testing.T) {
	buf := &bytes.Buffer{}
	res := display.ParseResult{Tables: []display.Table{{
		Module:  "fastp-json",
		Columns: []string{"before.total_reads", "after.total_reads"},
		Names:   []string{"sampleA", "sampleB"},
		Rows:    [][]string{{"100", "90"}, {"200", "180"}},
	}}}
	require.NoError(t, terminal.New(buf, true).RenderParse(res))

	lines := strings.Split(buf.String(), "\n")
	var header, before string
	for _, l := range lines {
		if strings.Contains(l, "sampleA") {
			header = l
		}
		if strings.Contains(l, "before.total_reads") {
			before = l
		}
	}
	require.NotEmpty(t, header)
	require.NotEmpty(t, before)
	assert.Less(t, strings.Index(header, "sampleA"), strings.Index(header, "sampleB"))
	assert.Less(t, strings.Index(before, "100"), strings.Index(before, "200"))
}

func TestRenderRulesStyled(t *testing.T) {
	buf := &bytes.Buffer{}
	list := display.RuleList{Rules: []display.Rule{{Key: "bismark-align", Module: "bismark", Submodule: "align", Glob: "*report.txt"}}}
	require.NoError(t, terminal.New(buf, false).RenderRules(list))
	assert.Contains(t, buf.String(), "bismark-align")
	assert.Contains(t, buf.String(), "*report.txt")
}

func TestRenderErrorAndMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	r := terminal.New(buf, true)
	require.NoError(t, r.RenderError(stderrors.New("boom")))
	require.NoError(t, r.RenderMessage("hello"))
	assert.Equal(t, "Error: boom\nhello\n", buf.String())
}
