// Test Type: Unit Test
// Description: Tests for the bowtie2 alignment summary parser

package bowtie2_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/parsers/bowtie2"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pairedSummary = `10000 reads; of these:
  10000 (100.00%) were paired; of these:
    650 (6.50%) aligned concordantly 0 times
    8823 (88.23%) aligned concordantly exactly 1 time
    527 (5.27%) aligned concordantly >1 times
    ----
    650 pairs aligned concordantly 0 times; of these:
      34 (5.23%) aligned discordantly 1 time
    ----
    616 pairs aligned 0 times concordantly or discordantly; of these:
      1232 mates make up the pairs; of these:
        660 (53.57%) aligned 0 times
        571 (46.35%) aligned exactly 1 time
        1 (0.08%) aligned >1 times
96.70% overall alignment rate
`

const unpairedSummary = `10000 reads; of these:
  10000 (100.00%) were unpaired; of these:
    596 (5.96%) aligned 0 times
    9284 (92.84%) aligned exactly 1 time
    120 (1.20%) aligned >1 times
94.04% overall alignment rate
`

func writeReport(t *testing.T, content string, module ...string) report.Report {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.bowtie2.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return report.Report{Path: path, Module: report.Module(module)}
}

func TestParse_Paired(t *testing.T) {
	r := writeReport(t, pairedSummary, "bowtie2", "paired")

	s, err := bowtie2.NewParser().Parse(r)
	require.NoError(t, err)
	assert.Equal(t, "sample.bowtie2.log", s.Name())

	want := []struct{ key, value string }{
		{"reads", "10000"},
		{"reads were paired", "10000"},
		{"percent reads were paired", "100.00"},
		{"pairs aligned concordantly 0 times", "650"},
		{"percent pairs aligned concordantly 0 times", "6.50"},
		{"pairs aligned concordantly exactly 1 time", "8823"},
		{"pairs aligned concordantly >1 times", "527"},
		{"pairs aligned discordantly 1 time", "34"},
		{"percent pairs aligned discordantly 1 time", "5.23"},
		{"pairs aligned 0 times concordantly or discordantly", "616"},
		{"mates make up the pairs", "1232"},
		{"mates aligned 0 times", "660"},
		{"percent mates aligned 0 times", "53.57"},
		{"mates aligned exactly 1 time", "571"},
		{"mates aligned >1 times", "1"},
		{"percent mates aligned >1 times", "0.08"},
		{"overall alignment rate", "96.70"},
	}
	for _, w := range want {
		got, ok := s.Get(w.key)
		if assert.True(t, ok, "missing key %q", w.key) {
			assert.Equal(t, w.value, got, "key %q", w.key)
		}
	}

	keys := s.Keys()
	assert.Equal(t, "reads", keys[0])
	assert.Equal(t, "overall alignment rate", keys[len(keys)-1])
}

func TestParse_Unpaired(t *testing.T) {
	r := writeReport(t, unpairedSummary, "bowtie2", "unpaired")

	s, err := bowtie2.NewParser().Parse(r)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"reads",
		"reads were unpaired",
		"percent reads were unpaired",
		"reads aligned 0 times",
		"percent reads aligned 0 times",
		"reads aligned exactly 1 time",
		"percent reads aligned exactly 1 time",
		"reads aligned >1 times",
		"percent reads aligned >1 times",
		"overall alignment rate",
	}, s.Keys())

	v, _ := s.Get("overall alignment rate")
	assert.Equal(t, "94.04", v)
}

func TestParse_SkipsNoise(t *testing.T) {
	r := writeReport(t, "Warning: skipping read 'r1' because it was < 2 characters long\n\n"+unpairedSummary,
		"bowtie2", "unpaired")

	s, err := bowtie2.NewParser().Parse(r)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Len())
}

func TestParse_CRLF(t *testing.T) {
	r := writeReport(t, "100 reads; of these:\r\n  100 (100.00%) were unpaired; of these:\r\n    5 (5.00%) aligned 0 times\r\n", "bowtie2", "unpaired")

	s, err := bowtie2.NewParser().Parse(r)
	require.NoError(t, err)
	v, ok := s.Get("reads aligned 0 times")
	assert.True(t, ok)
	assert.Equal(t, "5", v)
}

func TestParse_RejectsForeignModules(t *testing.T) {
	for _, tt := range []struct {
		module report.Module
		code   errors.ErrorCode
	}{
		{report.Module{"fastp", "json"}, errors.ErrUnsupportedModule},
		{report.Module{"bowtie2"}, errors.ErrUnsupportedSubmodule},
		{report.Module{"bowtie2", "single"}, errors.ErrUnsupportedSubmodule},
	} {
		r := writeReport(t, unpairedSummary, tt.module...)
		_, err := bowtie2.NewParser().Parse(r)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, tt.code), "%v: got %v", tt.module, err)
	}
}
