// Test Type: Unit Test
// Description: Tests for the Bismark report parser

package bismark_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/parsers/bismark"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alignReport = "Bismark report for: sample_R1.fq.gz and sample_R2.fq.gz (version: v0.24.0)\n" +
	"Option '--directional' specified (default mode): alignments to complementary strands were ignored\n" +
	"\n" +
	"Final Alignment report\n" +
	"======================\n" +
	"Sequence pairs analysed in total:\t10000\n" +
	"Number of paired-end alignments with a unique best hit:\t7500\n" +
	"Mapping efficiency:\t75.0%\n" +
	"CT/GA/CT:\t3700\t((converted) top strand)\n" +
	"\n" +
	"C methylated in CpG context:\t75.3%\n" +
	"Can't determine percentage of methylated Cs in CHH context if value was 0\n"

const dedupReport = "Total number of alignments analysed in sample.bam:\t10000\n" +
	"Total number duplicated alignments removed:\t500 (5.00%)\n" +
	"Duplicated alignments were found at:\t450 different position(s)\n" +
	"\n" +
	"Total count of deduplicated leftover sequences: 9500 (95.00% of total)\n"

func writeReport(t *testing.T, content string, module ...string) report.Report {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample_report.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return report.Report{Path: path, Module: report.Module(module)}
}

func TestParse_Align(t *testing.T) {
	s, err := bismark.NewParser().Parse(writeReport(t, alignReport, "bismark", "align"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Sequence pairs analysed in total",
		"Number of paired-end alignments with a unique best hit",
		"Mapping efficiency",
		"CT/GA/CT",
		"C methylated in CpG context",
	}, s.Keys())

	v, _ := s.Get("Mapping efficiency")
	assert.Equal(t, "75.0%", v)
	v, _ = s.Get("CT/GA/CT")
	assert.Equal(t, "3700", v)
}

func TestParse_Deduplicate(t *testing.T) {
	s, err := bismark.NewParser().Parse(writeReport(t, dedupReport, "bismark", "deduplicate"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Total number of alignments analysed in sample.bam",
		"Total number duplicated alignments removed",
		"Total count of deduplicated leftover sequences",
	}, s.Keys())

	v, _ := s.Get("Total number duplicated alignments removed")
	assert.Equal(t, "500", v)
}

func TestParse_RejectsForeignModules(t *testing.T) {
	for _, tt := range []struct {
		module report.Module
		code   errors.ErrorCode
	}{
		{report.Module{"bowtie2", "paired"}, errors.ErrUnsupportedModule},
		{report.Module{"bismark"}, errors.ErrUnsupportedSubmodule},
		{report.Module{"bismark", "methylation"}, errors.ErrUnsupportedSubmodule},
	} {
		_, err := bismark.NewParser().Parse(writeReport(t, alignReport, tt.module...))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, tt.code), "%v: got %v", tt.module, err)
	}
}

func TestParse_MissingFile(t *testing.T) {
	r := report.Report{Path: filepath.Join(t.TempDir(), "gone.txt"), Module: report.Module{"bismark", "align"}}
	_, err := bismark.NewParser().Parse(r)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrReportParse))
}
