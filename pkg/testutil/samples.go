package testutil

// FastpHTML is a trimmed fastp html report
const FastpHTML = `<html><head><meta http-equiv="content-type" content="text/html;charset=utf-8" /><title>fastp report at 2024-03-01 10:00:00 </title></head>
<body><div id='container'>
<div id='general'><table class='summary_table'>
<tr><td class='col1'>fastp version:</td><td class='col2'>0.23.4</td></tr>
<tr><td class='col1'>duplication rate:</td><td class='col2'>1.2%</td></tr>
</table></div>
<div id='before_filtering_summary'><table class='summary_table'>
<tr><td class='col1'>total reads:</td><td class='col2'>20.000 K</td></tr>
</table></div>
<div id='after_filtering_summary'><table class='summary_table'>
<tr><td class='col1'>total reads:</td><td class='col2'>19.500 K</td></tr>
</table></div>
<div id='filtering_result'><table class='summary_table'>
<tr><td class='col1'>reads passed filters:</td><td class='col2'>19.500 K (97.5%)</td></tr>
</table></div>
</div></body></html>
`

// FastpJSON is a trimmed fastp json report
const FastpJSON = `{
	"summary": {
		"fastp_version": "0.23.4",
		"before_filtering": {
			"total_reads": 20000,
			"q30_rate": 0.91
		},
		"after_filtering": {
			"total_reads": 19500,
			"q30_rate": 0.93
		}
	},
	"filtering_result": {
		"passed_filter_reads": 19500,
		"low_quality_reads": 500
	}
}
`

// Bowtie2Paired is a bowtie2 summary of a paired-end run
const Bowtie2Paired = `10000 reads; of these:
  10000 (100.00%) were paired; of these:
    650 (6.50%) aligned concordantly 0 times
    8823 (88.23%) aligned concordantly exactly 1 time
    527 (5.27%) aligned concordantly >1 times
    ----
    650 pairs aligned concordantly 0 times; of these:
      34 (5.23%) aligned discordantly 1 time
96.70% overall alignment rate
`

// Bowtie2Unpaired is a bowtie2 summary of a single-end run
const Bowtie2Unpaired = `10000 reads; of these:
  10000 (100.00%) were unpaired; of these:
    596 (5.96%) aligned 0 times
    9284 (92.84%) aligned exactly 1 time
    120 (1.20%) aligned >1 times
94.04% overall alignment rate
`

// BismarkAlign is a trimmed Bismark alignment report
const BismarkAlign = "Bismark report for: sample1_R1.fq.gz and sample1_R2.fq.gz (version: v0.24.0)\n" +
	"\n" +
	"Final Alignment report\n" +
	"======================\n" +
	"Sequence pairs analysed in total:\t10000\n" +
	"Number of paired-end alignments with a unique best hit:\t7500\n" +
	"Mapping efficiency:\t75.0%\n"

// BismarkDeduplicate is a Bismark deduplication report
const BismarkDeduplicate = "Total number of alignments analysed in sample1_pe.bam:\t7500\n" +
	"Total number duplicated alignments removed:\t300 (4.00%)\n" +
	"Duplicated alignments were found at:\t280 different position(s)\n" +
	"\n" +
	"Total count of deduplicated leftover sequences: 7200 (96.00% of total)\n"
