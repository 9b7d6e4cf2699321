package bioreport

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Classify and summarize bioinformatics reports"
	MsgScanShort       = "Classify every file below a directory"
	MsgClassifyShort   = "Print the module of each file"
	MsgParseShort      = "Extract summary tables from report files"
	MsgRulesShort      = "List the report patterns in use"
	MsgConfigShort     = "Print the effective configuration"
	MsgWatchShort      = "Rescan a directory when it or the patterns change"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgStaleFormat   = "%d reports are stale and %d failed after the pattern reload"
	MsgWatchingRoot  = "Watching %s, press Ctrl-C to stop"
	MsgVersionFormat = "bioreport version %s\n  commit: %s\n  built:  %s\n"
	MsgScanning      = "Scanning"

	// Error messages
	MsgErrFailedFiles = "%d of %d files failed"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRules    = "Report pattern file (default: built-in patterns)"
	MsgFlagFormat   = "Output format: auto, term, text, json, yaml, toml, csv, markdown"
	MsgFlagWorkers  = "Number of concurrent classifications (0: one per CPU)"
	MsgFlagFailFast = "Stop at the first file that fails"
	MsgFlagHidden   = "Include hidden files and directories"
	MsgFlagParse    = "Also parse the classified reports"
	MsgFlagName     = "Summary name, only for a single file"
	MsgFlagRefresh  = "Re-classify reports before parsing"
	MsgFlagJoin     = "How summaries with different keys are combined: outer or inner"
	MsgFlagDefaults = "Print the commented default configuration"
	MsgFlagDebounce = "Quiet period after a change before rescanning"
	MsgFlagDump     = "Print the patterns as a pattern file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/scan-example.txt
	msgScanExampleRaw string
	MsgScanExample    = strings.TrimRight(msgScanExampleRaw, "\n")

	//go:embed msgs/classify-long.txt
	msgClassifyLongRaw string
	MsgClassifyLong    = strings.TrimSpace(msgClassifyLongRaw)

	//go:embed msgs/parse-long.txt
	msgParseLongRaw string
	MsgParseLong    = strings.TrimSpace(msgParseLongRaw)

	//go:embed msgs/parse-example.txt
	msgParseExampleRaw string
	MsgParseExample    = strings.TrimRight(msgParseExampleRaw, "\n")

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
