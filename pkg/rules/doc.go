// Package rules provides the declarative rule set that classifies report files.
//
// A rule set is a TOML table keyed by rule key. A key is either a bare module
// name or a module and submodule joined by "-":
//
//	["fastp-json"]
//	pattern_glob = "*.json"
//	content_regex = '''
//	\{
//	\s+"summary": \{'''
//
//	["toolX"]
//	pattern_regex = 'run\d+\.log'
//
// Each rule carries up to three predicates, all of which must pass:
//
//   - pattern_glob: glob evaluated in the file's directory (siblings only)
//   - pattern_regex: regex matched at the start of the file's base name
//   - content_regex: one regex per line, each matched at the start of the
//     corresponding file line
//
// Regexes are prefix matches; anchor the end with `$` to require a full match.
// A file matching more than one rule is a configuration defect reported by the
// classifier, never resolved by priority.
//
// Rule sets are immutable once built and safe for concurrent use.
package rules
