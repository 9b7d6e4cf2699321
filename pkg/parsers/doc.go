// Package parsers defines the contract format parsers implement and the
// registry the dispatcher resolves them from.
//
// Each parser owns one module name. It receives classified reports of that
// module and owns the switch over submodules; the dispatcher never branches
// on module identity beyond a registry lookup.
//
// The concrete parsers live in subpackages:
//
//	fastp    html and json reports
//	bowtie2  paired and unpaired alignment summaries
//	bismark  alignment and deduplication reports
package parsers
