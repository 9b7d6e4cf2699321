// Package core wires the report pipeline: configuration, report patterns,
// parsers, classifier and dispatcher.
//
// # Pipeline
//
// A run flows through four stages:
//
//  1. The report patterns are loaded into an immutable rule set, which
//     also derives the module registry.
//  2. The installed parsers are checked against that registry. A module
//     without a parser, or a submodule a parser does not implement, aborts
//     startup so drift between patterns and code surfaces immediately.
//  3. Files are classified, either one by one or through a directory scan.
//  4. Classified reports are dispatched to their parser and the resulting
//     summaries are aggregated per module into tables.
//
// The engine holds no global state; tests build engines from synthetic
// rule sets and parser registries.
package core
