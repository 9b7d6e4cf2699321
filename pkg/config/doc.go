// Package config loads bioreport settings and the report pattern file.
//
// Settings are layered with koanf: the embedded defaults, the user config
// under the XDG config directory, a project config in the working
// directory and finally BIOREPORT_* environment variables. The report
// patterns default to an embedded file covering the bundled parsers.
package config
