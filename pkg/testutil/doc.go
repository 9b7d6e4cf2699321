// Package testutil provides isolated test environments and sample report
// files for bioreport tests.
//
// Key components:
//   - TestEnvironment: temp directory with XDG variables redirected into it
//   - Sample reports: minimal but realistic outputs of the bundled tools
//
// All test data is defined inline, not in external files.
package testutil
