// Test Type: Unit Test
// Description: Tests for the parser registry and module validation

package parsers_test

import (
	"testing"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/parsers"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/rules"
	"github.com/arthur-debert/bioreport/pkg/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser struct {
	parsers.Base
}

func newStub(name string, subs ...string) *stubParser {
	return &stubParser{Base: parsers.NewBase(name, subs)}
}

func (p *stubParser) Description() string { return "stub" }

func (p *stubParser) Parse(r report.Report) (*summary.Summary, error) {
	if _, err := p.CheckModule(r); err != nil {
		return nil, err
	}
	return parsers.NewSummary(r), nil
}

func modules(t *testing.T, data string) *rules.ModuleRegistry {
	t.Helper()
	rs, err := rules.Parse([]byte(data))
	require.NoError(t, err)
	return rs.Modules()
}

func TestRegistry_Lookup(t *testing.T) {
	reg, err := parsers.NewRegistry(newStub("fastp", "html", "json"), newStub("toolX"))
	require.NoError(t, err)

	p, err := reg.Lookup("fastp")
	require.NoError(t, err)
	assert.Equal(t, "fastp", p.Name())
	assert.Equal(t, []string{"fastp", "toolX"}, reg.Names())

	_, err = reg.Lookup("bowtie2")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedModule))
	assert.Equal(t, "bowtie2", errors.GetErrorDetails(err)["module"])
}

func TestRegistry_RejectsDuplicatesAndFrozen(t *testing.T) {
	_, err := parsers.NewRegistry(newStub("fastp"), newStub("fastp"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	reg, err := parsers.NewRegistry()
	require.NoError(t, err)
	reg.Freeze()
	assert.Error(t, reg.Register(newStub("toolX")))
}

func TestRegistry_Validate(t *testing.T) {
	reg, err := parsers.NewRegistry(newStub("fastp", "html", "json"), newStub("toolX"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		rules string
		code  errors.ErrorCode
	}{
		{"complete", "[fastp-json]\npattern_glob = '*.json'\n[toolX]\npattern_glob = '*.log'\n", ""},
		{"subset of submodules", "[fastp-html]\npattern_glob = '*.html'\n", ""},
		{"missing parser", "[bowtie2-paired]\npattern_glob = '*.log'\n", errors.ErrUnsupportedModule},
		{"unknown submodule", "[fastp-xml]\npattern_glob = '*.xml'\n", errors.ErrUnsupportedSubmodule},
		{"submodule on bare parser", "[toolX-v2]\npattern_glob = '*.log'\n", errors.ErrUnsupportedSubmodule},
		{"bare rule for parser with submodules", "[fastp]\npattern_glob = '*.json'\n", errors.ErrUnsupportedSubmodule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Validate(modules(t, tt.rules))
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestBase_CheckModule(t *testing.T) {
	withSubs := parsers.NewBase("fastp", []string{"html", "json"})
	bare := parsers.NewBase("toolX", nil)

	sub, err := withSubs.CheckModule(report.Report{Path: "/a.json", Module: report.Module{"fastp", "json"}})
	require.NoError(t, err)
	assert.Equal(t, "json", sub)

	sub, err = bare.CheckModule(report.Report{Path: "/a.log", Module: report.Module{"toolX"}})
	require.NoError(t, err)
	assert.Equal(t, "", sub)

	_, err = bare.CheckModule(report.Report{Path: "/a.log", Module: report.Module{"toolX", "v2"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedSubmodule))

	_, err = withSubs.CheckModule(report.Report{Path: "/a.log", Module: report.Module{"toolX"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedModule))
}
