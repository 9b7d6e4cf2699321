// Test Type: Unit Test
// Description: Tests for classifying files against synthetic rule sets

package classifier_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/bioreport/pkg/classifier"
	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicPredicate fails the test run if it is ever evaluated
type panicPredicate struct{}

func (panicPredicate) Kind() string { return "panic" }
func (panicPredicate) Match(*rules.File) (bool, error) {
	panic("predicate must not be evaluated")
}

type errorPredicate struct{}

func (errorPredicate) Kind() string { return "broken" }
func (errorPredicate) Match(*rules.File) (bool, error) {
	return false, stderrors.New("boom")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mustParse(t *testing.T, data string) *rules.RuleSet {
	t.Helper()
	rs, err := rules.Parse([]byte(data))
	require.NoError(t, err)
	return rs
}

const toolRules = `
[toolX]
pattern_glob = "*.log"
content_regex = 'Total reads: \d+'

["fastp-json"]
pattern_glob = "*.json"
content_regex = '''
\{
\s+"summary": \{'''

["fastp-html"]
pattern_glob = "*.html"
`

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	c := classifier.New(mustParse(t, toolRules))

	tests := []struct {
		name    string
		file    string
		content string
		want    report.Module
	}{
		{"bare module", "run1.log", "Total reads: 100 (50.0%)\n", report.Module{"toolX"}},
		{"module with submodule", "a.json", "{\n\t\"summary\": {\n", report.Module{"fastp", "json"}},
		{"glob only", "a.html", "<html>", report.Module{"fastp", "html"}},
		{"content mismatch", "other.log", "nothing here\n", nil},
		{"no rule for extension", "notes.txt", "Total reads: 100\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)

			r, err := c.Classify(path)
			require.NoError(t, err)
			assert.Equal(t, path, r.Path)
			assert.True(t, tt.want.Equal(r.Module), "want %v, got %v", tt.want, r.Module)
		})
	}
}

func TestClassify_RelativePathIsResolved(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "run1.log", "Total reads: 100\n")
	t.Chdir(dir)

	r, err := classifier.New(mustParse(t, toolRules)).Classify("run1.log")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(r.Path))
	assert.Equal(t, report.Module{"toolX"}, r.Module)
}

func TestClassify_NonRegularFilesSkipRules(t *testing.T) {
	rule, err := rules.NewRuleWithPredicates("toolX", panicPredicate{})
	require.NoError(t, err)
	rs, err := rules.NewRuleSet(rule)
	require.NoError(t, err)
	c := classifier.New(rs)

	dir := t.TempDir()

	for _, path := range []string{filepath.Join(dir, "missing.log"), dir} {
		r, err := c.Classify(path)
		require.NoError(t, err)
		assert.True(t, r.IsUnclassified())
		assert.Equal(t, path, r.Path)
	}
}

func TestClassify_Ambiguous(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sample.v1.txt", "x\n")

	c := classifier.New(mustParse(t, `
["toolA-generic"]
pattern_glob = "*.txt"

["toolA-variant1"]
pattern_glob = "*.v1.txt"

[toolB]
pattern_regex = "nomatch"
`))

	_, err := c.Classify(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAmbiguousMatch), "got %v", err)

	details := errors.GetErrorDetails(err)
	assert.Equal(t, path, details["path"])
	assert.Equal(t, []string{"toolA-generic", "toolA-variant1"}, details["keys"])
}

func TestClassify_ContentTemplateLongerThanFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run1.log", "line one\nline two\n")

	c := classifier.New(mustParse(t, `[toolX]
content_regex = '''
line one
line two
line three'''
`))

	r, err := c.Classify(path)
	require.NoError(t, err)
	assert.True(t, r.IsUnclassified())
}

func TestClassify_PredicateErrorIsWrapped(t *testing.T) {
	rule, err := rules.NewRuleWithPredicates("toolX", errorPredicate{})
	require.NoError(t, err)
	rs, err := rules.NewRuleSet(rule)
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "a.log", "")
	_, err = classifier.New(rs).Classify(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleEval), "got %v", err)
}

func TestClassify_Deterministic(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", "{\n  \"summary\": {\n")
	c := classifier.New(mustParse(t, toolRules))

	first, err := c.Classify(path)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := c.Classify(path)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}

func TestIsConsistent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run1.log", "Total reads: 100\n")
	c := classifier.New(mustParse(t, toolRules))

	ok, err := c.IsConsistent(report.Report{Path: path, Module: report.Module{"toolX"}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsConsistent(report.Report{Path: path, Module: report.Module{"fastp", "json"}})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.IsConsistent(report.Report{Path: path})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRefresh(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run1.log", "Total reads: 100\n")
	c := classifier.New(mustParse(t, toolRules))

	stale := report.Report{Path: path, Module: report.Module{"fastp", "json"}}

	once, err := c.Refresh(stale)
	require.NoError(t, err)
	assert.Equal(t, report.Module{"toolX"}, once.Module)
	assert.Equal(t, report.Module{"fastp", "json"}, stale.Module, "refresh must not mutate its argument")

	twice, err := c.Refresh(once)
	require.NoError(t, err)
	assert.True(t, once.Equal(twice))
}

func TestClassifyAll(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "run1.log", "Total reads: 100\n")
	ambiguous := writeFile(t, dir, "both.txt", "")

	c := classifier.New(mustParse(t, `
[toolA]
pattern_glob = "*.txt"

[toolB]
pattern_regex = "both"

[toolX]
pattern_glob = "*.log"
`))

	reports, failures := c.ClassifyAll([]string{good, ambiguous, filepath.Join(dir, "missing")})
	require.Len(t, reports, 2)
	assert.Equal(t, report.Module{"toolX"}, reports[0].Module)
	assert.True(t, reports[1].IsUnclassified())

	require.Len(t, failures, 1)
	assert.True(t, errors.IsErrorCode(failures[ambiguous], errors.ErrAmbiguousMatch))
}
