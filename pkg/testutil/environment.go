package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnvironment is an isolated directory tree. The XDG config and state
// directories point inside it so no user configuration or log file leaks
// into tests.
type TestEnvironment struct {
	Root      string
	ConfigDir string
	StateDir  string

	t *testing.T
}

// NewTestEnvironment creates an environment rooted in a fresh temp dir
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	base := t.TempDir()
	env := &TestEnvironment{
		Root:      filepath.Join(base, "data"),
		ConfigDir: filepath.Join(base, "config"),
		StateDir:  filepath.Join(base, "state"),
		t:         t,
	}
	for _, dir := range []string{env.Root, env.ConfigDir, env.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	return env
}

// WriteFile writes content to a slash separated path below Root and returns
// the absolute path
func (e *TestEnvironment) WriteFile(rel, content string) string {
	e.t.Helper()

	path := filepath.Join(e.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("Failed to create parent of %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// WriteFiles writes every rel -> content entry
func (e *TestEnvironment) WriteFiles(files map[string]string) {
	e.t.Helper()
	for rel, content := range files {
		e.WriteFile(rel, content)
	}
}

// Path returns the absolute path of a slash separated path below Root
func (e *TestEnvironment) Path(rel string) string {
	return filepath.Join(e.Root, filepath.FromSlash(rel))
}

// WriteSampleReports writes one sample of each bundled report kind, plus a
// file no pattern matches, and returns their relative paths keyed by rule
// key ("" for the unmatched file)
func (e *TestEnvironment) WriteSampleReports() map[string]string {
	e.t.Helper()

	samples := map[string]string{
		"fastp-html":          "qc/sample1.fastp.html",
		"fastp-json":          "qc/sample1.fastp.json",
		"bowtie2-paired":      "align/sample1.bowtie2.log",
		"bowtie2-unpaired":    "align/sample2.bowtie2.log",
		"bismark-align":       "methyl/sample1_PE_report.txt",
		"bismark-deduplicate": "methyl/sample1.deduplication_report.txt",
		"":                    "notes/README.md",
	}
	contents := map[string]string{
		"fastp-html":          FastpHTML,
		"fastp-json":          FastpJSON,
		"bowtie2-paired":      Bowtie2Paired,
		"bowtie2-unpaired":    Bowtie2Unpaired,
		"bismark-align":       BismarkAlign,
		"bismark-deduplicate": BismarkDeduplicate,
		"":                    "# run notes\n",
	}
	for key, rel := range samples {
		e.WriteFile(rel, contents[key])
	}
	return samples
}
