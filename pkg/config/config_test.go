package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config at an empty directory and returns a
// project directory
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return t.TempDir()
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(isolate(t), nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Rules.Path)
	assert.Equal(t, 0, cfg.Scan.Workers)
	assert.False(t, cfg.Scan.FailFast)
	assert.True(t, cfg.Scan.SkipHidden)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, "outer", cfg.Output.Join)
}

func TestLoad_Layering(t *testing.T) {
	userHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", userHome)
	project := t.TempDir()

	writeConfig(t, filepath.Join(userHome, "bioreport", "config.toml"), `
[scan]
workers = 2
fail_fast = true

[output]
format = "json"
`)
	writeConfig(t, filepath.Join(project, ".bioreport.toml"), `
[scan]
workers = 4
`)
	t.Setenv("BIOREPORT_OUTPUT_JOIN", "inner")
	t.Setenv("BIOREPORT_SCAN_SKIP_HIDDEN", "false")

	cfg, err := LoadFrom(project, map[string]interface{}{"rules.path": "custom.toml"})
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Scan.Workers, "project config overrides user config")
	assert.True(t, cfg.Scan.FailFast, "user config overrides defaults")
	assert.False(t, cfg.Scan.SkipHidden, "env overrides defaults")
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "inner", cfg.Output.Join)
	assert.Equal(t, "custom.toml", cfg.Rules.Path)
}

func TestLoad_DotFileWins(t *testing.T) {
	project := isolate(t)
	writeConfig(t, filepath.Join(project, ".bioreport.toml"), "[scan]\nworkers = 1\n")
	writeConfig(t, filepath.Join(project, "bioreport.toml"), "[scan]\nworkers = 9\n")

	cfg, err := LoadFrom(project, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Scan.Workers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"malformed", "[scan\nworkers = 1", errors.ErrConfigParse},
		{"negative workers", "[scan]\nworkers = -1\n", errors.ErrConfigInvalid},
		{"unknown join", "[output]\njoin = \"left\"\n", errors.ErrConfigInvalid},
		{"wrong type", "[scan]\nworkers = \"many\"\n", errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := isolate(t)
			writeConfig(t, filepath.Join(project, "bioreport.toml"), tt.content)

			_, err := LoadFrom(project, nil)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestRuleSet_Default(t *testing.T) {
	cfg, err := LoadFrom(isolate(t), nil)
	require.NoError(t, err)

	rs, err := cfg.RuleSet()
	require.NoError(t, err)

	mods := rs.Modules()
	assert.Equal(t, []string{"bismark", "bowtie2", "fastp"}, mods.Modules())
	subs, ok := mods.Submodules("fastp")
	assert.True(t, ok)
	assert.Equal(t, []string{"html", "json"}, subs)
}

func TestRuleSet_FromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.toml")
	writeConfig(t, path, "[toolX]\npattern_glob = \"*.log\"\n")

	cfg := &Config{Rules: Rules{Path: path}}
	rs, err := cfg.RuleSet()
	require.NoError(t, err)
	assert.Equal(t, []string{"toolX"}, rs.Keys())

	cfg.Rules.Path = filepath.Join(dir, "missing.toml")
	_, err = cfg.RuleSet()
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[scan]")
	assert.Contains(t, content, "# workers = 0")
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}
}

func TestMarshal(t *testing.T) {
	cfg := &Config{Scan: Scan{Workers: 3}, Output: Output{Format: "json", Join: "outer"}}
	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workers = 3")
	assert.Contains(t, string(data), "[output]")
}
