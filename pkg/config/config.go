package config

import (
	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/logging"
	"github.com/arthur-debert/bioreport/pkg/rules"
	"github.com/arthur-debert/bioreport/pkg/summary"
)

// Config is the merged bioreport configuration
type Config struct {
	Rules  Rules  `koanf:"rules" toml:"rules"`
	Scan   Scan   `koanf:"scan" toml:"scan"`
	Output Output `koanf:"output" toml:"output"`
}

// Rules selects the report pattern file
type Rules struct {
	Path string `koanf:"path" toml:"path"`
}

// Scan holds directory scan settings
type Scan struct {
	Workers    int  `koanf:"workers" toml:"workers"`
	FailFast   bool `koanf:"fail_fast" toml:"fail_fast"`
	SkipHidden bool `koanf:"skip_hidden" toml:"skip_hidden"`
}

// Output holds rendering settings
type Output struct {
	Format string `koanf:"format" toml:"format"`
	Join   string `koanf:"join" toml:"join"`
}

// Validate checks values koanf cannot type check
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "scan.workers must not be negative, got %d", c.Scan.Workers).
			WithDetail("key", "scan.workers")
	}
	if _, err := summary.ParseJoin(c.Output.Join); err != nil {
		return errors.Wrap(err, errors.ErrConfigInvalid, "invalid output.join")
	}
	return nil
}

// RuleSet loads the configured report patterns, the embedded ones when no
// path is set
func (c *Config) RuleSet() (*rules.RuleSet, error) {
	logger := logging.GetLogger("config")
	if c.Rules.Path == "" {
		logger.Debug().Msg("Using built-in report patterns")
		return rules.Parse(defaultRules)
	}
	logger.Debug().Str("path", c.Rules.Path).Msg("Loading report patterns")
	return rules.LoadFile(c.Rules.Path)
}
