package config

import (
	_ "embed"

	"github.com/arthur-debert/bioreport/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

//go:embed embedded/report_patterns.toml
var defaultRules []byte

// DefaultConfigContent returns the embedded default settings
func DefaultConfigContent() string {
	return string(defaultConfig)
}

// DefaultRules returns the embedded report patterns
func DefaultRules() []byte {
	return defaultRules
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}
