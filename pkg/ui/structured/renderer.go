// Package structured provides machine-readable JSON, YAML and TOML output
package structured

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/bioreport/pkg/ui/display"
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encoding selects the document syntax
type Encoding int

const (
	JSON Encoding = iota
	YAML
	TOML
)

// Renderer encodes view models as one document per call
type Renderer struct {
	output   io.Writer
	encoding Encoding
}

// New creates a new structured renderer
func New(output io.Writer, encoding Encoding) *Renderer {
	return &Renderer{output: output, encoding: encoding}
}

type message struct {
	Message string `json:"message" yaml:"message" toml:"message"`
}

type errorDoc struct {
	Error string `json:"error" yaml:"error" toml:"error"`
}

// RenderReports implements ui.Renderer
func (r *Renderer) RenderReports(list display.ReportList) error {
	return r.encode(list)
}

// RenderScan implements ui.Renderer
func (r *Renderer) RenderScan(res display.ScanResult) error {
	return r.encode(res)
}

// RenderParse implements ui.Renderer
func (r *Renderer) RenderParse(res display.ParseResult) error {
	return r.encode(res)
}

// RenderRules implements ui.Renderer
func (r *Renderer) RenderRules(list display.RuleList) error {
	return r.encode(list)
}

// RenderError renders an error document
func (r *Renderer) RenderError(err error) error {
	return r.encode(errorDoc{Error: err.Error()})
}

// RenderMessage renders a message document
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(message{Message: msg})
}

func (r *Renderer) encode(v interface{}) error {
	switch r.encoding {
	case YAML:
		enc := yaml.NewEncoder(r.output)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return gotoml.NewEncoder(r.output).Encode(v)
	default:
		enc := json.NewEncoder(r.output)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
