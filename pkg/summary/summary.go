// Package summary holds the flat key/value results extracted from reports
// and aggregates summaries of one module into a table.
package summary

import (
	"fmt"
	"slices"

	"github.com/arthur-debert/bioreport/pkg/report"
)

// Summary is an ordered string map tagged with the module of the report it
// was extracted from and a display name.
type Summary struct {
	Module report.Module
	name   string
	keys   []string
	values map[string]string
}

// New creates an empty summary
func New(module report.Module, name string) *Summary {
	return &Summary{
		Module: slices.Clone(module),
		name:   name,
		values: make(map[string]string),
	}
}

// Name returns the display name, usually the source file name
func (s *Summary) Name() string {
	return s.name
}

// Rename changes the display name
func (s *Summary) Rename(name string) {
	s.name = name
}

// Set stores value under key. Overwriting keeps the key's first position.
func (s *Summary) Set(key, value string) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value stored under key
func (s *Summary) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (s *Summary) Keys() []string {
	return slices.Clone(s.keys)
}

// Len returns the number of entries
func (s *Summary) Len() int {
	return len(s.keys)
}

// Map returns a copy of the entries as a plain map
func (s *Summary) Map() map[string]string {
	m := make(map[string]string, len(s.values))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}

func (s *Summary) String() string {
	return fmt.Sprintf("Summary(type: %q, name: %q)", s.Module.String(), s.name)
}
