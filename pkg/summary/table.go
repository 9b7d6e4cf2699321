package summary

import (
	"slices"
	"strings"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/report"
)

// Join selects how columns of differing summaries are combined
type Join string

const (
	// JoinOuter keeps every key found in any summary
	JoinOuter Join = "outer"
	// JoinInner keeps only keys present in all summaries
	JoinInner Join = "inner"
)

// ParseJoin validates a join name from configuration or flags
func ParseJoin(s string) (Join, error) {
	switch Join(strings.ToLower(s)) {
	case JoinOuter, "":
		return JoinOuter, nil
	case JoinInner:
		return JoinInner, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown join %q, expected inner or outer", s)
}

// Table is a set of summaries of one module: one row per summary, one
// column per key. Cells of keys a summary lacks are empty and reported
// missing by Cell.
type Table struct {
	Module  report.Module
	Columns []string
	rows    []*Summary
}

// Concat combines summaries of the same module into a table. Column order
// follows first appearance across the summaries. Summaries of differing
// modules are rejected.
func Concat(sums []*Summary, join Join) (*Table, error) {
	t := &Table{}
	if len(sums) == 0 {
		return t, nil
	}

	t.Module = slices.Clone(sums[0].Module)
	for _, s := range sums[1:] {
		if !s.Module.Equal(t.Module) {
			mods := make([]string, len(sums))
			for i, s := range sums {
				mods[i] = s.Module.String()
			}
			return nil, errors.Newf(errors.ErrInvalidInput,
				"all summaries must have the same module, got: %s", strings.Join(mods, ",")).
				WithDetail("modules", mods)
		}
	}

	switch join {
	case JoinInner:
		for _, k := range sums[0].keys {
			inAll := true
			for _, s := range sums[1:] {
				if _, ok := s.values[k]; !ok {
					inAll = false
					break
				}
			}
			if inAll {
				t.Columns = append(t.Columns, k)
			}
		}
	case JoinOuter, "":
		seen := make(map[string]bool)
		for _, s := range sums {
			for _, k := range s.keys {
				if !seen[k] {
					seen[k] = true
					t.Columns = append(t.Columns, k)
				}
			}
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown join %q", join)
	}

	t.rows = slices.Clone(sums)
	return t, nil
}

// Names returns the row names in order
func (t *Table) Names() []string {
	names := make([]string, len(t.rows))
	for i, s := range t.rows {
		names[i] = s.Name()
	}
	return names
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell returns the value of column key in row i
func (t *Table) Cell(i int, key string) (string, bool) {
	return t.rows[i].Get(key)
}

// Rows returns the cell values row by row, aligned with Columns.
// Missing cells are empty strings.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, s := range t.rows {
		row := make([]string, len(t.Columns))
		for j, k := range t.Columns {
			row[j], _ = s.Get(k)
		}
		out[i] = row
	}
	return out
}

// Records returns one map per row restricted to the table columns,
// keyed by row name, for structured encoders.
func (t *Table) Records() []map[string]string {
	out := make([]map[string]string, len(t.rows))
	for i, s := range t.rows {
		rec := make(map[string]string, len(t.Columns))
		for _, k := range t.Columns {
			if v, ok := s.Get(k); ok {
				rec[k] = v
			}
		}
		out[i] = rec
	}
	return out
}
