package rules

import (
	"bytes"
	stderrors "errors"
	"os"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
)

// Parse decodes a TOML rule table and compiles it into a rule set.
// Rules are evaluated in lexical key order so classification does not
// depend on how the table happens to be written.
func Parse(data []byte) (*RuleSet, error) {
	logger := logging.GetLogger("rules.config")

	var table map[string]Pattern
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&table); err != nil {
		return nil, parseError(err)
	}

	compiled := make([]*Rule, 0, len(table))
	for _, key := range sortedKeys(table) {
		rule, err := NewRule(key, table[key])
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, rule)
	}

	rs, err := NewRuleSet(compiled...)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("ruleCount", rs.Len()).
		Int("moduleCount", rs.Modules().Len()).
		Msg("Loaded report patterns")

	return rs, nil
}

// LoadFile reads and parses the rule file at path
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read report patterns from %s", path)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "invalid report patterns in %s", path)
	}
	return rs, nil
}

// Marshal encodes rs as a rule file that Parse accepts
func Marshal(rs *RuleSet) ([]byte, error) {
	table := make(map[string]Pattern, rs.Len())
	for _, r := range rs.Rules() {
		table[r.Key] = r.Pattern
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(table); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode report patterns")
	}
	return buf.Bytes(), nil
}

func parseError(err error) error {
	var decodeErr *toml.DecodeError
	if stderrors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return errors.Wrapf(err, errors.ErrConfigParse, "malformed report patterns at line %d, column %d", row, col)
	}
	var strictErr *toml.StrictMissingError
	if stderrors.As(err, &strictErr) {
		return errors.Wrap(err, errors.ErrConfigInvalid, "unknown field in report patterns")
	}
	return errors.Wrap(err, errors.ErrConfigParse, "malformed report patterns")
}
