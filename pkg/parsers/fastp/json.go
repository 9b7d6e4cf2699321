package fastp

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/summary"
)

// orderedObject is a json object whose members keep their document order
type orderedObject struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *orderedObject) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New(errors.ErrReportParse, "expected a json object")
	}

	o.values = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if _, exists := o.values[key]; !exists {
			o.keys = append(o.keys, key)
		}
		o.values[key] = raw
	}
	_, err = dec.Token()
	return err
}

func (o *orderedObject) object(key string) (*orderedObject, bool) {
	raw, ok := o.values[key]
	if !ok {
		return nil, false
	}
	var child orderedObject
	if err := json.Unmarshal(raw, &child); err != nil {
		return nil, false
	}
	return &child, true
}

// scalar renders a member value: strings unquoted, everything else as its
// compact json text so numbers keep their literal form
func scalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func parseJSON(r io.Reader, s *summary.Summary) error {
	var root orderedObject
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return errors.Wrap(err, errors.ErrReportParse, "invalid json report")
	}

	sum, ok := root.object("summary")
	if !ok {
		return errors.New(errors.ErrReportParse, "invalid json report: missing summary")
	}
	sections := []struct {
		name string
		from *orderedObject
	}{
		{"before_filtering", sum},
		{"after_filtering", sum},
		{"filtering_result", &root},
	}

	for _, sec := range sections {
		obj, ok := sec.from.object(sec.name)
		if !ok {
			return errors.Newf(errors.ErrReportParse, "invalid json report: missing %s", sec.name)
		}
		for _, k := range obj.keys {
			s.Set(sectionKey(sec.name, k), scalar(obj.values[k]))
		}
	}
	return nil
}
