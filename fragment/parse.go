package fragment

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// envelope is the wire shape of every fragment: a kind tag and a value
// whose shape the tag determines.
type envelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Parse builds a fragment from its JSON envelope. The set of kinds is
// closed; an unknown kind tag is an error, never a silent placeholder.
func Parse(raw json.RawMessage) (Fragment, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("cannot decode fragment envelope: %w", err)
	}
	return parseValue(env.Type, env.Value)
}

func parseValue(typ string, value json.RawMessage) (Fragment, error) {
	switch typ {
	case "Text":
		return parseText(value)
	case "Select":
		return parseSelect(value)
	case "Number":
		return parseNumber(value)
	case "Color":
		return parseColor(value)
	case "Date":
		return parseDate(value)
	case "Timestamp":
		return parseTimestamp(value)
	case "GeoPoint":
		return parseGeoPoint(value)
	case "Link.web":
		return parseWebLink(value)
	case "Link.document":
		return parseDocumentLink(value)
	case "Link.image":
		return parseImageLink(value)
	case "Link.file":
		return parseFileLink(value)
	case "Image":
		return parseImage(value)
	case "Embed":
		return parseEmbed(value)
	case "Group":
		return parseGroup(value)
	case "StructuredText":
		return parseStructuredText(value)
	}
	return nil, fmt.Errorf("unknown fragment type %q", typ)
}

// ParseField parses one document field, which is either a single fragment
// envelope or an array of envelopes when the field occurs multiple times.
func ParseField(raw json.RawMessage) (Fragment, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) != 0 && trimmed[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("cannot decode multi-valued field: %w", err)
		}
		m := make(Multiple, 0, len(raws))
		for i, r := range raws {
			f, err := Parse(r)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			m = append(m, f)
		}
		return m, nil
	}
	return Parse(raw)
}

// ParseSet parses a JSON object of named fields into a Set. A field that
// fails to parse is left out of the set; its error is accumulated and
// returned alongside the fields that did parse, so one malformed field
// does not discard a whole document.
func ParseSet(raw json.RawMessage) (Set, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("cannot decode fragment set: %w", err)
	}
	set := make(Set, len(fields))
	var errs error
	for name, fieldRaw := range fields {
		frag, err := ParseField(fieldRaw)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("field %s: %w", name, err))
			continue
		}
		set[name] = frag
	}
	return set, errs
}
