package fragment

import (
	"encoding/json"
	"fmt"
	"html"
)

var (
	_ Fragment = (*Text)(nil)
	_ Fragment = (*Select)(nil)
)

// Text is a single line of plain text.
type Text struct {
	Value string
}

func (t *Text) AsHTML(LinkResolver) (string, error) {
	return `<span class="text">` + html.EscapeString(t.Value) + `</span>`, nil
}

func (t *Text) AsText() (string, error) {
	return t.Value, nil
}

func parseText(value json.RawMessage) (Fragment, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("cannot decode text: %w", err)
	}
	return &Text{Value: s}, nil
}

// Select is one choice from a field's fixed list of values. The chosen
// value is an opaque token for the application, not prose, so it has no
// plain text form.
type Select struct {
	Value string
}

func (s *Select) AsHTML(LinkResolver) (string, error) {
	return `<span class="text">` + html.EscapeString(s.Value) + `</span>`, nil
}

func (s *Select) AsText() (string, error) {
	return "", noText("select")
}

func parseSelect(value json.RawMessage) (Fragment, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("cannot decode select: %w", err)
	}
	return &Select{Value: s}, nil
}
