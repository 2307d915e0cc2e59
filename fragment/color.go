package fragment

import (
	"encoding/json"
	"fmt"
	"html"
)

var _ Fragment = (*Color)(nil)

// Color is a color field value, in "#rrggbb" hex notation.
type Color struct {
	Value string
}

func (c *Color) AsHTML(LinkResolver) (string, error) {
	return `<span class="color">` + html.EscapeString(c.Value) + `</span>`, nil
}

func (c *Color) AsText() (string, error) {
	return "", noText("color")
}

func parseColor(value json.RawMessage) (Fragment, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("cannot decode color: %w", err)
	}
	return &Color{Value: s}, nil
}
