package fragment

import (
	"encoding/json"
	"fmt"
	"strconv"
)

var _ Fragment = (*Number)(nil)

// Number is a numeric field value.
type Number struct {
	Value float64
}

func (n *Number) AsHTML(LinkResolver) (string, error) {
	return `<span class="number">` + n.format() + `</span>`, nil
}

func (n *Number) AsText() (string, error) {
	return n.format(), nil
}

// format prints the value with the fewest digits that round-trip, so whole
// numbers carry no decimal point.
func (n *Number) format() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// Int returns the value truncated to an integer.
func (n *Number) Int() int {
	return int(n.Value)
}

func parseNumber(value json.RawMessage) (Fragment, error) {
	var f float64
	if err := json.Unmarshal(value, &f); err != nil {
		return nil, fmt.Errorf("cannot decode number: %w", err)
	}
	return &Number{Value: f}, nil
}
