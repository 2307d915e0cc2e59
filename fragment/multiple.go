package fragment

import "strings"

var _ Fragment = (Multiple)(nil)

// Multiple holds the values of a field that occurs more than once in a
// document. The values are rendered in document order.
type Multiple []Fragment

func (m Multiple) AsHTML(resolver LinkResolver) (string, error) {
	parts := make([]string, 0, len(m))
	for _, f := range m {
		h, err := f.AsHTML(resolver)
		if err != nil {
			return "", err
		}
		parts = append(parts, h)
	}
	return strings.Join(parts, "\n"), nil
}

// AsText extracts the plain text of each value. The values of a field all
// have the same kind, so if one of them has no text form the whole field
// has none, and the value's error is returned.
func (m Multiple) AsText() (string, error) {
	parts := make([]string, 0, len(m))
	for _, f := range m {
		text, err := f.AsText()
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n"), nil
}
