package fragment

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
)

// ErrMissingResolver is returned when rendering reaches a link to another
// document and no LinkResolver was supplied. Links cannot be silently
// dropped, so rendering fails instead.
var ErrMissingResolver = errors.New("link resolver required to render document link")

// LinkResolver turns a link to another document into a URL. Routing is
// application knowledge, so the application supplies the function. The
// resolver is also called for broken links when asked for their URL
// directly, letting the application route them to its own missing-content
// page.
type LinkResolver func(link *DocumentLink) string

// Fragment is a typed content value of a document.
type Fragment interface {
	// AsHTML renders the fragment as HTML. Text content is escaped. The
	// resolver may be nil when the fragment cannot contain document links.
	AsHTML(resolver LinkResolver) (string, error)
	// AsText extracts the fragment's content as plain text, without any
	// markup. Fragment kinds with no text form return UnsupportedOpError.
	AsText() (string, error)
}

// UnsupportedOpError is returned when a fragment kind cannot perform the
// requested operation, such as extracting plain text from an image.
type UnsupportedOpError struct {
	Op   string
	Kind string
}

func (e *UnsupportedOpError) Error() string {
	return fmt.Sprintf("%s unsupported for %s fragment", e.Op, e.Kind)
}

func noText(kind string) error {
	return &UnsupportedOpError{Op: "text extraction", Kind: kind}
}

// Set is a named collection of fragments: a document's fields, or one item
// of a group fragment.
type Set map[string]Fragment

// Names returns the fragment names in lexical order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AsHTML renders every fragment in the set, each wrapped in a section
// element naming its field, ordered by field name.
func (s Set) AsHTML(resolver LinkResolver) (string, error) {
	sections := make([]string, 0, len(s))
	for _, name := range s.Names() {
		h, err := s[name].AsHTML(resolver)
		if err != nil {
			return "", fmt.Errorf("cannot render field %s: %w", name, err)
		}
		sections = append(sections, `<section data-field="`+html.EscapeString(name)+`">`+h+`</section>`)
	}
	return strings.Join(sections, "\n"), nil
}

// AsText extracts plain text from every fragment that has a text form,
// ordered by field name. Fragments without a text form are skipped.
func (s Set) AsText() string {
	texts := make([]string, 0, len(s))
	for _, name := range s.Names() {
		text, err := s[name].AsText()
		if err != nil {
			continue
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n")
}
