// Package document models the documents returned by repository queries.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foliocms/go-folio/fragment"
	"github.com/hashicorp/go-multierror"
)

// Document is one piece of content from a repository: its metadata and its
// typed fragment fields.
type Document struct {
	ID   string
	UID  string
	Type string
	Href string
	Tags []string
	// Slugs lists every URL slug the document has had, current first. Old
	// slugs stay valid so saved URLs survive renames.
	Slugs []string
	Lang  string
	// FirstPublicationDate and LastPublicationDate are zero when the API
	// did not provide them.
	FirstPublicationDate time.Time
	LastPublicationDate  time.Time
	// Fragments holds the document's fields by plain field name, without
	// the document type prefix.
	Fragments fragment.Set
}

// documentJSON is the wire shape of a document. Field data is decoded in a
// second pass because each field's shape depends on its kind tag.
type documentJSON struct {
	ID                   string                     `json:"id"`
	UID                  string                     `json:"uid"`
	Type                 string                     `json:"type"`
	Href                 string                     `json:"href"`
	Tags                 []string                   `json:"tags"`
	Slugs                []string                   `json:"slugs"`
	Lang                 string                     `json:"lang"`
	FirstPublicationDate string                     `json:"first_publication_date"`
	LastPublicationDate  string                     `json:"last_publication_date"`
	Data                 map[string]json.RawMessage `json:"data"`
}

// publicationLayouts are the formats publication dates arrive in.
var publicationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// Parse builds a Document from its API JSON representation. Fields that
// fail to parse are left out of the document and their errors accumulated;
// the document and the combined error are both returned, so one malformed
// field does not discard the rest of the document.
func Parse(raw json.RawMessage) (*Document, error) {
	var dj documentJSON
	if err := json.Unmarshal(raw, &dj); err != nil {
		return nil, fmt.Errorf("cannot decode document: %w", err)
	}
	if dj.ID == "" {
		return nil, errors.New("document has no id")
	}

	doc := &Document{
		ID:        dj.ID,
		UID:       dj.UID,
		Type:      dj.Type,
		Href:      dj.Href,
		Tags:      dj.Tags,
		Slugs:     dj.Slugs,
		Lang:      dj.Lang,
		Fragments: fragment.Set{},
	}

	var errs error
	if t, err := parsePublication(dj.FirstPublicationDate); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("first_publication_date: %w", err))
	} else {
		doc.FirstPublicationDate = t
	}
	if t, err := parsePublication(dj.LastPublicationDate); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("last_publication_date: %w", err))
	} else {
		doc.LastPublicationDate = t
	}

	// Data is keyed by document type, with the fields inside. The type
	// prefix is dropped so fields resolve by their own names.
	for typ, rawFields := range dj.Data {
		set, err := fragment.ParseSet(rawFields)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("data %s: %w", typ, err))
		}
		for name, frag := range set {
			doc.Fragments[name] = frag
		}
	}
	return doc, errs
}

func parsePublication(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range publicationLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot decode time %q", s)
}

// Fragment returns the named field. The name may be plain ("title") or
// qualified with the document type the way the API writes it
// ("post.title").
func (d *Document) Fragment(name string) (fragment.Fragment, bool) {
	if f, ok := d.Fragments[name]; ok {
		return f, true
	}
	if d.Type != "" {
		trimmed := strings.TrimPrefix(name, d.Type+".")
		if trimmed != name {
			f, ok := d.Fragments[trimmed]
			return f, ok
		}
	}
	return nil, false
}

// first returns f as kind T, or the first value of a multi-valued field as
// kind T.
func first[T fragment.Fragment](f fragment.Fragment) (T, bool) {
	if t, ok := f.(T); ok {
		return t, true
	}
	if m, ok := f.(fragment.Multiple); ok && len(m) != 0 {
		if t, ok := m[0].(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// GetText returns the value of a text field.
func (d *Document) GetText(name string) (string, bool) {
	f, ok := d.Fragment(name)
	if !ok {
		return "", false
	}
	t, ok := first[*fragment.Text](f)
	if !ok {
		return "", false
	}
	return t.Value, true
}

// GetNumber returns the value of a number field.
func (d *Document) GetNumber(name string) (float64, bool) {
	f, ok := d.Fragment(name)
	if !ok {
		return 0, false
	}
	n, ok := first[*fragment.Number](f)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

// GetColor returns the hex value of a color field.
func (d *Document) GetColor(name string) (string, bool) {
	f, ok := d.Fragment(name)
	if !ok {
		return "", false
	}
	c, ok := first[*fragment.Color](f)
	if !ok {
		return "", false
	}
	return c.Value, true
}

// GetDate returns the value of a date field.
func (d *Document) GetDate(name string) (time.Time, bool) {
	f, ok := d.Fragment(name)
	if !ok {
		return time.Time{}, false
	}
	dt, ok := first[*fragment.Date](f)
	if !ok {
		return time.Time{}, false
	}
	return dt.Time, true
}

// GetTimestamp returns the value of a timestamp field.
func (d *Document) GetTimestamp(name string) (time.Time, bool) {
	f, ok := d.Fragment(name)
	if !ok {
		return time.Time{}, false
	}
	ts, ok := first[*fragment.Timestamp](f)
	if !ok {
		return time.Time{}, false
	}
	return ts.Time, true
}

// GetStructuredText returns a rich text field.
func (d *Document) GetStructuredText(name string) (*fragment.StructuredText, bool) {
	f, ok := d.Fragment(name)
	if !ok {
		return nil, false
	}
	return first[*fragment.StructuredText](f)
}

// GetImage returns an image field.
func (d *Document) GetImage(name string) (*fragment.Image, bool) {
	f, ok := d.Fragment(name)
	if !ok {
		return nil, false
	}
	return first[*fragment.Image](f)
}

// GetImageView returns the named view of an image field. The name "main"
// always resolves to the image's main view.
func (d *Document) GetImageView(name, view string) (*fragment.ImageView, bool) {
	img, ok := d.GetImage(name)
	if !ok {
		return nil, false
	}
	v, err := img.View(view)
	if err != nil {
		return nil, false
	}
	return v, true
}

// GetLink returns a link field of any link kind.
func (d *Document) GetLink(name string) (fragment.Link, bool) {
	f, ok := d.Fragment(name)
	if !ok {
		return nil, false
	}
	return first[fragment.Link](f)
}

// GetGroup returns a group field.
func (d *Document) GetGroup(name string) (*fragment.Group, bool) {
	f, ok := d.Fragment(name)
	if !ok {
		return nil, false
	}
	return first[*fragment.Group](f)
}

// Slug returns the document's current slug.
func (d *Document) Slug() string {
	if len(d.Slugs) == 0 {
		return "-"
	}
	return d.Slugs[0]
}

// HasSlug reports whether slug is or ever was the document's slug.
func (d *Document) HasSlug(slug string) bool {
	for _, s := range d.Slugs {
		if s == slug {
			return true
		}
	}
	return false
}

// Link returns the document described as a link fragment, as it would
// appear in another document's field pointing at this one.
func (d *Document) Link() *fragment.DocumentLink {
	return &fragment.DocumentLink{
		ID:   d.ID,
		UID:  d.UID,
		Type: d.Type,
		Tags: d.Tags,
		Slug: d.Slug(),
	}
}

// AsHTML renders every field of the document, each wrapped in a section
// element naming the field.
func (d *Document) AsHTML(resolver fragment.LinkResolver) (string, error) {
	return d.Fragments.AsHTML(resolver)
}

// AsText extracts the document's plain text. Fields with no text form are
// skipped.
func (d *Document) AsText() string {
	return d.Fragments.AsText()
}
