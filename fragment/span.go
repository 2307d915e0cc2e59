package fragment

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
)

// SpanType identifies the formatting a span applies to a text range.
type SpanType string

const (
	SpanEm        SpanType = "em"
	SpanStrong    SpanType = "strong"
	SpanHyperlink SpanType = "hyperlink"
	SpanLabel     SpanType = "label"
)

// Span marks the text between two offsets of a block as formatted. Offsets
// count runes, not bytes. Start is inclusive and End exclusive; a span with
// Start equal to End renders as an empty element at that position.
type Span struct {
	Start int
	End   int
	Type  SpanType
	// Link is the target of a hyperlink span, nil for other span types.
	Link Link
	// Label is the class applied by a label span, empty for other types.
	Label string
}

// openSpan is a span on the open-element stack, with the tags that were and
// will be written for it. Spans closed early to preserve nesting are
// reopened from the same tags.
type openSpan struct {
	span     Span
	openTag  string
	closeTag string
}

// renderSpans overlays formatting spans on a block's text and emits HTML
// with all text escaped.
//
// The walk visits each distinct span boundary in ascending offset order. At
// a boundary, elements close before new ones open, and the most recently
// opened element closes first. An element whose span continues past the
// boundary is closed along the way and immediately reopened, so the output
// nests even when spans cross. Spans opening at the same boundary open in
// the order they appear in the input.
func renderSpans(text string, spans []Span, resolver LinkResolver) (string, error) {
	runes := []rune(text)
	if len(spans) == 0 {
		return html.EscapeString(text), nil
	}

	// Clamp spans to the text and drop the unusable. Offsets beyond the
	// text occur when content and spans were edited out of step.
	valid := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > len(runes) {
			s.End = len(runes)
		}
		if s.End < s.Start {
			continue
		}
		valid = append(valid, s)
	}
	// Stable on Start alone: spans sharing a start keep their input order.
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Start < valid[j].Start
	})

	// The distinct boundaries, in ascending order. The ends of the text
	// bound the walk even when no span touches them.
	seen := map[int]struct{}{0: {}, len(runes): {}}
	offsets := []int{0}
	if len(runes) != 0 {
		offsets = append(offsets, len(runes))
	}
	for _, s := range valid {
		if _, ok := seen[s.Start]; !ok {
			seen[s.Start] = struct{}{}
			offsets = append(offsets, s.Start)
		}
		if _, ok := seen[s.End]; !ok {
			seen[s.End] = struct{}{}
			offsets = append(offsets, s.End)
		}
	}
	sort.Ints(offsets)

	var b strings.Builder
	var stack []openSpan

	for i, off := range offsets {
		// Close every element ending here. Popping from the top keeps the
		// close order the reverse of the open order. A popped element whose
		// span continues past this boundary is collected and reopened.
		var reopen []openSpan
		for endsAt(stack, off) {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			b.WriteString(top.closeTag)
			if top.span.End != off {
				reopen = append(reopen, top)
			}
		}
		for j := len(reopen) - 1; j >= 0; j-- {
			b.WriteString(reopen[j].openTag)
			stack = append(stack, reopen[j])
		}

		// Open every span starting here. A zero-length span contributes an
		// empty element and never enters the stack.
		for _, s := range valid {
			if s.Start != off {
				continue
			}
			openTag, closeTag, err := spanTags(s, resolver)
			if err != nil {
				return "", err
			}
			if s.End == off {
				b.WriteString(openTag)
				b.WriteString(closeTag)
				continue
			}
			b.WriteString(openTag)
			stack = append(stack, openSpan{span: s, openTag: openTag, closeTag: closeTag})
		}

		if i+1 < len(offsets) {
			b.WriteString(html.EscapeString(string(runes[off:offsets[i+1]])))
		}
	}
	return b.String(), nil
}

// endsAt reports whether any open element's span ends at the offset.
func endsAt(stack []openSpan, off int) bool {
	for _, o := range stack {
		if o.span.End == off {
			return true
		}
	}
	return false
}

// spanTags returns the open and close tags for a span.
func spanTags(s Span, resolver LinkResolver) (string, string, error) {
	switch s.Type {
	case SpanEm:
		return "<em>", "</em>", nil
	case SpanStrong:
		return "<strong>", "</strong>", nil
	case SpanLabel:
		return `<span class="` + html.EscapeString(s.Label) + `">`, "</span>", nil
	case SpanHyperlink:
		return hyperlinkTags(s.Link, resolver)
	}
	return "", "", fmt.Errorf("unknown span type %q", s.Type)
}

// hyperlinkTags returns the tags wrapping a hyperlink span's text. A link
// to a document that no longer exists is kept as an inert span so the text
// it wraps is not lost.
func hyperlinkTags(link Link, resolver LinkResolver) (string, string, error) {
	if link == nil {
		return "", "", errors.New("hyperlink span has no target")
	}
	if doc, ok := link.(*DocumentLink); ok {
		if doc.IsBroken {
			return "<span>", "</span>", nil
		}
		if resolver == nil {
			return "", "", ErrMissingResolver
		}
		return `<a href="` + html.EscapeString(resolver(doc)) + `">`, "</a>", nil
	}
	u, err := link.URL(resolver)
	if err != nil {
		return "", "", err
	}
	return `<a href="` + html.EscapeString(u) + `">`, "</a>", nil
}
