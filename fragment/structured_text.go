package fragment

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
)

var (
	_ Fragment = (*StructuredText)(nil)

	_ Block = (*Heading)(nil)
	_ Block = (*Paragraph)(nil)
	_ Block = (*Preformatted)(nil)
	_ Block = (*ListItem)(nil)
	_ Block = (*ImageBlock)(nil)
	_ Block = (*EmbedBlock)(nil)
)

// StructuredText is rich text: an ordered sequence of blocks authored in
// the repository's editor.
type StructuredText struct {
	Blocks []Block
}

// Block is one paragraph-level unit of a structured text fragment.
type Block interface {
	// AsHTML renders the block as a complete element with its formatting
	// spans applied.
	AsHTML(resolver LinkResolver) (string, error)
	// PlainText returns the block's text without any markup. Blocks that
	// have no text buffer, images and embeds, report false.
	PlainText() (string, bool)
}

// AsHTML renders the blocks in order. Consecutive list items of the same
// kind are grouped under a single ul or ol element.
func (st *StructuredText) AsHTML(resolver LinkResolver) (string, error) {
	parts := make([]string, 0, len(st.Blocks))
	var items []string
	var ordered bool
	flush := func() {
		if len(items) == 0 {
			return
		}
		tag := "ul"
		if ordered {
			tag = "ol"
		}
		parts = append(parts, "<"+tag+">"+strings.Join(items, "")+"</"+tag+">")
		items = nil
	}
	for _, block := range st.Blocks {
		h, err := block.AsHTML(resolver)
		if err != nil {
			return "", err
		}
		if li, ok := block.(*ListItem); ok {
			if len(items) != 0 && li.Ordered != ordered {
				flush()
			}
			ordered = li.Ordered
			items = append(items, h)
			continue
		}
		flush()
		parts = append(parts, h)
	}
	flush()
	return strings.Join(parts, "\n\n"), nil
}

// AsText returns the text of every text-bearing block, one block per line.
func (st *StructuredText) AsText() (string, error) {
	parts := make([]string, 0, len(st.Blocks))
	for _, block := range st.Blocks {
		if text, ok := block.PlainText(); ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// FirstTitle returns the text of the leading title: the first heading of
// the highest heading level present, where h1 outranks h2. The second
// return value is false when there is no heading at all.
func (st *StructuredText) FirstTitle() (string, bool) {
	best := 0
	var title string
	for _, block := range st.Blocks {
		h, ok := block.(*Heading)
		if !ok {
			continue
		}
		if best == 0 || h.Level < best {
			best = h.Level
			title = h.Text
		}
	}
	return title, best != 0
}

// wrapBlock wraps rendered span HTML in the block's element, applying the
// block's label, if any, as a class.
func wrapBlock(tag, label, body string) string {
	if label == "" {
		return "<" + tag + ">" + body + "</" + tag + ">"
	}
	return "<" + tag + ` class="` + html.EscapeString(label) + `">` + body + "</" + tag + ">"
}

// Heading is a section title of level 1 through 6.
type Heading struct {
	Level int
	Text  string
	Spans []Span
	Label string
}

func (h *Heading) AsHTML(resolver LinkResolver) (string, error) {
	body, err := renderSpans(h.Text, h.Spans, resolver)
	if err != nil {
		return "", err
	}
	return wrapBlock("h"+strconv.Itoa(h.Level), h.Label, body), nil
}

func (h *Heading) PlainText() (string, bool) {
	return h.Text, true
}

// Paragraph is a regular paragraph of text.
type Paragraph struct {
	Text  string
	Spans []Span
	Label string
}

func (p *Paragraph) AsHTML(resolver LinkResolver) (string, error) {
	body, err := renderSpans(p.Text, p.Spans, resolver)
	if err != nil {
		return "", err
	}
	return wrapBlock("p", p.Label, body), nil
}

func (p *Paragraph) PlainText() (string, bool) {
	return p.Text, true
}

// Preformatted is text whose whitespace is significant, such as code.
type Preformatted struct {
	Text  string
	Spans []Span
	Label string
}

func (p *Preformatted) AsHTML(resolver LinkResolver) (string, error) {
	body, err := renderSpans(p.Text, p.Spans, resolver)
	if err != nil {
		return "", err
	}
	return wrapBlock("pre", p.Label, body), nil
}

func (p *Preformatted) PlainText() (string, bool) {
	return p.Text, true
}

// ListItem is one item of a bulleted or numbered list. Rendering groups
// consecutive items of the same kind into one list element.
type ListItem struct {
	Text    string
	Spans   []Span
	Label   string
	Ordered bool
}

func (li *ListItem) AsHTML(resolver LinkResolver) (string, error) {
	body, err := renderSpans(li.Text, li.Spans, resolver)
	if err != nil {
		return "", err
	}
	return wrapBlock("li", li.Label, body), nil
}

func (li *ListItem) PlainText() (string, bool) {
	return li.Text, true
}

// ImageBlock is an image occurring between text blocks.
type ImageBlock struct {
	View  ImageView
	Label string
}

func (b *ImageBlock) AsHTML(LinkResolver) (string, error) {
	class := "block-img"
	if b.Label != "" {
		class += " " + b.Label
	}
	return `<p class="` + html.EscapeString(class) + `">` + b.View.AsHTML() + `</p>`, nil
}

func (b *ImageBlock) PlainText() (string, bool) {
	return "", false
}

// EmbedBlock is an embedded external resource occurring between text
// blocks.
type EmbedBlock struct {
	Embed Embed
}

func (b *EmbedBlock) AsHTML(resolver LinkResolver) (string, error) {
	return b.Embed.AsHTML(resolver)
}

func (b *EmbedBlock) PlainText() (string, bool) {
	return "", false
}

// blockJSON is the wire shape of a block. Image blocks carry their view
// fields inline, so the view shape is embedded.
type blockJSON struct {
	imageViewJSON
	Type   string      `json:"type"`
	Text   string      `json:"text"`
	Spans  []spanJSON  `json:"spans"`
	Label  string      `json:"label"`
	Oembed *oembedJSON `json:"oembed"`
}

// spanJSON is the wire shape of a formatting span.
type spanJSON struct {
	Start int             `json:"start"`
	End   int             `json:"end"`
	Type  SpanType        `json:"type"`
	Data  json.RawMessage `json:"data"`
}

func parseSpans(raw []spanJSON) ([]Span, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	spans := make([]Span, 0, len(raw))
	for _, sj := range raw {
		s := Span{Start: sj.Start, End: sj.End, Type: sj.Type}
		switch sj.Type {
		case SpanEm, SpanStrong:
		case SpanHyperlink:
			if len(sj.Data) == 0 {
				return nil, errors.New("hyperlink span has no target")
			}
			f, err := Parse(sj.Data)
			if err != nil {
				return nil, fmt.Errorf("cannot decode hyperlink span target: %w", err)
			}
			link, ok := f.(Link)
			if !ok {
				return nil, errors.New("hyperlink span target is not a link")
			}
			s.Link = link
		case SpanLabel:
			var v struct {
				Label string `json:"label"`
			}
			if err := json.Unmarshal(sj.Data, &v); err != nil {
				return nil, fmt.Errorf("cannot decode label span: %w", err)
			}
			s.Label = v.Label
		default:
			return nil, fmt.Errorf("unknown span type %q", sj.Type)
		}
		spans = append(spans, s)
	}
	return spans, nil
}

func parseBlock(raw json.RawMessage) (Block, error) {
	var bj blockJSON
	if err := json.Unmarshal(raw, &bj); err != nil {
		return nil, fmt.Errorf("cannot decode block: %w", err)
	}
	spans, err := parseSpans(bj.Spans)
	if err != nil {
		return nil, err
	}
	switch {
	case bj.Type == "paragraph":
		return &Paragraph{Text: bj.Text, Spans: spans, Label: bj.Label}, nil
	case bj.Type == "preformatted":
		return &Preformatted{Text: bj.Text, Spans: spans, Label: bj.Label}, nil
	case bj.Type == "list-item":
		return &ListItem{Text: bj.Text, Spans: spans, Label: bj.Label}, nil
	case bj.Type == "o-list-item":
		return &ListItem{Text: bj.Text, Spans: spans, Label: bj.Label, Ordered: true}, nil
	case strings.HasPrefix(bj.Type, "heading"):
		level, err := strconv.Atoi(strings.TrimPrefix(bj.Type, "heading"))
		if err != nil || level < 1 || level > 6 {
			return nil, fmt.Errorf("unknown block type %q", bj.Type)
		}
		return &Heading{Level: level, Text: bj.Text, Spans: spans, Label: bj.Label}, nil
	case bj.Type == "image":
		return &ImageBlock{View: bj.view(), Label: bj.Label}, nil
	case bj.Type == "embed":
		if bj.Oembed == nil {
			return nil, errors.New("embed block has no oembed data")
		}
		return &EmbedBlock{Embed: bj.Oembed.embed()}, nil
	}
	return nil, fmt.Errorf("unknown block type %q", bj.Type)
}

func parseStructuredText(value json.RawMessage) (Fragment, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(value, &raws); err != nil {
		return nil, fmt.Errorf("cannot decode structured text: %w", err)
	}
	st := &StructuredText{Blocks: make([]Block, 0, len(raws))}
	for i, raw := range raws {
		block, err := parseBlock(raw)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		st.Blocks = append(st.Blocks, block)
	}
	return st, nil
}
