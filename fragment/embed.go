package fragment

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

var _ Fragment = (*Embed)(nil)

// Embed is an oEmbed resource: a video, gist, tweet, or similar content
// hosted elsewhere and described by its provider.
type Embed struct {
	// Type is the oEmbed resource type, such as "video" or "rich".
	Type     string
	Provider string
	// URL is the address of the embedded resource itself.
	URL    string
	Width  int
	Height int
	// HTML is the provider's markup for displaying the resource.
	HTML string
}

// AsHTML wraps the provider's markup in a div carrying the embed's
// metadata as data attributes. The provider markup is emitted as-is; it is
// markup, not text.
func (e *Embed) AsHTML(LinkResolver) (string, error) {
	return `<div data-oembed="` + html.EscapeString(e.URL) +
		`" data-oembed-type="` + html.EscapeString(strings.ToLower(e.Type)) +
		`" data-oembed-provider="` + html.EscapeString(strings.ToLower(e.Provider)) +
		`">` + e.HTML + `</div>`, nil
}

func (e *Embed) AsText() (string, error) {
	return "", noText("embed")
}

// oembedJSON is the wire shape of an embed's oEmbed envelope.
type oembedJSON struct {
	Type         string `json:"type"`
	ProviderName string `json:"provider_name"`
	EmbedURL     string `json:"embed_url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	HTML         string `json:"html"`
}

func (o *oembedJSON) embed() Embed {
	return Embed{
		Type:     o.Type,
		Provider: o.ProviderName,
		URL:      o.EmbedURL,
		Width:    o.Width,
		Height:   o.Height,
		HTML:     o.HTML,
	}
}

func parseEmbed(value json.RawMessage) (Fragment, error) {
	var v struct {
		Oembed oembedJSON `json:"oembed"`
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, fmt.Errorf("cannot decode embed: %w", err)
	}
	e := v.Oembed.embed()
	return &e, nil
}
