package fragment

import (
	"encoding/json"
	"fmt"
	"html"
)

// Link is implemented by every fragment kind that points somewhere: the
// web, another document, or an asset.
type Link interface {
	Fragment
	// URL returns the link target. Only document links consult the
	// resolver; every other kind carries its URL.
	URL(resolver LinkResolver) (string, error)
}

var (
	_ Link = (*WebLink)(nil)
	_ Link = (*DocumentLink)(nil)
	_ Link = (*ImageLink)(nil)
	_ Link = (*FileLink)(nil)
)

// WebLink points at an arbitrary URL outside the repository.
type WebLink struct {
	Address string
}

func (l *WebLink) URL(LinkResolver) (string, error) {
	return l.Address, nil
}

func (l *WebLink) AsHTML(LinkResolver) (string, error) {
	u := html.EscapeString(l.Address)
	return `<a href="` + u + `">` + u + `</a>`, nil
}

func (l *WebLink) AsText() (string, error) {
	return "", noText("web link")
}

func parseWebLink(value json.RawMessage) (Fragment, error) {
	var v struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, fmt.Errorf("cannot decode web link: %w", err)
	}
	return &WebLink{Address: v.URL}, nil
}

// DocumentLink points at another document in the repository. The target's
// URL is application routing, so rendering one requires a LinkResolver. A
// broken link is one whose target no longer exists; it renders as an inert
// span element.
type DocumentLink struct {
	ID       string
	UID      string
	Type     string
	Tags     []string
	Slug     string
	IsBroken bool
}

// URL resolves the link with the application's resolver. The resolver is
// called even for broken links, so the application can route them to its
// missing-content page.
func (l *DocumentLink) URL(resolver LinkResolver) (string, error) {
	if resolver == nil {
		return "", ErrMissingResolver
	}
	return resolver(l), nil
}

func (l *DocumentLink) AsHTML(resolver LinkResolver) (string, error) {
	slug := html.EscapeString(l.Slug)
	if l.IsBroken {
		return "<span>" + slug + "</span>", nil
	}
	u, err := l.URL(resolver)
	if err != nil {
		return "", err
	}
	return `<a href="` + html.EscapeString(u) + `">` + slug + `</a>`, nil
}

func (l *DocumentLink) AsText() (string, error) {
	return "", noText("document link")
}

func parseDocumentLink(value json.RawMessage) (Fragment, error) {
	var v struct {
		Document struct {
			ID   string   `json:"id"`
			UID  string   `json:"uid"`
			Type string   `json:"type"`
			Tags []string `json:"tags"`
			Slug string   `json:"slug"`
		} `json:"document"`
		IsBroken bool `json:"isBroken"`
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, fmt.Errorf("cannot decode document link: %w", err)
	}
	return &DocumentLink{
		ID:       v.Document.ID,
		UID:      v.Document.UID,
		Type:     v.Document.Type,
		Tags:     v.Document.Tags,
		Slug:     v.Document.Slug,
		IsBroken: v.IsBroken,
	}, nil
}

// ImageLink points at an image asset in the repository's media library.
type ImageLink struct {
	Address string
	Name    string
}

func (l *ImageLink) URL(LinkResolver) (string, error) {
	return l.Address, nil
}

func (l *ImageLink) AsHTML(LinkResolver) (string, error) {
	u := html.EscapeString(l.Address)
	return `<a href="` + u + `"><img src="` + u + `" alt="` + html.EscapeString(l.Name) + `"></a>`, nil
}

func (l *ImageLink) AsText() (string, error) {
	return "", noText("image link")
}

func parseImageLink(value json.RawMessage) (Fragment, error) {
	var v struct {
		Image struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"image"`
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, fmt.Errorf("cannot decode image link: %w", err)
	}
	return &ImageLink{Address: v.Image.URL, Name: v.Image.Name}, nil
}

// FileLink points at a file asset in the repository's media library.
type FileLink struct {
	Address string
	Name    string
}

func (l *FileLink) URL(LinkResolver) (string, error) {
	return l.Address, nil
}

func (l *FileLink) AsHTML(LinkResolver) (string, error) {
	return `<a href="` + html.EscapeString(l.Address) + `">` + html.EscapeString(l.Name) + `</a>`, nil
}

func (l *FileLink) AsText() (string, error) {
	return "", noText("file link")
}

func parseFileLink(value json.RawMessage) (Fragment, error) {
	var v struct {
		File struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"file"`
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, fmt.Errorf("cannot decode file link: %w", err)
	}
	return &FileLink{Address: v.File.URL, Name: v.File.Name}, nil
}
