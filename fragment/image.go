package fragment

import (
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strconv"
)

var _ Fragment = (*Image)(nil)

// ViewNotFoundError is returned when asking an image for a view name it
// does not carry.
type ViewNotFoundError struct {
	Name string
}

func (e *ViewNotFoundError) Error() string {
	return fmt.Sprintf("no image view named %q", e.Name)
}

// ImageView is one rendition of an image: the same picture cropped or
// scaled for a particular place in a design.
type ImageView struct {
	URL       string
	Alt       string
	Copyright string
	Width     int
	Height    int
}

// AsHTML renders the view as an img element.
func (v *ImageView) AsHTML() string {
	return `<img src="` + html.EscapeString(v.URL) +
		`" alt="` + html.EscapeString(v.Alt) +
		`" width="` + strconv.Itoa(v.Width) +
		`" height="` + strconv.Itoa(v.Height) + `">`
}

// Ratio returns the view's width to height ratio, or zero for a view with
// no height.
func (v *ImageView) Ratio() float64 {
	if v.Height == 0 {
		return 0
	}
	return float64(v.Width) / float64(v.Height)
}

// Image is an image field: a main view plus any named alternate views
// defined by the repository's document mask.
type Image struct {
	Main  ImageView
	Views map[string]ImageView
}

// View returns the named view. The name "main" always resolves to the main
// view. Asking for any other name the image does not carry returns a
// ViewNotFoundError.
func (i *Image) View(name string) (*ImageView, error) {
	if name == "main" {
		return &i.Main, nil
	}
	v, ok := i.Views[name]
	if !ok {
		return nil, &ViewNotFoundError{Name: name}
	}
	return &v, nil
}

// ViewNames returns the names of the alternate views, if any, in sorted
// order.
func (i *Image) ViewNames() []string {
	names := make([]string, 0, len(i.Views))
	for name := range i.Views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (i *Image) AsHTML(LinkResolver) (string, error) {
	return i.Main.AsHTML(), nil
}

func (i *Image) AsText() (string, error) {
	return "", noText("image")
}

// imageViewJSON is the wire shape of a single view.
type imageViewJSON struct {
	URL        string `json:"url"`
	Alt        string `json:"alt"`
	Copyright  string `json:"copyright"`
	Dimensions struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"dimensions"`
}

func (v *imageViewJSON) view() ImageView {
	return ImageView{
		URL:       v.URL,
		Alt:       v.Alt,
		Copyright: v.Copyright,
		Width:     v.Dimensions.Width,
		Height:    v.Dimensions.Height,
	}
}

func parseImage(value json.RawMessage) (Fragment, error) {
	var v struct {
		Main  imageViewJSON            `json:"main"`
		Views map[string]imageViewJSON `json:"views"`
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	img := &Image{
		Main:  v.Main.view(),
		Views: make(map[string]ImageView, len(v.Views)),
	}
	for name, view := range v.Views {
		img.Views[name] = view.view()
	}
	return img, nil
}
