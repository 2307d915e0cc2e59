package fragment_test

import (
	"testing"

	"github.com/foliocms/go-folio/fragment"
	"github.com/stretchr/testify/require"
)

func TestParseText(t *testing.T) {
	f, err := fragment.Parse([]byte(`{"type":"Text","value":"Les Bonnes Choses"}`))
	require.NoError(t, err)

	text, ok := f.(*fragment.Text)
	require.True(t, ok)
	require.Equal(t, "Les Bonnes Choses", text.Value)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<span class="text">Les Bonnes Choses</span>`, h)

	s, err := f.AsText()
	require.NoError(t, err)
	require.Equal(t, "Les Bonnes Choses", s)
}

func TestTextEscaped(t *testing.T) {
	f, err := fragment.Parse([]byte(`{"type":"Text","value":"Fish & <chips>"}`))
	require.NoError(t, err)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<span class="text">Fish &amp; &lt;chips&gt;</span>`, h)
}

func TestParseSelect(t *testing.T) {
	f, err := fragment.Parse([]byte(`{"type":"Select","value":"grocery"}`))
	require.NoError(t, err)

	sel, ok := f.(*fragment.Select)
	require.True(t, ok)
	require.Equal(t, "grocery", sel.Value)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<span class="text">grocery</span>`, h)

	_, err = f.AsText()
	var opErr *fragment.UnsupportedOpError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, "select", opErr.Kind)
}

func TestParseNumber(t *testing.T) {
	f, err := fragment.Parse([]byte(`{"type":"Number","value":3.55}`))
	require.NoError(t, err)

	n, ok := f.(*fragment.Number)
	require.True(t, ok)
	require.Equal(t, 3.55, n.Value)
	require.Equal(t, 3, n.Int())

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<span class="number">3.55</span>`, h)

	s, err := f.AsText()
	require.NoError(t, err)
	require.Equal(t, "3.55", s)

	// Whole values print without a decimal point.
	f, err = fragment.Parse([]byte(`{"type":"Number","value":20}`))
	require.NoError(t, err)
	s, err = f.AsText()
	require.NoError(t, err)
	require.Equal(t, "20", s)
}

func TestParseColor(t *testing.T) {
	f, err := fragment.Parse([]byte(`{"type":"Color","value":"#ffeacd"}`))
	require.NoError(t, err)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<span class="color">#ffeacd</span>`, h)

	_, err = f.AsText()
	var opErr *fragment.UnsupportedOpError
	require.ErrorAs(t, err, &opErr)
}

func TestParseDate(t *testing.T) {
	f, err := fragment.Parse([]byte(`{"type":"Date","value":"2013-09-19"}`))
	require.NoError(t, err)

	d, ok := f.(*fragment.Date)
	require.True(t, ok)
	require.Equal(t, 2013, d.Time.Year())

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, "<time>2013-09-19</time>", h)

	_, err = fragment.Parse([]byte(`{"type":"Date","value":"not a date"}`))
	require.ErrorContains(t, err, "cannot decode date")
}

func TestParseTimestamp(t *testing.T) {
	f, err := fragment.Parse([]byte(`{"type":"Timestamp","value":"2014-06-18T15:30:00+0000"}`))
	require.NoError(t, err)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, "<time>2014-06-18T15:30:00Z</time>", h)

	// RFC 3339 zone offsets are accepted too.
	_, err = fragment.Parse([]byte(`{"type":"Timestamp","value":"2014-06-18T15:30:00Z"}`))
	require.NoError(t, err)
}

func TestParseGeoPoint(t *testing.T) {
	f, err := fragment.Parse([]byte(`{"type":"GeoPoint","value":{"latitude":48.877108,"longitude":2.333879}}`))
	require.NoError(t, err)

	g, ok := f.(*fragment.GeoPoint)
	require.True(t, ok)
	require.Equal(t, 48.877108, g.Latitude)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<div class="geopoint"><span class="latitude">48.877108</span><span class="longitude">2.333879</span></div>`, h)
}

func TestParseWebLink(t *testing.T) {
	f, err := fragment.Parse([]byte(`{"type":"Link.web","value":{"url":"https://example.com"}}`))
	require.NoError(t, err)

	link, ok := f.(*fragment.WebLink)
	require.True(t, ok)

	u, err := link.URL(nil)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", u)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<a href="https://example.com">https://example.com</a>`, h)

	_, err = f.AsText()
	var opErr *fragment.UnsupportedOpError
	require.ErrorAs(t, err, &opErr)
}

func TestParseDocumentLink(t *testing.T) {
	raw := []byte(`{"type":"Link.document","value":{"document":{"id":"UlfoxUnM0wkXYXbl","type":"post","tags":["blog"],"slug":"tips","uid":"tips"},"isBroken":false}}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	link, ok := f.(*fragment.DocumentLink)
	require.True(t, ok)
	require.Equal(t, "UlfoxUnM0wkXYXbl", link.ID)
	require.Equal(t, "post", link.Type)
	require.Equal(t, []string{"blog"}, link.Tags)
	require.False(t, link.IsBroken)

	// Resolving needs the application's resolver.
	_, err = link.URL(nil)
	require.ErrorIs(t, err, fragment.ErrMissingResolver)
	_, err = f.AsHTML(nil)
	require.ErrorIs(t, err, fragment.ErrMissingResolver)

	resolver := func(l *fragment.DocumentLink) string { return "/" + l.Type + "/" + l.Slug }
	h, err := f.AsHTML(resolver)
	require.NoError(t, err)
	require.Equal(t, `<a href="/post/tips">tips</a>`, h)
}

func TestParseBrokenDocumentLink(t *testing.T) {
	raw := []byte(`{"type":"Link.document","value":{"document":{"id":"gone","type":"post","slug":"-"},"isBroken":true}}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	// A broken link renders inert, without consulting a resolver.
	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, "<span>-</span>", h)
}

func TestParseImageLink(t *testing.T) {
	raw := []byte(`{"type":"Link.image","value":{"image":{"name":"pic.jpg","kind":"image","url":"https://media.example.com/pic.jpg","size":"420","height":"300","width":"420"}}}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<a href="https://media.example.com/pic.jpg"><img src="https://media.example.com/pic.jpg" alt="pic.jpg"></a>`, h)
}

func TestParseFileLink(t *testing.T) {
	raw := []byte(`{"type":"Link.file","value":{"file":{"name":"report.pdf","kind":"document","url":"https://media.example.com/report.pdf","size":"77572"}}}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<a href="https://media.example.com/report.pdf">report.pdf</a>`, h)
}

func TestParseImage(t *testing.T) {
	raw := []byte(`{"type":"Image","value":{
		"main":{"url":"https://images.example.com/main.jpg","alt":"Main","copyright":"someone","dimensions":{"width":800,"height":600}},
		"views":{"icon":{"url":"https://images.example.com/icon.jpg","alt":"Icon","copyright":"","dimensions":{"width":64,"height":64}}}
	}}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	img, ok := f.(*fragment.Image)
	require.True(t, ok)
	require.Equal(t, "https://images.example.com/main.jpg", img.Main.URL)
	require.Equal(t, 800, img.Main.Width)
	require.InDelta(t, 800.0/600.0, img.Main.Ratio(), 1e-9)
	require.Equal(t, []string{"icon"}, img.ViewNames())

	// "main" always names the main view.
	v, err := img.View("main")
	require.NoError(t, err)
	require.Equal(t, "Main", v.Alt)

	v, err = img.View("icon")
	require.NoError(t, err)
	require.Equal(t, 64, v.Height)

	_, err = img.View("thumbnail")
	var viewErr *fragment.ViewNotFoundError
	require.ErrorAs(t, err, &viewErr)
	require.Equal(t, "thumbnail", viewErr.Name)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<img src="https://images.example.com/main.jpg" alt="Main" width="800" height="600">`, h)

	_, err = f.AsText()
	var opErr *fragment.UnsupportedOpError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, "image", opErr.Kind)
}

func TestParseEmbed(t *testing.T) {
	raw := []byte(`{"type":"Embed","value":{"oembed":{
		"type":"video","provider_name":"YouTube","embed_url":"https://youtu.be/baGfM6dBzs8",
		"width":480,"height":270,"html":"<iframe src=\"https://youtu.be/baGfM6dBzs8\"></iframe>"
	}}}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	e, ok := f.(*fragment.Embed)
	require.True(t, ok)
	require.Equal(t, "YouTube", e.Provider)
	require.Equal(t, 480, e.Width)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<div data-oembed="https://youtu.be/baGfM6dBzs8" data-oembed-type="video" data-oembed-provider="youtube"><iframe src="https://youtu.be/baGfM6dBzs8"></iframe></div>`, h)
}

func TestParseGroup(t *testing.T) {
	raw := []byte(`{"type":"Group","value":[
		{"desc":{"type":"Text","value":"candy"},"priority":{"type":"Number","value":10}},
		{"desc":{"type":"Text","value":"cake"},"priority":{"type":"Number","value":20}}
	]}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	g, ok := f.(*fragment.Group)
	require.True(t, ok)
	require.Len(t, g.Items, 2)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<section data-field="desc"><span class="text">candy</span></section>`+"\n"+
		`<section data-field="priority"><span class="number">10</span></section>`+"\n"+
		`<section data-field="desc"><span class="text">cake</span></section>`+"\n"+
		`<section data-field="priority"><span class="number">20</span></section>`, h)

	s, err := f.AsText()
	require.NoError(t, err)
	require.Equal(t, "candy\n10\ncake\n20", s)
}

func TestParseStructuredText(t *testing.T) {
	raw := []byte(`{"type":"StructuredText","value":[
		{"type":"heading1","text":"Getting started","spans":[]},
		{"type":"paragraph","text":"This is a simple test.","spans":[
			{"start":5,"end":7,"type":"em"},
			{"start":8,"end":9,"type":"strong"}
		]},
		{"type":"list-item","text":"first","spans":[]},
		{"type":"list-item","text":"second","spans":[]},
		{"type":"o-list-item","text":"then","spans":[]},
		{"type":"image","url":"https://images.example.com/pic.jpg","alt":"A pic","copyright":"","dimensions":{"width":640,"height":480}},
		{"type":"preformatted","text":"x = 1","spans":[]}
	]}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	st, ok := f.(*fragment.StructuredText)
	require.True(t, ok)
	require.Len(t, st.Blocks, 7)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, "<h1>Getting started</h1>\n\n"+
		"<p>This <em>is</em> <strong>a</strong> simple test.</p>\n\n"+
		"<ul><li>first</li><li>second</li></ul>\n\n"+
		"<ol><li>then</li></ol>\n\n"+
		`<p class="block-img"><img src="https://images.example.com/pic.jpg" alt="A pic" width="640" height="480"></p>`+"\n\n"+
		"<pre>x = 1</pre>", h)

	s, err := f.AsText()
	require.NoError(t, err)
	require.Equal(t, "Getting started\nThis is a simple test.\nfirst\nsecond\nthen\nx = 1", s)

	title, ok := st.FirstTitle()
	require.True(t, ok)
	require.Equal(t, "Getting started", title)
}

func TestFirstTitlePrefersHigherLevel(t *testing.T) {
	raw := []byte(`{"type":"StructuredText","value":[
		{"type":"heading2","text":"Minor","spans":[]},
		{"type":"heading1","text":"Major","spans":[]},
		{"type":"heading1","text":"Later","spans":[]}
	]}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	st := f.(*fragment.StructuredText)
	title, ok := st.FirstTitle()
	require.True(t, ok)
	require.Equal(t, "Major", title)

	empty := &fragment.StructuredText{}
	_, ok = empty.FirstTitle()
	require.False(t, ok)
}

func TestStructuredTextLabeledBlock(t *testing.T) {
	raw := []byte(`{"type":"StructuredText","value":[
		{"type":"paragraph","text":"fine print","spans":[],"label":"small"}
	]}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	h, err := f.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<p class="small">fine print</p>`, h)
}

func TestStructuredTextHyperlinkSpan(t *testing.T) {
	raw := []byte(`{"type":"StructuredText","value":[
		{"type":"paragraph","text":"read the post","spans":[
			{"start":9,"end":13,"type":"hyperlink","data":{"type":"Link.document","value":{"document":{"id":"UlfoxUnM0wkXYXbl","type":"post","slug":"tips"},"isBroken":false}}}
		]}
	]}`)
	f, err := fragment.Parse(raw)
	require.NoError(t, err)

	_, err = f.AsHTML(nil)
	require.ErrorIs(t, err, fragment.ErrMissingResolver)

	h, err := f.AsHTML(func(l *fragment.DocumentLink) string { return "/post/" + l.Slug })
	require.NoError(t, err)
	require.Equal(t, `<p>read the <a href="/post/tips">post</a></p>`, h)
}

func TestParseUnknownFragmentType(t *testing.T) {
	_, err := fragment.Parse([]byte(`{"type":"Hologram","value":42}`))
	require.ErrorContains(t, err, `unknown fragment type "Hologram"`)
}

func TestParseUnknownBlockType(t *testing.T) {
	_, err := fragment.Parse([]byte(`{"type":"StructuredText","value":[{"type":"heading9","text":"x","spans":[]}]}`))
	require.ErrorContains(t, err, `unknown block type "heading9"`)

	_, err = fragment.Parse([]byte(`{"type":"StructuredText","value":[{"type":"sidebar","text":"x","spans":[]}]}`))
	require.ErrorContains(t, err, `unknown block type "sidebar"`)
}

func TestParseFieldMultiple(t *testing.T) {
	raw := []byte(`[{"type":"Text","value":"a"},{"type":"Text","value":"b"}]`)
	f, err := fragment.ParseField(raw)
	require.NoError(t, err)

	m, ok := f.(fragment.Multiple)
	require.True(t, ok)
	require.Len(t, m, 2)

	h, err := m.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<span class="text">a</span>`+"\n"+`<span class="text">b</span>`, h)

	s, err := m.AsText()
	require.NoError(t, err)
	require.Equal(t, "a\nb", s)
}

func TestMultipleAsTextPropagates(t *testing.T) {
	m := fragment.Multiple{
		&fragment.WebLink{Address: "https://example.com"},
	}
	_, err := m.AsText()
	var opErr *fragment.UnsupportedOpError
	require.ErrorAs(t, err, &opErr)
}

func TestParseSetAccumulatesErrors(t *testing.T) {
	raw := []byte(`{
		"title": {"type":"Text","value":"ok"},
		"weird": {"type":"Mystery","value":1},
		"badnum": {"type":"Number","value":"NaN"}
	}`)
	set, err := fragment.ParseSet(raw)

	// The good field parses even though others fail.
	require.Len(t, set, 1)
	require.Contains(t, set, "title")

	require.Error(t, err)
	require.ErrorContains(t, err, "field weird")
	require.ErrorContains(t, err, "field badnum")
}

func TestSetRendering(t *testing.T) {
	raw := []byte(`{
		"name": {"type":"Text","value":"Apple Pie"},
		"price": {"type":"Number","value":3.55},
		"photo": {"type":"Image","value":{"main":{"url":"https://images.example.com/pie.jpg","alt":"Pie","copyright":"","dimensions":{"width":300,"height":300}},"views":{}}}
	}`)
	set, err := fragment.ParseSet(raw)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "photo", "price"}, set.Names())

	h, err := set.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<section data-field="name"><span class="text">Apple Pie</span></section>`+"\n"+
		`<section data-field="photo"><img src="https://images.example.com/pie.jpg" alt="Pie" width="300" height="300"></section>`+"\n"+
		`<section data-field="price"><span class="number">3.55</span></section>`, h)

	// Text extraction skips the image, which has no text form.
	require.Equal(t, "Apple Pie\n3.55", set.AsText())
}
