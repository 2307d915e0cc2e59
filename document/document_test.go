package document_test

import (
	"testing"
	"time"

	"github.com/foliocms/go-folio/document"
	"github.com/foliocms/go-folio/fragment"
	"github.com/stretchr/testify/require"
)

const productJSON = `{
	"id": "UlfoxUnM0wkXYXbl",
	"uid": "apple-pie",
	"type": "product",
	"href": "https://lesbonneschoses.example.io/api/documents/search?ref=master",
	"tags": ["Featured"],
	"slugs": ["apple-pie", "tarte-aux-pommes"],
	"lang": "en-us",
	"first_publication_date": "2017-01-13T11:45:21.000Z",
	"last_publication_date": "2017-02-21T16:05:19.000Z",
	"data": {
		"product": {
			"name": {"type": "Text", "value": "Apple Pie"},
			"price": {"type": "Number", "value": 3.55},
			"color": {"type": "Color", "value": "#ffeacd"},
			"launch": {"type": "Date", "value": "2017-01-20"},
			"restock": {"type": "Timestamp", "value": "2017-03-01T09:00:00+0000"},
			"description": {"type": "StructuredText", "value": [
				{"type": "heading1", "text": "About this pie", "spans": []},
				{"type": "paragraph", "text": "This is a simple test.", "spans": [
					{"start": 5, "end": 7, "type": "em"},
					{"start": 8, "end": 9, "type": "strong"}
				]}
			]},
			"photo": {"type": "Image", "value": {
				"main": {"url": "https://images.example.com/pie.jpg", "alt": "Pie", "copyright": "", "dimensions": {"width": 300, "height": 300}},
				"views": {}
			}},
			"related": {"type": "Link.document", "value": {
				"document": {"id": "UlfoxUnM0wkXYXbm", "type": "product", "slug": "cherry-pie"},
				"isBroken": false
			}},
			"flavours": [
				{"type": "Text", "value": "apple"},
				{"type": "Text", "value": "cinnamon"}
			],
			"extras": {"type": "Group", "value": [
				{"label": {"type": "Text", "value": "boxed"}}
			]}
		}
	}
}`

func TestParse(t *testing.T) {
	doc, err := document.Parse([]byte(productJSON))
	require.NoError(t, err)

	require.Equal(t, "UlfoxUnM0wkXYXbl", doc.ID)
	require.Equal(t, "apple-pie", doc.UID)
	require.Equal(t, "product", doc.Type)
	require.Equal(t, []string{"Featured"}, doc.Tags)
	require.Equal(t, "en-us", doc.Lang)
	require.Equal(t, time.Date(2017, 1, 13, 11, 45, 21, 0, time.UTC), doc.FirstPublicationDate.UTC())
	require.Equal(t, 2017, doc.LastPublicationDate.Year())
	require.Len(t, doc.Fragments, 10)
}

func TestGetters(t *testing.T) {
	doc, err := document.Parse([]byte(productJSON))
	require.NoError(t, err)

	name, ok := doc.GetText("name")
	require.True(t, ok)
	require.Equal(t, "Apple Pie", name)

	// The API's qualified spelling resolves too.
	name, ok = doc.GetText("product.name")
	require.True(t, ok)
	require.Equal(t, "Apple Pie", name)

	price, ok := doc.GetNumber("price")
	require.True(t, ok)
	require.Equal(t, 3.55, price)

	color, ok := doc.GetColor("color")
	require.True(t, ok)
	require.Equal(t, "#ffeacd", color)

	launch, ok := doc.GetDate("launch")
	require.True(t, ok)
	require.Equal(t, "2017-01-20", launch.Format("2006-01-02"))

	restock, ok := doc.GetTimestamp("restock")
	require.True(t, ok)
	require.Equal(t, 9, restock.Hour())

	st, ok := doc.GetStructuredText("description")
	require.True(t, ok)
	title, ok := st.FirstTitle()
	require.True(t, ok)
	require.Equal(t, "About this pie", title)

	img, ok := doc.GetImage("photo")
	require.True(t, ok)
	require.Equal(t, 300, img.Main.Width)

	view, ok := doc.GetImageView("photo", "main")
	require.True(t, ok)
	require.Equal(t, "Pie", view.Alt)
	_, ok = doc.GetImageView("photo", "icon")
	require.False(t, ok)
	_, ok = doc.GetImageView("name", "main")
	require.False(t, ok)

	link, ok := doc.GetLink("related")
	require.True(t, ok)
	docLink, ok := link.(*fragment.DocumentLink)
	require.True(t, ok)
	require.Equal(t, "cherry-pie", docLink.Slug)

	grp, ok := doc.GetGroup("extras")
	require.True(t, ok)
	require.Len(t, grp.Items, 1)

	// The first value of a multi-valued field satisfies a typed getter.
	flavour, ok := doc.GetText("flavours")
	require.True(t, ok)
	require.Equal(t, "apple", flavour)

	_, ok = doc.GetText("missing")
	require.False(t, ok)
	_, ok = doc.GetNumber("name")
	require.False(t, ok)
}

func TestSlugs(t *testing.T) {
	doc, err := document.Parse([]byte(productJSON))
	require.NoError(t, err)

	require.Equal(t, "apple-pie", doc.Slug())
	require.True(t, doc.HasSlug("apple-pie"))
	require.True(t, doc.HasSlug("tarte-aux-pommes"))
	require.False(t, doc.HasSlug("cherry-pie"))

	empty := &document.Document{}
	require.Equal(t, "-", empty.Slug())
}

func TestLink(t *testing.T) {
	doc, err := document.Parse([]byte(productJSON))
	require.NoError(t, err)

	link := doc.Link()
	require.Equal(t, doc.ID, link.ID)
	require.Equal(t, doc.UID, link.UID)
	require.Equal(t, "product", link.Type)
	require.Equal(t, "apple-pie", link.Slug)
	require.False(t, link.IsBroken)
}

func TestAsHTML(t *testing.T) {
	doc, err := document.Parse([]byte(`{
		"id": "X1",
		"type": "post",
		"data": {"post": {
			"title": {"type": "Text", "value": "Hello"},
			"body": {"type": "StructuredText", "value": [
				{"type": "paragraph", "text": "World", "spans": []}
			]}
		}}
	}`))
	require.NoError(t, err)

	h, err := doc.AsHTML(nil)
	require.NoError(t, err)
	require.Equal(t, `<section data-field="body"><p>World</p></section>`+"\n"+
		`<section data-field="title"><span class="text">Hello</span></section>`, h)

	require.Equal(t, "World\nHello", doc.AsText())
}

func TestParsePartialFailure(t *testing.T) {
	doc, err := document.Parse([]byte(`{
		"id": "X2",
		"type": "post",
		"data": {"post": {
			"title": {"type": "Text", "value": "Still here"},
			"mystery": {"type": "Wormhole", "value": 9}
		}}
	}`))

	// The malformed field is reported but the document is usable.
	require.Error(t, err)
	require.ErrorContains(t, err, "field mystery")
	require.NotNil(t, doc)

	title, ok := doc.GetText("title")
	require.True(t, ok)
	require.Equal(t, "Still here", title)
	_, ok = doc.Fragment("mystery")
	require.False(t, ok)
}

func TestParseNoID(t *testing.T) {
	_, err := document.Parse([]byte(`{"type":"post"}`))
	require.ErrorContains(t, err, "no id")

	_, err = document.Parse([]byte(`not json`))
	require.ErrorContains(t, err, "cannot decode document")
}
