package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/foliocms/go-folio/document"
)

// SearchForm builds and submits one search against a repository form. Build
// methods return the form so calls can be chained; a build error is recorded
// and returned by Submit.
//
// A SearchForm is not safe for concurrent use, but it may be submitted more
// than once, adjusting parameters between submissions.
type SearchForm struct {
	client *Client
	form   Form
	data   url.Values
	err    error
}

// Form creates a SearchForm for the named repository form, seeded with the
// form's field defaults and the client's current master ref.
func (c *Client) Form(name string) (*SearchForm, error) {
	form, ok := c.Repository().Forms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormNotFound, name)
	}
	if form.Name == "" {
		form.Name = name
	}
	data := url.Values{}
	for fieldName, field := range form.Fields {
		if field.Default != "" {
			data.Set(fieldName, field.Default)
		}
	}
	f := &SearchForm{
		client: c,
		form:   form,
		data:   data,
	}
	return f.Ref(c.Master().Ref), nil
}

// Ref sets the ref to search. Form seeds the master ref; set a different ref
// to search a release, a preview, or an experiment variation.
func (f *SearchForm) Ref(ref string) *SearchForm {
	return f.Set("ref", ref)
}

// Query restricts the search with one or more predicates. On forms whose q
// field is multiple, each Query call adds a clause that further restricts
// the previous ones.
func (f *SearchForm) Query(predicates ...Predicate) *SearchForm {
	var b strings.Builder
	b.WriteString("[")
	for _, p := range predicates {
		b.WriteString(string(p))
	}
	b.WriteString("]")
	return f.Set("q", b.String())
}

// Page selects the result page to fetch, counted from 1.
func (f *SearchForm) Page(page int) *SearchForm {
	return f.Set("page", strconv.Itoa(page))
}

// PageSize sets the number of results per page.
func (f *SearchForm) PageSize(size int) *SearchForm {
	return f.Set("pageSize", strconv.Itoa(size))
}

// Orderings sorts the results, for example "my.product.price desc".
func (f *SearchForm) Orderings(orderings ...string) *SearchForm {
	return f.Set("orderings", "["+strings.Join(orderings, ",")+"]")
}

// Fetch restricts the fields returned in each document to those named, as
// "type.field" paths.
func (f *SearchForm) Fetch(fields ...string) *SearchForm {
	return f.Set("fetch", strings.Join(fields, ","))
}

// FetchLinks loads the named fields of linked documents into the links of
// the returned documents.
func (f *SearchForm) FetchLinks(fields ...string) *SearchForm {
	return f.Set("fetchLinks", strings.Join(fields, ","))
}

// Set assigns a form field directly. Setting a field the form does not
// declare records an error that Submit returns. Multiple-valued fields
// accumulate values; single-valued fields are replaced.
func (f *SearchForm) Set(field, value string) *SearchForm {
	fd, ok := f.form.Fields[field]
	if !ok {
		if f.err == nil {
			f.err = fmt.Errorf("form %s has no field %s", f.form.Name, field)
		}
		return f
	}
	if fd.Multiple {
		f.data.Add(field, value)
	} else {
		f.data.Set(field, value)
	}
	return f
}

// Submit runs the search and returns one page of results. A response is
// served from the client's cache when an identical request was submitted
// before and the cache entry has not been evicted or cleared.
func (f *SearchForm) Submit(ctx context.Context) (*Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, err := url.Parse(f.form.Action)
	if err != nil {
		return nil, fmt.Errorf("cannot parse form action %s: %w", f.form.Action, err)
	}
	values := url.Values{}
	for field, vals := range f.data {
		for _, v := range vals {
			values.Add(field, v)
		}
	}
	if f.client.accessToken != "" {
		values.Set("access_token", f.client.accessToken)
	}
	// Encode sorts by key, so equivalent submissions share a cache entry.
	u.RawQuery = values.Encode()
	return f.client.query(ctx, u.String())
}

// SubmitAll submits the form and follows pagination links until every
// matching document has been collected. Each page is cached individually.
func (f *SearchForm) SubmitAll(ctx context.Context) ([]*document.Document, error) {
	resp, err := f.Submit(ctx)
	if err != nil {
		return nil, err
	}
	docs := resp.Results
	// TotalPages bounds the walk in case a misbehaving server links its
	// pages in a cycle.
	for page := resp.Page; resp.NextPage != "" && page < resp.TotalPages; page++ {
		resp, err = f.client.query(ctx, resp.NextPage)
		if err != nil {
			return nil, err
		}
		docs = append(docs, resp.Results...)
	}
	return docs, nil
}
