package api

import (
	"context"

	"github.com/foliocms/go-folio/document"
)

// Querier is the interface implemented by anything that can run a built
// search and return one page of results. *SearchForm implements it.
type Querier interface {
	// Submit runs the search and returns one page of results.
	Submit(ctx context.Context) (*Response, error)
}

// QueryFirst is a convenience function to submit a search and return only
// the first matching document. If no results are found then a nil document
// without error is returned.
func QueryFirst(ctx context.Context, q Querier) (*document.Document, error) {
	resp, err := q.Submit(ctx)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return resp.Results[0], nil
}
