package api

import (
	"encoding/json"
	"fmt"

	"github.com/foliocms/go-folio/document"
)

// Response is one page of search results.
type Response struct {
	Page             int
	ResultsPerPage   int
	ResultsSize      int
	TotalResultsSize int
	TotalPages       int
	NextPage         string
	PrevPage         string
	Results          []*document.Document
}

type responseJSON struct {
	Page             int               `json:"page"`
	ResultsPerPage   int               `json:"results_per_page"`
	ResultsSize      int               `json:"results_size"`
	TotalResultsSize int               `json:"total_results_size"`
	TotalPages       int               `json:"total_pages"`
	NextPage         string            `json:"next_page"`
	PrevPage         string            `json:"prev_page"`
	Results          []json.RawMessage `json:"results"`
}

// UnmarshalResponse parses one page of search results. A document with
// malformed fields is kept, minus the fields that failed to parse; a
// document that cannot be parsed at all fails the whole response.
func UnmarshalResponse(data []byte) (*Response, error) {
	var rj responseJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return nil, fmt.Errorf("cannot decode search response: %w", err)
	}
	resp := &Response{
		Page:             rj.Page,
		ResultsPerPage:   rj.ResultsPerPage,
		ResultsSize:      rj.ResultsSize,
		TotalResultsSize: rj.TotalResultsSize,
		TotalPages:       rj.TotalPages,
		NextPage:         rj.NextPage,
		PrevPage:         rj.PrevPage,
		Results:          make([]*document.Document, 0, len(rj.Results)),
	}
	for i, raw := range rj.Results {
		doc, err := document.Parse(raw)
		if doc == nil {
			return nil, fmt.Errorf("cannot parse result %d: %w", i, err)
		}
		if err != nil {
			log.Warnw("Document has malformed fields", "doc", doc.ID, "err", err)
		}
		resp.Results = append(resp.Results, doc)
	}
	return resp, nil
}
