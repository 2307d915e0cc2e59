package fragment

import (
	"encoding/json"
	"fmt"
	"strings"
)

var _ Fragment = (*Group)(nil)

// Group is a repeatable composite field: an ordered list of items, each
// item a set of named fragments sharing the same shape.
type Group struct {
	Items []Set
}

// AsHTML renders each item's fragments in turn, fields wrapped in section
// elements the same way a document's fields are.
func (g *Group) AsHTML(resolver LinkResolver) (string, error) {
	parts := make([]string, 0, len(g.Items))
	for _, item := range g.Items {
		h, err := item.AsHTML(resolver)
		if err != nil {
			return "", err
		}
		parts = append(parts, h)
	}
	return strings.Join(parts, "\n"), nil
}

// AsText extracts the plain text of each item. Item fields with no text
// form are skipped.
func (g *Group) AsText() (string, error) {
	parts := make([]string, 0, len(g.Items))
	for _, item := range g.Items {
		parts = append(parts, item.AsText())
	}
	return strings.Join(parts, "\n"), nil
}

func parseGroup(value json.RawMessage) (Fragment, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, fmt.Errorf("cannot decode group: %w", err)
	}
	g := &Group{Items: make([]Set, 0, len(items))}
	for i, item := range items {
		set, err := ParseSet(item)
		if err != nil {
			return nil, fmt.Errorf("cannot decode group item %d: %w", i, err)
		}
		g.Items = append(g.Items, set)
	}
	return g, nil
}
