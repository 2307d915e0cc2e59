package fragment

import (
	"encoding/json"
	"fmt"
	"time"
)

var (
	_ Fragment = (*Date)(nil)
	_ Fragment = (*Timestamp)(nil)
)

// dateLayout is the wire format of date fields.
const dateLayout = "2006-01-02"

// timestampLayouts are the wire formats of timestamp fields. The API writes
// numeric zone offsets without a colon, but RFC 3339 values are accepted
// too.
var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

// Date is a calendar date with no time of day.
type Date struct {
	Time time.Time
}

func (d *Date) AsHTML(LinkResolver) (string, error) {
	return "<time>" + d.Time.Format(dateLayout) + "</time>", nil
}

func (d *Date) AsText() (string, error) {
	return "", noText("date")
}

func parseDate(value json.RawMessage) (Fragment, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("cannot decode date: %w", err)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("cannot decode date: %w", err)
	}
	return &Date{Time: t}, nil
}

// Timestamp is a point in time.
type Timestamp struct {
	Time time.Time
}

func (t *Timestamp) AsHTML(LinkResolver) (string, error) {
	return "<time>" + t.Time.Format(time.RFC3339) + "</time>", nil
}

func (t *Timestamp) AsText() (string, error) {
	return "", noText("timestamp")
}

func parseTimestamp(value json.RawMessage) (Fragment, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("cannot decode timestamp: %w", err)
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return &Timestamp{Time: t}, nil
		}
	}
	return nil, fmt.Errorf("cannot decode timestamp %q", s)
}
