package fragment

import (
	"encoding/json"
	"fmt"
	"strconv"
)

var _ Fragment = (*GeoPoint)(nil)

// GeoPoint is a geographic coordinate.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

func (g *GeoPoint) AsHTML(LinkResolver) (string, error) {
	lat := strconv.FormatFloat(g.Latitude, 'f', -1, 64)
	lng := strconv.FormatFloat(g.Longitude, 'f', -1, 64)
	return `<div class="geopoint"><span class="latitude">` + lat + `</span><span class="longitude">` + lng + `</span></div>`, nil
}

func (g *GeoPoint) AsText() (string, error) {
	return "", noText("geopoint")
}

func parseGeoPoint(value json.RawMessage) (Fragment, error) {
	var v struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, fmt.Errorf("cannot decode geopoint: %w", err)
	}
	return &GeoPoint{Latitude: v.Latitude, Longitude: v.Longitude}, nil
}
