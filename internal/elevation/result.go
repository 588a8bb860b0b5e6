package elevation

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/woozymasta/spatial/internal/geo"
)

// Result is one elevation sample. Missing is set when the provider had no
// data for the location.
type Result struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Elevation float64 `json:"elevation"`
	Dataset   string  `json:"dataset,omitempty"`
	Missing   bool    `json:"missing,omitempty"`
}

// Coordinate returns the sample as a coordinate with the elevation as
// altitude.
func (r Result) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: r.Lat, Lon: r.Lon, Alt: r.Elevation}
}

// field paths per provider response shape
type resultShape struct {
	lat, lon, elevation, dataset string
}

var shapes = map[Provider]resultShape{
	OpenElevation: {lat: "latitude", lon: "longitude", elevation: "elevation"},
	OpenTopoData:  {lat: "location.lat", lon: "location.lng", elevation: "elevation", dataset: "dataset"},
}

// decodeResults parses a provider response body.
func decodeResults(p Provider, body []byte) ([]Result, error) {
	shape, ok := shapes[p]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProvider, uint8(p))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrBadResponse)
	}

	doc := gjson.ParseBytes(body)
	if msg := doc.Get("error"); msg.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrBadResponse, msg.String())
	}

	items := doc.Get("results")
	if !items.IsArray() {
		return nil, fmt.Errorf("%w: no results array", ErrBadResponse)
	}

	var (
		out []Result
		err error
	)
	items.ForEach(func(_, item gjson.Result) bool {
		lat, lon := item.Get(shape.lat), item.Get(shape.lon)
		if lat.Type != gjson.Number || lon.Type != gjson.Number {
			err = fmt.Errorf("%w: result %d has no location", ErrBadResponse, len(out))
			return false
		}

		r := Result{Lat: lat.Float(), Lon: lon.Float()}
		if shape.dataset != "" {
			r.Dataset = item.Get(shape.dataset).String()
		}

		if elev := item.Get(shape.elevation); elev.Type == gjson.Number {
			r.Elevation = elev.Float()
		} else {
			r.Missing = true
		}

		out = append(out, r)
		return true
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
