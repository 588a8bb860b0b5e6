// Package geo handles WGS84 projection, geographic bounding boxes and
// conversions between GPS coordinates, Cartesian space and raster space.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// PointFeature returns a GeoJSON point feature for the coordinate.
// A non-zero altitude is stored as the "altitude" property.
func PointFeature(c Coordinate, props map[string]any) *geojson.Feature {
	f := geojson.NewFeature(c.Point())
	for k, v := range props {
		f.Properties[k] = v
	}
	if c.Alt != 0 {
		f.Properties["altitude"] = c.Alt
	}

	return f
}

// BoundsFeature returns the box as a GeoJSON polygon feature carrying its
// edges as properties.
func BoundsFeature(b BoundingBox) *geojson.Feature {
	f := geojson.NewFeature(b.Bound().ToPolygon())
	f.Properties["south"] = b.South
	f.Properties["west"] = b.West
	f.Properties["north"] = b.North
	f.Properties["east"] = b.East

	return f
}

// FeatureCollection wraps features into a collection with a bbox member.
func FeatureCollection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Features = append(fc.Features, features...)

	bound := orb.Bound{}
	for i, f := range features {
		if i == 0 {
			bound = f.Geometry.Bound()
			continue
		}
		bound = bound.Union(f.Geometry.Bound())
	}
	if len(features) > 0 {
		fc.BBox = geojson.NewBBox(bound)
	}

	return fc
}
