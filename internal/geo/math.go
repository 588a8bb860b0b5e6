package geo

import (
	"math"

	"github.com/woozymasta/spatial/internal/units"
)

// MaxMercatorLatitude is the latitude at which the square spherical Mercator
// world ends, as used by slippy map tiles.
const MaxMercatorLatitude = 85.05112878

// Tile addresses a slippy map tile.
type Tile struct {
	Z, X, Y int
}

// sphericalLatitude inverts the spherical Mercator projection. mercatorY is
// the projected northing divided by the sphere radius; the result is in
// radians.
func sphericalLatitude(mercatorY float64) float64 {
	return (2.0 * math.Atan(math.Exp(mercatorY))) - (math.Pi * 0.5)
}

// TileAt returns the tile containing the coordinate at the given zoom level.
// Latitudes beyond MaxMercatorLatitude land on the edge rows.
func TileAt(lat, lon float64, zoom int) Tile {
	n := float64(int(1) << zoom)

	lat = math.Max(-MaxMercatorLatitude, math.Min(MaxMercatorLatitude, lat))
	latRad := lat * units.DegreesToRadians

	x := int(math.Floor((lon + 180.0) / 360.0 * n))
	y := int(math.Floor((1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n))

	maxIdx := int(n) - 1
	return Tile{
		Z: zoom,
		X: max(0, min(maxIdx, x)),
		Y: max(0, min(maxIdx, y)),
	}
}

// Bounds returns the geographic extent of the tile.
func (t Tile) Bounds() BoundingBox {
	n := float64(int(1) << t.Z)

	lonAt := func(x int) float64 { return float64(x)/n*360.0 - 180.0 }
	latAt := func(y int) float64 {
		return sphericalLatitude(math.Pi*(1.0-2.0*float64(y)/n)) * units.RadiansToDegrees
	}

	return BoundingBox{
		South: latAt(t.Y + 1),
		West:  lonAt(t.X),
		North: latAt(t.Y),
		East:  lonAt(t.X + 1),
	}
}

// TilesCovering lists the tiles at the zoom level that intersect the box,
// row by row from the north-west corner.
func TilesCovering(b BoundingBox, zoom int) []Tile {
	nw := TileAt(b.North, b.West, zoom)
	se := TileAt(b.South, b.East, zoom)

	tiles := make([]Tile, 0, (se.X-nw.X+1)*(se.Y-nw.Y+1))
	for y := nw.Y; y <= se.Y; y++ {
		for x := nw.X; x <= se.X; x++ {
			tiles = append(tiles, Tile{Z: zoom, X: x, Y: y})
		}
	}

	return tiles
}
