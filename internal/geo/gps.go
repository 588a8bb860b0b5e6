package geo

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"

	"github.com/woozymasta/spatial/internal/units"
)

// DefaultReferenceLatitude is the latitude whose ellipsoid radius is used by
// ToCartesian when the caller has no better reference.
const DefaultReferenceLatitude = 45.0

// Coordinate is a geodetic position. Lat and Lon are in degrees, Alt is in
// metres above the ellipsoid surface.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
	Alt float64 `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// Point returns the coordinate as an orb point (lon, lat).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// BoundingBox is a geographic rectangle in degrees.
type BoundingBox struct {
	South float64 `json:"south" yaml:"south"`
	West  float64 `json:"west" yaml:"west"`
	North float64 `json:"north" yaml:"north"`
	East  float64 `json:"east" yaml:"east"`
}

// BoundingBoxFromBound converts an orb bound (lon/lat) to a BoundingBox.
func BoundingBoxFromBound(b orb.Bound) BoundingBox {
	return BoundingBox{
		South: b.Min.Lat(),
		West:  b.Min.Lon(),
		North: b.Max.Lat(),
		East:  b.Max.Lon(),
	}
}

// Bound returns the box as an orb bound.
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Lat: (b.South + b.North) * 0.5,
		Lon: (b.West + b.East) * 0.5,
	}
}

// Contains reports whether the coordinate lies inside the box, edges included.
func (b BoundingBox) Contains(c Coordinate) bool {
	return b.Bound().Contains(c.Point())
}

// Width is the longitudinal span in degrees.
func (b BoundingBox) Width() float64 { return b.East - b.West }

// Height is the latitudinal span in degrees.
func (b BoundingBox) Height() float64 { return b.North - b.South }

// Bounds returns the square box of sizeKm kilometres per side centred on the
// coordinate. The north-south extent uses the ellipsoid radius at the
// coordinate's latitude; the east-west extent uses the radius of that
// latitude's parallel. A zero size yields a degenerate box at the centre.
func Bounds(center Coordinate, sizeKm float64) BoundingBox {
	halfSide := 500.0 * sizeKm

	radius := EarthRadius(center.Lat)
	pradius := radius * math.Cos(units.DegreesToRadians*center.Lat)

	dLat := units.RadiansToDegrees * (halfSide / radius)
	dLon := units.RadiansToDegrees * (halfSide / pradius)

	return BoundingBox{
		South: center.Lat - dLat,
		West:  center.Lon - dLon,
		North: center.Lat + dLat,
		East:  center.Lon + dLon,
	}
}

// SphereToCartesian converts spherical coordinates in radians and a radius to
// a Z-up Cartesian vector.
func SphereToCartesian(lat, lon, radius float64) r3.Vector {
	cosLat := math.Cos(lat)

	return r3.Vector{
		X: cosLat * math.Cos(lon) * radius,
		Y: cosLat * math.Sin(lon) * radius,
		Z: math.Sin(lat) * radius,
	}
}

// CartesianToSphere inverts SphereToCartesian, returning latitude and
// longitude in radians and the radius. The origin maps to zero.
func CartesianToSphere(v r3.Vector) (lat, lon, radius float64) {
	radius = v.Norm()
	if radius == 0 {
		return 0, 0, 0
	}

	return math.Asin(v.Z / radius), math.Atan2(v.Y, v.X), radius
}

// ToCartesian places the coordinate on a sphere whose radius is the
// ellipsoid radius at refLat plus the coordinate's altitude.
func ToCartesian(c Coordinate, refLat float64) r3.Vector {
	return SphereToCartesian(
		units.DegreesToRadians*c.Lat,
		units.DegreesToRadians*c.Lon,
		c.Alt+EarthRadius(refLat),
	)
}

// ToGlobe places the coordinate on the ellipsoid surface at its own
// latitude, raised by its altitude.
func ToGlobe(c Coordinate) r3.Vector {
	return ToCartesian(c, c.Lat)
}

// FromCartesian inverts ToCartesian for the same reference latitude.
func FromCartesian(v r3.Vector, refLat float64) Coordinate {
	lat, lon, radius := CartesianToSphere(v)

	return Coordinate{
		Lat: units.RadiansToDegrees * lat,
		Lon: units.RadiansToDegrees * lon,
		Alt: radius - EarthRadius(refLat),
	}
}

// ToSphere maps the coordinate onto a Y-up sphere whose radius is taken from
// the Alt field.
func ToSphere(c Coordinate) r3.Vector {
	phi := units.DegreesToRadians * c.Lat
	theta := units.DegreesToRadians * c.Lon
	cosPhi := math.Cos(phi)

	return r3.Vector{
		X: cosPhi * math.Cos(theta) * c.Alt,
		Y: math.Sin(phi) * c.Alt,
		Z: cosPhi * math.Sin(theta) * c.Alt,
	}
}

// FromSphere inverts ToSphere. The radius is returned in Alt.
func FromSphere(v r3.Vector) Coordinate {
	rho := v.Norm()
	if rho == 0 {
		return Coordinate{}
	}

	return Coordinate{
		Lat: units.RadiansToDegrees * math.Asin(v.Y/rho),
		Lon: units.RadiansToDegrees * math.Atan2(v.Z, v.X),
		Alt: rho,
	}
}

// Project returns the elliptical Mercator position of the coordinate in
// metres.
func Project(c Coordinate) r2.Point {
	return r2.Point{X: LongitudeToX(c.Lon), Y: LatitudeToY(c.Lat)}
}

// Unproject inverts Project.
func Unproject(p r2.Point) Coordinate {
	return Coordinate{Lat: YToLatitude(p.Y), Lon: XToLongitude(p.X)}
}

// ToUV maps the coordinate to [0,1] texture space over the box. U grows from
// west to east, V from north to south. A degenerate axis maps to 0.5.
func ToUV(c Coordinate, b BoundingBox) r2.Point {
	return r2.Point{
		X: remap(c.Lon, b.West, b.East),
		Y: remap(c.Lat, b.North, b.South),
	}
}

// UVToGPS inverts ToUV.
func UVToGPS(uv r2.Point, b BoundingBox) Coordinate {
	return Coordinate{
		Lat: lerp(b.North, b.South, uv.Y),
		Lon: lerp(b.West, b.East, uv.X),
	}
}

// ToPixel maps the coordinate to the nearest pixel of an image of the given
// dimensions covering the box. Row 0 is the northern edge and column 0 the
// western edge.
func ToPixel(c Coordinate, dims image.Point, b BoundingBox) image.Point {
	uv := ToUV(c, b)

	return image.Point{
		X: int(math.Round(uv.X * float64(max(dims.X-1, 0)))),
		Y: int(math.Round(uv.Y * float64(max(dims.Y-1, 0)))),
	}
}

// PixelToGPS returns the coordinate at the centre of pixel p. Images narrower
// than two pixels on an axis map that axis to the box centre.
func PixelToGPS(p image.Point, dims image.Point, b BoundingBox) Coordinate {
	return UVToGPS(r2.Point{
		X: pixelFraction(p.X, dims.X),
		Y: pixelFraction(p.Y, dims.Y),
	}, b)
}

func pixelFraction(p, n int) float64 {
	if n < 2 {
		return 0.5
	}
	return float64(p) / float64(n-1)
}

func remap(v, from, to float64) float64 {
	if from == to {
		return 0.5
	}
	return (v - from) / (to - from)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
