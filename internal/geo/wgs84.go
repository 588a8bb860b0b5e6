package geo

import (
	"math"

	"github.com/woozymasta/spatial/internal/units"
)

// WGS84 ellipsoid parameters.
//
// Projection formulas follow the elliptical Mercator projection described at
// https://wiki.openstreetmap.org/wiki/Mercator#Elliptical_(true)_Mercator_Projection
const (
	RMajor = 6378137.0
	RMinor = 6356752.3142
	Ratio  = RMinor / RMajor

	// SIEarthRadius is the globally averaged Earth radius in metres.
	SIEarthRadius = 6371000.0
)

var (
	Eccentricity = math.Sqrt(1.0 - (Ratio * Ratio))
	Com          = 0.5 * Eccentricity
)

const (
	// maxProjectedLatitude keeps LatitudeToY away from the pole singularity.
	maxProjectedLatitude = 89.5

	inverseMaxIterations = 15
	inverseTolerance     = 0.00001
)

// LongitudeToX projects a longitude in degrees to an easting in metres.
func LongitudeToX(lon float64) float64 {
	return RMajor * units.DegreesToRadians * lon
}

// XToLongitude inverts LongitudeToX.
func XToLongitude(x float64) float64 {
	return x / (RMajor * units.DegreesToRadians)
}

// LatitudeToY projects a latitude in degrees to a northing in metres.
// Latitudes are clamped to ±89.5 degrees.
func LatitudeToY(lat float64) float64 {
	lat = math.Min(maxProjectedLatitude, math.Max(lat, -maxProjectedLatitude))

	phi := units.DegreesToRadians * lat

	con := Eccentricity * math.Sin(phi)
	con = math.Pow((1.0-con)/(1.0+con), Com)

	ts := math.Tan(0.5*((math.Pi*0.5)-phi)) / con

	return 0.0 - RMajor*math.Log(ts)
}

// YToLatitude inverts LatitudeToY by fixed-point iteration. It stops after
// 15 iterations even if the step has not fallen below 1e-5 radians.
func YToLatitude(y float64) float64 {
	ts := math.Exp(-y / RMajor)
	phi := sphericalLatitude(y / RMajor)

	dphi := 1.0
	for i := 0; math.Abs(dphi) > inverseTolerance && i < inverseMaxIterations; i++ {
		con := Eccentricity * math.Sin(phi)

		dphi = (math.Pi * 0.5) - 2.0*math.Atan(ts*math.Pow((1.0-con)/(1.0+con), Com)) - phi
		phi += dphi
	}

	return units.RadiansToDegrees * phi
}

// EarthRadius returns the distance from the centre of the ellipsoid to its
// surface at the geodetic latitude in degrees.
func EarthRadius(lat float64) float64 {
	phi := units.DegreesToRadians * lat
	cos, sin := math.Cos(phi), math.Sin(phi)

	an := RMajor * RMajor * cos
	bn := RMinor * RMinor * sin
	ad := RMajor * cos
	bd := RMinor * sin

	return math.Sqrt((an*an + bn*bn) / (ad*ad + bd*bd))
}

// EquatorialStretchFactor returns the horizontal stretch of the projection at
// the latitude in degrees.
//
// The eccentricity term applies sin twice (sin(sin(φ))).
func EquatorialStretchFactor(lat float64) float64 {
	rad := units.DegreesToRadians * lat

	return math.Sqrt(1.0-(Eccentricity*Eccentricity)*math.Sin(math.Sin(rad))) * (1.0 / math.Cos(rad))
}

// AltitudeCompensation is the drop of the ellipsoid surface at the latitude
// relative to the equator, in metres.
func AltitudeCompensation(lat float64) float64 {
	return EarthRadius(0.0) - EarthRadius(lat)
}
