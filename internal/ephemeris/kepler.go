package ephemeris

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/woozymasta/spatial/internal/units"
)

// orbitalElements are J2000 mean elements with their rates per Julian
// century: semi-major axis (AU), eccentricity, inclination, mean longitude,
// longitude of perihelion and longitude of the ascending node (degrees).
type orbitalElements struct {
	a, e, i, l, peri, node                   float64
	aDot, eDot, iDot, lDot, periDot, nodeDot float64
}

// Approximate positions of the major planets, valid 1800-2050 AD
// (Standish, JPL). Earth uses the Earth-Moon barycentre.
var keplerElements = map[Body]orbitalElements{
	Mercury: {0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081},
	Venus: {0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418},
	Earth: {1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0},
	Mars: {1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343},
	Jupiter: {5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106},
	Saturn: {9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794},
	Uranus: {19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589},
	Neptune: {30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664},
}

// Mean lunar orbit about the Earth.
var moonElements = orbitalElements{
	a: 0.00256955529, e: 0.0549, i: 5.145,
	l: 218.3164477, peri: 83.3532465, node: 125.0445479,
	lDot: 481267.88123421, periDot: 4069.0137287, nodeDot: -1934.1362891,
}

const keplerMaxIterations = 10

// KeplerSource computes low-precision heliocentric ecliptic positions from
// mean orbital elements. It stands in for a full planetary theory when
// none is configured.
type KeplerSource struct{}

// Position implements Source.
func (KeplerSource) Position(body Body, et float64) (r3.Vector, error) {
	T := et * DaysPerUnit / 36525.0

	switch body {
	case Sol:
		return r3.Vector{}, nil
	case Moon:
		return keplerElements[Earth].at(T).Add(moonElements.at(T)), nil
	}

	el, ok := keplerElements[body]
	if !ok {
		return r3.Vector{}, fmt.Errorf("%w: %q", ErrUnknownBody, body)
	}
	return el.at(T), nil
}

// at returns the position on the orbit T Julian centuries after J2000.
func (o orbitalElements) at(T float64) r3.Vector {
	a := o.a + o.aDot*T
	e := o.e + o.eDot*T
	inc := (o.i + o.iDot*T) * units.DegreesToRadians
	l := o.l + o.lDot*T
	peri := o.peri + o.periDot*T
	node := o.node + o.nodeDot*T

	argPeri := (peri - node) * units.DegreesToRadians
	node *= units.DegreesToRadians

	m := math.Mod(l-peri, 360.0)
	if m > 180 {
		m -= 360
	} else if m < -180 {
		m += 360
	}
	m *= units.DegreesToRadians

	ecc := solveKepler(m, e)

	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cw, sw := math.Cos(argPeri), math.Sin(argPeri)
	cn, sn := math.Cos(node), math.Sin(node)
	ci, si := math.Cos(inc), math.Sin(inc)

	return r3.Vector{
		X: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		Y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		Z: (sw*si)*xp + (cw*si)*yp,
	}
}

// solveKepler returns the eccentric anomaly for mean anomaly m (radians).
func solveKepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for range keplerMaxIterations {
		d := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= d
		if math.Abs(d) < 1e-12 {
			break
		}
	}
	return ecc
}
