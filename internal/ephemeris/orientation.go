package ephemeris

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/woozymasta/spatial/internal/units"
)

var ErrUnknownBody = errors.New("unknown body")

// Body names a solar system body.
type Body string

// Supported bodies.
const (
	Sol     Body = "Sol"
	Mercury Body = "Mercury"
	Venus   Body = "Venus"
	Earth   Body = "Earth"
	Moon    Body = "Moon"
	Mars    Body = "Mars"
	Jupiter Body = "Jupiter"
	Saturn  Body = "Saturn"
	Uranus  Body = "Uranus"
	Neptune Body = "Neptune"
)

var bodies = []Body{Sol, Mercury, Venus, Earth, Moon, Mars, Jupiter, Saturn, Uranus, Neptune}

// Bodies lists every supported body, Sun first, then outward.
func Bodies() []Body {
	out := make([]Body, len(bodies))
	copy(out, bodies)
	return out
}

// ParseBody returns the body with the given name.
func ParseBody(name string) (Body, error) {
	for _, b := range bodies {
		if string(b) == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBody, name)
}

// RotationElements are the IAU rotation elements of a body in degrees: the
// right ascension and declination of its north pole and its prime meridian
// angle.
type RotationElements struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
	W   float64 `json:"w"`
}

type elementsFunc func(d, T float64) RotationElements

// Elements follow the IAU WGCCRE reports: 2009 for Earth and Moon, 2015 for
// the rest. d is days and T Julian centuries since J2000.0.
var rotationModels = map[Body]elementsFunc{
	Sol: func(d, _ float64) RotationElements {
		return RotationElements{RA: 286.13, Dec: 63.87, W: 84.176 + 14.1844000*d}
	},
	Mercury: func(d, T float64) RotationElements {
		m1 := 174.7910857 + 4.092335*d
		m2 := 349.5821714 + 8.184670*d
		m3 := 164.3732571 + 12.277005*d
		m4 := 339.1643429 + 16.369340*d
		m5 := 153.9554286 + 20.461675*d
		return RotationElements{
			RA:  281.0103 - 0.0328*T,
			Dec: 61.4155 - 0.0049*T,
			W: 329.5988 + 6.1385108*d +
				0.01067257*sinD(m1) -
				0.00112309*sinD(m2) -
				0.00011040*sinD(m3) -
				0.00002539*sinD(m4) -
				0.00000571*sinD(m5),
		}
	},
	Venus: func(d, _ float64) RotationElements {
		return RotationElements{RA: 272.76, Dec: 67.16, W: 160.20 - 1.4813688*d}
	},
	Earth: func(d, T float64) RotationElements {
		return RotationElements{RA: 0.00 - 0.641*T, Dec: 90.00 - 0.557*T, W: 190.147 + 360.9856235*d}
	},
	Moon: func(d, T float64) RotationElements {
		e1 := 125.045 - 0.0529921*d
		e2 := 250.089 - 0.1059842*d
		e3 := 260.008 + 13.0120009*d
		e4 := 176.625 + 13.3407154*d
		e5 := 357.529 + 0.9856003*d
		e6 := 311.589 + 26.4057084*d
		e7 := 134.963 + 13.0649930*d
		e8 := 276.617 + 0.3287146*d
		e9 := 34.226 + 1.7484877*d
		e10 := 15.134 - 0.1589763*d
		e11 := 119.743 + 0.0036096*d
		e12 := 239.961 + 0.1643573*d
		e13 := 25.053 + 12.9590088*d
		return RotationElements{
			RA: 269.9949 + 0.0031*T - 3.8787*sinD(e1) - 0.1204*sinD(e2) +
				0.0700*sinD(e3) - 0.0172*sinD(e4) + 0.0072*sinD(e6) -
				0.0052*sinD(e10) + 0.0043*sinD(e13),
			Dec: 66.5392 + 0.0130*T + 1.5419*cosD(e1) + 0.0239*cosD(e2) -
				0.0278*cosD(e3) + 0.0068*cosD(e4) - 0.0029*cosD(e6) +
				0.0009*cosD(e7) + 0.0008*cosD(e10) - 0.0009*cosD(e13),
			W: 38.3213 + 13.17635815*d - 1.4e-12*d*d + 3.5610*sinD(e1) +
				0.1208*sinD(e2) - 0.0642*sinD(e3) + 0.0158*sinD(e4) +
				0.0252*sinD(e5) - 0.0066*sinD(e6) - 0.0047*sinD(e7) -
				0.0046*sinD(e8) + 0.0028*sinD(e9) + 0.0052*sinD(e10) +
				0.0040*sinD(e11) + 0.0019*sinD(e12) - 0.0044*sinD(e13),
		}
	},
	Mars: func(d, T float64) RotationElements {
		return RotationElements{
			RA: 317.269202 - 0.10927547*T +
				0.000068*sinD(198.991226+19139.4819985*T) +
				0.000238*sinD(226.292679+38280.8511281*T) +
				0.000052*sinD(249.663391+57420.7251593*T) +
				0.000009*sinD(266.183510+76560.6367950*T) +
				0.419057*sinD(79.398797+0.5042615*T),
			Dec: 54.432516 - 0.05827105*T +
				0.000051*cosD(122.433576+19139.9407476*T) +
				0.000141*cosD(43.058401+38280.8753272*T) +
				0.000031*cosD(57.663379+57420.7517205*T) +
				0.000005*cosD(79.476401+76560.6495004*T) +
				1.591274*cosD(166.325722+0.5042615*T),
			W: 176.049863 + 350.891982443297*d +
				0.000145*sinD(129.071773+19140.0328244*T) +
				0.000157*sinD(36.352167+38281.0473591*T) +
				0.000040*sinD(56.668646+57420.9295360*T) +
				0.000001*sinD(67.364003+76560.2552215*T) +
				0.000001*sinD(104.792680+95700.4387578*T) +
				0.584542*sinD(95.391654+0.5042615*T),
		}
	},
	Jupiter: func(d, T float64) RotationElements {
		ja := 99.360714 + 4850.4046*T
		jb := 175.895369 + 1191.9605*T
		jc := 300.323162 + 262.5475*T
		jd := 114.012305 + 6070.2476*T
		je := 49.511251 + 64.3000*T
		return RotationElements{
			RA: 268.056595 - 0.006499*T + 0.000117*sinD(ja) + 0.000938*sinD(jb) +
				0.001432*sinD(jc) + 0.000030*sinD(jd) + 0.002150*sinD(je),
			Dec: 64.495303 + 0.002413*T + 0.000050*cosD(ja) + 0.000404*cosD(jb) +
				0.000617*cosD(jc) - 0.000013*cosD(jd) + 0.000926*cosD(je),
			W: 284.95 + 870.5360000*d,
		}
	},
	Saturn: func(d, T float64) RotationElements {
		return RotationElements{RA: 40.589 - 0.036*T, Dec: 83.537 - 0.004*T, W: 38.90 + 810.7939024*d}
	},
	Uranus: func(d, _ float64) RotationElements {
		return RotationElements{RA: 257.311, Dec: -15.175, W: 203.81 - 501.1600928*d}
	},
	Neptune: func(d, T float64) RotationElements {
		n := 357.85 + 52.316*T
		return RotationElements{
			RA:  299.36 + 0.70*sinD(n),
			Dec: 43.46 - 0.51*cosD(n),
			W:   249.978 + 541.1397757*d - 0.48*sinD(n),
		}
	},
}

// Elements returns the rotation elements of the body at ephemeris time et.
func Elements(body Body, et float64) (RotationElements, error) {
	model, ok := rotationModels[body]
	if !ok {
		return RotationElements{}, fmt.Errorf("%w: %q", ErrUnknownBody, body)
	}

	d := et * DaysPerUnit
	return model(d, d/36525.0), nil
}

// VSOP87 frame offsets.
const (
	eclipticObliquity = 23.4392803055555555556
	meridianOffset    = 0.0000275
)

// Orientation returns the body's orientation at ephemeris time et as Euler
// angles in degrees, mapped from equatorial rotation elements into the
// ecliptic VSOP87 frame.
func Orientation(body Body, et float64) (r3.Vector, error) {
	el, err := Elements(body, et)
	if err != nil {
		return r3.Vector{}, err
	}

	return r3.Vector{
		X: math.Mod(el.Dec+(90.0-eclipticObliquity), 360.0),
		Y: math.Mod((el.RA+el.W)*(360.0/365.0)+meridianOffset, 360.0),
		Z: 0,
	}, nil
}

// Rotation returns the body's orientation at ephemeris time et as a
// quaternion.
func Rotation(body Body, et float64) (Quat, error) {
	o, err := Orientation(body, et)
	if err != nil {
		return Quat{}, err
	}
	return QuatFromEuler(o.Mul(units.DegreesToRadians)), nil
}

func sinD(x float64) float64 { return math.Sin(math.Mod(x, 360.0) * units.DegreesToRadians) }
func cosD(x float64) float64 { return math.Cos(math.Mod(x, 360.0) * units.DegreesToRadians) }
