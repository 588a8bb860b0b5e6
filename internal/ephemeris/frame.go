package ephemeris

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/woozymasta/spatial/internal/units"
)

// Source produces heliocentric ecliptic positions in astronomical units,
// such as a VSOP87 evaluator.
type Source interface {
	Position(body Body, et float64) (r3.Vector, error)
}

// Transform is a body's position (AU) and rotation at one instant.
type Transform struct {
	Position r3.Vector `json:"position"`
	Rotation Quat      `json:"rotation"`
}

// Interpolate blends two transforms: positions linearly, rotations along
// the shorter arc.
func Interpolate(a, b Transform, t float64) Transform {
	return Transform{
		Position: a.Position.Add(b.Position.Sub(a.Position).Mul(t)),
		Rotation: a.Rotation.Slerp(b.Rotation, t),
	}
}

// Snapshot holds every body's transform at one ephemeris time.
type Snapshot struct {
	Time       float64            `json:"time"`
	Transforms map[Body]Transform `json:"transforms"`
}

// TakeSnapshot evaluates src and the rotation models for every body at et.
func TakeSnapshot(src Source, et float64) (Snapshot, error) {
	s := Snapshot{Time: et, Transforms: make(map[Body]Transform, len(bodies))}

	for _, b := range bodies {
		pos, err := src.Position(b, et)
		if err != nil {
			return Snapshot{}, fmt.Errorf("position of %s: %w", b, err)
		}
		rot, err := Rotation(b, et)
		if err != nil {
			return Snapshot{}, err
		}
		s.Transforms[b] = Transform{Position: pos, Rotation: rot}
	}

	return s, nil
}

// bodyRadiusAU are mean body radii in astronomical units.
var bodyRadiusAU = map[Body]float64{
	Sol:     0.0092982607,
	Mercury: 0.0000327545,
	Venus:   0.0000808835,
	Earth:   0.0000855627,
	Moon:    0.0000232289,
	Mars:    0.0000454552,
	Jupiter: 0.000955896,
	Saturn:  0.0008054927,
	Uranus:  0.0003415824,
	Neptune: 0.0003308871,
}

// BodyRadiusAU returns the body's mean radius in astronomical units.
func BodyRadiusAU(b Body) (float64, bool) {
	r, ok := bodyRadiusAU[b]
	return r, ok
}

// Default frame multipliers.
const (
	DefaultDistanceMultiplier = 1e-10
	DefaultScaleMultiplier    = 1e-9
)

// Frame places bodies in a world scaled down from metres. Positions are
// taken relative to Origin.
type Frame struct {
	Origin             Body
	DistanceMultiplier float64
	ScaleMultiplier    float64
}

// DefaultFrame is centred on Earth.
func DefaultFrame() Frame {
	return Frame{
		Origin:             Earth,
		DistanceMultiplier: DefaultDistanceMultiplier,
		ScaleMultiplier:    DefaultScaleMultiplier,
	}
}

// Placement is where and how large to draw a body.
type Placement struct {
	Body     Body      `json:"body"`
	Position r3.Vector `json:"position"`
	Rotation Quat      `json:"rotation"`
	Scale    float64   `json:"scale"`
}

// Place interpolates the snapshots at fraction t and returns one placement
// per body present in from, in Bodies order. A body missing from to keeps
// its from transform. A missing origin places bodies relative to the
// heliocentric origin.
func (f Frame) Place(from, to Snapshot, t float64) []Placement {
	auToM := units.ConvertDistance(1.0, units.AstronomicalUnit, units.Metre)

	origin := Interpolate(from.Transforms[f.Origin], to.Transforms[f.Origin], t)

	out := make([]Placement, 0, len(from.Transforms))
	for _, b := range bodies {
		a, ok := from.Transforms[b]
		if !ok {
			continue
		}
		z, ok := to.Transforms[b]
		if !ok {
			z = a
		}

		tr := Interpolate(a, z, t)
		p := Placement{
			Body:     b,
			Position: tr.Position.Sub(origin.Position).Mul(auToM * f.DistanceMultiplier),
			Rotation: tr.Rotation,
		}
		if r, ok := bodyRadiusAU[b]; ok {
			p.Scale = auToM * f.ScaleMultiplier * r
		}
		out = append(out, p)
	}

	return out
}
