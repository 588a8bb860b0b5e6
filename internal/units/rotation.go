package units

import "math"

// Rotation is a unit of angle. Factors are relative to degrees.
type Rotation uint8

// Rotation units.
const (
	Gradian Rotation = iota
	Degree
	Radian
	Turn
)

// Angle conversion constants used across the spatial packages.
const (
	DegreesToRadians = math.Pi / 180.0
	RadiansToDegrees = 180.0 / math.Pi
)

var rotationTable = newTable(
	[]unitDef[Rotation]{
		{Gradian, "grad", 0.9},
		{Degree, "deg", 1.0},
		{Radian, "rad", 57.29578},
		{Turn, "tr", 360.0},
	},
	[]alias[Rotation]{
		{"grad", Gradian},
		{"gradians", Gradian},
		{"°", Degree},
		{"d", Degree},
		{"deg", Degree},
		{"degree", Degree},
		{"degrees", Degree},
		{"rad", Radian},
		{"radians", Radian},
		{"turns", Turn},
		{"turn", Turn},
		{"cycle", Turn},
		{"pla", Turn},
		{"rev", Turn},
		{"tr", Turn},
	},
)

// GuessRotation looks up an angle unit by symbol.
func GuessRotation(symbol string) (Rotation, bool) { return rotationTable.guess(symbol) }

// ConvertRotation converts v from one angle unit to another.
func ConvertRotation(v float64, from, to Rotation) float64 {
	return rotationTable.convert(v, from, to)
}

// RotationUnits lists every angle unit.
func RotationUnits() []Rotation { return rotationTable.units() }

// Symbol returns the canonical symbol of the unit.
func (u Rotation) Symbol() string { return rotationTable.symbol(u) }

func (u Rotation) String() string { return u.Symbol() }
