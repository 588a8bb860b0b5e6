package units

import "math"

// Distance is a unit of lateral distance. Factors are relative to metres.
type Distance uint8

// Distance units.
const (
	Millimetre Distance = iota
	Centimetre
	Inch
	Foot
	Yard
	Metre
	Kilometre
	Mile
	NauticalMile
	AstronomicalUnit
	Lightyear
	Parsec
)

// metresPerArcSecond is the length of one arc-second of a great circle,
// derived from the nautical mile (one arc-minute).
const metresPerArcSecond = 1852.0 / 60.0

var distanceTable = newTable(
	[]unitDef[Distance]{
		{Millimetre, "mm", 0.001},
		{Centimetre, "cm", 0.01},
		{Inch, "in", 0.0254},
		{Foot, "ft", 0.30479999},
		{Yard, "yd", 0.9144},
		{Metre, "m", 1.0},
		{Kilometre, "km", 1000.0},
		{Mile, "mi", 1609.344},
		{NauticalMile, "nmi", 1852.0},
		{AstronomicalUnit, "au", 149597870700.0},
		{Lightyear, "ly", 9460730472580800.0},
		{Parsec, "pc", 30856775810000000.0},
	},
	[]alias[Distance]{
		{"mm", Millimetre},
		{"cm", Centimetre},
		{`"`, Inch},
		{"in", Inch},
		{"f", Foot},
		{"'", Foot},
		{"ft", Foot},
		{"yards", Yard},
		{"yard", Yard},
		{"yd", Yard},
		{"m", Metre},
		{"km", Kilometre},
		{"mi", Mile},
		{"nmi", NauticalMile},
		{"au", AstronomicalUnit},
		{"ly", Lightyear},
		{"lightyear", Lightyear},
		{"lightyears", Lightyear},
		{"pc", Parsec},
		{"parsec", Parsec},
		{"parsecs", Parsec},
	},
)

// GuessDistance looks up a distance unit by symbol.
func GuessDistance(symbol string) (Distance, bool) { return distanceTable.guess(symbol) }

// ConvertDistance converts v from one distance unit to another.
func ConvertDistance(v float64, from, to Distance) float64 {
	return distanceTable.convert(v, from, to)
}

// DistanceUnits lists every distance unit.
func DistanceUnits() []Distance { return distanceTable.units() }

// Symbol returns the canonical symbol of the unit.
func (u Distance) Symbol() string { return distanceTable.symbol(u) }

func (u Distance) String() string { return u.Symbol() }

// ArcSecondsToMetres converts arc-seconds of longitude to metres at the given
// latitude in degrees.
func ArcSecondsToMetres(arcSeconds, lat float64) float64 {
	return arcSeconds * math.Abs(math.Cos(DegreesToRadians*lat)*metresPerArcSecond)
}

// MetresToArcSeconds converts metres to arc-seconds of longitude at the given
// latitude in degrees.
//
// The cosine multiplies here as it does in ArcSecondsToMetres, so the pair is
// only mutually inverse at the equator.
func MetresToArcSeconds(metres, lat float64) float64 {
	return metres * math.Abs(math.Cos(DegreesToRadians*lat)/metresPerArcSecond)
}
