package units

// Speed is a unit of speed. Factors are relative to metres per second.
type Speed uint8

// Speed units.
const (
	KilometreHour Speed = iota
	FeetSecond
	MileHour
	Knot
	MetreSecond
	Mach
	Lightspeed
)

var speedTable = newTable(
	[]unitDef[Speed]{
		{KilometreHour, "km/h", 0.2777778},
		{FeetSecond, "f/s", 0.3048},
		{MileHour, "mph", 0.44704},
		{Knot, "kn", 0.514444},
		{MetreSecond, "m/s", 1.0},
		{Mach, "mach", 340.29},
		{Lightspeed, "c", 299792458.0},
	},
	[]alias[Speed]{
		{"k/h", KilometreHour},
		{"km/h", KilometreHour},
		{"kph", KilometreHour},
		{"f/s", FeetSecond},
		{"fps", FeetSecond},
		{"mi/h", MileHour},
		{"mph", MileHour},
		{"kn", Knot},
		{"kt", Knot},
		{"knot", Knot},
		{"knots", Knot},
		{"nmi/h", Knot},
		{"nmiph", Knot},
		{"m/s", MetreSecond},
		{"mps", MetreSecond},
		{"mach", Mach},
		{"c", Lightspeed},
	},
)

// GuessSpeed looks up a speed unit by symbol.
func GuessSpeed(symbol string) (Speed, bool) { return speedTable.guess(symbol) }

// ConvertSpeed converts v from one speed unit to another.
func ConvertSpeed(v float64, from, to Speed) float64 { return speedTable.convert(v, from, to) }

// SpeedUnits lists every speed unit.
func SpeedUnits() []Speed { return speedTable.units() }

// Symbol returns the canonical symbol of the unit.
func (u Speed) Symbol() string { return speedTable.symbol(u) }

func (u Speed) String() string { return u.Symbol() }
