package units

// Time is a unit of duration. Factors are relative to seconds.
type Time uint8

// Time units.
const (
	Nanosecond Time = iota
	Microsecond
	Millisecond
	Second
	Minute
	Hour
	Day
)

var timeTable = newTable(
	[]unitDef[Time]{
		{Nanosecond, "ns", 0.000000001},
		{Microsecond, "µs", 0.000001},
		{Millisecond, "ms", 0.001},
		{Second, "s", 1.0},
		{Minute, "m", 60.0},
		{Hour, "h", 3600.0},
		{Day, "d", 86400.0},
	},
	[]alias[Time]{
		{"nanosecond", Nanosecond},
		{"nanoseconds", Nanosecond},
		{"ns", Nanosecond},
		{"microsecond", Microsecond},
		{"microseconds", Microsecond},
		{"µs", Microsecond},
		{"millisecond", Millisecond},
		{"milliseconds", Millisecond},
		{"ms", Millisecond},
		{"s", Second},
		{"sec", Second},
		{"seconds", Second},
		{"secs", Second},
		{"m", Minute},
		{"min", Minute},
		{"minute", Minute},
		{"minutes", Minute},
		{"h", Hour},
		{"hour", Hour},
		{"hours", Hour},
		{"hr", Hour},
		{"d", Day},
		{"day", Day},
		{"days", Day},
	},
)

// GuessTime looks up a duration unit by symbol.
func GuessTime(symbol string) (Time, bool) { return timeTable.guess(symbol) }

// ConvertTime converts v from one duration unit to another.
func ConvertTime(v float64, from, to Time) float64 { return timeTable.convert(v, from, to) }

// TimeUnits lists every duration unit.
func TimeUnits() []Time { return timeTable.units() }

// Symbol returns the canonical symbol of the unit.
func (u Time) Symbol() string { return timeTable.symbol(u) }

func (u Time) String() string { return u.Symbol() }
