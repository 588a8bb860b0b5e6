package units

// Area is a unit of area. Factors are relative to square metres.
type Area uint8

// Area units.
const (
	SquareMillimetre Area = iota
	SquareCentimetre
	SquareInch
	SquareMetre
	SquareFoot
	Acre
	Hectare
	SquareYard
)

var areaTable = newTable(
	[]unitDef[Area]{
		{SquareMillimetre, "mm2", 0.000001},
		{SquareCentimetre, "cm2", 0.0001},
		{SquareInch, "in2", 0.00064516},
		{SquareMetre, "m2", 1.0},
		{SquareFoot, "ft2", 0.09290304},
		{Acre, "ac", 4046.8564224},
		{Hectare, "ha", 10000.0},
		{SquareYard, "yd2", 0.83612736},
	},
	[]alias[Area]{
		{"mm2", SquareMillimetre},
		{"mm^2", SquareMillimetre},
		{"mm²", SquareMillimetre},
		{"cm2", SquareCentimetre},
		{"cm^2", SquareCentimetre},
		{"cm²", SquareCentimetre},
		{`"²`, SquareInch},
		{"in2", SquareInch},
		{"in^2", SquareInch},
		{"in²", SquareInch},
		{"'2", SquareFoot},
		{"ft2", SquareFoot},
		{"ft^2", SquareFoot},
		{"ft²", SquareFoot},
		{"yd2", SquareYard},
		{"yd^2", SquareYard},
		{"yd²", SquareYard},
		{"m2", SquareMetre},
		{"m^2", SquareMetre},
		{"m²", SquareMetre},
		{"ac", Acre},
		{"acre", Acre},
		{"ha", Hectare},
		{"hectare", Hectare},
	},
)

// GuessArea looks up an area unit by symbol.
func GuessArea(symbol string) (Area, bool) { return areaTable.guess(symbol) }

// ConvertArea converts v from one area unit to another.
func ConvertArea(v float64, from, to Area) float64 { return areaTable.convert(v, from, to) }

// AreaUnits lists every area unit.
func AreaUnits() []Area { return areaTable.units() }

// Symbol returns the canonical symbol of the unit.
func (u Area) Symbol() string { return areaTable.symbol(u) }

func (u Area) String() string { return u.Symbol() }
