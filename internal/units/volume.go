package units

// Volume is a unit of volume. Factors are relative to cubic metres.
type Volume uint8

// Volume units.
const (
	Millilitre Volume = iota
	Centilitre
	CubicInch
	FluidOunce
	Cup
	Pint
	Quart
	Litre
	Gallon
	CubicFoot
	Barrel
	CubicYard
	CubicMetre
)

var volumeTable = newTable(
	[]unitDef[Volume]{
		{Millilitre, "ml", 0.000001},
		{Centilitre, "cl", 0.00001},
		{CubicInch, "in3", 0.000016387064},
		{FluidOunce, "fl. oz", 0.000029574},
		{Cup, "cup", 0.000237},
		{Pint, "pt", 0.000473176473},
		{Quart, "qt", 0.000946},
		{Litre, "l", 0.001},
		{Gallon, "gal", 0.003785411784},
		{CubicFoot, "ft3", 0.028316846592},
		{Barrel, "bbl", 0.158987294928},
		{CubicYard, "yd3", 0.764554858},
		{CubicMetre, "m3", 1.0},
	},
	// "in3" appears twice; the CubicInch entry comes first and wins.
	[]alias[Volume]{
		{"milliliter", Millilitre},
		{"millilitre", Millilitre},
		{"ml", Millilitre},
		{"centiliter", Centilitre},
		{"centilitre", Centilitre},
		{"cl", Centilitre},
		{`"3`, CubicInch},
		{`"^3`, CubicInch},
		{`"³`, CubicInch},
		{"cu in", CubicInch},
		{"cu. in", CubicInch},
		{"cu. in.", CubicInch},
		{"in. cu", CubicInch},
		{"in. cu.", CubicInch},
		{"in3", CubicInch},
		{"in^3", CubicInch},
		{"in³", CubicInch},
		{"fl oz", FluidOunce},
		{"fl ℥", FluidOunce},
		{"fl. oz", FluidOunce},
		{"fl/oz", FluidOunce},
		{"floz", FluidOunce},
		{"f℥", FluidOunce},
		{"oz. fl", FluidOunce},
		{"oz. fl.", FluidOunce},
		{"ƒ ℥", FluidOunce},
		{"℥", FluidOunce},
		{"cup", Cup},
		{"cups", Cup},
		{"p", Pint},
		{"pint", Pint},
		{"pt", Pint},
		{"qt", Quart},
		{"quart", Quart},
		{"l", Litre},
		{"liter", Litre},
		{"litre", Litre},
		{"gal", Gallon},
		{"gallon", Gallon},
		{"'3", CubicFoot},
		{"'^3", CubicFoot},
		{"'³", CubicFoot},
		{"cu f", CubicFoot},
		{"cu ft", CubicFoot},
		{"cu. f", CubicFoot},
		{"cu. f.", CubicFoot},
		{"cu. ft", CubicFoot},
		{"cu. ft.", CubicFoot},
		{"f. cu", CubicFoot},
		{"f. cu.", CubicFoot},
		{"f^3", CubicFoot},
		{"ft. cu", CubicFoot},
		{"ft. cu.", CubicFoot},
		{"ft3", CubicFoot},
		{"ft^3", CubicFoot},
		{"ft³", CubicFoot},
		{"f³", CubicFoot},
		{"in3", CubicFoot},
		{"barrel", Barrel},
		{"barrels", Barrel},
		{"bbl", Barrel},
		{"yd3", CubicYard},
		{"yd^3", CubicYard},
		{"yd³", CubicYard},
		{"m3", CubicMetre},
		{"m^3", CubicMetre},
		{"m³", CubicMetre},
	},
)

// GuessVolume looks up a volume unit by symbol.
func GuessVolume(symbol string) (Volume, bool) { return volumeTable.guess(symbol) }

// ConvertVolume converts v from one volume unit to another.
func ConvertVolume(v float64, from, to Volume) float64 {
	return volumeTable.convert(v, from, to)
}

// VolumeUnits lists every volume unit.
func VolumeUnits() []Volume { return volumeTable.units() }

// Symbol returns the canonical symbol of the unit.
func (u Volume) Symbol() string { return volumeTable.symbol(u) }

func (u Volume) String() string { return u.Symbol() }
