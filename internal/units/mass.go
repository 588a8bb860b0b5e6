package units

// Mass is a unit of mass. Factors are relative to kilograms.
type Mass uint8

// Mass units.
const (
	Nanogram Mass = iota
	Microgram
	Milligram
	Gram
	Ounce
	Pound
	Kilogram
	Ton
	Kiloton
	Megaton
	Gigaton
)

var massTable = newTable(
	[]unitDef[Mass]{
		{Nanogram, "ng", 0.000000000001},
		{Microgram, "μg", 0.000000001},
		{Milligram, "mg", 0.000001},
		{Gram, "g", 0.001},
		{Ounce, "oz", 0.02834952},
		{Pound, "lb", 0.4535923},
		{Kilogram, "kg", 1.0},
		{Ton, "t", 1000.0},
		{Kiloton, "kt", 1000000.0},
		{Megaton, "Mt", 1000000000.0},
		{Gigaton, "Gt", 1000000000000.0},
	},
	[]alias[Mass]{
		{"nanogram", Nanogram},
		{"nanogramme", Nanogram},
		{"nanogrammes", Nanogram},
		{"nanograms", Nanogram},
		{"ng", Nanogram},
		{"microgram", Microgram},
		{"microgramme", Microgram},
		{"microgrammes", Microgram},
		{"micrograms", Microgram},
		{"μg", Microgram},
		{"mg", Milligram},
		{"milligram", Milligram},
		{"milligramme", Milligram},
		{"milligrammes", Milligram},
		{"milligrams", Milligram},
		{"g", Gram},
		{"gram", Gram},
		{"gramme", Gram},
		{"grammes", Gram},
		{"grams", Gram},
		{"ounce", Ounce},
		{"oz", Ounce},
		{"lb", Pound},
		{"pound", Pound},
		{"kg", Kilogram},
		{"kilogram", Kilogram},
		{"kilogramme", Kilogram},
		{"kilogrammes", Kilogram},
		{"kilograms", Kilogram},
		{"t", Ton},
		{"ton", Ton},
		{"tonne", Ton},
		{"tonnes", Ton},
		{"tons", Ton},
		{"kilotonne", Kiloton},
		{"kiloton", Kiloton},
		{"kilotonnes", Kiloton},
		{"kilotons", Kiloton},
		{"kt", Kiloton},
		{"megaton", Megaton},
		{"megatonne", Megaton},
		{"megatonnes", Megaton},
		{"megatons", Megaton},
		{"Mt", Megaton},
		{"gigaton", Gigaton},
		{"gigatonne", Gigaton},
		{"gigatonnes", Gigaton},
		{"gigatons", Gigaton},
		{"Gt", Gigaton},
	},
)

// GuessMass looks up a mass unit by symbol.
func GuessMass(symbol string) (Mass, bool) { return massTable.guess(symbol) }

// ConvertMass converts v from one mass unit to another.
func ConvertMass(v float64, from, to Mass) float64 { return massTable.convert(v, from, to) }

// MassUnits lists every mass unit.
func MassUnits() []Mass { return massTable.units() }

// Symbol returns the canonical symbol of the unit.
func (u Mass) Symbol() string { return massTable.symbol(u) }

func (u Mass) String() string { return u.Symbol() }
