package units

// Pressure is a unit of pressure. Factors are relative to standard
// atmospheres.
type Pressure uint8

// Pressure units.
const (
	DyneSquareCentimetre Pressure = iota
	MilliTorr
	Pascal
	MillimetreWater
	PoundSquareFoot
	Hectopascal
	CentimetreWater
	MillimetreMercury
	InchWater
	OunceSquareInch
	Decibel
	Kilopascal
	CentimetreMercury
	FeetWater
	InchMercury
	PoundSquareInch
	MetreWater
	TonneSquareFootShort
	TechnicalAtmosphere
	KilogramSquareCentimetre
	Bar
	Atmosphere
	Megapascal
	TonneSquareInchShort
	TonneSquareInchLong
)

// Factors from https://www.sensorsone.com/atm-standard-atmosphere-pressure-unit/
var pressureTable = newTable(
	[]unitDef[Pressure]{
		{DyneSquareCentimetre, "dyn/cm2", 0.000000987},
		{MilliTorr, "mTorr", 0.000001316},
		{Pascal, "Pa", 0.000009869},
		{MillimetreWater, "mmH2O", 0.000096784},
		{PoundSquareFoot, "psf", 0.000472541},
		{Hectopascal, "hPa", 0.000986923},
		{CentimetreWater, "cmH2O", 0.000967839},
		{MillimetreMercury, "mmHg", 0.001315789},
		{InchWater, "inH2O", 0.002458319},
		{OunceSquareInch, "oz/in2", 0.004252876},
		{Decibel, "dB", 0.005154639},
		{Kilopascal, "kPa", 0.009869233},
		{CentimetreMercury, "cmHg", 0.013157895},
		{FeetWater, "ftH2O", 0.02949983},
		{InchMercury, "inHg", 0.033421008},
		{PoundSquareInch, "psi", 0.06804619},
		{MetreWater, "mH2O", 0.096783872},
		{TonneSquareFootShort, "tsf_short", 0.945081324},
		{TechnicalAtmosphere, "at", 0.967838719},
		{KilogramSquareCentimetre, "kg/cm2", 0.967838719},
		{Bar, "bar", 0.986923267},
		{Atmosphere, "atm", 1.0},
		{Megapascal, "MPa", 9.869232667},
		{TonneSquareInchShort, "tsi_short", 136.092009086},
		{TonneSquareInchLong, "tsi_long", 152.422992094},
	},
	[]alias[Pressure]{
		{"dyn/cm²", DyneSquareCentimetre},
		{"dyn/cm^2", DyneSquareCentimetre},
		{"dyn/cm2", DyneSquareCentimetre},
		{"mTorr", MilliTorr},
		{"pascals", Pascal},
		{"pascal", Pascal},
		{"pa", Pascal},
		{"Pa", Pascal},
		{"N/m²", Pascal},
		{"N/m^2", Pascal},
		{"N/m2", Pascal},
		{"mmH2O", MillimetreWater},
		{"psf", PoundSquareFoot},
		{"millibars", Hectopascal},
		{"millibar", Hectopascal},
		{"mbar", Hectopascal},
		{"hPa", Hectopascal},
		{"hectopascals", Hectopascal},
		{"hectopascal", Hectopascal},
		{"cmH2O", CentimetreWater},
		{"mmHg", MillimetreMercury},
		{"inH20", InchWater},
		{"inH2O", InchWater},
		{"oz/in²", OunceSquareInch},
		{"oz/in^2", OunceSquareInch},
		{"oz/in2", OunceSquareInch},
		{"dB", Decibel},
		{"decibel", Decibel},
		{"decibels", Decibel},
		{"kpa", Kilopascal},
		{"kPa", Kilopascal},
		{"kilopascals", Kilopascal},
		{"kilopascal", Kilopascal},
		{"cmHg", CentimetreMercury},
		{"ftH2O", FeetWater},
		{"inHg", InchMercury},
		{"psi", PoundSquareInch},
		{"mH2O", MetreWater},
		{"tsf", TonneSquareFootShort},
		{"tsf_us", TonneSquareFootShort},
		{"tsf_short", TonneSquareFootShort},
		{"at", TechnicalAtmosphere},
		{"kg/cm²", KilogramSquareCentimetre},
		{"kg/cm^2", KilogramSquareCentimetre},
		{"kg/cm2", KilogramSquareCentimetre},
		{"bars", Bar},
		{"bar", Bar},
		{"atmospheres", Atmosphere},
		{"atmosphere", Atmosphere},
		{"atm", Atmosphere},
		{"MPa", Megapascal},
		{"megapascals", Megapascal},
		{"megapascal", Megapascal},
		{"tsi", TonneSquareInchShort},
		{"tsi_us", TonneSquareInchShort},
		{"tsi_short", TonneSquareInchShort},
		{"tsi_uk", TonneSquareInchLong},
		{"tsi_long", TonneSquareInchLong},
	},
)

// GuessPressure looks up a pressure unit by symbol.
func GuessPressure(symbol string) (Pressure, bool) { return pressureTable.guess(symbol) }

// ConvertPressure converts v from one pressure unit to another.
func ConvertPressure(v float64, from, to Pressure) float64 {
	return pressureTable.convert(v, from, to)
}

// PressureUnits lists every pressure unit.
func PressureUnits() []Pressure { return pressureTable.units() }

// Symbol returns the canonical symbol of the unit.
func (u Pressure) Symbol() string { return pressureTable.symbol(u) }

func (u Pressure) String() string { return u.Symbol() }
