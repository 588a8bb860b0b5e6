package units

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by the package.
var (
	ErrUnimplemented   = errors.New("unimplemented conversion")
	ErrUnknownQuantity = errors.New("unknown quantity")
	ErrUnknownUnit     = errors.New("unknown unit symbol")
	ErrMalformedLength = errors.New("malformed length")
)

// Quantity names a physical quantity for symbol-driven conversion.
type Quantity string

// Supported quantities.
const (
	QuantitySpeed       Quantity = "speed"
	QuantityDistance    Quantity = "distance"
	QuantityRotation    Quantity = "rotation"
	QuantityTime        Quantity = "time"
	QuantityTemperature Quantity = "temperature"
	QuantityPressure    Quantity = "pressure"
	QuantityMass        Quantity = "mass"
	QuantityArea        Quantity = "area"
	QuantityVolume      Quantity = "volume"
)

type converter interface {
	convert(v float64, from, to string) (float64, error)
	symbols() []string
}

type linear[U comparable] struct {
	t *table[U]
}

func (l linear[U]) convert(v float64, from, to string) (float64, error) {
	f, ok := l.t.guess(from)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	t, ok := l.t.guess(to)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	return l.t.convert(v, f, t), nil
}

func (l linear[U]) symbols() []string {
	out := make([]string, 0, len(l.t.order))
	for _, u := range l.t.order {
		out = append(out, l.t.symbol(u))
	}
	return out
}

type affine struct{}

func (affine) convert(v float64, from, to string) (float64, error) {
	f, ok := GuessTemperature(from)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	t, ok := GuessTemperature(to)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	return ConvertTemperature(v, f, t)
}

func (affine) symbols() []string {
	units := TemperatureUnits()
	out := make([]string, 0, len(units))
	for _, u := range units {
		out = append(out, u.Symbol())
	}
	return out
}

var converters = map[Quantity]converter{
	QuantitySpeed:       linear[Speed]{speedTable},
	QuantityDistance:    linear[Distance]{distanceTable},
	QuantityRotation:    linear[Rotation]{rotationTable},
	QuantityTime:        linear[Time]{timeTable},
	QuantityTemperature: affine{},
	QuantityPressure:    linear[Pressure]{pressureTable},
	QuantityMass:        linear[Mass]{massTable},
	QuantityArea:        linear[Area]{areaTable},
	QuantityVolume:      linear[Volume]{volumeTable},
}

// Quantities lists the supported quantities in name order.
func Quantities() []Quantity {
	out := make([]Quantity, 0, len(converters))
	for q := range converters {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Convert converts v of quantity q between two units given by symbol.
func Convert(q Quantity, v float64, from, to string) (float64, error) {
	c, ok := converters[q]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownQuantity, q)
	}
	return c.convert(v, from, to)
}

// Symbols lists the canonical unit symbols of quantity q.
func Symbols(q Quantity) ([]string, error) {
	c, ok := converters[q]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuantity, q)
	}
	return c.symbols(), nil
}
