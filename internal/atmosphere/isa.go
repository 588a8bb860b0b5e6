// Package atmosphere implements the International Standard Atmosphere as a
// piecewise barometric model from ground level to 90 km.
package atmosphere

import (
	"errors"
	"fmt"
	"math"
)

// Model constants.
const (
	Gravity     = 9.80665 // m/s²
	GasConstant = 287.0   // J/(kg·K), specific gas constant for dry air

	// euler is the truncated value the model was calibrated with.
	euler = 2.71828

	// Ceiling is the highest altitude the model covers, in metres.
	Ceiling = 90000.0
)

var (
	ErrOutOfRange   = errors.New("altitude out of range")
	ErrInvalidState = errors.New("invalid atmospheric state")
)

// State is the atmosphere at one altitude.
type State struct {
	Pressure    float64 `json:"pressure" yaml:"pressure"`       // Pa
	Density     float64 `json:"density" yaml:"density"`         // kg/m³
	Temperature float64 `json:"temperature" yaml:"temperature"` // K
}

// SeaLevel is the standard state at zero altitude.
var SeaLevel = State{
	Pressure:    101325.0,
	Density:     1.225,
	Temperature: 288.15,
}

// Kind tells how temperature behaves inside a layer.
type Kind uint8

const (
	Gradient Kind = iota
	Isothermal
)

func (k Kind) String() string {
	switch k {
	case Gradient:
		return "gradient"
	case Isothermal:
		return "isothermal"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Layer is one band of the model.
type Layer struct {
	Base      float64 `json:"base"`       // m
	Top       float64 `json:"top"`        // m
	LapseRate float64 `json:"lapse_rate"` // K/m
	Kind      Kind    `json:"-"`
}

var layers = [...]Layer{
	{Base: 0, Top: 11000, LapseRate: -0.0065, Kind: Gradient},
	{Base: 11000, Top: 20000, LapseRate: 0, Kind: Isothermal},
	{Base: 20000, Top: 32000, LapseRate: 0.0010, Kind: Gradient},
	{Base: 32000, Top: 47000, LapseRate: 0.0028, Kind: Gradient},
	{Base: 47000, Top: 51000, LapseRate: 0, Kind: Isothermal},
	{Base: 51000, Top: 71000, LapseRate: -0.0028, Kind: Gradient},
	{Base: 71000, Top: 84000, LapseRate: -0.0020, Kind: Gradient},
	{Base: 84000, Top: Ceiling, LapseRate: 0, Kind: Isothermal},
}

// Layers returns a copy of the layer table, lowest first.
func Layers() []Layer {
	out := make([]Layer, len(layers))
	copy(out, layers[:])
	return out
}

// LayerAt returns the index and definition of the layer containing alt.
// Boundaries belong to the lower layer; altitudes below ground belong to the
// first layer.
func LayerAt(alt float64) (int, Layer, error) {
	if err := checkAltitude(alt); err != nil {
		return 0, Layer{}, err
	}

	for i, l := range layers {
		if alt <= l.Top {
			return i, l, nil
		}
	}

	// unreachable: checkAltitude bounds alt by the last Top
	last := len(layers) - 1
	return last, layers[last], nil
}

// Solve returns the standard atmosphere at alt metres above sea level.
func Solve(alt float64) (State, error) {
	return SolveFrom(SeaLevel, alt)
}

// SolveFrom integrates the model from the ground state s up to alt metres,
// crossing every layer boundary below it. The input is not modified.
// Altitudes below ground extrapolate the first layer.
func SolveFrom(s State, alt float64) (State, error) {
	if err := checkAltitude(alt); err != nil {
		return State{}, err
	}
	if !(s.Temperature > 0) || !(s.Pressure > 0) {
		return State{}, fmt.Errorf("%w: %+v", ErrInvalidState, s)
	}

	for i, l := range layers {
		if i > 0 && alt <= l.Base {
			break
		}
		s = l.step(s, math.Min(alt, l.Top))
	}

	return s, nil
}

// step advances s from the layer base to x. A zero-thickness step leaves the
// state untouched.
func (l Layer) step(s State, x float64) State {
	dh := x - l.Base
	if dh == 0 {
		return s
	}

	if l.Kind == Isothermal {
		s.Pressure *= math.Pow(euler, -(Gravity*dh)/(GasConstant*s.Temperature))
		s.Density = s.Pressure / (GasConstant * s.Temperature)
		return s
	}

	t := s.Temperature + l.LapseRate*dh

	s.Pressure *= math.Pow(t/s.Temperature, -Gravity/(GasConstant*l.LapseRate))
	s.Density = s.Pressure / (GasConstant * t)
	s.Temperature = t

	return s
}

func checkAltitude(alt float64) error {
	if math.IsNaN(alt) || alt > Ceiling {
		return fmt.Errorf("%w: %g m (max %g m)", ErrOutOfRange, alt, Ceiling)
	}
	return nil
}
