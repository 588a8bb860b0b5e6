// Package units converts physical quantities between units and guesses units
// from free-text symbols.
//
// Every quantity has its own closed unit enumeration and an immutable table
// built once at package initialisation. Tables are only read afterwards, so
// all functions are safe for concurrent use.
package units

import "fmt"

// unitDef declares a unit with its canonical symbol and its scale factor
// relative to the base unit of the quantity.
type unitDef[U comparable] struct {
	Unit   U
	Symbol string
	Factor float64
}

// alias maps a free-text symbol to a unit.
type alias[U comparable] struct {
	Symbol string
	Unit   U
}

// table holds the three lookup maps of a quantity.
type table[U comparable] struct {
	lookup  map[string]U
	symbols map[U]string
	factors map[U]float64
	order   []U
}

// newTable builds a table from static data. Aliases are inserted in order and
// the first occurrence of a symbol wins.
func newTable[U comparable](defs []unitDef[U], aliases []alias[U]) *table[U] {
	t := &table[U]{
		lookup:  make(map[string]U, len(aliases)+len(defs)),
		symbols: make(map[U]string, len(defs)),
		factors: make(map[U]float64, len(defs)),
	}

	for _, d := range defs {
		if _, dup := t.symbols[d.Unit]; dup {
			panic(fmt.Sprintf("units: duplicate unit definition %#v", d.Unit))
		}
		if d.Factor <= 0 {
			panic(fmt.Sprintf("units: non-positive factor for %#v", d.Unit))
		}
		t.symbols[d.Unit] = d.Symbol
		t.factors[d.Unit] = d.Factor
		t.order = append(t.order, d.Unit)
	}

	for _, a := range aliases {
		if _, taken := t.lookup[a.Symbol]; taken {
			continue
		}
		t.lookup[a.Symbol] = a.Unit
	}

	return t
}

func (t *table[U]) guess(symbol string) (U, bool) {
	u, ok := t.lookup[symbol]
	return u, ok
}

func (t *table[U]) convert(v float64, from, to U) float64 {
	if from == to {
		return v
	}
	return v * (t.factors[from] / t.factors[to])
}

func (t *table[U]) symbol(u U) string {
	return t.symbols[u]
}

func (t *table[U]) factor(u U) float64 {
	return t.factors[u]
}

func (t *table[U]) units() []U {
	out := make([]U, len(t.order))
	copy(out, t.order)
	return out
}
