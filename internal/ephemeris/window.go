package ephemeris

import "time"

// DefaultUpdateInterval is how far ahead positions are computed before the
// window has to move.
const DefaultUpdateInterval = 120 * time.Second

// Window is the pair of ephemeris times between which body transforms are
// interpolated.
type Window struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
	Span float64 `json:"span"`
}

// NewWindow returns an empty window that moves in steps of interval.
func NewWindow(interval time.Duration) Window {
	return Window{Span: SecondsToEphemeris(interval.Seconds())}
}

// Advance moves the window so that it contains t. Moving forward starts the
// window at t; moving backward ends it at t. It reports whether the window
// moved, in which case both ends need new snapshots.
func (w *Window) Advance(t float64) bool {
	switch {
	case t > w.To:
		w.Start(t)
	case t < w.From:
		w.From, w.To = t-w.Span, t
	default:
		return false
	}
	return true
}

// Start places the window so that it begins at t.
func (w *Window) Start(t float64) {
	w.From, w.To = t, t+w.Span
}

// Fraction returns the position of t inside the window, 0 at From and 1 at
// To. An empty window yields 0.
func (w Window) Fraction(t float64) float64 {
	if w.To == w.From {
		return 0
	}
	return (t - w.From) / (w.To - w.From)
}
