package ephemeris

import (
	"sync"
	"time"
)

// Planetarium keeps two snapshots bracketing the current time and places
// bodies by interpolating between them. It is safe for concurrent use.
type Planetarium struct {
	src   Source
	frame Frame

	mu       sync.Mutex
	loaded   bool
	window   Window
	from, to Snapshot
}

// NewPlanetarium returns a planetarium fed by src. A zero interval uses
// DefaultUpdateInterval.
func NewPlanetarium(src Source, frame Frame, interval time.Duration) *Planetarium {
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	return &Planetarium{
		src:    src,
		frame:  frame,
		window: NewWindow(interval),
	}
}

// At returns every body's placement at the instant now, refreshing the
// snapshots when now leaves the current window.
func (p *Planetarium) At(now time.Time) ([]Placement, error) {
	return p.AtEphemeris(EphemerisTimeAt(now))
}

// AtEphemeris is At for an ephemeris time.
func (p *Planetarium) AtEphemeris(et float64) ([]Placement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	w := p.window
	moved := true
	if p.loaded {
		moved = w.Advance(et)
	} else {
		w.Start(et)
	}

	if moved {
		from, err := TakeSnapshot(p.src, w.From)
		if err != nil {
			return nil, err
		}
		to, err := TakeSnapshot(p.src, w.To)
		if err != nil {
			return nil, err
		}
		p.window, p.from, p.to = w, from, to
		p.loaded = true
	}

	return p.frame.Place(p.from, p.to, p.window.Fraction(et)), nil
}

// Window returns the current interpolation window.
func (p *Planetarium) Window() Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window
}
