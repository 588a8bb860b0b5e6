package elevation

import (
	"github.com/montanaflynn/stats"

	"github.com/woozymasta/spatial/internal/geo"
)

// Grid is a raster of elevation samples over a bounding box.
type Grid struct {
	Bounds  geo.BoundingBox `json:"bounds"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Samples []Result        `json:"samples"`
}

// At returns the sample at column x, row y. Row 0 is the northern edge.
func (g *Grid) At(x, y int) (Result, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return Result{}, false
	}
	return g.Samples[y*g.Width+x], true
}

// Summary describes a set of elevations in metres.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
}

// Summarize computes a summary over the samples that have data.
func Summarize(results []Result) (Summary, error) {
	data := make(stats.Float64Data, 0, len(results))
	for _, r := range results {
		if !r.Missing {
			data = append(data, r.Elevation)
		}
	}
	if len(data) == 0 {
		return Summary{}, ErrNoData
	}

	s := Summary{Count: len(data)}
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Mean, _ = stats.Mean(data)
	s.Median, _ = stats.Median(data)
	s.StdDev, _ = stats.StandardDeviation(data)

	return s, nil
}

// Summary summarises the grid.
func (g *Grid) Summary() (Summary, error) {
	return Summarize(g.Samples)
}

// MinMax returns the lowest and highest of the elevations.
func MinMax(elevations []float64) (lo, hi float64, err error) {
	if len(elevations) == 0 {
		return 0, 0, ErrNoData
	}
	lo, _ = stats.Min(elevations)
	hi, _ = stats.Max(elevations)
	return lo, hi, nil
}
