package geo

import (
	"image"
	"math"

	"github.com/woozymasta/spatial/internal/units"
)

// MaxGridResolution caps the number of elevation samples per grid side.
const MaxGridResolution = 128

// SampleGrid returns one coordinate per pixel of an image of the given
// dimensions covering the box, row-major from the north-west corner.
func SampleGrid(b BoundingBox, dims image.Point) []Coordinate {
	if dims.X <= 0 || dims.Y <= 0 {
		return nil
	}

	samples := make([]Coordinate, 0, dims.X*dims.Y)
	for y := 0; y < dims.Y; y++ {
		for x := 0; x < dims.X; x++ {
			samples = append(samples, PixelToGPS(image.Point{X: x, Y: y}, dims, b))
		}
	}

	return samples
}

// Subdivide splits the box into n×n equal cells, row-major from the
// north-west corner. n below 1 is treated as 1.
func (b BoundingBox) Subdivide(n int) []BoundingBox {
	n = max(n, 1)

	dLat := b.Height() / float64(n)
	dLon := b.Width() / float64(n)

	cells := make([]BoundingBox, 0, n*n)
	for row := 0; row < n; row++ {
		north := b.North - float64(row)*dLat
		for col := 0; col < n; col++ {
			west := b.West + float64(col)*dLon
			cells = append(cells, BoundingBox{
				South: north - dLat,
				West:  west,
				North: north,
				East:  west + dLon,
			})
		}
	}

	return cells
}

// ElevationResolution returns the number of sample intervals per side needed
// to cover a sizeKm square at a provider's native resolution in arc-seconds,
// multiplied by scale. The grid has resolution+1 samples per side. The result
// is at least 1 and at most MaxGridResolution; clamped reports whether the
// cap was applied.
func ElevationResolution(sizeKm, providerArcSec, lat, scale float64) (resolution int, clamped bool) {
	step := units.ArcSecondsToMetres(providerArcSec, lat)
	if step <= 0 {
		return MaxGridResolution, true
	}

	r := math.Ceil(sizeKm * 1000.0 / step * scale)
	switch {
	case math.IsNaN(r) || r > MaxGridResolution:
		return MaxGridResolution, true
	case r < 1:
		return 1, false
	}

	return int(r), false
}
