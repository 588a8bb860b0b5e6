package processor

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/spatial/internal/config"
	"github.com/woozymasta/spatial/internal/elevation"
	"github.com/woozymasta/spatial/internal/geo"
)

// ElevationFile is the per-site elevation GeoJSON file name.
const ElevationFile = "elevation.geojson"

// ProcessElevation samples the terrain of a site, one grid per subdivision
// cell, and writes <root>/<site>/elevation.geojson. The collection holds a
// point per sample with an "elevation" property and a polygon per cell
// carrying the cell's summary. An existing file is left alone, with a nil
// summary, unless opts.Force is set.
func ProcessElevation(ctx context.Context, client *elevation.Client, s config.Site, def elevation.Provider, opts Options) (*elevation.Summary, error) {
	opts = opts.withDefaults()
	destDir := filepath.Join(opts.Root, s.Name)
	destFile := filepath.Join(destDir, ElevationFile)

	if _, err := os.Stat(destFile); err == nil && !opts.Force {
		log.Debug().Str("site", s.Name).Msg("Elevation file exists, skipping")
		return nil, nil
	}

	p := s.ElevationProvider(def)
	n := max(s.Subdivisions, 1)
	cellKm := s.SizeKm / float64(n)
	scale := s.ElevationScale
	if scale <= 0 {
		scale = config.DefaultElevationScale
	}

	log.Info().
		Str("site", s.Name).
		Str("provider", p.String()).
		Int("cells", n*n).
		Msg("Starting elevation sampling")

	var (
		features []*geojson.Feature
		all      []elevation.Result
	)

	for i, cell := range s.Bounds().Subdivide(n) {
		r, clamped := geo.ElevationResolution(cellKm, p.Resolution(), cell.Center().Lat, scale)
		if clamped {
			log.Warn().
				Str("site", s.Name).
				Int("cell", i).
				Int("resolution", r).
				Msg("Elevation resolution capped; raise subdivisions for more detail")
		}

		grid, err := client.Grid(ctx, p, cell, image.Point{X: r + 1, Y: r + 1})
		if err != nil {
			return nil, err
		}

		cellFeature := geo.BoundsFeature(cell)
		cellFeature.Properties["cell"] = i
		cellFeature.Properties["resolution"] = r
		if sum, err := grid.Summary(); err == nil {
			cellFeature.Properties["min"] = sum.Min
			cellFeature.Properties["max"] = sum.Max
			cellFeature.Properties["mean"] = sum.Mean
		}
		features = append(features, cellFeature)

		for _, sample := range grid.Samples {
			if sample.Missing {
				continue
			}
			pt := geo.Coordinate{Lat: sample.Lat, Lon: sample.Lon}
			features = append(features, geo.PointFeature(pt, map[string]any{"elevation": sample.Elevation}))
		}
		all = append(all, grid.Samples...)

		log.Debug().Str("site", s.Name).Int("cell", i).Int("samples", len(grid.Samples)).Msg("Cell sampled")
	}

	sum, err := elevation.Summarize(all)
	if err != nil {
		if errors.Is(err, elevation.ErrNoData) {
			log.Warn().Str("site", s.Name).Msg("Provider returned no elevation data")
		}
		return nil, err
	}

	data, err := geo.FeatureCollection(features...).MarshalJSON()
	if err != nil {
		return nil, err
	}
	if err := saveFile(destDir, destFile, data); err != nil {
		return nil, err
	}

	log.Info().
		Str("site", s.Name).
		Int("samples", sum.Count).
		Float64("min", sum.Min).
		Float64("max", sum.Max).
		Msg("Elevation saved")

	return &sum, nil
}

// saveFile writes data to path, creating dir first.
func saveFile(dir, path string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	_, err = f.Write(data)
	return err
}
