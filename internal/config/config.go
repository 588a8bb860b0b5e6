// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/woozymasta/spatial/internal/elevation"
	"github.com/woozymasta/spatial/internal/geo"
)

// Defaults applied to sites that leave a field unset.
const (
	DefaultZoomLimit      = 12
	DefaultTileSize       = 256
	DefaultElevationScale = 1.0
)

var ErrInvalid = errors.New("invalid configuration")

// Config represents the root configuration file structure.
type Config struct {
	Attribution string             `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Sites       []Site             `yaml:"sites" json:"sites"`
	ZoomLimit   int                `yaml:"zoom,omitempty" json:"zoom,omitempty"`
	Provider    elevation.Provider `yaml:"provider,omitempty" json:"provider"`
}

// Site is an area of interest around a centre point.
type Site struct {
	Index *int `yaml:"index,omitempty" json:"index,omitempty"`

	Name           string              `yaml:"name" json:"name"`
	Aliases        []string            `yaml:"aliases,omitempty" json:"-"`
	Attribution    string              `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Center         geo.Coordinate      `yaml:"center" json:"center"`
	SizeKm         float64             `yaml:"size_km" json:"size_km"`
	Subdivisions   int                 `yaml:"subdivisions,omitempty" json:"subdivisions"`
	Provider       *elevation.Provider `yaml:"provider,omitempty" json:"provider,omitempty"`
	ElevationScale float64             `yaml:"elevation_scale,omitempty" json:"-"`
	Tiles          string              `yaml:"tiles,omitempty" json:"-"` // URL template with {z}/{x}/{y} or {tms_y}
	TileSize       int                 `yaml:"tile_size,omitempty" json:"-"`
	ZoomLimit      int                 `yaml:"zoom,omitempty" json:"zoom"`
	NoTiles        bool                `yaml:"-" json:"no_tiles,omitempty"`
	NoElevation    bool                `yaml:"-" json:"no_elevation,omitempty"`
}

// Bounds returns the square the site covers.
func (s *Site) Bounds() geo.BoundingBox {
	return geo.Bounds(s.Center, s.SizeKm)
}

// ElevationProvider returns the site's provider, falling back to def.
func (s *Site) ElevationProvider(def elevation.Provider) elevation.Provider {
	if s.Provider != nil {
		return *s.Provider
	}
	return def
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes and validates a YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports the first problem found in the configuration.
func (c *Config) Validate() error {
	seen := make(map[string]string, len(c.Sites))

	for i := range c.Sites {
		s := &c.Sites[i]
		if s.Name == "" {
			return fmt.Errorf("%w: site %d has no name", ErrInvalid, i)
		}

		for _, name := range append([]string{s.Name}, s.Aliases...) {
			if owner, ok := seen[name]; ok {
				return fmt.Errorf("%w: site %q: name %q already used by %q", ErrInvalid, s.Name, name, owner)
			}
			seen[name] = s.Name
		}

		switch {
		case s.SizeKm <= 0:
			return fmt.Errorf("%w: site %q: size_km must be positive", ErrInvalid, s.Name)
		case s.Center.Lat < -90 || s.Center.Lat > 90:
			return fmt.Errorf("%w: site %q: latitude %v out of range", ErrInvalid, s.Name, s.Center.Lat)
		case s.Center.Lon < -180 || s.Center.Lon > 180:
			return fmt.Errorf("%w: site %q: longitude %v out of range", ErrInvalid, s.Name, s.Center.Lon)
		case s.Subdivisions < 0 || s.TileSize < 0 || s.ZoomLimit < 0 || s.ElevationScale < 0:
			return fmt.Errorf("%w: site %q: negative setting", ErrInvalid, s.Name)
		}
	}

	return nil
}

// ApplyDefaults fills unset fields. zoomLimit is used when the file sets no
// zoom limit of its own; zero falls back to DefaultZoomLimit.
func (c *Config) ApplyDefaults(zoomLimit int) {
	if c.ZoomLimit <= 0 {
		c.ZoomLimit = zoomLimit
	}
	if c.ZoomLimit <= 0 {
		c.ZoomLimit = DefaultZoomLimit
	}

	for i := range c.Sites {
		s := &c.Sites[i]
		if s.Subdivisions == 0 {
			s.Subdivisions = 1
		}
		if s.TileSize == 0 {
			s.TileSize = DefaultTileSize
		}
		if s.ElevationScale == 0 {
			s.ElevationScale = DefaultElevationScale
		}
		if s.ZoomLimit == 0 {
			s.ZoomLimit = c.ZoomLimit
		}
		if s.Attribution == "" {
			s.Attribution = c.Attribution
		}
	}
}

// Find returns the site with the given name or alias.
func (c *Config) Find(name string) (*Site, bool) {
	for i := range c.Sites {
		s := &c.Sites[i]
		if s.Name == name {
			return s, true
		}
		for _, a := range s.Aliases {
			if a == name {
				return s, true
			}
		}
	}
	return nil, false
}
