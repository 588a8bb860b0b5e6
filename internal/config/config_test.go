package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/spatial/internal/elevation"
)

const sample = `
attribution: "© OpenStreetMap contributors"
provider: opentopodata
sites:
  - name: matterhorn
    aliases: [cervino]
    center: {lat: 45.9763, lon: 7.6586}
    size_km: 4
    subdivisions: 2
    tiles: "https://tile.example.org/{z}/{x}/{y}.png"
  - name: sahara
    center: {lat: 23.4, lon: 12.1}
    size_km: 50
    provider: open-elevation
    zoom: 8
    elevation_scale: 0.5
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	cfg.ApplyDefaults(0)

	if cfg.Provider != elevation.OpenTopoData {
		t.Errorf("Provider = %v, want opentopodata", cfg.Provider)
	}
	if cfg.ZoomLimit != DefaultZoomLimit {
		t.Errorf("ZoomLimit = %d, want %d", cfg.ZoomLimit, DefaultZoomLimit)
	}
	if len(cfg.Sites) != 2 {
		t.Fatalf("len(Sites) = %d, want 2", len(cfg.Sites))
	}

	m := cfg.Sites[0]
	if m.Center.Lat != 45.9763 || m.Center.Lon != 7.6586 {
		t.Errorf("matterhorn center = %+v", m.Center)
	}
	if m.Subdivisions != 2 || m.TileSize != DefaultTileSize || m.ElevationScale != DefaultElevationScale {
		t.Errorf("matterhorn defaults = %+v", m)
	}
	if m.Attribution != cfg.Attribution {
		t.Errorf("matterhorn attribution = %q, want inherited", m.Attribution)
	}
	if got := m.ElevationProvider(cfg.Provider); got != elevation.OpenTopoData {
		t.Errorf("matterhorn provider = %v, want opentopodata", got)
	}

	s := cfg.Sites[1]
	if s.Subdivisions != 1 || s.ZoomLimit != 8 || s.ElevationScale != 0.5 {
		t.Errorf("sahara settings = %+v", s)
	}
	if got := s.ElevationProvider(cfg.Provider); got != elevation.OpenElevation {
		t.Errorf("sahara provider = %v, want open-elevation", got)
	}

	b := m.Bounds()
	if !b.Contains(m.Center) || b.North <= b.South || b.East <= b.West {
		t.Errorf("matterhorn bounds = %+v", b)
	}
}

func TestApplyDefaults_ZoomFallback(t *testing.T) {
	cfg := &Config{Sites: []Site{{Name: "a", SizeKm: 1}}}
	cfg.ApplyDefaults(5)
	if cfg.ZoomLimit != 5 || cfg.Sites[0].ZoomLimit != 5 {
		t.Errorf("zoom = %d/%d, want 5/5", cfg.ZoomLimit, cfg.Sites[0].ZoomLimit)
	}

	cfg = &Config{ZoomLimit: 3}
	cfg.ApplyDefaults(5)
	if cfg.ZoomLimit != 3 {
		t.Errorf("zoom = %d, want file value 3", cfg.ZoomLimit)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no name", "sites: [{center: {lat: 1, lon: 1}, size_km: 1}]"},
		{"no size", "sites: [{name: a, center: {lat: 1, lon: 1}}]"},
		{"latitude", "sites: [{name: a, center: {lat: 91, lon: 1}, size_km: 1}]"},
		{"longitude", "sites: [{name: a, center: {lat: 1, lon: -181}, size_km: 1}]"},
		{"negative", "sites: [{name: a, center: {lat: 1, lon: 1}, size_km: 1, subdivisions: -1}]"},
		{"duplicate alias", "sites: [{name: a, size_km: 1}, {name: b, aliases: [a], size_km: 1}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse error = %v, want ErrInvalid", err)
			}
		})
	}

	if _, err := Parse([]byte("provider: google")); !errors.Is(err, elevation.ErrUnknownProvider) {
		t.Errorf("Parse(unknown provider) error = %v, want ErrUnknownProvider", err)
	}
}

func TestFind(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	for _, name := range []string{"matterhorn", "cervino"} {
		s, ok := cfg.Find(name)
		if !ok || s.Name != "matterhorn" {
			t.Errorf("Find(%q) = %v, %v", name, s, ok)
		}
	}
	if _, ok := cfg.Find("everest"); ok {
		t.Error("Find(everest) found a site")
	}
}
