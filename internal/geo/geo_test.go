package geo

import (
	"image"
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestLongitudeRoundTrip(t *testing.T) {
	for _, lon := range []float64{-180, -97.5, -0.001, 0, 12.25, 135, 180} {
		got := XToLongitude(LongitudeToX(lon))
		if !almostEqual(got, lon, 1e-12) {
			t.Errorf("XToLongitude(LongitudeToX(%v)) = %v", lon, got)
		}
	}
}

func TestLatitudeRoundTrip(t *testing.T) {
	for lat := -89.5; lat <= 89.5; lat += 0.5 {
		got := YToLatitude(LatitudeToY(lat))
		if !almostEqual(got, lat, 1e-4) {
			t.Errorf("YToLatitude(LatitudeToY(%v)) = %v", lat, got)
		}
	}
}

func TestLatitudeToY_Clamp(t *testing.T) {
	if LatitudeToY(90) != LatitudeToY(89.5) {
		t.Errorf("LatitudeToY(90) = %v, want clamp to %v", LatitudeToY(90), LatitudeToY(89.5))
	}
	if LatitudeToY(-120) != LatitudeToY(-89.5) {
		t.Errorf("LatitudeToY(-120) = %v, want clamp to %v", LatitudeToY(-120), LatitudeToY(-89.5))
	}
	if LatitudeToY(0) != 0 {
		t.Errorf("LatitudeToY(0) = %v, want 0", LatitudeToY(0))
	}
}

func TestLatitudeToY_Monotonic(t *testing.T) {
	prev := LatitudeToY(-89.5)
	for lat := -89.0; lat <= 89.5; lat += 0.5 {
		y := LatitudeToY(lat)
		if y <= prev {
			t.Fatalf("LatitudeToY(%v) = %v, not greater than previous %v", lat, y, prev)
		}
		prev = y
	}
}

func TestEarthRadius(t *testing.T) {
	tests := []struct {
		lat  float64
		want float64
	}{
		{0, RMajor},
		{90, RMinor},
		{-90, RMinor},
	}
	for _, tt := range tests {
		if got := EarthRadius(tt.lat); !almostEqual(got, tt.want, 1e-6) {
			t.Errorf("EarthRadius(%v) = %v, want %v", tt.lat, got, tt.want)
		}
	}

	if a, b := EarthRadius(45), EarthRadius(-45); !almostEqual(a, b, 1e-9) {
		t.Errorf("EarthRadius not symmetric: %v vs %v", a, b)
	}
	if r := EarthRadius(45); r <= RMinor || r >= RMajor {
		t.Errorf("EarthRadius(45) = %v, want between axes", r)
	}
}

func TestAltitudeCompensation(t *testing.T) {
	if got := AltitudeCompensation(0); got != 0 {
		t.Errorf("AltitudeCompensation(0) = %v, want 0", got)
	}
	if got := AltitudeCompensation(90); !almostEqual(got, RMajor-RMinor, 1e-6) {
		t.Errorf("AltitudeCompensation(90) = %v, want %v", got, RMajor-RMinor)
	}
}

func TestEquatorialStretchFactor(t *testing.T) {
	if got := EquatorialStretchFactor(0); got != 1 {
		t.Errorf("EquatorialStretchFactor(0) = %v, want 1", got)
	}
	if EquatorialStretchFactor(60) <= EquatorialStretchFactor(30) {
		t.Error("EquatorialStretchFactor should grow towards the pole")
	}
}

func TestBounds(t *testing.T) {
	center := Coordinate{Lat: 51.5, Lon: -0.12}

	b := Bounds(center, 10)
	if b.South >= b.North || b.West >= b.East {
		t.Fatalf("Bounds(%v, 10) = %+v, want south<north and west<east", center, b)
	}

	c := b.Center()
	if !almostEqual(c.Lat, center.Lat, 1e-9) || !almostEqual(c.Lon, center.Lon, 1e-9) {
		t.Errorf("Center() = %+v, want %+v", c, center)
	}

	heightM := b.Height() * math.Pi / 180 * EarthRadius(center.Lat)
	if !almostEqual(heightM, 10000, 1e-3) {
		t.Errorf("box height = %v m, want 10000", heightM)
	}

	if !b.Contains(center) {
		t.Error("box does not contain its centre")
	}
	if b.Contains(Coordinate{Lat: 52.5, Lon: -0.12}) {
		t.Error("box contains a point 1 degree north")
	}
}

func TestBounds_ZeroSize(t *testing.T) {
	center := Coordinate{Lat: 10, Lon: 20}
	b := Bounds(center, 0)
	want := BoundingBox{South: 10, West: 20, North: 10, East: 20}
	if b != want {
		t.Errorf("Bounds(%v, 0) = %+v, want %+v", center, b, want)
	}
}

func TestBoundingBox_OrbRoundTrip(t *testing.T) {
	b := BoundingBox{South: -1, West: 2, North: 3, East: 4}
	if got := BoundingBoxFromBound(b.Bound()); got != b {
		t.Errorf("BoundingBoxFromBound(Bound()) = %+v, want %+v", got, b)
	}
}

func TestCartesianRoundTrip(t *testing.T) {
	for _, c := range []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 45, Lon: 90, Alt: 1200},
		{Lat: -33.9, Lon: 151.2, Alt: 50},
		{Lat: 64.1, Lon: -21.9, Alt: -20},
	} {
		v := ToCartesian(c, DefaultReferenceLatitude)
		got := FromCartesian(v, DefaultReferenceLatitude)
		if !almostEqual(got.Lat, c.Lat, 1e-9) || !almostEqual(got.Lon, c.Lon, 1e-9) || !almostEqual(got.Alt, c.Alt, 1e-6) {
			t.Errorf("FromCartesian(ToCartesian(%+v)) = %+v", c, got)
		}
	}
}

func TestSphereToCartesian_Axes(t *testing.T) {
	v := SphereToCartesian(0, 0, 10)
	if !almostEqual(v.X, 10, 1e-12) || !almostEqual(v.Y, 0, 1e-12) || !almostEqual(v.Z, 0, 1e-12) {
		t.Errorf("SphereToCartesian(0, 0, 10) = %v, want (10, 0, 0)", v)
	}

	v = SphereToCartesian(math.Pi/2, 0, 10)
	if !almostEqual(v.Z, 10, 1e-12) {
		t.Errorf("SphereToCartesian(pi/2, 0, 10) = %v, want Z up", v)
	}
}

func TestToSphere(t *testing.T) {
	pole := ToSphere(Coordinate{Lat: 90, Lon: 0, Alt: 5})
	if !almostEqual(pole.Y, 5, 1e-12) || !almostEqual(pole.X, 0, 1e-12) || !almostEqual(pole.Z, 0, 1e-12) {
		t.Errorf("ToSphere(north pole) = %v, want (0, 5, 0)", pole)
	}

	c := Coordinate{Lat: 12.5, Lon: -75, Alt: 3}
	got := FromSphere(ToSphere(c))
	if !almostEqual(got.Lat, c.Lat, 1e-9) || !almostEqual(got.Lon, c.Lon, 1e-9) || !almostEqual(got.Alt, c.Alt, 1e-12) {
		t.Errorf("FromSphere(ToSphere(%+v)) = %+v", c, got)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	c := Coordinate{Lat: 48.85, Lon: 2.35}
	got := Unproject(Project(c))
	if !almostEqual(got.Lat, c.Lat, 1e-4) || !almostEqual(got.Lon, c.Lon, 1e-9) {
		t.Errorf("Unproject(Project(%+v)) = %+v", c, got)
	}
}

func TestPixelMapping(t *testing.T) {
	b := BoundingBox{South: 40, West: 10, North: 41, East: 11}
	dims := image.Point{X: 512, Y: 512}

	nw := PixelToGPS(image.Point{}, dims, b)
	if nw.Lat != b.North || nw.Lon != b.West {
		t.Errorf("PixelToGPS(0,0) = %+v, want north-west corner", nw)
	}
	se := PixelToGPS(image.Point{X: 511, Y: 511}, dims, b)
	if se.Lat != b.South || se.Lon != b.East {
		t.Errorf("PixelToGPS(511,511) = %+v, want south-east corner", se)
	}

	for _, p := range []image.Point{{0, 0}, {1, 0}, {255, 17}, {300, 511}, {511, 1}} {
		if got := ToPixel(PixelToGPS(p, dims, b), dims, b); got != p {
			t.Errorf("ToPixel(PixelToGPS(%v)) = %v", p, got)
		}
	}

	halfLat := b.Height() / float64(dims.Y-1) / 2
	halfLon := b.Width() / float64(dims.X-1) / 2
	for _, c := range []Coordinate{{Lat: 40.123, Lon: 10.987}, {Lat: 40.5, Lon: 10.5}, {Lat: 40.9999, Lon: 10.0001}} {
		got := PixelToGPS(ToPixel(c, dims, b), dims, b)
		if math.Abs(got.Lat-c.Lat) > halfLat || math.Abs(got.Lon-c.Lon) > halfLon {
			t.Errorf("PixelToGPS(ToPixel(%+v)) = %+v, off by more than half a pixel", c, got)
		}
	}
}

func TestPixelToGPS_SinglePixel(t *testing.T) {
	b := BoundingBox{South: 0, West: 0, North: 2, East: 4}
	got := PixelToGPS(image.Point{}, image.Point{X: 1, Y: 1}, b)
	if got != b.Center() {
		t.Errorf("PixelToGPS on 1x1 = %+v, want centre %+v", got, b.Center())
	}
}

func TestUV(t *testing.T) {
	b := BoundingBox{South: -10, West: -20, North: 10, East: 20}

	uv := ToUV(Coordinate{Lat: 10, Lon: -20}, b)
	if uv != (r2.Point{X: 0, Y: 0}) {
		t.Errorf("ToUV(north-west) = %v, want (0, 0)", uv)
	}
	uv = ToUV(Coordinate{Lat: -10, Lon: 20}, b)
	if uv != (r2.Point{X: 1, Y: 1}) {
		t.Errorf("ToUV(south-east) = %v, want (1, 1)", uv)
	}

	c := Coordinate{Lat: 3.25, Lon: -7.5}
	got := UVToGPS(ToUV(c, b), b)
	if !almostEqual(got.Lat, c.Lat, 1e-12) || !almostEqual(got.Lon, c.Lon, 1e-12) {
		t.Errorf("UVToGPS(ToUV(%+v)) = %+v", c, got)
	}

	degenerate := Bounds(Coordinate{Lat: 1, Lon: 1}, 0)
	if uv := ToUV(Coordinate{Lat: 1, Lon: 1}, degenerate); uv != (r2.Point{X: 0.5, Y: 0.5}) {
		t.Errorf("ToUV on degenerate box = %v, want (0.5, 0.5)", uv)
	}
}

func TestSampleGrid(t *testing.T) {
	b := BoundingBox{South: 0, West: 0, North: 1, East: 2}
	samples := SampleGrid(b, image.Point{X: 3, Y: 2})
	if len(samples) != 6 {
		t.Fatalf("len(SampleGrid) = %d, want 6", len(samples))
	}
	if samples[0] != (Coordinate{Lat: 1, Lon: 0}) {
		t.Errorf("first sample = %+v, want north-west corner", samples[0])
	}
	if samples[1] != (Coordinate{Lat: 1, Lon: 1}) {
		t.Errorf("second sample = %+v, want (1, 1)", samples[1])
	}
	if samples[5] != (Coordinate{Lat: 0, Lon: 2}) {
		t.Errorf("last sample = %+v, want south-east corner", samples[5])
	}

	if got := SampleGrid(b, image.Point{}); got != nil {
		t.Errorf("SampleGrid with empty dims = %v, want nil", got)
	}
}

func TestSubdivide(t *testing.T) {
	b := BoundingBox{South: 0, West: 0, North: 2, East: 2}
	cells := b.Subdivide(2)
	if len(cells) != 4 {
		t.Fatalf("len(Subdivide(2)) = %d, want 4", len(cells))
	}
	if want := (BoundingBox{South: 1, West: 0, North: 2, East: 1}); cells[0] != want {
		t.Errorf("cells[0] = %+v, want %+v", cells[0], want)
	}
	if want := (BoundingBox{South: 0, West: 1, North: 1, East: 2}); cells[3] != want {
		t.Errorf("cells[3] = %+v, want %+v", cells[3], want)
	}

	if cells := b.Subdivide(0); len(cells) != 1 || cells[0] != b {
		t.Errorf("Subdivide(0) = %+v, want the box itself", cells)
	}
}

func TestElevationResolution(t *testing.T) {
	tests := []struct {
		name        string
		sizeKm      float64
		arcSec      float64
		lat         float64
		scale       float64
		want        int
		wantClamped bool
	}{
		{"one km at three arc-seconds", 1, 3, 0, 1, 11, false},
		{"half scale", 1, 3, 0, 0.5, 6, false},
		{"capped", 100, 1, 0, 1, MaxGridResolution, true},
		{"tiny", 0.001, 3, 0, 1, 1, false},
		{"zero size", 0, 3, 0, 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := ElevationResolution(tt.sizeKm, tt.arcSec, tt.lat, tt.scale)
			if got != tt.want || clamped != tt.wantClamped {
				t.Errorf("ElevationResolution = (%d, %v), want (%d, %v)", got, clamped, tt.want, tt.wantClamped)
			}
		})
	}
}

func TestTiles(t *testing.T) {
	if got := TileAt(0, 0, 1); got != (Tile{Z: 1, X: 1, Y: 1}) {
		t.Errorf("TileAt(0, 0, 1) = %+v, want {1 1 1}", got)
	}
	if got := TileAt(89, -180, 3); got != (Tile{Z: 3, X: 0, Y: 0}) {
		t.Errorf("TileAt(89, -180, 3) = %+v, want {3 0 0}", got)
	}
	if got := TileAt(-89, 180, 3); got != (Tile{Z: 3, X: 7, Y: 7}) {
		t.Errorf("TileAt(-89, 180, 3) = %+v, want {3 7 7}", got)
	}

	c := Coordinate{Lat: 55.75, Lon: 37.62}
	tile := TileAt(c.Lat, c.Lon, 12)
	if !tile.Bounds().Contains(c) {
		t.Errorf("tile %+v bounds %+v do not contain %+v", tile, tile.Bounds(), c)
	}

	b := Bounds(c, 5)
	tiles := TilesCovering(b, 12)
	if len(tiles) == 0 {
		t.Fatal("TilesCovering returned no tiles")
	}
	if tiles[0] != TileAt(b.North, b.West, 12) {
		t.Errorf("first covering tile = %+v, want the north-west tile", tiles[0])
	}
}

func TestFeatureCollection(t *testing.T) {
	fc := FeatureCollection(
		PointFeature(Coordinate{Lat: 1, Lon: 2}, map[string]any{"elevation": 10.0}),
		PointFeature(Coordinate{Lat: -3, Lon: 4, Alt: 7}, nil),
	)
	if len(fc.Features) != 2 {
		t.Fatalf("len(Features) = %d, want 2", len(fc.Features))
	}
	if fc.Features[0].Properties["elevation"] != 10.0 {
		t.Errorf("elevation property = %v, want 10", fc.Features[0].Properties["elevation"])
	}
	if fc.Features[1].Properties["altitude"] != 7.0 {
		t.Errorf("altitude property = %v, want 7", fc.Features[1].Properties["altitude"])
	}

	want := []float64{2, -3, 4, 1}
	if len(fc.BBox) != 4 {
		t.Fatalf("BBox = %v, want %v", fc.BBox, want)
	}
	for i := range want {
		if fc.BBox[i] != want[i] {
			t.Errorf("BBox = %v, want %v", fc.BBox, want)
			break
		}
	}
}
