package elevation

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/woozymasta/spatial/internal/geo"
)

// openElevationServer answers lookups with elevation = 10 * latitude.
func openElevationServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)

		var sb strings.Builder
		sb.WriteString(`{"results":[`)
		gjson.GetBytes(body, "locations").ForEach(func(k, loc gjson.Result) bool {
			if k.Int() > 0 {
				sb.WriteByte(',')
			}
			lat, lon := loc.Get("latitude").Float(), loc.Get("longitude").Float()
			fmt.Fprintf(&sb, `{"latitude":%v,"longitude":%v,"elevation":%v}`, lat, lon, lat*10)
			return true
		})
		sb.WriteString(`]}`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sb.String())
	}))
}

// openTopoDataServer answers lookups with elevation = longitude, null for
// longitude 0.
func openTopoDataServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		body, _ := io.ReadAll(r.Body)
		if got := gjson.GetBytes(body, "interpolation").String(); got != "cubic" {
			t.Errorf("interpolation = %q, want cubic", got)
		}

		locs := strings.Split(gjson.GetBytes(body, "locations").String(), "|")
		if len(locs) > 100 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"Too many locations provided (101), the limit is 100.","status":"INVALID_REQUEST"}`)
			return
		}

		var sb strings.Builder
		sb.WriteString(`{"status":"OK","results":[`)
		for i, loc := range locs {
			if i > 0 {
				sb.WriteByte(',')
			}
			var lat, lon float64
			_, _ = fmt.Sscanf(loc, "%g,%g", &lat, &lon)
			elev := fmt.Sprint(lon)
			if lon == 0 {
				elev = "null"
			}
			fmt.Fprintf(&sb, `{"dataset":"mapzen","elevation":%s,"location":{"lat":%v,"lng":%v}}`, elev, lat, lon)
		}
		sb.WriteString(`]}`)
		_, _ = io.WriteString(w, sb.String())
	}))
}

func TestLookup_OpenElevation(t *testing.T) {
	var requests atomic.Int32
	srv := openElevationServer(t, &requests)
	defer srv.Close()

	c, err := NewClient(WithEndpoint(OpenElevation, srv.URL))
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	points := []geo.Coordinate{{Lat: 1, Lon: 2}, {Lat: 3.5, Lon: -4}, {Lat: -7, Lon: 8}}
	res, err := c.Lookup(context.Background(), OpenElevation, points)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(res) != len(points) {
		t.Fatalf("len(results) = %d, want %d", len(res), len(points))
	}
	for i, p := range points {
		if res[i].Lat != p.Lat || res[i].Lon != p.Lon || res[i].Elevation != p.Lat*10 {
			t.Errorf("result %d = %+v, want elevation %v at %+v", i, res[i], p.Lat*10, p)
		}
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}

	// a second lookup of the same points is served from the cache
	if _, err := c.Lookup(context.Background(), OpenElevation, points[:2]); err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("requests after cached lookup = %d, want 1", n)
	}
}

func TestLookup_OpenTopoDataBatches(t *testing.T) {
	var requests atomic.Int32
	srv := openTopoDataServer(t, &requests)
	defer srv.Close()

	c, err := NewClient(WithEndpoint(OpenTopoData, srv.URL))
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	points := make([]geo.Coordinate, 250)
	for i := range points {
		points[i] = geo.Coordinate{Lat: 45, Lon: float64(i)}
	}

	res, err := c.Lookup(context.Background(), OpenTopoData, points)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if n := requests.Load(); n != 3 {
		t.Errorf("requests = %d, want 3", n)
	}

	if !res[0].Missing {
		t.Errorf("result 0 = %+v, want missing", res[0])
	}
	if r := res[249]; r.Missing || r.Elevation != 249 || r.Dataset != "mapzen" {
		t.Errorf("result 249 = %+v", r)
	}
}

func TestLookup_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Invalid locations","status":"INVALID_REQUEST"}`)
	}))
	defer srv.Close()

	c, _ := NewClient(WithEndpoint(OpenTopoData, srv.URL))
	_, err := c.Lookup(context.Background(), OpenTopoData, []geo.Coordinate{{Lat: 1, Lon: 1}})
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("error = %v, want ErrBadResponse", err)
	}
	if !strings.Contains(err.Error(), "Invalid locations") {
		t.Errorf("error = %v, want provider message", err)
	}
}

func TestLookup_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"results":[{"latitude":1,"longitude":1,"elevation":5}]}`)
	}))
	defer srv.Close()

	c, _ := NewClient(WithEndpoint(OpenElevation, srv.URL))
	_, err := c.Lookup(context.Background(), OpenElevation, []geo.Coordinate{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}})
	if !errors.Is(err, ErrBadResponse) {
		t.Errorf("error = %v, want ErrBadResponse", err)
	}
}

func TestLookup_Cancelled(t *testing.T) {
	var requests atomic.Int32
	srv := openElevationServer(t, &requests)
	defer srv.Close()

	c, _ := NewClient(WithEndpoint(OpenElevation, srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Lookup(ctx, OpenElevation, []geo.Coordinate{{Lat: 1, Lon: 1}}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLookup_UnknownProvider(t *testing.T) {
	c, _ := NewClient()
	if _, err := c.Lookup(context.Background(), Provider(9), nil); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("error = %v, want ErrUnknownProvider", err)
	}
}

func TestDecodeResults(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		body     string
		want     []Result
		wantErr  bool
	}{
		{
			name:     "open-elevation",
			provider: OpenElevation,
			body:     `{"results":[{"latitude":41.161758,"longitude":-8.583933,"elevation":117}]}`,
			want:     []Result{{Lat: 41.161758, Lon: -8.583933, Elevation: 117}},
		},
		{
			name:     "opentopodata",
			provider: OpenTopoData,
			body:     `{"results":[{"dataset":"mapzen","elevation":815.0,"location":{"lat":56.35,"lng":123.9}}],"status":"OK"}`,
			want:     []Result{{Lat: 56.35, Lon: 123.9, Elevation: 815, Dataset: "mapzen"}},
		},
		{
			name:     "opentopodata null elevation",
			provider: OpenTopoData,
			body:     `{"results":[{"dataset":"mapzen","elevation":null,"location":{"lat":0,"lng":0}}]}`,
			want:     []Result{{Dataset: "mapzen", Missing: true}},
		},
		{name: "not json", provider: OpenElevation, body: `<html>`, wantErr: true},
		{name: "no results", provider: OpenElevation, body: `{"status":"OK"}`, wantErr: true},
		{name: "no location", provider: OpenTopoData, body: `{"results":[{"elevation":3}]}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeResults(tt.provider, []byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrBadResponse) {
					t.Errorf("error = %v, want ErrBadResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeResults error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("result %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRequestBody(t *testing.T) {
	points := []geo.Coordinate{{Lat: 1.5, Lon: 2.25}, {Lat: -3, Lon: 4}}

	body, err := OpenTopoData.requestBody(points)
	if err != nil {
		t.Fatalf("requestBody error: %v", err)
	}
	if got := gjson.GetBytes(body, "locations").String(); got != "1.5,2.25|-3,4" {
		t.Errorf("locations = %q, want %q", got, "1.5,2.25|-3,4")
	}

	body, err = OpenElevation.requestBody(points)
	if err != nil {
		t.Fatalf("requestBody error: %v", err)
	}
	if got := gjson.GetBytes(body, "locations.1.latitude").Float(); got != -3 {
		t.Errorf("locations.1.latitude = %v, want -3", got)
	}
}

func TestParseProvider(t *testing.T) {
	for _, p := range []Provider{OpenElevation, OpenTopoData} {
		got, err := ParseProvider(p.String())
		if err != nil || got != p {
			t.Errorf("ParseProvider(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParseProvider("google"); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("ParseProvider(google) error = %v, want ErrUnknownProvider", err)
	}

	var p Provider
	if err := p.UnmarshalText([]byte("OpenTopoData")); err != nil || p != OpenTopoData {
		t.Errorf("UnmarshalText = %v, %v", p, err)
	}
}

func TestGridAndArea(t *testing.T) {
	var requests atomic.Int32
	srv := openElevationServer(t, &requests)
	defer srv.Close()

	c, _ := NewClient(WithEndpoint(OpenElevation, srv.URL))

	b := geo.BoundingBox{South: 0, West: 0, North: 2, East: 2}
	g, err := c.Grid(context.Background(), OpenElevation, b, image.Point{X: 3, Y: 3})
	if err != nil {
		t.Fatalf("Grid error: %v", err)
	}
	if r, ok := g.At(0, 0); !ok || r.Elevation != 20 {
		t.Errorf("At(0,0) = %+v, %v, want north edge elevation 20", r, ok)
	}
	if r, ok := g.At(2, 2); !ok || r.Elevation != 0 {
		t.Errorf("At(2,2) = %+v, %v, want south edge elevation 0", r, ok)
	}
	if _, ok := g.At(3, 0); ok {
		t.Error("At(3,0) outside the grid reported ok")
	}

	s, err := g.Summary()
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if s.Count != 9 || s.Min != 0 || s.Max != 20 || math.Abs(s.Mean-10) > 1e-9 {
		t.Errorf("Summary = %+v", s)
	}

	area, err := c.Area(context.Background(), OpenElevation, geo.Coordinate{Lat: 0, Lon: 0}, 1, 1)
	if err != nil {
		t.Fatalf("Area error: %v", err)
	}
	if area.Width != 12 || area.Height != 12 || len(area.Samples) != 144 {
		t.Errorf("Area grid = %dx%d with %d samples, want 12x12", area.Width, area.Height, len(area.Samples))
	}
}

func TestSummarize(t *testing.T) {
	if _, err := Summarize([]Result{{Missing: true}}); !errors.Is(err, ErrNoData) {
		t.Errorf("Summarize(all missing) error = %v, want ErrNoData", err)
	}

	s, err := Summarize([]Result{{Elevation: 2}, {Elevation: 4}, {Missing: true, Elevation: 100}, {Elevation: 6}})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if s.Count != 3 || s.Min != 2 || s.Max != 6 || s.Mean != 4 || s.Median != 4 {
		t.Errorf("Summarize = %+v", s)
	}
}

func TestMinMax(t *testing.T) {
	lo, hi, err := MinMax([]float64{12, -3, 40.5, 7})
	if err != nil || lo != -3 || hi != 40.5 {
		t.Errorf("MinMax = (%v, %v, %v), want (-3, 40.5, nil)", lo, hi, err)
	}
	if _, _, err := MinMax(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("MinMax(nil) error = %v, want ErrNoData", err)
	}
}
