package server

import (
	"errors"
	"fmt"
	"image"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb/geojson"

	"github.com/woozymasta/spatial/internal/atmosphere"
	"github.com/woozymasta/spatial/internal/ephemeris"
	"github.com/woozymasta/spatial/internal/geo"
	"github.com/woozymasta/spatial/internal/units"
)

const maxSubdivide = 16

// HandleConvert converts a value between two units of a quantity. Without a
// quantity it lists the symbols of every quantity.
func (s *ServerContext) HandleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("quantity") == "" {
		catalog := make(map[units.Quantity][]string)
		for _, qty := range units.Quantities() {
			catalog[qty], _ = units.Symbols(qty)
		}
		writeJSON(w, http.StatusOK, catalog)
		return
	}

	v, err := queryFloat(r, "value")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	qty := units.Quantity(q.Get("quantity"))
	res, err := units.Convert(qty, v, q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"quantity": qty,
		"value":    v,
		"from":     q.Get("from"),
		"to":       q.Get("to"),
		"result":   res,
	})
}

// HandleTemperature converts a temperature, optionally clamping it to the
// physical range first.
func (s *ServerContext) HandleTemperature(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	v, err := queryFloat(r, "value")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	from, ok := units.GuessTemperature(q.Get("from"))
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", units.ErrUnknownUnit, q.Get("from")))
		return
	}
	to, ok := units.GuessTemperature(q.Get("to"))
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", units.ErrUnknownUnit, q.Get("to")))
		return
	}

	if clamp, _ := strconv.ParseBool(q.Get("clamp")); clamp {
		if v, err = units.ClampTemperature(v, from); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	res, err := units.ConvertTemperature(v, from, to)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"value":  v,
		"from":   from.Symbol(),
		"to":     to.Symbol(),
		"result": res,
	})
}

// HandleLength parses a free-text length into metres.
func (s *ServerContext) HandleLength(w http.ResponseWriter, r *http.Request) {
	in := r.URL.Query().Get("value")
	m, err := units.ParseLength(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"input":  in,
		"metres": m,
		"feet":   units.ConvertDistance(m, units.Metre, units.Foot),
	})
}

type atmosphereResponse struct {
	Altitude    float64          `json:"altitude"`
	Layer       int              `json:"layer"`
	Kind        string           `json:"kind"`
	LayerBounds atmosphere.Layer `json:"layer_bounds"`
	State       atmosphere.State `json:"state"`
	PressureHPa float64          `json:"pressure_hpa"`
	Celsius     float64          `json:"celsius"`
}

// HandleAtmosphere solves the standard atmosphere at an altitude, from sea
// level or from a given ground state.
func (s *ServerContext) HandleAtmosphere(w http.ResponseWriter, r *http.Request) {
	alt, err := queryFloat(r, "altitude")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ground := atmosphere.SeaLevel
	for name, dst := range map[string]*float64{
		"pressure":    &ground.Pressure,
		"density":     &ground.Density,
		"temperature": &ground.Temperature,
	} {
		if *dst, err = queryFloatOr(r, name, *dst); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	state, err := atmosphere.SolveFrom(ground, alt)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	idx, layer, err := atmosphere.LayerAt(alt)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	celsius, err := units.ConvertTemperature(state.Temperature, units.Kelvin, units.Celsius)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, atmosphereResponse{
		Altitude:    alt,
		Layer:       idx,
		Kind:        layer.Kind.String(),
		LayerBounds: layer,
		State:       state,
		PressureHPa: units.ConvertPressure(state.Pressure, units.Pascal, units.Hectopascal),
		Celsius:     celsius,
	})
}

type vec2 [2]float64

func fromR2(p r2.Point) vec2 { return vec2{p.X, p.Y} }

type vec3 [3]float64

func fromR3(v r3.Vector) vec3 { return vec3{v.X, v.Y, v.Z} }

type projectResponse struct {
	Coordinate           geo.Coordinate `json:"coordinate"`
	Mercator             vec2           `json:"mercator"`
	Cartesian            vec3           `json:"cartesian"`
	Globe                vec3           `json:"globe"`
	Sphere               vec3           `json:"sphere"`
	EarthRadius          float64        `json:"earth_radius"`
	StretchFactor        float64        `json:"stretch_factor"`
	AltitudeCompensation float64        `json:"altitude_compensation"`
	Tile                 *[3]int        `json:"tile,omitempty"`
	UV                   *vec2          `json:"uv,omitempty"`
	Pixel                *[2]int        `json:"pixel,omitempty"`
}

// HandleProject maps a GPS coordinate into every supported space. A zoom adds
// the slippy tile; a site adds UV and, with width and height, pixel
// coordinates within the site's bounds.
func (s *ServerContext) HandleProject(w http.ResponseWriter, r *http.Request) {
	c, err := queryCoordinate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ref, err := queryFloatOr(r, "ref", geo.DefaultReferenceLatitude)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := projectResponse{
		Coordinate:           c,
		Mercator:             fromR2(geo.Project(c)),
		Cartesian:            fromR3(geo.ToCartesian(c, ref)),
		Globe:                fromR3(geo.ToGlobe(c)),
		Sphere:               fromR3(geo.ToSphere(c)),
		EarthRadius:          geo.EarthRadius(c.Lat),
		StretchFactor:        geo.EquatorialStretchFactor(c.Lat),
		AltitudeCompensation: geo.AltitudeCompensation(c.Lat),
	}

	q := r.URL.Query()
	if q.Has("zoom") {
		zoom, err := strconv.Atoi(q.Get("zoom"))
		if err != nil || zoom < 0 || zoom > 30 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("parameter zoom: %q", q.Get("zoom")))
			return
		}
		t := geo.TileAt(c.Lat, c.Lon, zoom)
		resp.Tile = &[3]int{t.Z, t.X, t.Y}
	}

	if name := q.Get("site"); name != "" {
		site, ok := s.site(name)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Errorf("unknown site %q", name))
			return
		}
		b := site.Bounds()
		uv := fromR2(geo.ToUV(c, b))
		resp.UV = &uv

		width, errW := strconv.Atoi(q.Get("width"))
		height, errH := strconv.Atoi(q.Get("height"))
		if errW == nil && errH == nil && width > 0 && height > 0 {
			p := geo.ToPixel(c, image.Point{X: width, Y: height}, b)
			resp.Pixel = &[2]int{p.X, p.Y}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleBounds returns the square around a point, or a site's square, as
// GeoJSON, optionally split into n×n cells.
func (s *ServerContext) HandleBounds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		b      geo.BoundingBox
		center geo.Coordinate
		name   string
	)
	if site, ok := s.site(q.Get("site")); ok {
		b, center, name = site.Bounds(), site.Center, site.Name
	} else if q.Get("site") != "" {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown site %q", q.Get("site")))
		return
	} else {
		c, err := queryCoordinate(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		size, err := queryFloat(r, "size_km")
		if err != nil || size < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("parameter size_km: %q", q.Get("size_km")))
			return
		}
		b, center = geo.Bounds(c, size), c
	}

	n := 1
	if q.Has("subdivide") {
		v, err := strconv.Atoi(q.Get("subdivide"))
		if err != nil || v < 1 || v > maxSubdivide {
			writeError(w, http.StatusBadRequest, fmt.Errorf("parameter subdivide must be 1..%d", maxSubdivide))
			return
		}
		n = v
	}

	outer := geo.BoundsFeature(b)
	if name != "" {
		outer.Properties["site"] = name
	}
	features := []*geojson.Feature{outer, geo.PointFeature(center, map[string]any{"center": true})}
	if n > 1 {
		for i, cell := range b.Subdivide(n) {
			f := geo.BoundsFeature(cell)
			f.Properties["cell"] = i
			features = append(features, f)
		}
	}

	data, err := geo.FeatureCollection(features...).MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

type timeChain struct {
	UTC        time.Time `json:"utc"`
	Unix       float64   `json:"unix"`
	TAI        float64   `json:"tai"`
	TT         float64   `json:"tt"`
	Julian     float64   `json:"julian"`
	J2000Days  float64   `json:"j2000_days"`
	Ephemeris  float64   `json:"ephemeris"`
	WindowFrom float64   `json:"window_from"`
	WindowTo   float64   `json:"window_to"`
}

type bodyOrientation struct {
	Elements    ephemeris.RotationElements `json:"elements"`
	Orientation vec3                       `json:"orientation"`
	Rotation    ephemeris.Quat             `json:"rotation"`
}

type placement struct {
	Body     ephemeris.Body `json:"body"`
	Position vec3           `json:"position"`
	Rotation ephemeris.Quat `json:"rotation"`
	Scale    float64        `json:"scale"`
}

type ephemerisResponse struct {
	Time         timeChain                          `json:"time"`
	Orientations map[ephemeris.Body]bodyOrientation `json:"orientations"`
	Placements   []placement                        `json:"placements"`
}

// HandleEphemeris reports the time scale chain, body orientations and
// scene placements at a time given as RFC 3339 or Unix seconds, or now.
func (s *ServerContext) HandleEphemeris(w http.ResponseWriter, r *http.Request) {
	t, err := queryTime(r, "time", s.Now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	unix := float64(t.UnixNano()) / 1e9
	chain := timeChain{UTC: t.UTC(), Unix: unix}
	chain.TAI = ephemeris.UTCToTAI(unix)
	chain.TT = ephemeris.TAIToTT(chain.TAI)
	chain.Julian = ephemeris.TTToJulian(chain.TT)
	chain.J2000Days = ephemeris.JulianToJ2000Days(chain.Julian)
	chain.Ephemeris = ephemeris.J2000DaysToCenturies(chain.J2000Days)

	resp := ephemerisResponse{Orientations: make(map[ephemeris.Body]bodyOrientation)}
	for _, b := range ephemeris.Bodies() {
		el, err := ephemeris.Elements(b, chain.Ephemeris)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		o, _ := ephemeris.Orientation(b, chain.Ephemeris)
		q, _ := ephemeris.Rotation(b, chain.Ephemeris)
		resp.Orientations[b] = bodyOrientation{Elements: el, Orientation: fromR3(o), Rotation: q}
	}

	placements, err := s.Planetarium.AtEphemeris(chain.Ephemeris)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	for _, p := range placements {
		resp.Placements = append(resp.Placements, placement{
			Body:     p.Body,
			Position: fromR3(p.Position),
			Rotation: p.Rotation,
			Scale:    p.Scale,
		})
	}

	win := s.Planetarium.Window()
	chain.WindowFrom, chain.WindowTo = win.From, win.To
	resp.Time = chain

	writeJSON(w, http.StatusOK, resp)
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", errMissingParam, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parameter %s: invalid number %q", name, raw)
	}
	return v, nil
}

func queryFloatOr(r *http.Request, name string, def float64) (float64, error) {
	v, err := queryFloat(r, name)
	if errors.Is(err, errMissingParam) {
		return def, nil
	}
	return v, err
}

func queryCoordinate(r *http.Request) (geo.Coordinate, error) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		return geo.Coordinate{}, err
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		return geo.Coordinate{}, err
	}
	alt, err := queryFloatOr(r, "alt", 0)
	if err != nil {
		return geo.Coordinate{}, err
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return geo.Coordinate{}, fmt.Errorf("coordinate %v,%v out of range", lat, lon)
	}

	return geo.Coordinate{Lat: lat, Lon: lon, Alt: alt}, nil
}

// queryTime accepts RFC 3339 or Unix seconds and falls back to now().
func queryTime(r *http.Request, name string, now func() time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	sec, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return time.Time{}, fmt.Errorf("parameter %s: want RFC 3339 or Unix seconds, got %q", name, raw)
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), nil
}
