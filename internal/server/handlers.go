// Package server serves prepared site data and the conversion API over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/spatial/internal/config"
	"github.com/woozymasta/spatial/internal/geo"
	"github.com/woozymasta/spatial/internal/processor"
)

const etagCap = 64

// Routes returns the handler tree with request logging applied.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sites", s.HandleSitesList)
	mux.HandleFunc("GET /api/convert", s.HandleConvert)
	mux.HandleFunc("GET /api/temperature", s.HandleTemperature)
	mux.HandleFunc("GET /api/length", s.HandleLength)
	mux.HandleFunc("GET /api/atmosphere", s.HandleAtmosphere)
	mux.HandleFunc("GET /api/project", s.HandleProject)
	mux.HandleFunc("GET /api/bounds", s.HandleBounds)
	mux.HandleFunc("GET /api/ephemeris", s.HandleEphemeris)
	mux.HandleFunc("GET /sites/", s.HandleSiteFile)
	mux.HandleFunc("GET /{$}", s.HandleIndex)

	return RequestLogger(mux)
}

type siteInfo struct {
	config.Site
	Bounds geo.BoundingBox `json:"bounds"`
}

// HandleSitesList serves the configured sites with their bounds.
func (s *ServerContext) HandleSitesList(w http.ResponseWriter, r *http.Request) {
	out := make([]siteInfo, 0, len(s.Config.Sites))
	for _, site := range s.Config.Sites {
		out = append(out, siteInfo{Site: site, Bounds: site.Bounds()})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleIndex lists the API endpoints.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"/api/sites":       "configured sites",
		"/api/convert":     "quantity, value, from, to",
		"/api/temperature": "value, from, to, clamp",
		"/api/length":      "value",
		"/api/atmosphere":  "altitude, pressure, density, temperature",
		"/api/project":     "lat, lon, alt, ref, zoom, site, width, height",
		"/api/bounds":      "lat, lon, size_km or site, subdivide",
		"/api/ephemeris":   "time",
		"/sites/{name}/":   "tiles/{z}/{x}/{y}.webp, " + processor.ElevationFile,
	})
}

// HandleSiteFile serves prepared tiles and elevation GeoJSON for a site.
func (s *ServerContext) HandleSiteFile(w http.ResponseWriter, r *http.Request) {
	// Path: /sites/{name}/...
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 {
		http.NotFound(w, r)
		return
	}

	site, ok := s.site(parts[1])
	if !ok {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 3 && parts[2] == processor.ElevationFile {
		path := filepath.Join(s.Root, site.Name, processor.ElevationFile)
		if !s.serveFile(w, r, path, "application/geo+json") {
			http.NotFound(w, r)
		}
		return
	}

	// parts: sites, name, tiles, z, x, y.webp
	if len(parts) == 6 && parts[2] == "tiles" {
		for _, p := range parts[3:5] {
			if _, err := strconv.Atoi(p); err != nil {
				http.NotFound(w, r)
				return
			}
		}
		if _, err := strconv.Atoi(strings.TrimSuffix(parts[5], ".webp")); err != nil {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(s.Root, site.Name, "tiles", parts[3], parts[4], parts[5])
		if s.serveFile(w, r, path, "image/webp") {
			return
		}

		w.Header().Set("Content-Type", "image/webp")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(s.TransparentTile)
		return
	}

	http.NotFound(w, r)
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// client disconnects cannot be handled
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, status, apiError{Error: err.Error()})
}

var errMissingParam = errors.New("missing parameter")
