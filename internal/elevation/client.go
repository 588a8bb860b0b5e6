package elevation

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/spatial/internal/geo"
)

const (
	// DefaultCacheSize is the number of samples kept per client.
	DefaultCacheSize = 1 << 16

	maxResponseSize = 32 << 20
)

type cacheKey struct {
	provider Provider
	lat, lon float64
}

// Client looks up elevations and caches the answers by exact coordinate.
// It is safe for concurrent use. Failed requests are not retried.
type Client struct {
	http      *http.Client
	endpoints map[Provider]string
	cacheSize int
	cache     *lru.Cache[cacheKey, Result]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithEndpoint overrides the lookup URL of a provider.
func WithEndpoint(p Provider, url string) Option {
	return func(c *Client) { c.endpoints[p] = url }
}

// WithCacheSize sets the number of cached samples.
func WithCacheSize(n int) Option {
	return func(c *Client) { c.cacheSize = n }
}

// NewClient returns a client with the default endpoints.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		http:      http.DefaultClient,
		endpoints: make(map[Provider]string, len(providerNames)),
		cacheSize: DefaultCacheSize,
	}
	for p := range providerNames {
		c.endpoints[p] = p.Endpoint()
	}
	for _, opt := range opts {
		opt(c)
	}

	cache, err := lru.New[cacheKey, Result](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("elevation cache: %w", err)
	}
	c.cache = cache

	return c, nil
}

// Lookup returns one result per point, in order. Cached points are not sent
// again; the rest are sent in provider-sized batches, pausing between
// batches as the provider requires.
func (c *Client) Lookup(ctx context.Context, p Provider, points []geo.Coordinate) ([]Result, error) {
	if _, ok := providerNames[p]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProvider, uint8(p))
	}

	out := make([]Result, len(points))
	pending := make([]int, 0, len(points))
	for i, pt := range points {
		if r, ok := c.cache.Get(cacheKey{p, pt.Lat, pt.Lon}); ok {
			out[i] = r
			continue
		}
		pending = append(pending, i)
	}

	log.Debug().
		Str("provider", p.String()).
		Int("points", len(points)).
		Int("cached", len(points)-len(pending)).
		Msg("Elevation lookup")

	batch := p.BatchSize()
	if batch <= 0 {
		batch = len(pending)
	}

	for start := 0; start < len(pending); start += batch {
		if start > 0 {
			if err := sleep(ctx, p.Interval()); err != nil {
				return nil, err
			}
		}

		idx := pending[start:min(start+batch, len(pending))]
		coords := make([]geo.Coordinate, len(idx))
		for k, i := range idx {
			coords[k] = points[i]
		}

		res, err := c.fetch(ctx, p, coords)
		if err != nil {
			return nil, err
		}
		if len(res) != len(idx) {
			return nil, fmt.Errorf("%w: got %d results for %d locations", ErrBadResponse, len(res), len(idx))
		}

		for k, i := range idx {
			out[i] = res[k]
			c.cache.Add(cacheKey{p, points[i].Lat, points[i].Lon}, res[k])
		}
	}

	return out, nil
}

func (c *Client) fetch(ctx context.Context, p Provider, coords []geo.Coordinate) ([]Result, error) {
	body, err := p.requestBody(coords)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints[p], bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", p, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%s response: %w", p, err)
	}

	log.Trace().
		Str("provider", p.String()).
		Int("status", resp.StatusCode).
		Int("locations", len(coords)).
		Dur("elapsed", time.Since(start)).
		Msg("Elevation request")

	if resp.StatusCode != http.StatusOK {
		// some providers still send a JSON error body
		if _, err := decodeResults(p, data); err != nil {
			return nil, fmt.Errorf("%s status %d: %w", p, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("%w: %s status %d", ErrBadResponse, p, resp.StatusCode)
	}

	return decodeResults(p, data)
}

// Grid samples the box at every pixel of an image of the given dimensions,
// row-major from the north-west corner.
func (c *Client) Grid(ctx context.Context, p Provider, b geo.BoundingBox, dims image.Point) (*Grid, error) {
	res, err := c.Lookup(ctx, p, geo.SampleGrid(b, dims))
	if err != nil {
		return nil, err
	}
	return &Grid{Bounds: b, Width: dims.X, Height: dims.Y, Samples: res}, nil
}

// Area samples a sizeKm square around center at the provider's native
// resolution multiplied by scale.
func (c *Client) Area(ctx context.Context, p Provider, center geo.Coordinate, sizeKm, scale float64) (*Grid, error) {
	r, clamped := geo.ElevationResolution(sizeKm, p.Resolution(), center.Lat, scale)
	if clamped {
		log.Warn().
			Float64("size_km", sizeKm).
			Int("resolution", r).
			Msg("Elevation resolution capped; subdivide the area for more detail")
	}

	return c.Grid(ctx, p, geo.Bounds(center, sizeKm), image.Point{X: r + 1, Y: r + 1})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
