package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/woozymasta/spatial/internal/config"
	"github.com/woozymasta/spatial/internal/geo"
)

const maxTileBytes = 16 << 20

type job struct {
	URLTemplate string
	BaseDir     string
	TileSize    int
	Tile        geo.Tile
}

type result struct {
	Tile  geo.Tile
	Valid bool
}

// ProcessTiles downloads the slippy map tiles covering a site for every zoom
// level up to its limit and stores them as WebP under <root>/<site>/tiles.
// It stops at the first zoom level the tile server has no data for and
// returns the number of tiles stored.
func ProcessTiles(client *http.Client, s config.Site, opts Options) (int, error) {
	if s.Tiles == "" {
		return 0, nil
	}
	if !strings.Contains(s.Tiles, "{z}") || !strings.Contains(s.Tiles, "{x}") {
		return 0, fmt.Errorf("%w: %q", ErrBadTemplate, s.Tiles)
	}

	opts = opts.withDefaults()
	baseDir := filepath.Join(opts.Root, s.Name, "tiles")

	if opts.FastCheck {
		if _, err := os.Stat(baseDir); err == nil {
			log.Info().
				Str("site", s.Name).
				Msg("Tiles directory exists, skipping (fast-check)")

			return 0, nil
		}
	}

	zoomLimit := s.ZoomLimit
	if zoomLimit <= 0 {
		zoomLimit = opts.ZoomLimit
	}

	log.Info().
		Str("site", s.Name).
		Int("zoom_limit", zoomLimit).
		Msg("Starting tile download")

	bounds := s.Bounds()
	stored := 0

	for z := 0; z <= zoomLimit; z++ {
		tiles := geo.TilesCovering(bounds, z)
		if len(tiles) == 0 {
			break
		}
		if z > 0 && !probeLevel(client, tiles, s.Tiles) {
			log.Info().Int("zoom", z).Msg("No data found at zoom level, stopping")
			break
		}

		log.Debug().Int("zoom", z).Int("count", len(tiles)).Msg("Processing zoom level")

		valid := processBatch(client, opts, tiles, job{URLTemplate: s.Tiles, BaseDir: baseDir, TileSize: s.TileSize})
		stored += len(valid)
	}

	return stored, nil
}

func processBatch(client *http.Client, opts Options, tiles []geo.Tile, proto job) []geo.Tile {
	jobs := make(chan job, len(tiles))
	results := make(chan result, len(tiles))

	go func() {
		for _, t := range tiles {
			j := proto
			j.Tile = t
			jobs <- j
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < min(opts.Concurrency, len(tiles)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				ok, err := downloadAndConvert(client, j, opts.Force)
				if err != nil {
					log.Trace().
						Err(err).
						Str("url", buildURL(j.URLTemplate, j.Tile)).
						Msg("Failed to download tile")
				}
				results <- result{Tile: j.Tile, Valid: ok}
			}
		}()
	}
	wg.Wait()
	close(results)

	var valid []geo.Tile
	for res := range results {
		if res.Valid {
			valid = append(valid, res.Tile)
		}
	}

	return valid
}

// tilePath is <base>/<z>/<x>/<y>.webp.
func tilePath(base string, t geo.Tile) string {
	return filepath.Join(base, strconv.Itoa(t.Z), strconv.Itoa(t.X), strconv.Itoa(t.Y)+".webp")
}

func downloadAndConvert(client *http.Client, j job, force bool) (bool, error) {
	outPath := tilePath(j.BaseDir, j.Tile)

	if !force {
		if info, err := os.Stat(outPath); err == nil && info.Size() > 0 {
			return true, nil
		}
	}

	url := buildURL(j.URLTemplate, j.Tile)
	img, err := fetchImage(client, url)
	if err != nil || img == nil {
		return false, err
	}

	// servers answer out-of-range requests with 1px placeholders
	if img.Bounds().Dx() <= 1 {
		log.Trace().Str("url", url).Msg("Filtered empty tile")
		return false, nil
	}

	img = normalize(img, j.TileSize)

	if err := writeTile(outPath, img); err != nil {
		return false, err
	}

	return true, nil
}

var encodeTile = func(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: 80})
}

// writeTile stores img as WebP at path. A failed write leaves no file behind.
func writeTile(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	err = encodeTile(out, img)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil {
			log.Warn().Err(rerr).Str("path", path).Msg("Failed to remove partial tile")
		}
		return err
	}

	return nil
}

// fetchImage downloads and decodes an image. A missing or undecodable tile
// yields a nil image and no error.
func fetchImage(client *http.Client, url string) (image.Image, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		log.Trace().Str("url", url).Msg("Tile not found (404)")
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTileBytes))
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		log.Trace().Err(err).Str("url", url).Msg("Failed to decode image")
		return nil, nil
	}

	return img, nil
}

// normalize rescales a tile to size×size pixels. Tiles already at that size
// are returned as is.
func normalize(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || (b.Dx() == size && b.Dy() == size) {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func buildURL(tpl string, t geo.Tile) string {
	s := strings.ReplaceAll(tpl, "{z}", strconv.Itoa(t.Z))
	s = strings.ReplaceAll(s, "{x}", strconv.Itoa(t.X))
	s = strings.ReplaceAll(s, "{y}", strconv.Itoa(t.Y))

	if strings.Contains(s, "{tms_y}") {
		tmsY := (1 << t.Z) - 1 - t.Y
		s = strings.ReplaceAll(s, "{tms_y}", strconv.Itoa(tmsY))
	}

	return s
}

// probeLevel checks the first, middle and last tile of a level for data.
func probeLevel(client *http.Client, tiles []geo.Tile, tpl string) bool {
	probes := []geo.Tile{}
	if len(tiles) > 0 {
		probes = append(probes, tiles[0])
	}
	if len(tiles) > 10 {
		probes = append(probes, tiles[len(tiles)/2])
	}
	if len(tiles) > 1 {
		probes = append(probes, tiles[len(tiles)-1])
	}

	for _, p := range probes {
		img, err := fetchImage(client, buildURL(tpl, p))
		if err == nil && img != nil && img.Bounds().Dx() > 1 {
			return true
		}
	}

	return false
}
