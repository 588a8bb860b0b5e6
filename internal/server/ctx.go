package server

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/spatial/internal/config"
	"github.com/woozymasta/spatial/internal/ephemeris"
	"github.com/woozymasta/spatial/internal/processor"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config          *config.Config
	SiteResolver    map[string]string
	Root            string
	Planetarium     *ephemeris.Planetarium
	TransparentTile []byte

	// Now returns the current time; tests replace it.
	Now func() time.Time
}

// NewServerContext initializes the context and checks which prepared data
// exists for every configured site under root.
func NewServerContext(cfg *config.Config, root string, src ephemeris.Source) *ServerContext {
	log.Info().Int("config_sites_count", len(cfg.Sites)).Msg("Initializing server context")

	if root == "" {
		root = processor.DefaultRoot
	}

	resolver := make(map[string]string, len(cfg.Sites))

	for i := range cfg.Sites {
		site := &cfg.Sites[i]
		siteDir := filepath.Join(root, site.Name)

		if _, err := os.Stat(filepath.Join(siteDir, "tiles")); err != nil {
			site.NoTiles = true
			log.Trace().Str("site", site.Name).Msg("Tiles not found")
		}
		if _, err := os.Stat(filepath.Join(siteDir, processor.ElevationFile)); err != nil {
			site.NoElevation = true
			log.Trace().Str("site", site.Name).Msg("Elevation not found")
		}
		if site.NoTiles && site.NoElevation {
			log.Warn().
				Str("site", site.Name).
				Msg("Site has no prepared data; only computed endpoints will work")
		}

		resolver[site.Name] = site.Name
		for _, alias := range site.Aliases {
			resolver[alias] = site.Name
		}

		log.Debug().
			Str("site", site.Name).
			Bool("tiles", !site.NoTiles).
			Bool("elevation", !site.NoElevation).
			Msg("Site added to context")
	}

	sort.SliceStable(cfg.Sites, func(i, j int) bool {
		idxI, idxJ := 999999, 999999
		if cfg.Sites[i].Index != nil {
			idxI = *cfg.Sites[i].Index
		}
		if cfg.Sites[j].Index != nil {
			idxJ = *cfg.Sites[j].Index
		}
		if idxI != idxJ {
			return idxI < idxJ
		}

		return cfg.Sites[i].Name < cfg.Sites[j].Name
	})

	if src == nil {
		src = ephemeris.KeplerSource{}
	}

	log.Info().
		Int("sites_count", len(cfg.Sites)).
		Str("root", root).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:          cfg,
		SiteResolver:    resolver,
		Root:            root,
		Planetarium:     ephemeris.NewPlanetarium(src, ephemeris.DefaultFrame(), ephemeris.DefaultUpdateInterval),
		TransparentTile: transparentTile(),
		Now:             time.Now,
	}
}

// site resolves a name or alias.
func (s *ServerContext) site(name string) (*config.Site, bool) {
	canonical, ok := s.SiteResolver[name]
	if !ok {
		return nil, false
	}
	return s.Config.Find(canonical)
}

func transparentTile() []byte {
	var buf bytes.Buffer
	img := image.NewNRGBA(image.Rect(0, 0, config.DefaultTileSize, config.DefaultTileSize))
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		log.Error().Err(err).Msg("Failed to encode transparent tile")
		return nil
	}
	return buf.Bytes()
}
