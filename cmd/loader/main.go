package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/spatial/internal/config"
	"github.com/woozymasta/spatial/internal/elevation"
	"github.com/woozymasta/spatial/internal/logger"
	"github.com/woozymasta/spatial/internal/processor"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile    string   `short:"c" long:"config"         env:"CONFIG_FILE"  description:"Path to configuration file" default:"config.yaml"`
	DataDir       string   `short:"d" long:"data"           env:"DATA_DIR"     description:"Output directory for site data" default:"sites"`
	Limit         []string `short:"l" long:"limit"          env:"LIMIT_NAMES"  description:"Limit processing to specific site names"`
	Concurrency   int      `short:"p" long:"concurrency"    env:"CONCURRENCY"  description:"Concurrency" default:"16"`
	ZoomLimit     int      `short:"z" long:"zoom-limit"     env:"ZOOM_LIMIT"   description:"Tiles zoom limit" default:"12"`
	TilesOnly     bool     `short:"t" long:"tiles-only"     description:"Download tiles only"`
	ElevationOnly bool     `short:"e" long:"elevation-only" description:"Sample elevation only"`
	Force         bool     `short:"f" long:"force"          description:"Force overwrite of existing files"`
	FastCheck     bool     `short:"F" long:"fast-check"     description:"Skip processing if cache exist"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()
	defer func() { _ = opts.Logger.Close() }()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg.ApplyDefaults(opts.ZoomLimit)

	processTiles := true
	processElevation := true
	if opts.TilesOnly && !opts.ElevationOnly {
		processElevation = false
	} else if opts.ElevationOnly && !opts.TilesOnly {
		processTiles = false
	}

	client := &http.Client{
		Transport: &http.Transport{
			TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
		Timeout: 15 * time.Second,
	}

	// elevation requests carry their own per-provider timeouts
	elevClient, err := elevation.NewClient(elevation.WithHTTPClient(&http.Client{Transport: client.Transport}))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create elevation client")
	}

	procOpts := processor.Options{
		Root:        opts.DataDir,
		Concurrency: opts.Concurrency,
		ZoomLimit:   cfg.ZoomLimit,
		Force:       opts.Force,
		FastCheck:   opts.FastCheck,
	}

	sitesToProcess := cfg.Sites
	if len(opts.Limit) > 0 {
		sitesToProcess = make([]config.Site, 0, len(opts.Limit))
		seen := make(map[string]bool)

		for _, limitName := range opts.Limit {
			site, ok := cfg.Find(limitName)
			if !ok {
				log.Error().
					Str("name", limitName).
					Msg("Site specified in --limit not found in configuration")
				continue
			}
			if seen[site.Name] {
				continue
			}
			seen[site.Name] = true
			sitesToProcess = append(sitesToProcess, *site)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().
		Int("sites_total", len(cfg.Sites)).
		Int("sites_queued", len(sitesToProcess)).
		Bool("fast_check", opts.FastCheck).
		Msg("Starting loader")

	start := time.Now()
	var tiles, samples int

	for _, site := range sitesToProcess {
		if ctx.Err() != nil {
			break
		}

		if processElevation {
			sum, err := processor.ProcessElevation(ctx, elevClient, site, cfg.Provider, procOpts)
			if err != nil {
				log.Error().Err(err).Str("site", site.Name).Msg("Failed to process elevation")
			} else if sum != nil {
				samples += sum.Count
			}
		}

		if processTiles {
			n, err := processor.ProcessTiles(client, site, procOpts)
			if err != nil {
				log.Error().Err(err).Str("site", site.Name).Msg("Failed to process tiles")
			}
			tiles += n
		}
	}

	log.Info().
		Str("tiles", humanize.Comma(int64(tiles))).
		Str("samples", humanize.Comma(int64(samples))).
		Str("started", humanize.Time(start)).
		Msg("Loader finished successfully")
}
