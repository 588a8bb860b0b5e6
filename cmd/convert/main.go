package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/spatial/internal/config"
	"github.com/woozymasta/spatial/internal/geo"
	"github.com/woozymasta/spatial/internal/units"
)

type Options struct {
	Quantity string `short:"q" long:"quantity" description:"Quantity of the values (see --list)"`
	From     string `short:"f" long:"from"     description:"Unit symbol to convert from"`
	To       string `short:"t" long:"to"       description:"Unit symbol to convert to"`
	Length   string `short:"L" long:"length"   description:"Parse a free-text length such as 12'6\" into metres"`
	List     bool   `long:"list"               description:"List quantities and their unit symbols"`

	Config  string `short:"c" long:"config"  description:"Dump a configuration file with defaults applied"`
	Format  string `long:"format"            description:"Configuration dump format" choice:"json" choice:"yaml" choice:"geojson" default:"json"`
	Compact bool   `long:"compact"           description:"Minify JSON output"`
	Output  string `short:"o" long:"out"     description:"Output file path. Writes to stdout if empty"`

	Args struct {
		Values []string `positional-arg-name:"value"`
	} `positional-args:"yes"`
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

	var (
		out []byte
		err error
	)

	switch {
	case opts.List:
		out, err = listQuantities()
	case opts.Length != "":
		out, err = parseLength(opts.Length)
	case opts.Config != "":
		out, err = dumpConfig(opts.Config, opts.Format)
	default:
		out, err = convertValues(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if opts.Compact && opts.Config != "" && opts.Format != "yaml" {
		m := minify.New()
		m.AddFunc("application/json", mjson.Minify)
		if out, err = m.Bytes("application/json", out); err != nil {
			fmt.Fprintf(os.Stderr, "Error minifying output: %v\n", err)
			os.Exit(1)
		}
	}

	if opts.Output == "" {
		fmt.Println(strings.TrimRight(string(out), "\n"))
		return
	}

	if err := os.WriteFile(opts.Output, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", humanize.Bytes(uint64(len(out))), opts.Output)
}

func listQuantities() ([]byte, error) {
	var sb strings.Builder
	for _, q := range units.Quantities() {
		symbols, err := units.Symbols(q)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "%-12s %s\n", q, strings.Join(symbols, " "))
	}
	return []byte(sb.String()), nil
}

func parseLength(s string) ([]byte, error) {
	m, err := units.ParseLength(s)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("%s = %s m\n", s, humanize.CommafWithDigits(m, 4))), nil
}

func convertValues(opts Options) ([]byte, error) {
	if opts.Quantity == "" || opts.From == "" || opts.To == "" {
		return nil, fmt.Errorf("--quantity, --from and --to are required (see --help)")
	}
	if len(opts.Args.Values) == 0 {
		return nil, fmt.Errorf("no values to convert")
	}

	var sb strings.Builder
	for _, raw := range opts.Args.Values {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", raw, err)
		}

		res, err := units.Convert(units.Quantity(opts.Quantity), v, opts.From, opts.To)
		if err != nil {
			return nil, err
		}

		fmt.Fprintf(&sb, "%s %s = %s %s\n",
			humanize.CommafWithDigits(v, 6), opts.From,
			humanize.CommafWithDigits(res, 6), opts.To)
	}
	return []byte(sb.String()), nil
}

func dumpConfig(path, format string) ([]byte, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults(0)

	switch format {
	case "yaml":
		return yaml.Marshal(cfg)

	case "geojson":
		features := make([]*geojson.Feature, 0, 2*len(cfg.Sites))
		for _, s := range cfg.Sites {
			b := geo.BoundsFeature(s.Bounds())
			b.Properties["name"] = s.Name
			b.Properties["size_km"] = s.SizeKm
			features = append(features, b, geo.PointFeature(s.Center, map[string]any{"name": s.Name}))
		}
		data, err := geo.FeatureCollection(features...).MarshalJSON()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return json.MarshalIndent(cfg, "", "  ")
	}
}
