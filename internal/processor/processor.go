// Package processor downloads and prepares per-site map data: tile pyramids
// and elevation grids.
package processor

import "errors"

// DefaultRoot is the directory site data is written to.
const DefaultRoot = "sites"

var ErrBadTemplate = errors.New("tile URL template needs {z} and {x} placeholders")

// Options controls a processing run.
type Options struct {
	Root        string // output directory, DefaultRoot when empty
	Concurrency int    // parallel tile downloads
	ZoomLimit   int    // used for sites without their own limit
	Force       bool   // overwrite existing files
	FastCheck   bool   // skip a site when its output already exists
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	return o
}
