/*
Package dmadump is a library for converting between images and the RGB565
memory dumps used to preload and inspect DMA channel memory during
simulation.
*/
package dmadump

import (
	"log"

	"github.com/bodgit/dmadump/memdump"
)

const (
	// DefaultPrefix is the filename prefix of the dumps written by the
	// simulator for each destination channel.
	DefaultPrefix = "dst_mem_"

	defaultWorkers = 10
)

type DMADump struct {
	logger  *log.Logger
	catalog *Catalog
	prefix  string
	skip    int
	format  Format
	workers int
}

// Option configures a DMADump.
type Option func(*DMADump)

// WithPrefix sets the filename prefix used to discover channels.
func WithPrefix(prefix string) Option {
	return func(d *DMADump) {
		d.prefix = prefix
	}
}

// WithSkip sets the number of preamble lines skipped in each dump.
func WithSkip(skip int) Option {
	return func(d *DMADump) {
		d.skip = skip
	}
}

// WithFormat sets the image format written for each decoded channel.
func WithFormat(format Format) Option {
	return func(d *DMADump) {
		d.format = format
	}
}

// WithWorkers sets how many channels are decoded concurrently.
func WithWorkers(workers int) Option {
	return func(d *DMADump) {
		if workers > 0 {
			d.workers = workers
		}
	}
}

// WithCatalog records every channel outcome in c.
func WithCatalog(c *Catalog) Option {
	return func(d *DMADump) {
		d.catalog = c
	}
}

func New(logger *log.Logger, options ...Option) *DMADump {
	d := &DMADump{
		logger:  logger,
		prefix:  DefaultPrefix,
		skip:    memdump.DefaultSkip,
		format:  PNG,
		workers: defaultWorkers,
	}
	for _, o := range options {
		o(d)
	}
	return d
}
