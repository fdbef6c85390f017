package dmadump

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"io/ioutil"
	"os"

	"github.com/bodgit/dmadump/memdump"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
)

const maxColors = 256

// EncodeOptions control how a source image is turned into a dump.
type EncodeOptions struct {
	// Resize the image to Width by Height first, if both are set
	Width  int
	Height int

	// Reduce the image to this many colors first, if set
	Colors int

	// Write a format descriptor to this file, if set
	Descriptor string
	Label      string
}

func reduceColors(m image.Image, n int) *image.Paletted {
	if n > maxColors {
		n = maxColors
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

func (d *DMADump) prepare(m image.Image, opts EncodeOptions) image.Image {
	if opts.Width > 0 && opts.Height > 0 {
		m = resize.Resize(uint(opts.Width), uint(opts.Height), m, resize.Lanczos3)
	}
	if opts.Colors > 0 {
		m = reduceColors(m, opts.Colors)
	}
	return m
}

// Encode reads the image in src and writes it to dst as a memory dump.
func (d *DMADump) Encode(src, dst string, opts EncodeOptions) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	m, format, err := image.Decode(f)
	if err != nil {
		return err
	}
	d.logger.Printf("Read %s image \"%s\", %dx%d\n", format, src, m.Bounds().Dx(), m.Bounds().Dy())

	m = d.prepare(m, opts)
	bounds := m.Bounds()

	b := new(bytes.Buffer)
	if err := memdump.Encode(b, m); err != nil {
		return err
	}
	if err := ioutil.WriteFile(dst, b.Bytes(), 0644); err != nil {
		return err
	}
	d.logger.Printf("Saved dump: %s, %dx%d\n", dst, bounds.Dx(), bounds.Dy())

	if opts.Descriptor == "" {
		return nil
	}

	b.Reset()
	if err := memdump.EncodeDescriptor(b, opts.Label, bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	if err := ioutil.WriteFile(opts.Descriptor, b.Bytes(), 0644); err != nil {
		return err
	}
	d.logger.Printf("Saved descriptor: %s\n", opts.Descriptor)

	return nil
}
