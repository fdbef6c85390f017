package dmadump

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
)

// Format is an image file format written for decoded channels.
type Format int

const (
	PNG Format = iota
	BMP
)

var formatNames = map[Format]string{
	PNG: "png",
	BMP: "bmp",
}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unsupported image format %q", s)
}

func (f Format) String() string {
	return formatNames[f]
}

func (f Format) Ext() string {
	return f.String()
}

// Encode writes m to w in format f.
func (f Format) Encode(w io.Writer, m image.Image) error {
	switch f {
	case BMP:
		return bmp.Encode(w, m)
	default:
		return png.Encode(w, m)
	}
}
