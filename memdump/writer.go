package memdump

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/bodgit/dmadump/rgb565"
)

type encoder struct {
	w *bufio.Writer

	line [wordsPerLine]uint16
	n    int
}

func (e *encoder) flush() error {
	if e.n == 0 {
		return nil
	}

	words := e.line[:e.n]
	groupReverse(words)

	for i, v := range words {
		// Only a short line is space separated
		if i > 0 && e.n < wordsPerLine {
			if err := e.w.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(e.w, "%0*X", hexDigits, v); err != nil {
			return err
		}
	}
	e.n = 0

	return e.w.WriteByte('\n')
}

func (e *encoder) encode(m image.Image) error {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			e.line[e.n] = rgb565.Model.Convert(m.At(x, y)).(rgb565.Color).V
			e.n++
			if e.n == wordsPerLine {
				if err := e.flush(); err != nil {
					return err
				}
			}
		}
	}

	if err := e.flush(); err != nil {
		return err
	}

	return e.w.Flush()
}

// Encode writes the Image m to w as an RGB565 memory dump. No preamble is
// written.
func Encode(w io.Writer, m image.Image) error {
	e := encoder{w: bufio.NewWriter(w)}

	return e.encode(m)
}
