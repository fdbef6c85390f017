package memdump

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/bodgit/dmadump/rgb565"
)

const maxLineLength = 1 << 20

// Options are the decoding parameters.
type Options struct {
	// Skip is the number of preamble lines ignored at the start of the
	// dump.
	Skip int
}

type decoder struct {
	r    *bufio.Scanner
	skip int

	words []uint16
	line  []uint16
}

func parseWord(s string) (uint16, bool) {
	if len(s) != hexDigits {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

func (d *decoder) readLine(n int, text string) error {
	text = strings.TrimRight(text, " \t\r\n")

	d.line = d.line[:0]
	if strings.ContainsRune(text, ' ') {
		// Short line
		for _, s := range strings.Fields(text) {
			v, ok := parseWord(s)
			if !ok {
				return &MalformedLineError{Line: n, Text: text, Reason: "invalid word " + strconv.Quote(s)}
			}
			d.line = append(d.line, v)
		}
	} else {
		if len(text)%hexDigits != 0 {
			return &MalformedLineError{Line: n, Text: text, Reason: "length is not a multiple of 4"}
		}
		for i := 0; i < len(text); i += hexDigits {
			v, ok := parseWord(text[i : i+hexDigits])
			if !ok {
				return &MalformedLineError{Line: n, Text: text, Reason: "invalid word " + strconv.Quote(text[i:i+hexDigits])}
			}
			d.line = append(d.line, v)
		}
	}

	groupReverse(d.line)
	d.words = append(d.words, d.line...)

	return nil
}

func (d *decoder) decode(r io.Reader) error {
	d.r = bufio.NewScanner(r)
	d.r.Buffer(make([]byte, 0, 4096), maxLineLength)

	n := 0
	for d.r.Scan() {
		n++
		if n <= d.skip {
			continue
		}
		if err := d.readLine(n, d.r.Text()); err != nil {
			return err
		}
	}

	if err := d.r.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return &MalformedLineError{Line: n + 1, Reason: fmt.Sprintf("longer than %d bytes", maxLineLength)}
		}
		return err
	}

	return nil
}

// Decode reads an RGB565 memory dump from r and returns the image described
// by desc. Words beyond those needed to fill the image are ignored. If opts
// is nil, DefaultSkip preamble lines are skipped. Any line containing spaces
// is read as space-separated words, wherever it appears and however many
// words it holds.
func Decode(r io.Reader, desc Descriptor, opts *Options) (*image.NRGBA, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, &FormatParseError{Text: fmt.Sprintf("%dx%d", desc.Width, desc.Height), Err: errNotPositive}
	}

	d := decoder{
		skip:  DefaultSkip,
		words: make([]uint16, 0, desc.Words()),
		line:  make([]uint16, 0, wordsPerLine),
	}
	if opts != nil {
		d.skip = opts.Skip
	}

	if err := d.decode(r); err != nil {
		return nil, err
	}

	if len(d.words) < desc.Words() {
		return nil, &ShortDataError{Want: desc.Words(), Have: len(d.words)}
	}

	m := image.NewNRGBA(image.Rect(0, 0, desc.Width, desc.Height))
	for i, v := range d.words[:desc.Words()] {
		c := rgb565.Color{V: v}.NRGBA()
		o := m.PixOffset(i%desc.Width, i/desc.Width)
		m.Pix[o+0] = c.R
		m.Pix[o+1] = c.G
		m.Pix[o+2] = c.B
		m.Pix[o+3] = c.A
	}

	return m, nil
}
