package memdump

import (
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"
)

// DefaultLabel is the label written by EncodeDescriptor when none is given.
const DefaultLabel = "Size"

// Descriptor holds the dimensions of one channel's image.
type Descriptor struct {
	Label  string
	Width  int
	Height int
}

func (d Descriptor) Words() int {
	return d.Width * d.Height
}

// ParseSize parses a "WxH" string. Both dimensions must be positive.
func ParseSize(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), "x")
	if len(parts) != 2 {
		return 0, 0, errBadSize
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errBadSize
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, errBadSize
	}
	if w <= 0 || h <= 0 {
		return 0, 0, errNotPositive
	}
	return w, h, nil
}

// ParseDescriptor reads a "label: WxH" descriptor from r. An empty
// descriptor returns ErrChannelDisabled; anything else that does not hold a
// valid size returns a *FormatParseError.
func ParseDescriptor(r io.Reader) (Descriptor, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return Descriptor{}, err
	}
	if len(b) == 0 {
		return Descriptor{}, ErrChannelDisabled
	}

	text := strings.TrimSpace(strings.SplitN(string(b), "\n", 2)[0])

	parts := strings.Split(text, ":")
	if len(parts) < 2 {
		return Descriptor{}, &FormatParseError{Text: text, Err: errNoSeparator}
	}

	w, h, err := ParseSize(parts[1])
	if err != nil {
		return Descriptor{}, &FormatParseError{Text: text, Err: err}
	}

	return Descriptor{
		Label:  strings.TrimSpace(parts[0]),
		Width:  w,
		Height: h,
	}, nil
}

// EncodeDescriptor writes the descriptor line for a width by height image.
func EncodeDescriptor(w io.Writer, label string, width, height int) error {
	if label == "" {
		label = DefaultLabel
	}
	_, err := fmt.Fprintf(w, "%s: %dx%d\n", label, width, height)
	return err
}
