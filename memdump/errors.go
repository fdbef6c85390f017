package memdump

import (
	"errors"
	"fmt"
)

// ErrChannelDisabled is returned by ParseDescriptor when the descriptor is
// empty, which marks the DMA channel as disabled.
var ErrChannelDisabled = errors.New("memdump: channel disabled")

var (
	errNoSeparator = errors.New("missing ':' separator")
	errBadSize     = errors.New("size is not WxH")
	errNotPositive = errors.New("dimensions must be positive")
)

// FormatParseError records a descriptor that does not hold a valid size.
type FormatParseError struct {
	Text string
	Err  error
}

func (e *FormatParseError) Error() string {
	return fmt.Sprintf("memdump: invalid format descriptor %q: %v", e.Text, e.Err)
}

func (e *FormatParseError) Unwrap() error { return e.Err }

// MalformedLineError records a dump line that cannot be split into words.
type MalformedLineError struct {
	Line   int // 1-based, counting the preamble
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("memdump: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// ShortDataError records a dump holding fewer words than the image needs.
type ShortDataError struct {
	Want int
	Have int
}

func (e *ShortDataError) Error() string {
	return fmt.Sprintf("memdump: not enough image data: need %d words, have %d", e.Want, e.Have)
}
