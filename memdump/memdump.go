/*
Package memdump implements an encoder and decoder for the RGB565 text memory
dumps used to preload and inspect DMA memory during simulation.

Each pixel is packed into a 16-bit RGB565 word written as four uppercase
hexadecimal digits. Words are taken in row-major order and grouped sixteen
to a line, one line per 256-bit memory word. Within a line the words are
stored in reverse order, so the last pixel of the group comes first:

	pixels  p0 p1 ... p15   ->   "P15P14...P1P0"

A line holding all sixteen words has no separators. If the pixel count is
not a multiple of sixteen, the final line holds the remaining words, also
reversed, separated by single spaces.

Dumps written by the simulator start with a short preamble that is skipped
when decoding. The image dimensions are not stored in the dump; they come
from a companion descriptor holding a single "label: WxH" line.
*/
package memdump

const (
	wordsPerLine = 16
	hexDigits    = 4

	// DefaultSkip is the number of preamble lines skipped by Decode when
	// no Options are given.
	DefaultSkip = 3
)

// groupReverse reverses the order of the words in a memory line in place.
// The same transform maps scan order to memory order and back again.
func groupReverse(words []uint16) {
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
}
