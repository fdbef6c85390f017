package dmadump

import (
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/dmadump/memdump"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func gradient(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 255 / w), uint8(y * 255 / h), uint8((x + y) * 4), 0xff})
		}
	}
	return m
}

func writePNG(t *testing.T, file string, m image.Image) {
	t.Helper()
	f, err := os.Create(file)
	require.Nil(t, err)
	defer f.Close()
	require.Nil(t, png.Encode(f, m))
}

func TestEncode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.png")
	dst := filepath.Join(dir, "src_mem.txt")
	desc := filepath.Join(dir, "src_mem_format.txt")

	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.SetNRGBA(0, 0, color.NRGBA{0xff, 0x00, 0x00, 0xff})
	m.SetNRGBA(1, 0, color.NRGBA{0x00, 0xff, 0x00, 0xff})
	writePNG(t, src, m)

	d, logs := newTestDMADump()
	require.Nil(t, d.Encode(src, dst, EncodeOptions{Descriptor: desc}))

	b, err := ioutil.ReadFile(dst)
	require.Nil(t, err)
	assert.Equal(t, "07E0 F800\n", string(b))

	b, err = ioutil.ReadFile(desc)
	require.Nil(t, err)
	assert.Equal(t, "Size: 2x1\n", string(b))

	assert.Contains(t, logs.String(), "Read png image")
}

func TestEncodeBMP(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.bmp")
	dst := filepath.Join(dir, "src_mem.txt")

	f, err := os.Create(src)
	require.Nil(t, err)
	require.Nil(t, bmp.Encode(f, gradient(20, 5)))
	require.Nil(t, f.Close())

	d, _ := newTestDMADump()
	require.Nil(t, d.Encode(src, dst, EncodeOptions{}))

	b, err := ioutil.ReadFile(dst)
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	assert.Len(t, lines, 7)
	assert.Len(t, strings.Fields(lines[6]), 100%16)
}

func TestEncodeResize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.png")
	dst := filepath.Join(dir, "src_mem.txt")
	desc := filepath.Join(dir, "src_mem_format.txt")

	writePNG(t, src, gradient(64, 48))

	d, _ := newTestDMADump()
	require.Nil(t, d.Encode(src, dst, EncodeOptions{Width: 16, Height: 8, Descriptor: desc, Label: "Image"}))

	b, err := ioutil.ReadFile(desc)
	require.Nil(t, err)
	assert.Equal(t, "Image: 16x8\n", string(b))

	f, err := os.Open(dst)
	require.Nil(t, err)
	defer f.Close()
	m, err := memdump.Decode(f, memdump.Descriptor{Width: 16, Height: 8}, &memdump.Options{})
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), m.Bounds())
}

func TestEncodeColors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.png")
	dst := filepath.Join(dir, "src_mem.txt")

	writePNG(t, src, gradient(32, 32))

	d, _ := newTestDMADump()
	require.Nil(t, d.Encode(src, dst, EncodeOptions{Colors: 4}))

	f, err := os.Open(dst)
	require.Nil(t, err)
	defer f.Close()
	m, err := memdump.Decode(f, memdump.Descriptor{Width: 32, Height: 32}, &memdump.Options{})
	require.Nil(t, err)

	colors := make(map[color.NRGBA]struct{})
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			colors[m.NRGBAAt(x, y)] = struct{}{}
		}
	}
	assert.LessOrEqual(t, len(colors), 4)
}

func TestReduceColors(t *testing.T) {
	pm := reduceColors(gradient(16, 16), 1000)
	assert.LessOrEqual(t, len(pm.Palette), maxColors)
	assert.Equal(t, image.Rect(0, 0, 16, 16), pm.Bounds())
}

func TestEncodeErrors(t *testing.T) {
	dir := t.TempDir()

	d, _ := newTestDMADump()
	assert.NotNil(t, d.Encode(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.txt"), EncodeOptions{}))

	writeFile(t, dir, "garbage.png", "not an image")
	assert.Equal(t, image.ErrFormat, d.Encode(filepath.Join(dir, "garbage.png"), filepath.Join(dir, "out.txt"), EncodeOptions{}))
}
