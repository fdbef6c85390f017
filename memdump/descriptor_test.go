package memdump

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptor(t *testing.T) {
	tables := []struct {
		in   string
		want Descriptor
	}{
		{"Size: 64x32", Descriptor{"Size", 64, 32}},
		{"Size: 2x1\n", Descriptor{"Size", 2, 1}},
		{"Image size:640x480\r\nignored\n", Descriptor{"Image size", 640, 480}},
		{"  Size : 3 x 5  ", Descriptor{"Size", 3, 5}},
	}

	for _, table := range tables {
		d, err := ParseDescriptor(strings.NewReader(table.in))
		require.Nil(t, err, table.in)
		assert.Equal(t, table.want, d)
	}
}

func TestParseDescriptorDisabled(t *testing.T) {
	_, err := ParseDescriptor(strings.NewReader(""))
	assert.Equal(t, ErrChannelDisabled, err)
}

func TestParseDescriptorErrors(t *testing.T) {
	tables := []struct {
		in  string
		err error
	}{
		{"\n", errNoSeparator},
		{"Size 64x32", errNoSeparator},
		{"Size: 64", errBadSize},
		{"Size: 64x", errBadSize},
		{"Size: axb", errBadSize},
		{"Size: 1x2x3", errBadSize},
		{"Size: 0x32", errNotPositive},
		{"Size: 64x-1", errNotPositive},
	}

	for _, table := range tables {
		_, err := ParseDescriptor(strings.NewReader(table.in))
		var fpe *FormatParseError
		if assert.True(t, errors.As(err, &fpe), table.in) {
			assert.Equal(t, table.err, fpe.Err)
			assert.True(t, errors.Is(err, table.err))
		}
	}
}

func TestEncodeDescriptor(t *testing.T) {
	b := new(bytes.Buffer)
	require.Nil(t, EncodeDescriptor(b, "", 64, 32))
	assert.Equal(t, "Size: 64x32\n", b.String())

	d, err := ParseDescriptor(b)
	require.Nil(t, err)
	assert.Equal(t, Descriptor{"Size", 64, 32}, d)
}
