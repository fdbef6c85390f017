package dmadump

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/dmadump/memdump"
)

// State is the terminal state of a channel.
type State int

const (
	Disabled State = iota + 1
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "disabled"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type channel struct {
	index      int
	descriptor string
	data       string
	output     string
}

// Result is the outcome of decoding one channel.
type Result struct {
	Channel int
	State   State
	Output  string // Set if State is Succeeded
	Err     error  // Set if State is Failed
	Width   int
	Height  int
	Words   int
	SHA1    string // Checksum of the dump, if it was read completely
}

func (d *DMADump) newChannel(dir string, index int) channel {
	num := strconv.Itoa(index)
	return channel{
		index:      index,
		descriptor: filepath.Join(dir, d.prefix+num+"_format.txt"),
		data:       filepath.Join(dir, d.prefix+num+".txt"),
		output:     filepath.Join(dir, fmt.Sprintf("output_channel_%d.%s", index, d.format.Ext())),
	}
}

func readDescriptor(file string) (memdump.Descriptor, error) {
	f, err := os.Open(file)
	if err != nil {
		return memdump.Descriptor{}, err
	}
	defer f.Close()

	return memdump.ParseDescriptor(f)
}

func (d *DMADump) decodeChannel(ch channel) Result {
	r := Result{Channel: ch.index}

	fail := func(err error) Result {
		r.State, r.Err = Failed, err
		return r
	}

	desc, err := readDescriptor(ch.descriptor)
	switch err {
	case memdump.ErrChannelDisabled:
		r.State = Disabled
		return r
	case nil:
		r.Width, r.Height, r.Words = desc.Width, desc.Height, desc.Words()
	default:
		return fail(err)
	}

	f, err := os.Open(ch.data)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	h := sha1.New()
	m, err := memdump.Decode(io.TeeReader(f, h), desc, &memdump.Options{Skip: d.skip})
	if err != nil {
		return fail(err)
	}
	r.SHA1 = fmt.Sprintf("%X", h.Sum(nil))

	// Encode fully before touching the filesystem
	b := new(bytes.Buffer)
	if err := d.format.Encode(b, m); err != nil {
		return fail(err)
	}

	if err := ioutil.WriteFile(ch.output, b.Bytes(), 0644); err != nil {
		return fail(err)
	}

	r.State, r.Output = Succeeded, ch.output
	return r
}

func (d *DMADump) report(r Result) {
	switch r.State {
	case Disabled:
		d.logger.Printf("Skipping %s%d.txt, because DMA channel %d is disabled\n", d.prefix, r.Channel, r.Channel)
	case Succeeded:
		d.logger.Printf("Saved image: %s\n", r.Output)
	case Failed:
		d.logger.Printf("Channel %d failed: %s\n", r.Channel, r.Err)
	}
}
