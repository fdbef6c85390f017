package dmadump

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

func (d *DMADump) findChannels(ctx context.Context, dir string) (<-chan channel, <-chan error, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan channel)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, info := range files {
			name := info.Name()

			// Only dumps, not their descriptors
			if !info.Mode().IsRegular() || !strings.HasPrefix(name, d.prefix) || filepath.Ext(name) != ".txt" || strings.Contains(name, "format") {
				continue
			}

			num := strings.TrimSuffix(strings.TrimPrefix(name, d.prefix), ".txt")
			// Only canonical numbers so that no two files share a channel
			index, err := strconv.Atoi(num)
			if err != nil || index < 0 || strconv.Itoa(index) != num {
				d.logger.Printf("Ignoring \"%s\", no channel number\n", name)
				continue
			}

			if err := ctx.Err(); err != nil {
				errc <- fmt.Errorf("discovery cancelled: %w", err)
				return
			}

			select {
			case out <- d.newChannel(dir, index):
			case <-ctx.Done():
				errc <- fmt.Errorf("discovery cancelled: %w", ctx.Err())
				return
			}
		}
	}()
	return out, errc, nil
}

func (d *DMADump) channelWorker(ctx context.Context, in <-chan channel) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		for ch := range in {
			select {
			case out <- d.decodeChannel(ch):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func mergeResults(cs ...<-chan Result) <-chan Result {
	var wg sync.WaitGroup
	out := make(chan Result)
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan Result) {
			for r := range c {
				out <- r
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Decode finds every channel dump in the directory at path and writes an
// image for each enabled channel alongside it. A channel that fails to
// decode does not stop the others; its Result holds the reason. Results are
// returned ordered by channel number. Cancelling ctx stops discovery and
// returns the context's error.
func (d *DMADump) Decode(ctx context.Context, path string) ([]Result, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	channels, errc, err := d.findChannels(ctx, dir)
	if err != nil {
		return nil, err
	}

	var rcList []<-chan Result
	for i := 0; i < d.workers; i++ {
		rcList = append(rcList, d.channelWorker(ctx, channels))
	}

	var results []Result
	for r := range mergeResults(rcList...) {
		d.report(r)
		if d.catalog != nil {
			if err := d.catalog.Record(r); err != nil {
				d.logger.Printf("Unable to record channel %d: %s\n", r.Channel, err)
			}
		}
		results = append(results, r)
	}

	if err := waitForPipeline(errc); err != nil {
		return nil, err
	}

	// Workers may have stopped early
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Channel < results[j].Channel })

	return results, nil
}
