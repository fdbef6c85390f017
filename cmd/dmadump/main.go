package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/dmadump"
	"github.com/bodgit/dmadump/memdump"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openCatalog(c *cli.Context) (*dmadump.Catalog, error) {
	if c.String("db") == "" {
		return nil, nil
	}
	return dmadump.NewCatalog(c.String("db"))
}

func main() {
	app := cli.NewApp()

	app.Name = "dmadump"
	app.Usage = "DMA memory dump image conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"DMADUMP_DB"},
			Usage:   "path to catalog database, disabled if empty",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Convert an image to a memory dump",
			Description: "Reads a PNG, JPEG, GIF or BMP image and writes it as RGB565 words, sixteen to a line.",
			ArgsUsage:   "IMAGE DUMP",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "resize",
					Usage: "resize the image to `WxH` first",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce the image to `N` colors first",
				},
				&cli.StringFlag{
					Name:  "descriptor",
					Usage: "also write a format descriptor to `FILE`",
				},
				&cli.StringFlag{
					Name:  "label",
					Value: memdump.DefaultLabel,
					Usage: "label used in the format descriptor",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				opts := dmadump.EncodeOptions{
					Colors:     c.Int("colors"),
					Descriptor: c.String("descriptor"),
					Label:      c.String("label"),
				}
				if s := c.String("resize"); s != "" {
					w, h, err := memdump.ParseSize(s)
					if err != nil {
						return cli.Exit(fmt.Errorf("invalid size %q: %w", s, err), 1)
					}
					opts.Width, opts.Height = w, h
				}

				d := dmadump.New(newLogger(c))
				if err := d.Encode(c.Args().Get(0), c.Args().Get(1), opts); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Convert channel memory dumps to images",
			Description: "Finds every PREFIX<n>.txt dump with a PREFIX<n>_format.txt descriptor and writes output_channel_<n> images alongside them.",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "prefix",
					Value: dmadump.DefaultPrefix,
					Usage: "filename prefix of the channel dumps",
				},
				&cli.IntFlag{
					Name:  "skip",
					Value: memdump.DefaultSkip,
					Usage: "number of preamble lines in each dump",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: dmadump.PNG.String(),
					Usage: "output image format, png or bmp",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of channels decoded concurrently",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				format, err := dmadump.ParseFormat(c.String("format"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				options := []dmadump.Option{
					dmadump.WithPrefix(c.String("prefix")),
					dmadump.WithSkip(c.Int("skip")),
					dmadump.WithFormat(format),
					dmadump.WithWorkers(c.Int("workers")),
				}

				catalog, err := openCatalog(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if catalog != nil {
					defer catalog.Close()
					options = append(options, dmadump.WithCatalog(catalog))
				}

				d := dmadump.New(newLogger(c), options...)
				results, err := d.Decode(c.Context, c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				var failed int
				for _, r := range results {
					switch r.State {
					case dmadump.Disabled:
						fmt.Printf("channel %d: disabled\n", r.Channel)
					case dmadump.Succeeded:
						fmt.Printf("channel %d: %s\n", r.Channel, r.Output)
					case dmadump.Failed:
						fmt.Printf("channel %d: failed: %s\n", r.Channel, r.Err)
						failed++
					}
				}

				if failed > 0 {
					return cli.Exit(fmt.Sprintf("%d of %d channels failed", failed, len(results)), 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
