package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/esimov/rondo"
	"github.com/esimov/rondo/utils"
)

const helpBanner = `
┬─┐┌─┐┌┐┌┌┬┐┌─┐
├┬┘│ ││││ │││ │
┴└─└─┘┘└┘─┴┘└─┘

Circular canvas painting engine.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	source      = flag.String("in", pipeName, "Event script, directory of scripts or - for stdin")
	destination = flag.String("out", pipeName, "Output image, directory or - for stdout")
	format      = flag.String("format", "auto", "Output format: auto, png, jpg, gif, tiff, bmp or pdf")
	configFile  = flag.String("config", "", "TOML configuration file")
	canvasSize  = flag.Int("size", 0, "Canvas size in pixels")
	brushSrc    = flag.String("brush", "", "Brush image path or URL")
	seed        = flag.Int64("seed", 1, "Pencil grain seed")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of scripts to render concurrently")
	debug       = flag.Bool("debug", false, "Log the engine events to stderr")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debug {
		rondo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the configuration: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	outFormat, err := rondo.ParseFormat(*format)
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}

	op := &Ops{
		Src:      *source,
		Dst:      *destination,
		Brush:    *brushSrc,
		PipeName: pipeName,
		Workers:  *workers,
		Format:   outFormat,
		Config:   cfg,
	}
	if err := op.Execute(); err != nil {
		log.Fatalf(
			utils.DecorateText("\nError rendering the canvas: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}
}

// loadConfig merges the defaults, the optional configuration file and the
// flags given explicitly on the command line, in this order.
func loadConfig(path string) (rondo.Config, error) {
	cfg := rondo.DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.CanvasSize = *canvasSize
		case "seed":
			cfg.Seed = *seed
		}
	})
	return cfg, cfg.Validate()
}
