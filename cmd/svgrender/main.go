// Command svgrender renders an SVG file to PNG, or prints
// its resolved element tree.
//
// Every flag may also be set with an environment variable
// prefixed by SVGRENDER_, such as SVGRENDER_WIDTH.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/peterbourgon/ff/v3"

	"github.com/benoitkugler/svgtree/svgraster"
	"github.com/benoitkugler/svgtree/svgtree"
)

// Options contains program options that can be set via command-line flags or environment variables.
type Options struct {
	In         string
	Out        string
	Width      int
	Height     int
	ConfigFile string
	Dump       bool
	Warnings   bool
}

func main() {
	var opts Options
	fs := flag.NewFlagSet("svgrender", flag.ExitOnError)
	fs.StringVar(&opts.In, "in", "-", "SVG file to render, or - for the standard input")
	fs.StringVar(&opts.Out, "out", "out.png", "Path of the PNG output, or - for the standard output")
	fs.IntVar(&opts.Width, "width", 0, "Width of the output image. Defaults to the document width")
	fs.IntVar(&opts.Height, "height", 0, "Height of the output image. Defaults to the document height")
	fs.StringVar(&opts.ConfigFile, "config", "", "Optional YAML file selecting the loaded elements")
	fs.BoolVar(&opts.Dump, "dump", false, "Print the resolved element tree instead of rendering")
	fs.BoolVar(&opts.Warnings, "warnings", false, "Log the invalid attributes")

	err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("SVGRENDER"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		os.Exit(1)
	}

	parseOpts, err := loadOptions(opts)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	doc, err := parse(opts.In, parseOpts)
	if err != nil {
		log.Fatalf("Could not parse %s: %v", opts.In, err)
	}

	if opts.Dump {
		fmt.Print(doc.Dump())
		return
	}

	img := svgraster.Raster(doc, opts.Width, opts.Height)
	if err := writePNG(opts.Out, img); err != nil {
		log.Fatalf("Could not write %s: %v", opts.Out, err)
	}
	log.Printf("Rendered %s to %s (%dx%d)", opts.In, opts.Out, img.Bounds().Dx(), img.Bounds().Dy())
}

// loadOptions builds the parser options from the flags and the optional config file.
func loadOptions(opts Options) (svgtree.Options, error) {
	out := svgtree.DefaultOptions()
	if opts.ConfigFile != "" {
		f, err := os.Open(opts.ConfigFile)
		if err != nil {
			return out, err
		}
		defer f.Close()
		cfg, err := svgtree.LoadConfig(f)
		if err != nil {
			return out, err
		}
		if out, err = cfg.Options(); err != nil {
			return out, err
		}
		opts.Warnings = opts.Warnings || cfg.Warnings
	}
	if out.Width == 0 {
		out.Width = float32(opts.Width)
	}
	if out.Height == 0 {
		out.Height = float32(opts.Height)
	}
	// warnings go to the log instead of the tracer
	out.ErrorMode = svgtree.IgnoreErrorMode
	if opts.Warnings {
		out.OnError = func(err *svgtree.ParseError) { log.Printf("Warning: %v", err) }
	}
	return out, nil
}

func parse(in string, opts svgtree.Options) (*svgtree.Document, error) {
	if in == "-" {
		// relative hrefs refer to the working directory
		opts.Open = func(href string) (io.ReadCloser, error) { return os.Open(href) }
		return svgtree.Parse(bufio.NewReader(os.Stdin), opts)
	}
	return svgtree.ParseFile(in, opts)
}

func writePNG(out string, img image.Image) error {
	if out == "-" {
		return png.Encode(os.Stdout, img)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
